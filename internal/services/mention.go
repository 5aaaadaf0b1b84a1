// Package services – mention parsing
//
// This file implements the mention parser used by the give-kudos command:
// pure text extraction of the first platform-style user mention token and
// the residual reason text. Defaulting an empty reason happens in the
// exchange engine, not here.
package services

import (
	"regexp"
	"strings"
)

// mentionRE matches a platform mention token: "<@U123ABC>" or the labelled
// form "<@U123ABC|display-name>". Only the ID capture group is used.
var mentionRE = regexp.MustCompile(`<@([A-Za-z0-9]+)(?:\|[^>]*)?>`)

// ParseMention locates the first well-formed mention token in text.
//
// On success it returns the mentioned user ID and the remainder of the input
// with the token removed and surrounding whitespace trimmed; ok is true. When
// no mention is present, ok is false and the caller should respond with a
// usage hint rather than treat it as a fault.
//
// Only the first mention is honored; anything after it (including further
// mentions) is part of the free-text reason. An empty remainder is valid.
func ParseMention(text string) (userID, remainder string, ok bool) {
	loc := mentionRE.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", "", false
	}
	userID = text[loc[2]:loc[3]]
	remainder = strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
	return userID, remainder, true
}
