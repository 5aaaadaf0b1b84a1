// Package platform – message and form builders.
//
// Builders return fully structured descriptors so callers never assemble
// block payloads by hand. Every kudos notification embeds the reciprocation
// button; the chain is intentionally unbounded.
package platform

import "fmt"

// termsText is the usage-terms content shown before first use and attached
// to agreement-required rejections.
const termsText = "*Kudos usage terms*\n" +
	"• Kudos are public to the recipient and kept in an audit log.\n" +
	"• Messages pass a content-moderation check before delivery.\n" +
	"• You can opt out at any time with `/opt-out`; opting out also " +
	"withdraws this acceptance."

// KudosNotification builds the message delivered to a kudos recipient. The
// reciprocation button carries senderID as its opaque value so a click can
// address the return kudos without any server-side session state.
func KudosNotification(senderID, reason string) Message {
	return Message{
		Text: fmt.Sprintf("You received kudos from <@%s>!", senderID),
		Blocks: []Block{
			section(fmt.Sprintf(":tada: You received kudos from <@%s>!", senderID)),
			section(fmt.Sprintf("> %s", reason)),
			{
				Type: "actions",
				Elements: []Element{
					button("Return kudos", ActionReturnKudos, senderID, "primary"),
				},
			},
		},
	}
}

// TermsPrompt builds the terms-acceptance message with the accept button.
// It is sent when a sender without a recorded agreement tries to give kudos.
func TermsPrompt() Message {
	return Message{
		Text: "Please accept the kudos usage terms first.",
		Blocks: []Block{
			section(termsText),
			{
				Type: "actions",
				Elements: []Element{
					button("I accept", ActionAcceptTerms, "", "primary"),
				},
			},
		},
	}
}

// HelpMessage builds the /help response: command summary plus an opt-out
// shortcut button.
func HelpMessage() Message {
	return Message{
		Text: "Kudos commands",
		Blocks: []Block{
			section("*Kudos commands*\n" +
				"• `/give-kudos @someone <reason>` — send kudos\n" +
				"• `/my-kudos` — see kudos you have received\n" +
				"• `/opt-out` — stop sending and receiving kudos\n" +
				"• `/opt-in` — opt back in (terms must be re-accepted)"),
			{
				Type: "actions",
				Elements: []Element{
					button("Opt out", ActionOptOut, "", "danger"),
				},
			},
		},
	}
}

// ReturnKudosForm builds the reciprocation reason dialog. originalSenderID
// travels as private metadata and becomes the recipient on submission.
func ReturnKudosForm(originalSenderID string) Form {
	return Form{
		CallbackID:      CallbackReturnReason,
		Title:           "Return kudos",
		SubmitLabel:     "Send",
		PrivateMetadata: originalSenderID,
		Fields: []FormField{
			{
				ID:          FieldReason,
				Label:       "Why the kudos?",
				Placeholder: "returning the favor!",
				Multiline:   true,
				Optional:    true,
			},
		},
	}
}

// KudosForm builds the reason dialog opened by the message shortcut, with
// the target author pre-selected via private metadata.
func KudosForm(targetUserID string) Form {
	return Form{
		CallbackID:      CallbackKudosReason,
		Title:           "Give kudos",
		SubmitLabel:     "Send",
		PrivateMetadata: targetUserID,
		Fields: []FormField{
			{
				ID:          FieldReason,
				Label:       "Why the kudos?",
				Placeholder: "being an awesome person!",
				Multiline:   true,
				Optional:    true,
			},
		},
	}
}

// PlainMessage wraps a single line of text in a one-section message.
// Used for confirmations and rejection notices.
func PlainMessage(text string) Message {
	return Message{Text: text, Blocks: []Block{section(text)}}
}
