// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements dedupe support for redelivered platform webhook
// events. Chat platforms retry event deliveries on slow acknowledgements; the
// validator checks an X-Event-ID request header, optionally performs a
// user-defined lookup to detect previously processed deliveries, and
// annotates the request context so downstream handlers can:
//   - read the normalized event ID (GetEventID)
//   - detect redelivered events (IsReplay)
//   - bypass rate limiting when a replay is acknowledged (internal flag)
//
// Design goals:
//   - Keep transport concerns (validation, context stashing) in middleware.
//   - Decouple persistence via a narrow ReceiptLookup function type.
//   - Remain framework-agnostic beyond Gin's context.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderEventID is the request header carrying the platform's delivery
// identifier for an interaction event. The value is stable across retries of
// the same delivery, so redeliveries can be safely deduplicated.
const HeaderEventID = "X-Event-ID"

// Context keys used internally to stash dedupe state.
// These keys are intentionally unexported and referenced via accessor helpers.
const (
	ctxKeyEventID    = "event.id"
	ctxKeyEventDup   = "event.replay" // bool: true when a stored receipt exists
	ctxKeyRateBypass = "rate.bypass"  // bool: true to skip rate limiting
)

// GetEventID returns the validated event ID stored in the Gin context by
// EventDedup. The second return value indicates presence.
//
// Handlers should prefer this function over reading the header directly.
func GetEventID(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyEventID)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request is a
// redelivery of an already-processed event.
//
// When true, handlers should acknowledge without repeating side effects.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyEventDup)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// DedupOptions configures header validation behavior for EventDedup. TTL
// enforcement is intentionally out of scope here and should be implemented
// inside the provided lookup function.
type DedupOptions struct {
	// MaxLen caps the accepted event ID length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative RFC7230-like
	// token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// ReceiptLookup answers whether a still-valid receipt exists for eventID at
// the given time. Implementations typically consult the event_receipts table.
//
// Return exists=true when the delivery was already processed; return an error
// only for lookup failures (which should not block normal processing).
type ReceiptLookup func(ctx context.Context, eventID string, now time.Time) (exists bool, err error)

// EventDedup validates the X-Event-ID header (if present), stashes it in the
// request context, and optionally checks for a prior processed delivery via
// the supplied lookup. When a replay is detected, it marks the context so
// downstream components can:
//   - detect the replay via IsReplay
//   - bypass rate limiting (internal flag checked by the RL middleware)
//
// Behavior:
//   - If the header is absent: the middleware is a no-op.
//   - If the header fails validation: responds 400 with a compact error body.
//   - If the lookup indicates a replay: sets replay + rate-bypass flags.
//   - Always invokes the next handler unless validation fails.
//
// This middleware does not itself acknowledge the event; handlers remain in
// control of how replays are answered.
func EventDedup(opts DedupOptions, lookup ReceiptLookup) gin.HandlerFunc {
	// Sensible defaults.
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		// RFC-7230-ish token + common safe chars.
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		id := c.GetHeader(HeaderEventID)
		if id == "" {
			// Nothing to validate or stash; proceed.
			c.Next()
			return
		}
		if len(id) > maxLen || !pat.MatchString(id) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_event_id",
				"message": "invalid X-Event-ID",
			})
			return
		}

		// Stash the normalized ID for downstream use.
		c.Set(ctxKeyEventID, id)

		// If we can detect a previously processed delivery, mark replay + rate bypass.
		if lookup != nil {
			now := time.Now().UTC()
			if exists, _ := lookup(c.Request.Context(), id, now); exists {
				c.Set(ctxKeyEventDup, true)
				c.Set(ctxKeyRateBypass, true) // let RL middleware skip limiting
			}
		}

		c.Next()
	}
}
