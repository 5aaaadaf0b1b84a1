// Interaction HTTP handlers.
//
// This file exposes the endpoints for interactive affordances:
//   - POST /events/shortcut     (message shortcut: give kudos pre-targeted)
//   - POST /events/interaction  (dialog submissions and button clicks)
//
// The reciprocation protocol lives here: clicking the "Return kudos" button
// opens a reason dialog whose private metadata carries the original sender's
// ID; submitting it runs an exchange with sender and recipient reversed. The
// metadata is an opaque, short-lived token passed by value through the
// round-trip; nothing is kept server-side between the click and the submit.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-kudos-backend/internal/http/middleware"
	"github.com/tbourn/go-kudos-backend/internal/platform"
	"github.com/tbourn/go-kudos-backend/internal/services"
)

// Interaction event types.
const (
	interactionDialogSubmit = "dialog_submit"
	interactionButtonClick  = "button_click"
)

// ShortcutEvent is the JSON payload for a message-shortcut event.
type ShortcutEvent struct {
	// UserID identifies the user who invoked the shortcut.
	UserID string `json:"user_id" binding:"required" example:"U1"`
	// TargetAuthorID is the author of the message the shortcut was used on.
	TargetAuthorID string `json:"target_author_id" binding:"required" example:"U2"`
	// TriggerID is the short-lived handle for opening the dialog.
	TriggerID string `json:"trigger_id" binding:"required"`
}

// InteractionEvent is the JSON payload for dialog submissions and button
// clicks. CallbackID/Values apply to dialog_submit; ActionID/Value apply to
// button_click.
type InteractionEvent struct {
	Type   string `json:"type" binding:"required,oneof=dialog_submit button_click"`
	UserID string `json:"user_id" binding:"required" example:"U2"`

	// Dialog submissions
	CallbackID      string            `json:"callback_id,omitempty"`
	PrivateMetadata string            `json:"private_metadata,omitempty"`
	Values          map[string]string `json:"values,omitempty"`

	// Button clicks
	ActionID string `json:"action_id,omitempty"`
	Value    string `json:"value,omitempty"`

	// TriggerID allows opening a follow-up dialog, when present.
	TriggerID string `json:"trigger_id,omitempty"`
}

// HandleShortcut godoc
// @ID          handleShortcut
// @Summary     Process a message-shortcut event
// @Description Opens the give-kudos dialog pre-targeted at the message author.
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ShortcutEvent true "Shortcut event"
//
// @Success     204  {string} string "Dialog opened"
// @Failure     400  {object} handlers.ErrorResponse "Malformed event"
// @Failure     502  {object} handlers.ErrorResponse "Dialog could not be opened"
// @Router      /events/shortcut [post]
func (h *Handlers) HandleShortcut(c *gin.Context) {
	var ev ShortcutEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id, target_author_id and trigger_id are required")
		return
	}

	form := platform.KudosForm(ev.TargetAuthorID)
	if err := h.dialogs.OpenDialog(c.Request.Context(), ev.TriggerID, form); err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("failed to open kudos dialog")
		fail(c, http.StatusBadGateway, ErrCodeDialogFailed, "could not open the kudos dialog")
		return
	}
	noContent(c)
}

// HandleInteraction godoc
// @ID          handleInteraction
// @Summary     Process a dialog submission or button click
// @Description Dispatches terms acceptance, opt-out, reciprocation triggers, and reason-dialog submissions.
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       X-Event-ID  header  string  false "Platform delivery ID (dedupe)"
// @Param       body        body    handlers.InteractionEvent true "Interaction event"
//
// @Success     200  {object} handlers.EphemeralResponse "User-facing result"
// @Success     204  {string} string "Dialog opened"
// @Failure     400  {object} handlers.ErrorResponse "Malformed event"
// @Failure     502  {object} handlers.ErrorResponse "Dialog could not be opened"
// @Failure     503  {object} handlers.ErrorResponse "Registry store unavailable"
// @Router      /events/interaction [post]
func (h *Handlers) HandleInteraction(c *gin.Context) {
	var ev InteractionEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "type and user_id are required")
		return
	}

	if middleware.IsReplay(c) {
		ephemeral(c, platform.PlainMessage("This action was already processed."))
		return
	}

	switch ev.Type {
	case interactionButtonClick:
		h.handleButton(c, ev)
	case interactionDialogSubmit:
		h.handleDialogSubmit(c, ev)
	}
}

// handleButton dispatches button clicks by action ID.
func (h *Handlers) handleButton(c *gin.Context, ev InteractionEvent) {
	ctx := c.Request.Context()

	switch ev.ActionID {
	case platform.ActionAcceptTerms:
		if err := h.consent.RecordAgreement(ctx, ev.UserID); err != nil {
			h.storeFailure(c, err)
			return
		}
		ephemeral(c, platform.PlainMessage(
			"Thanks! Terms accepted — you can now send kudos with `/give-kudos`."))

	case platform.ActionReturnKudos:
		// ev.Value carries the original sender's ID; it becomes the dialog's
		// private metadata and, on submission, the reciprocation recipient.
		if strings.TrimSpace(ev.Value) == "" || strings.TrimSpace(ev.TriggerID) == "" {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "return-kudos click requires a value and trigger_id")
			return
		}
		form := platform.ReturnKudosForm(ev.Value)
		if err := h.dialogs.OpenDialog(ctx, ev.TriggerID, form); err != nil {
			middleware.LoggerFrom(c).Error().Err(err).Msg("failed to open return-kudos dialog")
			fail(c, http.StatusBadGateway, ErrCodeDialogFailed, "could not open the return-kudos dialog")
			return
		}
		noContent(c)

	case platform.ActionOptOut:
		if err := h.consent.OptOut(ctx, ev.UserID); err != nil {
			h.storeFailure(c, err)
			return
		}
		ephemeral(c, platform.PlainMessage(
			"You are now opted out of kudos. If you opt back in with `/opt-in`, "+
				"you will need to accept the usage terms again."))

	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown action: "+ev.ActionID)
	}
}

// handleDialogSubmit dispatches dialog submissions by callback ID. Both
// reason dialogs resolve to SendKudosTo; they differ only in where the
// recipient came from (shortcut target vs. reciprocation source) and in the
// default reason applied to an empty field.
func (h *Handlers) handleDialogSubmit(c *gin.Context, ev InteractionEvent) {
	recipientID := strings.TrimSpace(ev.PrivateMetadata)
	if recipientID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "dialog submission lost its recipient")
		return
	}
	reason := ev.Values[platform.FieldReason]

	var defaultReason string
	switch ev.CallbackID {
	case platform.CallbackKudosReason:
		defaultReason = services.DefaultReason
	case platform.CallbackReturnReason:
		defaultReason = services.DefaultReturnReason
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "unknown callback: "+ev.CallbackID)
		return
	}

	res, err := h.exchange.SendKudosTo(c.Request.Context(), ev.UserID, recipientID, reason, defaultReason)
	h.recordExchangeReceipt(c, ev.UserID, res, err)
	h.renderExchange(c, res, err)
}
