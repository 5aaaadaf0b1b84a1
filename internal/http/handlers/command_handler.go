// Command HTTP handler.
//
// This file exposes the endpoint for slash-command events:
//   - POST /events/command
//
// Dispatch is by command name: give-kudos, opt-out, opt-in, help, my-kudos.
// Outcomes that the user should see (confirmations, policy rejections, usage
// hints) are rendered as ephemeral message envelopes with a 200 status; only
// store/transport faults become error responses.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-kudos-backend/internal/http/middleware"
	"github.com/tbourn/go-kudos-backend/internal/platform"
	"github.com/tbourn/go-kudos-backend/internal/services"
	"github.com/tbourn/go-kudos-backend/internal/utils"
)

// Supported command names.
const (
	cmdGiveKudos = "give-kudos"
	cmdOptOut    = "opt-out"
	cmdOptIn     = "opt-in"
	cmdHelp      = "help"
	cmdMyKudos   = "my-kudos"
)

// historyPageSize is the number of received kudos shown per /my-kudos page.
const historyPageSize = 10

// CommandEvent is the JSON payload for an inbound slash-command event.
type CommandEvent struct {
	// Command is the invoked command name without the leading slash.
	Command string `json:"command" binding:"required" example:"give-kudos"`
	// UserID identifies the invoking user.
	UserID string `json:"user_id" binding:"required" example:"U1"`
	// Text is everything typed after the command.
	Text string `json:"text" example:"<@U2|bob> great job on the release"`
	// TriggerID allows opening a dialog in response, when present.
	TriggerID string `json:"trigger_id"`
}

// HandleCommand godoc
// @ID          handleCommand
// @Summary     Process a slash-command event
// @Description Dispatches give-kudos, opt-out, opt-in, help, and my-kudos commands.
// @Tags        Events
// @Accept      json
// @Produce     json
//
// @Param       X-Event-ID  header  string  false "Platform delivery ID (dedupe)"
// @Param       body        body    handlers.CommandEvent true "Command event"
//
// @Success     200  {object} handlers.EphemeralResponse "User-facing result"
// @Failure     400  {object} handlers.ErrorResponse "Malformed event"
// @Failure     503  {object} handlers.ErrorResponse "Registry store unavailable"
// @Router      /events/command [post]
func (h *Handlers) HandleCommand(c *gin.Context) {
	var ev CommandEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "command and user_id are required")
		return
	}

	// Redelivered webhook: acknowledge without repeating side effects.
	if middleware.IsReplay(c) {
		ephemeral(c, platform.PlainMessage("This action was already processed."))
		return
	}

	ctx := c.Request.Context()
	switch ev.Command {
	case cmdGiveKudos:
		res, err := h.exchange.SendKudos(ctx, ev.UserID, ev.Text)
		h.recordExchangeReceipt(c, ev.UserID, res, err)
		h.renderExchange(c, res, err)

	case cmdOptOut:
		if err := h.consent.OptOut(ctx, ev.UserID); err != nil {
			h.storeFailure(c, err)
			return
		}
		ephemeral(c, platform.PlainMessage(
			"You are now opted out of kudos. If you opt back in with `/opt-in`, "+
				"you will need to accept the usage terms again."))

	case cmdOptIn:
		if err := h.consent.OptIn(ctx, ev.UserID); err != nil {
			h.storeFailure(c, err)
			return
		}
		ephemeral(c, platform.PlainMessage(
			"Welcome back! You can send and receive kudos again once you accept the usage terms."))

	case cmdHelp:
		ephemeral(c, platform.HelpMessage())

	case cmdMyKudos:
		h.renderHistory(c, ev.UserID, ev.Text)

	default:
		fail(c, http.StatusBadRequest, ErrCodeUnknownCommand, "unknown command: "+ev.Command)
	}
}

// renderExchange maps an exchange outcome to its user-facing ephemeral
// message, or to an error response for store faults.
func (h *Handlers) renderExchange(c *gin.Context, res *services.ExchangeResult, err error) {
	switch {
	case err == nil:
		ephemeral(c, platform.PlainMessage(
			fmt.Sprintf("Kudos sent to <@%s>!", res.RecipientID)))

	case errors.Is(err, services.ErrDeliveryFailed):
		// Committed but not delivered: partial-failure notice, never retried.
		ephemeral(c, platform.PlainMessage(
			fmt.Sprintf("Your kudos to <@%s> was recorded, but the notification could not be delivered.", res.RecipientID)))

	case errors.Is(err, services.ErrSenderOptedOut):
		ephemeral(c, platform.PlainMessage(
			"You have opted out of kudos. Use `/opt-in` to participate again."))

	case errors.Is(err, services.ErrAgreementRequired):
		ephemeral(c, platform.TermsPrompt())

	case errors.Is(err, services.ErrNoRecipient):
		ephemeral(c, platform.PlainMessage(
			"Specify a recipient, e.g. `/give-kudos @teammate thanks for the review`."))

	case errors.Is(err, services.ErrSelfKudos):
		ephemeral(c, platform.PlainMessage("You cannot send kudos to yourself."))

	case errors.Is(err, services.ErrRecipientOptedOut):
		ephemeral(c, platform.PlainMessage("That person has opted out of receiving kudos."))

	case errors.Is(err, services.ErrReasonFlagged):
		ephemeral(c, platform.PlainMessage(
			"That message did not pass the content check. Please rephrase it."))

	default:
		h.storeFailure(c, err)
	}
}

// renderHistory renders the /my-kudos response: a summary line plus one page
// of received kudos. The optional command text selects the page number.
func (h *Handlers) renderHistory(c *gin.Context, userID, text string) {
	ctx := c.Request.Context()

	summary, err := h.history.Summary(ctx, userID)
	if err != nil {
		h.storeFailure(c, err)
		return
	}

	page := utils.AtoiDefault(strings.TrimSpace(text), 1)
	items, _, err := h.history.ReceivedPage(ctx, userID, page, historyPageSize)
	if err != nil {
		h.storeFailure(c, err)
		return
	}

	var b strings.Builder
	b.WriteString(summary)
	for _, k := range items {
		fmt.Fprintf(&b, "\n• <@%s>: %s _(%s)_", k.SenderID, k.Reason, k.CreatedAt.Format("2006-01-02"))
	}
	ephemeral(c, platform.PlainMessage(b.String()))
}

// recordExchangeReceipt stores a processed-event receipt for exchanges that
// committed an audit record (delivered or not). Policy rejections are safe to
// re-run and are not recorded. Receipt failures are logged, never surfaced:
// dedupe is best-effort.
func (h *Handlers) recordExchangeReceipt(c *gin.Context, userID string, res *services.ExchangeResult, err error) {
	if h.receipts == nil || res == nil {
		return
	}
	if err != nil && !errors.Is(err, services.ErrDeliveryFailed) {
		return
	}
	eventID, ok := middleware.GetEventID(c)
	if !ok {
		return
	}
	outcome := "delivered"
	if !res.Delivered {
		outcome = "delivery_failed"
	}
	if rerr := h.receipts(c.Request.Context(), userID, eventID, outcome); rerr != nil {
		middleware.LoggerFrom(c).Warn().Err(rerr).
			Str("event_id", eventID).
			Msg("failed to record event receipt")
	}
}

// storeFailure renders a registry/store fault: generic retry-later message
// for the user, full error for operators.
func (h *Handlers) storeFailure(c *gin.Context, err error) {
	middleware.LoggerFrom(c).Error().Err(err).Msg("registry store failure")
	fail(c, http.StatusServiceUnavailable, ErrCodeStoreUnavailable,
		"temporary storage problem, please try again later")
}
