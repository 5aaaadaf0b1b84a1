// Package handlers provides the HTTP endpoints that receive abstracted chat
// interaction events (commands, shortcuts, dialog submissions, button clicks)
// and translate them into service calls.
//
// Handlers are transport-thin: they validate input, delegate to application
// services, and render outcomes either as ephemeral message envelopes (policy
// rejections, confirmations) or as structured error responses (store and
// transport faults).
package handlers

import (
	"context"

	"github.com/tbourn/go-kudos-backend/internal/domain"
	"github.com/tbourn/go-kudos-backend/internal/platform"
	"github.com/tbourn/go-kudos-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ExchangeService defines the kudos exchange operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ExchangeService interface {
	// SendKudos runs a sender-initiated exchange from raw command text.
	SendKudos(ctx context.Context, senderID, rawText string) (*services.ExchangeResult, error)
	// SendKudosTo runs an exchange with a known recipient (reciprocation or
	// pre-targeted shortcut), defaulting an empty reason to defaultReason.
	SendKudosTo(ctx context.Context, senderID, recipientID, reason, defaultReason string) (*services.ExchangeResult, error)
}

// ConsentService defines the agreement/opt-out transitions consumed by HTTP
// handlers.
type ConsentService interface {
	// RecordAgreement stores acceptance of the usage terms.
	RecordAgreement(ctx context.Context, userID string) error
	// OptOut marks the user as opted out and clears their agreement.
	OptOut(ctx context.Context, userID string) error
	// OptIn removes the opt-out; the agreement is not restored.
	OptIn(ctx context.Context, userID string) error
}

// HistoryService defines the read-only audit-log queries consumed by the
// /my-kudos command.
type HistoryService interface {
	// ReceivedPage returns a page of received kudos and the total count.
	ReceivedPage(ctx context.Context, userID string, page, pageSize int) ([]domain.KudosRecord, int64, error)
	// Summary returns a one-line description of the user's received kudos.
	Summary(ctx context.Context, userID string) (string, error)
}

// DialogOpener opens modal dialogs on the chat platform. Implemented by
// platform.Client.
type DialogOpener interface {
	// OpenDialog opens form using the short-lived trigger ID.
	OpenDialog(ctx context.Context, triggerID string, form platform.Form) error
}

// ReceiptRecorder persists a processed-event receipt so redelivered webhooks
// can be acknowledged without repeating side effects. Implementations should
// treat duplicate receipts as success.
type ReceiptRecorder func(ctx context.Context, userID, eventID, outcome string) error

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for interaction events. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	exchange ExchangeService
	consent  ConsentService
	history  HistoryService
	dialogs  DialogOpener
	receipts ReceiptRecorder
}

// New constructs and returns a Handlers instance bound to the given services.
// receipts may be nil, in which case processed events are not recorded.
func New(exchange ExchangeService, consent ConsentService, history HistoryService, dialogs DialogOpener, receipts ReceiptRecorder) *Handlers {
	return &Handlers{
		exchange: exchange,
		consent:  consent,
		history:  history,
		dialogs:  dialogs,
		receipts: receipts,
	}
}
