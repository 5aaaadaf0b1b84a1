// Package services – ExchangeService
//
// This file implements the exchange engine, the component that owns a single
// kudos transmission end to end: sender eligibility, recipient resolution,
// moderation, the durable audit record, and the outbound notification with
// its reciprocation affordance. Gates run in a fixed order and the first
// failure short-circuits with a specific sentinel error; no gate ever
// swallows a store error into a default answer.
//
// Side-effect ordering is strict: the audit record is written before the
// notification is sent, so the log is always a superset of delivered
// notifications. Once the record is committed the exchange counts; a
// delivery failure is reported as ErrDeliveryFailed but never rolled back.
//
// Observability: each attempt runs under an OpenTelemetry span and increments
// a per-outcome Prometheus counter.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tbourn/go-kudos-backend/internal/platform"
	"github.com/tbourn/go-kudos-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultReason replaces an empty reason on a sender-initiated kudos.
	DefaultReason = "being an awesome person!"
	// DefaultReturnReason replaces an empty reason on a reciprocation.
	DefaultReturnReason = "returning the favor!"
)

// Notifier delivers outbound notifications. Implementations must be safe
// for concurrent use and honor the context.
type Notifier interface {
	// PostMessage sends msg as a direct message to userID.
	PostMessage(ctx context.Context, userID string, msg platform.Message) error
}

// Moderator is the moderation classifier capability consumed by the engine.
type Moderator interface {
	// Classify reports whether text is inadmissible. An error means the
	// check could not be performed, not that the text passed.
	Classify(ctx context.Context, text string) (bool, error)
}

// ExchangeResult describes a committed exchange. Delivered is false when the
// audit record was written but the notification could not be sent.
type ExchangeResult struct {
	RecipientID string
	Reason      string
	Delivered   bool
}

// ExchangeService orchestrates kudos transmissions and reciprocations.
type ExchangeService struct {
	// DB is the GORM handle used for the audit log.
	DB *gorm.DB
	// Consent answers agreement and opt-out checks.
	Consent *ConsentService
	// Moderator is the content-moderation classifier.
	Moderator Moderator
	// Notifier delivers kudos notifications.
	Notifier Notifier
}

// NewExchangeService wires the engine's collaborators. All dependencies are
// required; there are no hidden singletons.
func NewExchangeService(db *gorm.DB, consent *ConsentService, mod Moderator, notif Notifier) *ExchangeService {
	return &ExchangeService{DB: db, Consent: consent, Moderator: mod, Notifier: notif}
}

// SendKudos runs one sender-initiated exchange from raw command text.
//
// Gate order (first failure wins):
//  1. sender opted out            -> ErrSenderOptedOut
//  2. sender lacks agreement      -> ErrAgreementRequired (before any parsing)
//  3. no mention in text          -> ErrNoRecipient
//  4. recipient == sender         -> ErrSelfKudos
//  5. recipient opted out         -> ErrRecipientOptedOut
//  6. empty reason                -> DefaultReason (skips moderation)
//  7. moderation flag             -> ErrReasonFlagged
//  8. audit record append         -> raw store error aborts before delivery
//  9. notification                -> ErrDeliveryFailed with a non-nil result
//
// Store lookup failures in steps 1-2 and 5 surface as raw errors.
func (s *ExchangeService) SendKudos(ctx context.Context, senderID, rawText string) (*ExchangeResult, error) {
	tr := otel.Tracer("services/ExchangeService")
	ctx, span := tr.Start(ctx, "SendKudos",
		trace.WithAttributes(attribute.String("sender.id", senderID)),
	)
	defer span.End()

	if err := s.senderGates(ctx, senderID); err != nil {
		return nil, err
	}

	recipientID, remainder, ok := ParseMention(rawText)
	if !ok {
		countExchange(outcomeNoRecipient)
		return nil, ErrNoRecipient
	}

	return s.deliver(ctx, senderID, recipientID, remainder, DefaultReason)
}

// SendKudosTo runs one exchange with a known recipient: the reciprocation
// protocol (recipient = original sender from the affordance's opaque state)
// and the pre-targeted shortcut dialog. Mention parsing is skipped; every
// other gate runs in the same order as SendKudos. An empty reason defaults
// to defaultReason, typically DefaultReturnReason for reciprocations.
func (s *ExchangeService) SendKudosTo(ctx context.Context, senderID, recipientID, reason, defaultReason string) (*ExchangeResult, error) {
	tr := otel.Tracer("services/ExchangeService")
	ctx, span := tr.Start(ctx, "SendKudosTo",
		trace.WithAttributes(
			attribute.String("sender.id", senderID),
			attribute.String("recipient.id", recipientID),
		),
	)
	defer span.End()

	if err := s.senderGates(ctx, senderID); err != nil {
		return nil, err
	}
	return s.deliver(ctx, senderID, recipientID, reason, defaultReason)
}

// senderGates enforces the sender-side preconditions: not opted out, terms
// accepted. Lookup failures surface as raw errors, never as "eligible".
func (s *ExchangeService) senderGates(ctx context.Context, senderID string) error {
	optedOut, err := s.Consent.IsOptedOut(ctx, senderID)
	if err != nil {
		countExchange(outcomeStoreError)
		return err
	}
	if optedOut {
		countExchange(outcomeSenderOptedOut)
		return ErrSenderOptedOut
	}

	agreed, err := s.Consent.HasAgreed(ctx, senderID)
	if err != nil {
		countExchange(outcomeStoreError)
		return err
	}
	if !agreed {
		countExchange(outcomeAgreementRequired)
		return ErrAgreementRequired
	}
	return nil
}

// deliver runs the recipient-side gates, writes the audit record, and sends
// the notification. Shared by SendKudos and SendKudosTo.
func (s *ExchangeService) deliver(ctx context.Context, senderID, recipientID, reason, defaultReason string) (*ExchangeResult, error) {
	if recipientID == senderID {
		countExchange(outcomeSelfKudos)
		return nil, ErrSelfKudos
	}

	optedOut, err := s.Consent.IsOptedOut(ctx, recipientID)
	if err != nil {
		countExchange(outcomeStoreError)
		return nil, err
	}
	if optedOut {
		countExchange(outcomeRecipientOptedOut)
		return nil, ErrRecipientOptedOut
	}

	// Defaulted reasons never pass through moderation; user-supplied ones
	// always do.
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultReason
	} else if s.isFlagged(ctx, reason) {
		countExchange(outcomeReasonFlagged)
		return nil, ErrReasonFlagged
	}

	// Record before delivery: no notification for an unrecorded exchange.
	if _, err := repo.CreateKudos(ctx, s.DB, senderID, recipientID, reason); err != nil {
		countExchange(outcomeStoreError)
		return nil, err
	}

	res := &ExchangeResult{RecipientID: recipientID, Reason: reason}
	if err := s.Notifier.PostMessage(ctx, recipientID, platform.KudosNotification(senderID, reason)); err != nil {
		log.Warn().Err(err).
			Str("sender_id", senderID).
			Str("recipient_id", recipientID).
			Msg("kudos recorded but notification delivery failed")
		countExchange(outcomeDeliveryFailed)
		return res, ErrDeliveryFailed
	}

	res.Delivered = true
	countExchange(outcomeDelivered)
	return res, nil
}

// isFlagged resolves the moderation verdict for non-empty text. Classifier
// failures resolve to flagged=true: moderation errors block sends, unlike
// registry errors which surface to the caller.
func (s *ExchangeService) isFlagged(ctx context.Context, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	flagged, err := s.Moderator.Classify(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("moderation check failed; treating reason as flagged")
		return true
	}
	return flagged
}
