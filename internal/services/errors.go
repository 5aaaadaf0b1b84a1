// Package services defines the business logic for consent, kudos exchanges,
// and history. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer. Raw store errors are deliberately NOT wrapped into
// any of these values: a failed registry lookup must surface as a failure, never
// as a policy outcome.
package services

import "errors"

// Exchange gate errors. Each one corresponds to a distinct, user-facing
// rejection; the first failing gate short-circuits the exchange.
var (
	// ErrSenderOptedOut is returned when the initiating user has an OptOut row.
	ErrSenderOptedOut = errors.New("sender has opted out of kudos")

	// ErrAgreementRequired is returned when the sender has not accepted the
	// usage terms. The caller should present the terms-acceptance prompt.
	ErrAgreementRequired = errors.New("sender has not accepted the usage terms")

	// ErrNoRecipient is returned when the command text contains no well-formed
	// user mention. The caller should respond with a usage hint.
	ErrNoRecipient = errors.New("no recipient mention found")

	// ErrSelfKudos is returned when sender and recipient are the same user.
	ErrSelfKudos = errors.New("cannot send kudos to yourself")

	// ErrRecipientOptedOut is returned when the mentioned recipient has an
	// OptOut row.
	ErrRecipientOptedOut = errors.New("recipient has opted out of kudos")

	// ErrReasonFlagged is returned when the moderation gate rejects the reason
	// text (including the fail-closed case where the classifier call errored).
	ErrReasonFlagged = errors.New("reason was flagged by moderation")

	// ErrDeliveryFailed is returned when the audit record was committed but the
	// outbound notification could not be sent. The exchange counts; callers
	// should report a partial failure and must not retry automatically.
	ErrDeliveryFailed = errors.New("kudos recorded but notification delivery failed")
)
