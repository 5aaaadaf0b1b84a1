// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package). These codes provide clients with a stable,
// machine-readable error taxonomy that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, conflict) mirror common HTTP status
//     semantics to aid interoperability.
//   - Domain-specific codes (e.g., store_unavailable, dialog_failed) are reserved
//     for failures that cannot be conveyed by status alone. Policy rejections
//     (opt-outs, missing agreement, moderation flags) are NOT errors at this
//     layer: they are rendered as ephemeral messages with a 200 status, because
//     the platform shows them to the interacting user verbatim.
//   - All error responses must include both an HTTP status and one of these codes.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeDialogFailed     = "dialog_failed"
	ErrCodeUnknownCommand   = "unknown_command"
)
