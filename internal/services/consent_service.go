// Package services – ConsentService
//
// This file implements the ConsentService, the eligibility gate for kudos
// exchanges. It answers "has this user accepted the terms?" and "has this
// user opted out?", and owns the state transitions between the two: opting
// out clears the agreement (re-consent required later), opting back in does
// not restore it.
//
// Every check is a read-through to the registry store; the service keeps no
// in-memory cache. Store read failures are surfaced to the caller as errors,
// never collapsed into a permissive default answer.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-kudos-backend/internal/repo"
)

// ConsentService provides agreement and opt-out membership operations.
// It is safe for concurrent use; all state lives in the database.
type ConsentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// NewConsentService constructs a ConsentService bound to the given handle.
func NewConsentService(db *gorm.DB) *ConsentService {
	return &ConsentService{DB: db}
}

// HasAgreed reports whether userID has accepted the usage terms.
// A store error is returned as-is and must not be read as "false".
func (s *ConsentService) HasAgreed(ctx context.Context, userID string) (bool, error) {
	return repo.HasAgreement(ctx, s.DB, userID)
}

// IsOptedOut reports whether userID has opted out of kudos.
// A store error is returned as-is and must not be read as "false".
func (s *ConsentService) IsOptedOut(ctx context.Context, userID string) (bool, error) {
	return repo.HasOptOut(ctx, s.DB, userID)
}

// RecordAgreement stores the user's acceptance of the usage terms.
// Accepting twice is a no-op.
func (s *ConsentService) RecordAgreement(ctx context.Context, userID string) error {
	return repo.CreateAgreement(ctx, s.DB, userID)
}

// OptOut marks userID as opted out and clears any existing agreement in a
// single transaction. After opting back in the user must accept the terms
// again before sending. Opting out twice idempotently succeeds.
func (s *ConsentService) OptOut(ctx context.Context, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DeleteAgreement(ctx, tx, userID); err != nil {
			return err
		}
		return repo.CreateOptOut(ctx, tx, userID)
	})
}

// OptIn removes the OptOut row for userID. It is idempotent and does not
// restore a previously cleared agreement.
func (s *ConsentService) OptIn(ctx context.Context, userID string) error {
	return repo.DeleteOptOut(ctx, s.DB, userID)
}
