// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Agreement
// model (usage-terms acceptance membership).
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules (when an agreement is required,
// when it is cleared) to the services package.
//
// Error semantics:
//   - Membership checks return (bool, error); a lookup failure is returned as
//     an error and is never collapsed into "false". Callers gate sends on these
//     checks, so a silent permissive default would be a policy bug.
//   - On DB errors (connectivity, constraints, etc.), the raw gorm error is
//     propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAgreement inserts an Agreement row for userID. Re-accepting the
// terms is a no-op: the insert is idempotent via ON CONFLICT DO NOTHING,
// so the original acceptance timestamp is preserved.
func CreateAgreement(ctx context.Context, db *gorm.DB, userID string) error {
	a := &domain.Agreement{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(a).Error
}

// HasAgreement reports whether userID has an Agreement row. A lookup error
// is returned as-is; callers must not treat it as "no agreement".
func HasAgreement(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Agreement{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAgreement removes the Agreement row for userID. Deleting a missing
// row succeeds (idempotent); the caller does not need to check existence.
func DeleteAgreement(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.Agreement{}).Error
}
