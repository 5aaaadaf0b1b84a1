// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the OptOut
// model (users who refuse to send or receive kudos).
//
// Error semantics mirror agreement_repo.go: membership checks return
// (bool, error) and never default a failed lookup to "not opted out".
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

// CreateOptOut inserts an OptOut row for userID. Opting out twice is a
// no-op: the insert is idempotent via ON CONFLICT DO NOTHING, leaving
// exactly one row per user.
func CreateOptOut(ctx context.Context, db *gorm.DB, userID string) error {
	o := &domain.OptOut{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(o).Error
}

// HasOptOut reports whether userID has an OptOut row. A lookup error is
// returned as-is; callers must not treat it as "not opted out".
func HasOptOut(ctx context.Context, db *gorm.DB, userID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.OptOut{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteOptOut removes the OptOut row for userID. Deleting a missing row
// succeeds (idempotent), so repeated opt-in commands are harmless.
func DeleteOptOut(ctx context.Context, db *gorm.DB, userID string) error {
	return db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.OptOut{}).Error
}
