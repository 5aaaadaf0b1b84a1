// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the EventReceipt
// model used to deduplicate redelivered platform webhook events.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

// ErrDuplicate indicates that a receipt already exists for the given
// event identifier.
var ErrDuplicate = errors.New("duplicate")

// GetReceipt returns a non-expired receipt or ErrNotFound.
func GetReceipt(ctx context.Context, db *gorm.DB, eventID string, now time.Time) (*domain.EventReceipt, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrNotFound
	}
	var rec domain.EventReceipt
	err := db.WithContext(ctx).
		Where("event_id = ? AND expires_at > ?", eventID, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

// CreateReceipt inserts a receipt and returns ErrDuplicate on unique violation.
func CreateReceipt(ctx context.Context, db *gorm.DB, userID, eventID, outcome string, ttl time.Duration) (*domain.EventReceipt, error) {
	now := time.Now().UTC()
	rec := &domain.EventReceipt{
		ID:        uuid.NewString(),
		UserID:    userID,
		EventID:   eventID,
		Outcome:   outcome,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
