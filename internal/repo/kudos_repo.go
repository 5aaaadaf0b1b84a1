// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the KudosRecord
// model, the append-only audit log of successful exchanges.
//
// The log is strictly additive: there are no update or delete functions in
// this file on purpose. A row that was written stays written.
//
// Error semantics:
//   - On DB errors (connectivity, constraints, etc.), the raw gorm error is
//     propagated. The service layer decides whether an exchange may proceed.
//
// Functions:
//
//   - CreateKudos(ctx, db, senderID, recipientID, reason) -> *domain.KudosRecord, error
//     Appends an audit row with UUID primary key and UTC timestamp.
//
//   - CountKudosReceived(ctx, db, userID) -> (int64, error)
//     Returns the total number of kudos received by the user.
//
//   - ListKudosReceivedPage(ctx, db, userID, offset, limit) -> []domain.KudosRecord, error
//     Returns a page of received kudos, most recent first.
//
//   - ListKudosSentPage(ctx, db, userID, offset, limit) -> []domain.KudosRecord, error
//     Returns a page of sent kudos, most recent first.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

// CreateKudos appends one audit-log row for a completed exchange. The record
// ID is a randomly generated UUID (string), and CreatedAt is set to UTC.
//
// On success, it returns the persisted KudosRecord. On failure, it returns a
// DB error; the caller must then abort delivery, since the audit log has to
// be a superset of delivered notifications.
func CreateKudos(ctx context.Context, db *gorm.DB, senderID, recipientID, reason string) (*domain.KudosRecord, error) {
	k := &domain.KudosRecord{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Reason:      reason,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(k).Error; err != nil {
		return nil, err
	}
	return k, nil
}

// CountKudosReceived returns the total number of kudos addressed to userID.
// On DB error, it returns the error.
func CountKudosReceived(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.KudosRecord{}).
		Where("recipient_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListKudosReceivedPage returns a paginated slice of kudos received by
// userID, ordered by creation time descending. Use CountKudosReceived to
// obtain the total for pagination metadata. On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListKudosReceivedPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.KudosRecord, error) {
	var out []domain.KudosRecord
	err := db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListKudosSentPage returns a paginated slice of kudos sent by userID,
// ordered by creation time descending. On DB error, it returns the error.
func ListKudosSentPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.KudosRecord, error) {
	var out []domain.KudosRecord
	err := db.WithContext(ctx).
		Where("sender_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
