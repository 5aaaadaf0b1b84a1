// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries over the kudos
// audit log, used by the history service to build summary lines without
// loading full pages. Each function is context-aware and safe to call from
// services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

// KudosStats returns aggregate metadata for kudos addressed to userID: the
// total number of rows and the timestamp of the most recent one.
//
// It executes two lightweight queries against the kudos_records table scoped
// to the recipient. When the user has never received kudos, the returned
// count is 0 and lastReceived is nil.
//
// Return values:
//   - count:        total kudos received by userID
//   - lastReceived: pointer to the greatest CreatedAt, or nil if no rows
//   - err:          database error, if any
func KudosStats(ctx context.Context, db *gorm.DB, userID string) (count int64, lastReceived *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.KudosRecord{}).Where("recipient_id = ?", userID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = q.Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.CreatedAt, nil
}
