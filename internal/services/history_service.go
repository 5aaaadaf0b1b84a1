// Package services – HistoryService
//
// This file implements the read side of the audit log: paginated listings of
// received kudos and a short summary line for the /my-kudos command. The log
// itself is append-only; this service never mutates it.
package services

import (
	"context"

	"gorm.io/gorm"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tbourn/go-kudos-backend/internal/domain"
	"github.com/tbourn/go-kudos-backend/internal/repo"
)

// HistoryService provides read-only queries over the kudos audit log.
type HistoryService struct {
	// DB is the GORM handle used for queries.
	DB *gorm.DB
}

// NewHistoryService constructs a HistoryService bound to the given handle.
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{DB: db}
}

// printer formats counts with locale-aware grouping for summary lines.
var printer = message.NewPrinter(language.AmericanEnglish)

// ReceivedPage returns a page of kudos received by userID, most recent
// first, along with the total count. Invalid page/pageSize values fall back
// to defaults.
func (s *HistoryService) ReceivedPage(ctx context.Context, userID string, page, pageSize int) ([]domain.KudosRecord, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountKudosReceived(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.KudosRecord{}, 0, nil
	}

	items, err := repo.ListKudosReceivedPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Summary returns a one-line description of the user's received kudos, e.g.
// "You have received 1,204 kudos. The latest arrived on 2026-08-27."
func (s *HistoryService) Summary(ctx context.Context, userID string) (string, error) {
	count, last, err := repo.KudosStats(ctx, s.DB, userID)
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "You have not received any kudos yet.", nil
	}
	if count == 1 {
		return printer.Sprintf("You have received 1 kudos, on %s.", last.Format("2006-01-02")), nil
	}
	return printer.Sprintf("You have received %d kudos. The latest arrived on %s.", count, last.Format("2006-01-02")), nil
}
