package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

func seedKudos(t *testing.T, svc *HistoryService, recipientID string, n int, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		k := domain.KudosRecord{
			ID:          fmt.Sprintf("k-%s-%d", recipientID, i),
			SenderID:    "S1",
			RecipientID: recipientID,
			Reason:      fmt.Sprintf("reason %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Second),
		}
		if err := svc.DB.Create(&k).Error; err != nil {
			t.Fatalf("seed kudos %d: %v", i, err)
		}
	}
}

func TestHistory_ReceivedPage_EmptyLog(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}

	items, total, err := svc.ReceivedPage(context.Background(), "U1", 1, 10)
	if err != nil {
		t.Fatalf("ReceivedPage: %v", err)
	}
	if total != 0 || len(items) != 0 {
		t.Fatalf("expected empty page, got total=%d items=%d", total, len(items))
	}
}

func TestHistory_ReceivedPage_OrderAndPaging(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedKudos(t, svc, "U1", 5, base)
	seedKudos(t, svc, "U9", 2, base) // other recipient, must not leak in

	items, total, err := svc.ReceivedPage(context.Background(), "U1", 1, 3)
	if err != nil {
		t.Fatalf("ReceivedPage: %v", err)
	}
	if total != 5 || len(items) != 3 {
		t.Fatalf("expected total=5 page=3, got total=%d page=%d", total, len(items))
	}
	// Most recent first: seeded index 4, 3, 2.
	if items[0].ID != "k-U1-4" || items[1].ID != "k-U1-3" || items[2].ID != "k-U1-2" {
		t.Fatalf("unexpected order: %v %v %v", items[0].ID, items[1].ID, items[2].ID)
	}

	// Second page holds the remaining two.
	items, _, err = svc.ReceivedPage(context.Background(), "U1", 2, 3)
	if err != nil {
		t.Fatalf("ReceivedPage p2: %v", err)
	}
	if len(items) != 2 || items[0].ID != "k-U1-1" {
		t.Fatalf("unexpected second page: %+v", items)
	}
}

func TestHistory_ReceivedPage_DefaultsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	seedKudos(t, svc, "U1", 1, time.Now().UTC())

	items, total, err := svc.ReceivedPage(context.Background(), "U1", -3, 0)
	if err != nil {
		t.Fatalf("ReceivedPage: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected defaults to page=1/size=10, got total=%d items=%d", total, len(items))
	}
}

func TestHistory_Summary(t *testing.T) {
	db := newTestDB(t)
	svc := &HistoryService{DB: db}
	ctx := context.Background()

	got, err := svc.Summary(ctx, "U1")
	if err != nil {
		t.Fatalf("Summary empty: %v", err)
	}
	if got != "You have not received any kudos yet." {
		t.Fatalf("unexpected empty summary: %q", got)
	}

	seedKudos(t, svc, "U1", 1, time.Date(2026, 5, 2, 9, 0, 0, 0, time.UTC))
	got, err = svc.Summary(ctx, "U1")
	if err != nil {
		t.Fatalf("Summary single: %v", err)
	}
	if !strings.Contains(got, "1 kudos") || !strings.Contains(got, "2026-05-02") {
		t.Fatalf("unexpected single summary: %q", got)
	}

	seedKudos(t, svc, "U2", 3, time.Date(2026, 5, 3, 9, 0, 0, 0, time.UTC))
	got, err = svc.Summary(ctx, "U2")
	if err != nil {
		t.Fatalf("Summary multi: %v", err)
	}
	if !strings.Contains(got, "3 kudos") || !strings.Contains(got, "2026-05-03") {
		t.Fatalf("unexpected multi summary: %q", got)
	}
}
