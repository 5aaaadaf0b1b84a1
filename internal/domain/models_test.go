package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	if (Agreement{}).TableName() != "agreements" {
		t.Fatalf("Agreement.TableName() = %q; want %q", (Agreement{}).TableName(), "agreements")
	}
	if (OptOut{}).TableName() != "opt_outs" {
		t.Fatalf("OptOut.TableName() = %q; want %q", (OptOut{}).TableName(), "opt_outs")
	}
	if (KudosRecord{}).TableName() != "kudos_records" {
		t.Fatalf("KudosRecord.TableName() = %q; want %q", (KudosRecord{}).TableName(), "kudos_records")
	}
	if (EventReceipt{}).TableName() != "event_receipts" {
		t.Fatalf("EventReceipt.TableName() = %q; want %q", (EventReceipt{}).TableName(), "event_receipts")
	}
}

func TestMigrations_Indexes_AndConstraints(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Agreement{}, &OptOut{}, &KudosRecord{}, &EventReceipt{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	for _, tbl := range []any{&Agreement{}, &OptOut{}, &KudosRecord{}, &EventReceipt{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	// Indexes from tags exist
	if !m.HasIndex(&KudosRecord{}, "idx_kudos_sender") {
		t.Fatalf("expected index idx_kudos_sender on kudos_records")
	}
	if !m.HasIndex(&KudosRecord{}, "idx_kudos_recipient") {
		t.Fatalf("expected index idx_kudos_recipient on kudos_records")
	}
	if !m.HasIndex(&EventReceipt{}, "ux_event_id") {
		t.Fatalf("expected unique index ux_event_id on event_receipts")
	}

	now := time.Now().UTC()

	// A user may not hold two agreements or two opt-outs (PK on user_id).
	if err := db.Create(&Agreement{UserID: "u1", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert agreement: %v", err)
	}
	if err := db.Create(&Agreement{UserID: "u1", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected PK violation on duplicate agreement")
	}
	if err := db.Create(&OptOut{UserID: "u1", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert opt-out: %v", err)
	}
	if err := db.Create(&OptOut{UserID: "u1", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected PK violation on duplicate opt-out")
	}

	// The same delivery ID may be recorded only once, regardless of user.
	r1 := &EventReceipt{ID: "r1", UserID: "u1", EventID: "ev-1", Outcome: "delivered", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(r1).Error; err != nil {
		t.Fatalf("insert receipt: %v", err)
	}
	r2 := &EventReceipt{ID: "r2", UserID: "u2", EventID: "ev-1", Outcome: "delivered", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(r2).Error; err == nil {
		t.Fatalf("expected unique violation on duplicate event_id")
	}
}
