package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-kudos-backend/internal/domain"
)

func newAgreementRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("agreement_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateAgreement_Error_NoTable(t *testing.T) {
	db := newAgreementRepoDB(t /* no migrations */)
	if err := CreateAgreement(context.Background(), db, "u1"); err == nil {
		t.Fatalf("expected error creating without table")
	}
}

func TestCreateAgreement_IdempotentInsert(t *testing.T) {
	db := newAgreementRepoDB(t, &domain.Agreement{})
	ctx := context.Background()

	if err := CreateAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("first CreateAgreement: %v", err)
	}
	// Conflict on the primary key is swallowed by DoNothing.
	if err := CreateAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("second CreateAgreement: %v", err)
	}

	var n int64
	if err := db.Model(&domain.Agreement{}).Where("user_id = ?", "u1").Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}
}

func TestHasAgreement_TrueFalseAndError(t *testing.T) {
	db := newAgreementRepoDB(t, &domain.Agreement{})
	ctx := context.Background()

	has, err := HasAgreement(ctx, db, "u1")
	if err != nil || has {
		t.Fatalf("expected (false, nil) for fresh user, got (%v, %v)", has, err)
	}

	if err := CreateAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	has, err = HasAgreement(ctx, db, "u1")
	if err != nil || !has {
		t.Fatalf("expected (true, nil), got (%v, %v)", has, err)
	}

	// No table: the error must surface, never read as "false".
	bad := newAgreementRepoDB(t)
	if _, err := HasAgreement(ctx, bad, "u1"); err == nil {
		t.Fatalf("expected error when table missing")
	}
}

func TestDeleteAgreement_IdempotentAndEffective(t *testing.T) {
	db := newAgreementRepoDB(t, &domain.Agreement{})
	ctx := context.Background()

	// Deleting a missing row succeeds.
	if err := DeleteAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	if err := CreateAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := DeleteAgreement(ctx, db, "u1"); err != nil {
		t.Fatalf("delete existing: %v", err)
	}
	has, err := HasAgreement(ctx, db, "u1")
	if err != nil || has {
		t.Fatalf("expected agreement gone, got (%v, %v)", has, err)
	}
}

func TestErrNotFound_AliasesGorm(t *testing.T) {
	if !errors.Is(ErrNotFound, gorm.ErrRecordNotFound) {
		t.Fatalf("ErrNotFound must alias gorm.ErrRecordNotFound")
	}
}
