// Package domain defines the persistence models for the kudos registry:
// usage-terms agreements, opt-out membership, and the append-only kudos
// audit log. These types are mapped with GORM and form the core data layer
// of the kudos backend.
package domain

import "time"

// Agreement marks that a user has accepted the usage terms. Presence of a
// row is the whole signal; there is nothing to update after creation.
//
// Opting out deletes the row, so a user who opts back in must accept the
// terms again before sending.
//
// Fields:
//   - UserID: opaque platform user identifier, primary key.
//   - CreatedAt: timestamp of first acceptance, managed by GORM.
type Agreement struct {
	UserID    string    `json:"user_id" gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Agreement.
func (Agreement) TableName() string { return "agreements" }

// OptOut marks that a user refuses to send or receive kudos. At most one
// row per user; inserts and removals are idempotent at the repo layer.
//
// Fields:
//   - UserID: opaque platform user identifier, primary key.
//   - CreatedAt: timestamp of the opt-out action, managed by GORM.
type OptOut struct {
	UserID    string    `json:"user_id" gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for OptOut.
func (OptOut) TableName() string { return "opt_outs" }

// KudosRecord is one audit-log entry per successful exchange, reciprocations
// included. Rows are append-only: the repo exposes no update or delete path,
// and the model deliberately carries no UpdatedAt/DeletedAt columns.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - SenderID / RecipientID: opaque platform user identifiers; both indexed
//     for the sent/received history queries.
//   - Reason: the (possibly defaulted) free-text reason that was delivered.
//   - CreatedAt: exchange timestamp, indexed for recency ordering.
type KudosRecord struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	SenderID    string    `json:"sender_id"    gorm:"type:varchar(64);not null;index:idx_kudos_sender"`
	RecipientID string    `json:"recipient_id" gorm:"type:varchar(64);not null;index:idx_kudos_recipient"`
	Reason      string    `json:"reason"       gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index"`
}

// TableName returns the database table name for KudosRecord.
func (KudosRecord) TableName() string { return "kudos_records" }
