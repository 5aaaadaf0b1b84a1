// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// EventReceipt records that an inbound interaction event has already been
// processed, keyed by the platform's delivery identifier. Chat platforms
// redeliver webhook events on slow acknowledgements; a receipt lets the HTTP
// layer acknowledge the retry without running the exchange a second time.
type EventReceipt struct {
	ID        string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	UserID    string    `gorm:"type:TEXT NOT NULL;index"`
	EventID   string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_event_id"`
	Outcome   string    `gorm:"type:TEXT NOT NULL"`
	CreatedAt time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (EventReceipt) TableName() string { return "event_receipts" }
