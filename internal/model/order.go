package model

import "time"

const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
)

// Order is one charging-payment transaction. OrderCode is the join key
// between the store and inbound webhook payloads.
type Order struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	OrderCode int64  `gorm:"uniqueIndex;not null"`
	Station   int    `gorm:"index;not null"`
	UID       string `gorm:"size:64;not null"`
	KWh       float64
	// Amount is fixed at creation (round(kWh * unitPrice), minor units) and
	// never recomputed from webhook data.
	Amount    int64  `gorm:"not null"`
	Email     string `gorm:"size:128"`
	Status    string `gorm:"size:16;index;not null"` // PENDING, PAID
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
