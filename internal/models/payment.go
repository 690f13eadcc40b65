package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records one settled checkout session. The unique index on
// TransactionID is what makes reconciliation at-most-once: concurrent
// reconciliations race on the insert and exactly one wins.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID string    `gorm:"size:255;not null;uniqueIndex" json:"transactionId"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"size:10" json:"currency"`
	DonorEmail    string    `gorm:"size:255" json:"donorEmail"`
	PaymentStatus string    `gorm:"size:20" json:"paymentStatus"`
	PaidAt        time.Time `json:"paidAt"`
	CreatedAt     time.Time `json:"createdAt"`
}
