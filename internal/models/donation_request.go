package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the triage state of a donation request.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "inprogress"
	RequestStatusDone       RequestStatus = "done"
	RequestStatusCanceled   RequestStatus = "canceled"
)

// Valid reports whether s is one of the allowed triage states. Any allowed
// state may follow any other; there is no transition table.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusDone, RequestStatusCanceled:
		return true
	}
	return false
}

// DonationRequest is a plea for blood for a named recipient. Donor is set
// only when a request moves to inprogress.
type DonationRequest struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterEmail string        `gorm:"size:255;not null;index" json:"requesterEmail"`
	RecipientName  string        `gorm:"size:120" json:"recipientName"`
	District       string        `gorm:"size:80" json:"district"`
	Upazila        string        `gorm:"size:80" json:"upazila"`
	Hospital       string        `gorm:"size:200" json:"hospital"`
	BloodGroup     string        `gorm:"size:5" json:"bloodGroup"`
	Status         RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Donor          *string       `gorm:"size:255" json:"donor,omitempty"`
	CreatedAt      time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
