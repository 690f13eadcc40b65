package dto

import "github.com/asifkarim/blooddrop-backend/internal/models"

type CreateCheckoutRequest struct {
	DonateAmount float64 `json:"donateAmount"`
	DonorEmail   string  `json:"donorEmail"`
	DonorName    string  `json:"donorName,omitempty"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// ReconcileResponse is always sent, even for sessions that are not paid yet.
type ReconcileResponse struct {
	Recorded        bool            `json:"recorded"`
	AlreadyRecorded bool            `json:"alreadyRecorded,omitempty"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	Payment         *models.Payment `json:"payment,omitempty"`
}
