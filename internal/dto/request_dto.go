package dto

import "github.com/asifkarim/blooddrop-backend/internal/models"

type CreateRequestRequest struct {
	RecipientName string `json:"recipientName"`
	District      string `json:"district"`
	Upazila       string `json:"upazila"`
	Hospital      string `json:"hospital"`
	BloodGroup    string `json:"bloodGroup"`
}

// MyRequestsResponse keeps the field names the frontend already consumes.
type MyRequestsResponse struct {
	Request      []models.DonationRequest `json:"request"`
	TotalRequest int64                    `json:"totalRequest"`
}

type UpdateRequestStatusRequest struct {
	Status string `json:"status"`
	Donor  string `json:"donor"`
}
