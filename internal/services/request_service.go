package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidStatus rejects a triage status outside the allowed set.
var ErrInvalidStatus = errors.New("invalid status")

// DefaultPageSize applies to my-request pagination when the size parameter
// is absent, non-numeric or non-positive.
const DefaultPageSize = 5

type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Create stores a new donation request for the authenticated requester.
// The initial status is always pending regardless of the payload.
func (s *RequestService) Create(requesterEmail string, in dto.CreateRequestRequest) (*models.DonationRequest, error) {
	request := models.DonationRequest{
		ID:             uuid.New(),
		RequesterEmail: requesterEmail,
		RecipientName:  in.RecipientName,
		District:       in.District,
		Upazila:        in.Upazila,
		Hospital:       in.Hospital,
		BloodGroup:     in.BloodGroup,
		Status:         models.RequestStatusPending,
		CreatedAt:      time.Now(),
	}

	if err := s.db.Create(&request).Error; err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return &request, nil
}

// ListMine returns one page of the requester's own requests, newest first,
// together with the total count across all pages.
func (s *RequestService) ListMine(requesterEmail string, page, size int) ([]models.DonationRequest, int64, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	var total int64
	if err := s.db.Model(&models.DonationRequest{}).
		Where("requester_email = ?", requesterEmail).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count requests: %w", err)
	}

	var requests []models.DonationRequest
	err := s.db.Where("requester_email = ?", requesterEmail).
		Order("created_at DESC").
		Offset(page * size).
		Limit(size).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}

	return requests, total, nil
}

// ListAll returns every donation request, newest first.
func (s *RequestService) ListAll() ([]models.DonationRequest, error) {
	var requests []models.DonationRequest
	if err := s.db.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// SearchFilters narrows the public search; empty fields are not applied.
type SearchFilters struct {
	BloodGroup string
	District   string
	Upazila    string
}

// Search runs the public request search. Blood groups arrive with their `+`
// decoded to a space when taken from the query string, so spaces are turned
// back into `+` before matching. Inputs that already carry the `+` next to a
// space ("A +") would double up, so runs of `+` collapse to one.
func (s *RequestService) Search(f SearchFilters) ([]models.DonationRequest, error) {
	q := s.db.Model(&models.DonationRequest{})

	if f.BloodGroup != "" {
		group := strings.TrimSpace(strings.ReplaceAll(f.BloodGroup, " ", "+"))
		for strings.Contains(group, "++") {
			group = strings.ReplaceAll(group, "++", "+")
		}
		q = q.Where("blood_group = ?", group)
	}
	if f.District != "" {
		q = q.Where("district = ?", f.District)
	}
	if f.Upazila != "" {
		q = q.Where("upazila = ?", f.Upazila)
	}

	var requests []models.DonationRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("search requests: %w", err)
	}
	return requests, nil
}

// UpdateStatus applies a triage transition. The donor is recorded only when
// the new status is inprogress; no other field is touched. An unknown id
// affects zero rows and is not an error.
func (s *RequestService) UpdateStatus(id uuid.UUID, status models.RequestStatus, donor string) (int64, error) {
	if !status.Valid() {
		return 0, ErrInvalidStatus
	}

	updates := map[string]interface{}{"status": status}
	if status == models.RequestStatusInProgress {
		updates["donor"] = donor
	}

	result := s.db.Model(&models.DonationRequest{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("update request status: %w", result.Error)
	}
	return result.RowsAffected, nil
}
