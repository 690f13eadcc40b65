package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/asifkarim/blooddrop-backend/internal/dto"
	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_ForcesPendingStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	request, err := svc.Create("requester@example.com", dto.CreateRequestRequest{
		RecipientName: "Patient One",
		District:      "Dhaka",
		Upazila:       "Savar",
		Hospital:      "Enam Medical",
		BloodGroup:    "B+",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.Equal(t, "requester@example.com", request.RequesterEmail)
	assert.Nil(t, request.Donor)
	assert.False(t, request.CreatedAt.IsZero())
}

func TestListMine_Pagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		req := models.DonationRequest{
			ID:             uuid.New(),
			RequesterEmail: "me@example.com",
			RecipientName:  fmt.Sprintf("Recipient %02d", i),
			Status:         models.RequestStatusPending,
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&req).Error)
	}
	// Someone else's request must never appear in the listing.
	other := models.DonationRequest{
		ID:             uuid.New(),
		RequesterEmail: "else@example.com",
		Status:         models.RequestStatusPending,
		CreatedAt:      base.Add(100 * time.Hour),
	}
	require.NoError(t, db.Create(&other).Error)

	pageZero, total, err := svc.ListMine("me@example.com", 0, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, pageZero, 5)
	assert.Equal(t, "Recipient 11", pageZero[0].RecipientName)
	assert.Equal(t, "Recipient 07", pageZero[4].RecipientName)

	pageTwo, total, err := svc.ListMine("me@example.com", 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, pageTwo, 2)
	assert.Equal(t, "Recipient 01", pageTwo[0].RecipientName)
	assert.Equal(t, "Recipient 00", pageTwo[1].RecipientName)
}

func TestListMine_Defaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	for i := 0; i < 7; i++ {
		req := models.DonationRequest{
			ID:             uuid.New(),
			RequesterEmail: "me@example.com",
			Status:         models.RequestStatusPending,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&req).Error)
	}

	// Non-positive size and negative page fall back to size=5, page=0.
	requests, total, err := svc.ListMine("me@example.com", -3, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 7, total)
	assert.Len(t, requests, 5)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	seed := []models.DonationRequest{
		{ID: uuid.New(), RequesterEmail: "a@x.com", BloodGroup: "A+", District: "Dhaka", Upazila: "Savar", Status: models.RequestStatusPending},
		{ID: uuid.New(), RequesterEmail: "b@x.com", BloodGroup: "A+", District: "Khulna", Upazila: "Dumuria", Status: models.RequestStatusPending},
		{ID: uuid.New(), RequesterEmail: "c@x.com", BloodGroup: "O-", District: "Dhaka", Upazila: "Dhamrai", Status: models.RequestStatusPending},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	t.Run("no filters returns all", func(t *testing.T) {
		all, err := svc.Search(SearchFilters{})
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("space-encoded plus is recovered", func(t *testing.T) {
		// "A+" in a query string arrives as "A ", "A +" or even "A  + "
		// depending on how the client encoded it.
		for _, raw := range []string{"A ", "A +", "A  + ", "A+"} {
			found, err := svc.Search(SearchFilters{BloodGroup: raw})
			require.NoError(t, err)
			assert.Len(t, found, 2, "bloodGroup %q", raw)
		}
	})

	t.Run("filters narrow by exact match", func(t *testing.T) {
		found, err := svc.Search(SearchFilters{BloodGroup: "A+", District: "Dhaka"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Savar", found[0].Upazila)
	})

	t.Run("upazila filter", func(t *testing.T) {
		found, err := svc.Search(SearchFilters{Upazila: "Dhamrai"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "O-", found[0].BloodGroup)
	})
}

func TestUpdateStatus_InvalidValueDoesNotMutate(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	request, err := svc.Create("me@example.com", dto.CreateRequestRequest{BloodGroup: "AB+"})
	require.NoError(t, err)

	for _, bad := range []string{"", "approved", "PENDING", "in-progress"} {
		_, err := svc.UpdateStatus(request.ID, models.RequestStatus(bad), "")
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", bad)
	}

	var stored models.DonationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusPending, stored.Status)
}

func TestUpdateStatus_DonorOnlyOnInProgress(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	request, err := svc.Create("me@example.com", dto.CreateRequestRequest{BloodGroup: "B-"})
	require.NoError(t, err)

	affected, err := svc.UpdateStatus(request.ID, models.RequestStatusInProgress, "donor@example.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	var stored models.DonationRequest
	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusInProgress, stored.Status)
	require.NotNil(t, stored.Donor)
	assert.Equal(t, "donor@example.com", *stored.Donor)

	// Completing the request keeps the assigned donor untouched.
	_, err = svc.UpdateStatus(request.ID, models.RequestStatusDone, "someone-else@example.com")
	require.NoError(t, err)

	require.NoError(t, db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.RequestStatusDone, stored.Status)
	require.NotNil(t, stored.Donor)
	assert.Equal(t, "donor@example.com", *stored.Donor)
}

func TestUpdateStatus_UnknownIDZeroRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewRequestService(db)

	affected, err := svc.UpdateStatus(uuid.New(), models.RequestStatusCanceled, "")
	require.NoError(t, err)
	assert.EqualValues(t, 0, affected)
}
