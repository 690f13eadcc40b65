package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/asifkarim/blooddrop-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrEmailRequired     = errors.New("email is required")
	ErrInvalidUserStatus = errors.New("invalid user status")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register stores a new user from an arbitrary profile payload. Role and
// status are always forced to donor/active so a caller cannot self-escalate.
// Registering an email that already exists refreshes the profile fields but
// never touches role or status.
func (s *UserService) Register(profile map[string]interface{}) (*models.User, error) {
	email := popString(profile, "email")
	if email == "" {
		return nil, ErrEmailRequired
	}

	user := models.User{
		ID:         uuid.New(),
		Email:      email,
		Name:       popString(profile, "name"),
		AvatarURL:  popString(profile, "avatar"),
		BloodGroup: popString(profile, "bloodGroup"),
		District:   popString(profile, "district"),
		Upazila:    popString(profile, "upazila"),
		Role:       models.RoleDonor,
		Status:     models.UserStatusActive,
		CreatedAt:  time.Now(),
	}

	// Whatever else the frontend sent rides along in the profile column.
	if len(profile) > 0 {
		b, err := json.Marshal(profile)
		if err != nil {
			return nil, fmt.Errorf("encode profile: %w", err)
		}
		user.Profile = datatypes.JSON(b)
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "avatar_url", "blood_group", "district", "upazila", "profile", "updated_at",
		}),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	// Re-read so the caller sees the persisted record, including the original
	// id, role and status when the registration was an upsert.
	var stored models.User
	if err := s.db.Where("email = ?", email).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("load registered user: %w", err)
	}
	return &stored, nil
}

// List returns every user record.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByEmail returns the user with the exact email, or nil when absent.
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// UpdateStatus sets the account status for the given email and reports how
// many rows were touched. Updating an unknown email is a zero-row success.
func (s *UserService) UpdateStatus(email, status string) (int64, error) {
	if !models.ValidUserStatus(status) {
		return 0, ErrInvalidUserStatus
	}

	result := s.db.Model(&models.User{}).Where("email = ?", email).Update("status", status)
	if result.Error != nil {
		return 0, fmt.Errorf("update user status: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func popString(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	delete(m, key)
	s, _ := v.(string)
	return s
}
