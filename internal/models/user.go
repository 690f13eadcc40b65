package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleDonor     = "donor"
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"

	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User is a registered site member. Role and status are always server-assigned
// at registration; the unique index on email makes registration an upsert
// rather than a duplicate insert.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name       string         `gorm:"size:120" json:"name,omitempty"`
	AvatarURL  string         `gorm:"type:text" json:"avatar,omitempty"`
	BloodGroup string         `gorm:"size:5" json:"bloodGroup,omitempty"`
	District   string         `gorm:"size:80" json:"district,omitempty"`
	Upazila    string         `gorm:"size:80" json:"upazila,omitempty"`
	Role       string         `gorm:"size:20;not null;default:'donor'" json:"role"`
	Status     string         `gorm:"size:20;not null;default:'active'" json:"status"`
	Profile    datatypes.JSON `json:"profile,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ValidUserStatus reports whether s is an allowed account status.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusBlocked
}
