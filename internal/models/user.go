package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Platform roles. Chat eligibility is derived from shared appointments, not
// from the role itself, but events carry the role so clients can label the peer.
const (
	RoleSuperAdmin    = "super_admin"
	RoleBusinessAdmin = "business_admin"
	RoleStaff         = "staff"
	RoleClient        = "client"
)

// User represents a platform account (staff member, client, or admin).
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	Role         string `gorm:"index" json:"role"`
	// BusinessID is set for staff and business admins, empty for clients.
	BusinessID string `gorm:"index" json:"business_id,omitempty"`

	// Suspended blocks the user from initiating chats.
	Suspended bool `json:"suspended"`
	// SuspendedUntil is a unix timestamp; zero means indefinite while Suspended is set.
	SuspendedUntil int64 `json:"suspended_until,omitempty"`
}

// BeforeCreate generates a UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// Ref returns the lightweight reference carried in realtime events.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.DisplayName, Role: u.Role}
}

// Business is a tenant of the platform (grooming salon, vet clinic, ...).
type Business struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `json:"name"`
	Category string `gorm:"index" json:"category"`
	// Services is the list of service names the business offers.
	Services pq.StringArray `gorm:"type:text[]" json:"services"`
}

func (b *Business) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}
