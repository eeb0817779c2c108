package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses as stored by the booking side of the platform.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment links a client and a staff member of a business for one booked
// service. It is the record chat eligibility is derived from: two users may
// chat only while they share at least one appointment.
type Appointment struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	BusinessID  string    `gorm:"index;not null" json:"business_id"`
	StaffID     string    `gorm:"index:idx_appt_pair;not null" json:"staff_id"`
	ClientID    string    `gorm:"index:idx_appt_pair;not null" json:"client_id"`
	PetName     string    `json:"pet_name"`
	Service     string    `json:"service"`
	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`
	Status      string    `gorm:"index" json:"status"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// Summary returns the immutable display context attached to a chat room.
func (a *Appointment) Summary() *AppointmentSummary {
	return &AppointmentSummary{
		ID:          a.ID,
		Service:     a.Service,
		PetName:     a.PetName,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
	}
}

// AppointmentSummary is the canonical appointment shape carried in realtime
// events. The coordinator never interprets it; it is display context only.
type AppointmentSummary struct {
	ID          string    `json:"id"`
	Service     string    `json:"service"`
	PetName     string    `json:"pet_name,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
}

// ChatPartner is one entry of the pre-chat user list: a user the caller is
// eligible to chat with, annotated with their latest shared appointment.
type ChatPartner struct {
	User              UserRef   `json:"user"`
	AppointmentID     string    `json:"appointment_id"`
	AppointmentStatus string    `json:"appointment_status"`
	LastAppointment   time.Time `json:"last_appointment"`
	Online            bool      `json:"online"`
}
