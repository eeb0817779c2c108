package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"pawlink/backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	user := &models.User{
		Email:       "sam@happypaws.test",
		DisplayName: "Sam Groomer",
		Role:        models.RoleStaff,
	}

	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	err := user.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	parsedUUID, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Email: "alex@happypaws.test"}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestBusinessBeforeCreate_GeneratesUUID(t *testing.T) {
	business := &models.Business{
		Name:     "Happy Paws Grooming",
		Category: "grooming",
		Services: pq.StringArray{"Full Groom", "Nail Trim"},
	}

	err := business.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(business.ID)
	assert.NoError(t, parseErr)
}

func TestAppointmentSummary_CarriesDisplayContext(t *testing.T) {
	scheduled := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	appointment := &models.Appointment{
		ID:          "appt_1",
		BusinessID:  "biz_1",
		StaffID:     "staff_1",
		ClientID:    "client_1",
		PetName:     "Biscuit",
		Service:     "Full Groom",
		ScheduledAt: scheduled,
		Status:      models.AppointmentScheduled,
	}

	summary := appointment.Summary()

	assert.Equal(t, "appt_1", summary.ID)
	assert.Equal(t, "Full Groom", summary.Service)
	assert.Equal(t, "Biscuit", summary.PetName)
	assert.Equal(t, scheduled, summary.ScheduledAt)
	assert.Equal(t, models.AppointmentScheduled, summary.Status)
}

// A fresh room's snapshot carries an explicit empty message list, never an
// omitted key.
func TestEvent_SnapshotMarshalsEmptyMessageList(t *testing.T) {
	ev := models.Event{
		Event:    models.EventChatStarted,
		RoomID:   "room_1",
		Messages: []models.Message{},
	}

	data, err := json.Marshal(ev)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"messages":[]`)
}

func TestUserRef_FromUser(t *testing.T) {
	user := &models.User{ID: "user_1", DisplayName: "Sam Groomer", Role: models.RoleStaff}
	ref := user.Ref()
	assert.Equal(t, models.UserRef{ID: "user_1", Name: "Sam Groomer", Role: models.RoleStaff}, ref)
}
