package storage

import (
	"context"
	"errors"
	"time"

	"pawlink/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence surface consumed by the chat coordinator and the
// REST handlers. Rooms and messages are never stored here: chat sessions are
// ephemeral and live only in the coordinator's memory.
type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(userID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	IsUserSuspended(userID string) (bool, error)

	SaveBusiness(business *models.Business) error
	SaveAppointment(appointment *models.Appointment) error

	// CheckEligibility reports whether caller and target share an appointment.
	// When appointmentID is non-empty the check is scoped to that appointment;
	// otherwise the latest shared appointment is used for display context.
	CheckEligibility(callerID, targetID, appointmentID string) (*models.AppointmentSummary, bool, error)
	ListChatPartners(callerID string) ([]models.ChatPartner, error)

	SetUserOnline(userID string) error
	SetUserOffline(userID string) error
	RefreshUserOnline(userIDs []string) error
	IsUserOnline(userID string) (bool, error)
}

// Service implements Storage over PostgreSQL (users, businesses, appointments)
// and Redis (volatile online flags).
type Service struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Ctx         context.Context
	PresenceTTL time.Duration
}

func NewStorageService(db *gorm.DB, rdb *redis.Client, presenceTTL time.Duration) *Service {
	return &Service{
		DB:          db,
		Redis:       rdb,
		Ctx:         context.Background(),
		PresenceTTL: presenceTTL,
	}
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

func (s *Service) GetUserByID(userID string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// IsUserSuspended checks the suspension flag, treating an elapsed
// SuspendedUntil as no longer suspended.
func (s *Service) IsUserSuspended(userID string) (bool, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil || !user.Suspended {
		return false, nil
	}
	if user.SuspendedUntil > 0 && user.SuspendedUntil < time.Now().Unix() {
		return false, nil
	}
	return true, nil
}

func (s *Service) SaveBusiness(business *models.Business) error {
	return s.DB.Save(business).Error
}

func (s *Service) SaveAppointment(appointment *models.Appointment) error {
	return s.DB.Save(appointment).Error
}
