package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/storage"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil, config.PresenceTTL) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "suspend":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin suspend <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := os.Args[2]
		var duration int
		if len(os.Args) > 3 {
			var err error
			duration, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := suspendUser(storageSvc, userID, duration); err != nil {
			log.Fatalf("Error suspending user: %v", err)
		}
		fmt.Printf("User %s has been suspended.\n", userID)
	case "unsuspend":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unsuspend <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := unsuspendUser(storageSvc, userID); err != nil {
			log.Fatalf("Error unsuspending user: %v", err)
		}
		fmt.Printf("User %s has been unsuspended.\n", userID)
	case "seed-demo":
		if err := seedDemo(storageSvc); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
		fmt.Println("Demo business, users and appointment created.")
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func suspendUser(s storage.Storage, userID string, duration int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID)
	}
	user.Suspended = true
	if duration > 0 {
		user.SuspendedUntil = time.Now().Add(time.Duration(duration) * time.Hour).Unix()
	}
	return s.UpdateUser(user)
}

func unsuspendUser(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s not found", userID)
	}
	user.Suspended = false
	user.SuspendedUntil = 0
	return s.UpdateUser(user)
}

// seedDemo creates a demo tenant with one staff member, one client and a
// shared appointment, so a local checkout can exercise the full chat flow.
func seedDemo(s storage.Storage) error {
	business := &models.Business{
		Name:     "Happy Paws Grooming",
		Category: "grooming",
		Services: []string{"Full Groom", "Nail Trim", "Bath & Brush"},
	}
	if err := s.SaveBusiness(business); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := &models.User{
		Email:        "staff@happypaws.test",
		PasswordHash: string(hash),
		DisplayName:  "Sam Groomer",
		Role:         models.RoleStaff,
		BusinessID:   business.ID,
	}
	client := &models.User{
		Email:        "client@happypaws.test",
		PasswordHash: string(hash),
		DisplayName:  "Alex Carter",
		Role:         models.RoleClient,
	}
	if err := s.SaveUser(staff); err != nil {
		return err
	}
	if err := s.SaveUser(client); err != nil {
		return err
	}

	appointment := &models.Appointment{
		BusinessID:  business.ID,
		StaffID:     staff.ID,
		ClientID:    client.ID,
		PetName:     "Biscuit",
		Service:     "Full Groom",
		ScheduledAt: time.Now().Add(48 * time.Hour),
		Status:      models.AppointmentScheduled,
	}
	return s.SaveAppointment(appointment)
}
