package storage

import (
	"errors"
	"log"
	"time"

	"pawlink/backend/internal/models"

	"gorm.io/gorm"
)

// CheckEligibility answers "may caller chat with target". The pair is
// eligible when at least one appointment links them (in either staff/client
// direction). The returned summary is attached to the room for display.
func (s *Service) CheckEligibility(callerID, targetID, appointmentID string) (*models.AppointmentSummary, bool, error) {
	query := s.DB.
		Where("(staff_id = ? AND client_id = ?) OR (staff_id = ? AND client_id = ?)",
			callerID, targetID, targetID, callerID).
		Order("scheduled_at DESC")

	if appointmentID != "" {
		query = query.Where("id = ?", appointmentID)
	}

	var appointment models.Appointment
	err := query.First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		log.Printf("ERROR: eligibility lookup for (%s, %s) failed: %v", callerID, targetID, err)
		return nil, false, err
	}

	return appointment.Summary(), true, nil
}

// ListChatPartners returns every user the caller shares an appointment with,
// annotated with the most recent shared appointment and a live online flag.
func (s *Service) ListChatPartners(callerID string) ([]models.ChatPartner, error) {
	// DISTINCT ON keeps only the newest appointment per partner.
	rawSQL := `
        SELECT DISTINCT ON (partner_id)
            partner_id, u.display_name, u.role,
            a.id AS appointment_id, a.status AS appointment_status,
            a.scheduled_at AS last_appointment
        FROM (
            SELECT id, status, scheduled_at,
                CASE WHEN staff_id = @caller THEN client_id ELSE staff_id END AS partner_id
            FROM appointments
            WHERE staff_id = @caller OR client_id = @caller
        ) AS a
        JOIN users u ON u.id = a.partner_id
        ORDER BY partner_id, a.scheduled_at DESC
    `

	type partnerRow struct {
		PartnerID         string
		DisplayName       string
		Role              string
		AppointmentID     string
		AppointmentStatus string
		LastAppointment   time.Time
	}

	var rows []partnerRow
	if err := s.DB.Raw(rawSQL, map[string]interface{}{"caller": callerID}).Scan(&rows).Error; err != nil {
		log.Printf("ERROR: partner list for %s failed: %v", callerID, err)
		return nil, err
	}

	partners := make([]models.ChatPartner, 0, len(rows))
	for _, row := range rows {
		online, err := s.IsUserOnline(row.PartnerID)
		if err != nil {
			// Online flag is cosmetic; degrade to offline rather than fail the list.
			online = false
		}
		partners = append(partners, models.ChatPartner{
			User:              models.UserRef{ID: row.PartnerID, Name: row.DisplayName, Role: row.Role},
			AppointmentID:     row.AppointmentID,
			AppointmentStatus: row.AppointmentStatus,
			LastAppointment:   row.LastAppointment,
			Online:            online,
		})
	}
	return partners, nil
}
