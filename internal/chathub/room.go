package chathub

import (
	"sort"
	"time"

	"pawlink/backend/internal/models"
)

// Room lifecycle states.
const (
	RoomPending = "pending"
	RoomActive  = "active"
	RoomClosed  = "closed"
)

// Room is the in-memory record of one ephemeral two-party chat. It exists
// only for pairs that passed an eligibility check and is discarded when both
// participants are gone. Nothing about it survives a process restart.
type Room struct {
	ID        string
	State     string
	InviterID string
	InviteeID string
	// Participants holds exactly the two parties, keyed by user id.
	Participants map[string]*models.Participant
	// Appointment is the display context attached at creation, immutable.
	Appointment *models.AppointmentSummary
	// Messages is the append-only server-ordered log.
	Messages  []models.Message
	CreatedAt time.Time
}

func newRoom(id string, inviter, invitee models.UserRef, appointment *models.AppointmentSummary) *Room {
	return &Room{
		ID:        id,
		State:     RoomPending,
		InviterID: inviter.ID,
		InviteeID: invitee.ID,
		Participants: map[string]*models.Participant{
			inviter.ID: {UserRef: inviter, State: models.StateJoined},
			invitee.ID: {UserRef: invitee, State: models.StateInvited},
		},
		Appointment: appointment,
		Messages:    []models.Message{},
		CreatedAt:   time.Now(),
	}
}

// Member returns the participant record for userID, or nil.
func (r *Room) Member(userID string) *models.Participant {
	return r.Participants[userID]
}

// Other returns the participant that is not userID, or nil.
func (r *Room) Other(userID string) *models.Participant {
	for id, p := range r.Participants {
		if id != userID {
			return p
		}
	}
	return nil
}

// ParticipantList returns both participants with the inviter first.
func (r *Room) ParticipantList() []models.Participant {
	list := make([]models.Participant, 0, len(r.Participants))
	for _, p := range r.Participants {
		list = append(list, *p)
	}
	sort.Slice(list, func(i, j int) bool {
		return (list[i].ID == r.InviterID) && (list[j].ID != r.InviterID)
	})
	return list
}

// AllLeft reports whether every participant has left the room.
func (r *Room) AllLeft() bool {
	for _, p := range r.Participants {
		if p.State != models.StateLeft {
			return false
		}
	}
	return true
}

// pairKey builds the unordered-pair index key for two user ids.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
