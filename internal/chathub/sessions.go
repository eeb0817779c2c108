package chathub

import (
	"log"
	"strings"
	"time"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"

	"github.com/google/uuid"
)

// handleStartChat validates a start_chat intent and, only after the
// eligibility check succeeds, creates a pending room and delivers the
// invitation to the target. No record is created on any failure path.
func (m *CoordinatorService) handleStartChat(cmd Command) {
	caller := cmd.Client.GetUser()
	targetID := cmd.TargetUserID

	if targetID == "" || targetID == caller.ID {
		m.sendError(cmd.Client, models.EventChatError, "", "invalid target user")
		return
	}

	suspended, err := m.Storage.IsUserSuspended(caller.ID)
	if err != nil {
		m.sendError(cmd.Client, models.EventChatError, "", "could not verify account status")
		return
	}
	if suspended {
		m.sendError(cmd.Client, models.EventChatError, "", "your account is suspended")
		return
	}

	if roomID, ok := m.pairs[pairKey(caller.ID, targetID)]; ok {
		m.sendError(cmd.Client, models.EventChatError, roomID, "a chat with this user is already open")
		return
	}

	// The eligibility check is the only suspension point of this operation
	// and it completes before any state is touched.
	appointment, eligible, err := m.Storage.CheckEligibility(caller.ID, targetID, cmd.AppointmentID)
	if err != nil {
		m.sendError(cmd.Client, models.EventChatError, "", "eligibility check failed")
		return
	}
	if !eligible {
		m.sendError(cmd.Client, models.EventChatError, "", "you are not eligible to chat with this user")
		return
	}

	targetClient := m.Presence.Get(targetID)
	if targetClient == nil {
		m.sendError(cmd.Client, models.EventChatError, "", "target user is not connected")
		return
	}

	target := targetClient.GetUser()
	room := newRoom(uuid.New().String(), caller, target, appointment)
	m.indexRoom(room)

	m.sendTo(targetID, models.Event{
		Event:       models.EventChatInvitation,
		RoomID:      room.ID,
		From:        &caller,
		Appointment: room.Appointment,
	})
	log.Printf("Invitation %s: %s -> %s", room.ID, caller.ID, targetID)
}

// handleAcceptChat promotes a pending room to active. Only the invited party
// of that exact room may accept.
func (m *CoordinatorService) handleAcceptChat(cmd Command) {
	userID := cmd.Client.GetUserID()
	room := m.rooms[cmd.RoomID]
	if room == nil || room.State != RoomPending || room.InviteeID != userID {
		m.sendError(cmd.Client, models.EventChatError, cmd.RoomID, "no pending invitation for this room")
		return
	}

	room.Member(userID).State = models.StateJoined
	room.State = RoomActive

	snapshot := models.Event{
		Event:        models.EventChatStarted,
		RoomID:       room.ID,
		Participants: room.ParticipantList(),
		Appointment:  room.Appointment,
		Messages:     room.Messages,
	}
	m.sendTo(room.InviterID, snapshot)
	m.sendTo(room.InviteeID, snapshot)

	invitee := cmd.Client.GetUser()
	m.sendTo(room.InviterID, models.Event{
		Event:  models.EventChatAccepted,
		RoomID: room.ID,
		By:     &invitee,
	})
	log.Printf("Room %s active: %s and %s", room.ID, room.InviterID, room.InviteeID)
}

// handleSendMessage appends a message to an active room and relays it to all
// current members, the sender included, so every client renders the same
// server-ordered stream.
func (m *CoordinatorService) handleSendMessage(cmd Command) {
	userID := cmd.Client.GetUserID()
	room := m.rooms[cmd.RoomID]
	if room == nil || room.Member(userID) == nil {
		m.sendError(cmd.Client, models.EventMessageError, cmd.RoomID, "you are not a member of this room")
		return
	}
	if room.State != RoomActive {
		m.sendError(cmd.Client, models.EventMessageError, room.ID, "room is not active")
		return
	}

	body := strings.TrimSpace(cmd.Message)
	if body == "" {
		m.sendError(cmd.Client, models.EventMessageError, room.ID, "message body is empty")
		return
	}
	if len(body) > config.MaxMessageLength {
		m.sendError(cmd.Client, models.EventMessageError, room.ID, "message is too long")
		return
	}
	if !m.limiter.Allow(userID) {
		m.sendError(cmd.Client, models.EventMessageError, room.ID, "rate limit exceeded")
		return
	}

	msgType := cmd.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	msg := models.Message{
		ID:     uuid.New().String(),
		RoomID: room.ID,
		Sender: cmd.Client.GetUser(),
		Body:   body,
		Type:   msgType,
		SentAt: time.Now().UTC(),
	}
	room.Messages = append(room.Messages, msg)

	ev := models.Event{Event: models.EventNewMessage, RoomID: room.ID, Message: &msg}
	for _, p := range room.ParticipantList() {
		if p.State == models.StateJoined {
			m.sendTo(p.ID, ev)
		}
	}
}

func (m *CoordinatorService) handleLeaveChat(cmd Command) {
	userID := cmd.Client.GetUserID()
	room := m.rooms[cmd.RoomID]
	if room == nil || room.Member(userID) == nil {
		m.sendError(cmd.Client, models.EventChatError, cmd.RoomID, "you are not a member of this room")
		return
	}
	m.removeParticipant(room, userID, models.EventUserLeftChat)
}

// relayTyping forwards a typing indicator to the other joined member.
// Best-effort: unknown rooms and non-members are dropped silently.
func (m *CoordinatorService) relayTyping(cmd Command, event string) {
	room := m.rooms[cmd.RoomID]
	if room == nil || room.Member(cmd.Client.GetUserID()) == nil {
		return
	}
	from := cmd.Client.GetUser()
	if other := room.Other(from.ID); other != nil && other.State == models.StateJoined {
		m.sendTo(other.ID, models.Event{Event: event, RoomID: room.ID, From: &from})
	}
}

// cleanupDisconnect treats a dropped connection as an implicit leave of every
// room the user belongs to.
func (m *CoordinatorService) cleanupDisconnect(userID string) {
	memberships := m.members[userID]
	if len(memberships) == 0 {
		return
	}
	roomsOf := make([]*Room, 0, len(memberships))
	for _, room := range memberships {
		roomsOf = append(roomsOf, room)
	}
	for _, room := range roomsOf {
		m.removeParticipant(room, userID, models.EventUserDisconnected)
	}
}

// removeParticipant applies a graceful or abrupt exit to a room. The exit
// event distinguishes the two so clients can render them differently; a
// pending invitation abandoned by its inviter is withdrawn with a chat_error
// instead, since the invited party has nothing to "leave" yet.
func (m *CoordinatorService) removeParticipant(room *Room, userID, exitEvent string) {
	leaver := room.Member(userID)
	if leaver == nil || leaver.State == models.StateLeft {
		return
	}
	wasPending := room.State == RoomPending
	leaver.State = models.StateLeft

	if room.State != RoomClosed {
		room.State = RoomClosed
		delete(m.pairs, pairKey(room.InviterID, room.InviteeID))

		if other := room.Other(userID); other != nil && other.State != models.StateLeft {
			if wasPending && userID == room.InviterID {
				m.sendTo(other.ID, models.Event{
					Event:  models.EventChatError,
					RoomID: room.ID,
					Error:  "invitation withdrawn",
					Code:   models.ErrInvitationWithdrawn,
				})
			} else {
				m.sendTo(other.ID, models.Event{
					Event:  exitEvent,
					RoomID: room.ID,
					User:   &leaver.UserRef,
				})
			}
		}
	}

	m.dropMembership(userID, room.ID)

	// A closed pending room can never be accepted; discard it outright. An
	// active room lingers until its last member leaves or disconnects.
	if wasPending {
		if other := room.Other(userID); other != nil {
			m.dropMembership(other.ID, room.ID)
		}
		delete(m.rooms, room.ID)
	} else if room.AllLeft() {
		delete(m.rooms, room.ID)
	}
}

// expirePendingInvitations withdraws invitations older than InvitationTTL.
func (m *CoordinatorService) expirePendingInvitations(now time.Time) {
	for id, room := range m.rooms {
		if room.State != RoomPending || now.Sub(room.CreatedAt) < m.InvitationTTL {
			continue
		}
		expired := models.Event{
			Event:  models.EventChatError,
			RoomID: room.ID,
			Error:  "invitation expired",
			Code:   models.ErrInvitationExpired,
		}
		m.sendTo(room.InviterID, expired)
		m.sendTo(room.InviteeID, expired)

		delete(m.pairs, pairKey(room.InviterID, room.InviteeID))
		m.dropMembership(room.InviterID, id)
		m.dropMembership(room.InviteeID, id)
		delete(m.rooms, id)
		log.Printf("Invitation %s expired", id)
	}
}

func (m *CoordinatorService) indexRoom(room *Room) {
	m.rooms[room.ID] = room
	m.pairs[pairKey(room.InviterID, room.InviteeID)] = room.ID
	for id := range room.Participants {
		if m.members[id] == nil {
			m.members[id] = make(map[string]*Room)
		}
		m.members[id][room.ID] = room
	}
}

func (m *CoordinatorService) dropMembership(userID, roomID string) {
	if rooms := m.members[userID]; rooms != nil {
		delete(rooms, roomID)
		if len(rooms) == 0 {
			delete(m.members, userID)
		}
	}
}
