package chathub

import (
	"log"
	"time"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/storage"
)

// CoordinatorService owns every active chat room, invitation and connection.
// All room mutations are serialized through the Run loop: commands, connect
// and disconnect arrive over channels and are applied one at a time, so no
// two operations on the same room ever execute concurrently.
type CoordinatorService struct {
	Presence *PresenceDirectory

	RegisterCh   chan Client
	UnregisterCh chan Client
	CommandCh    chan Command

	Storage storage.Storage

	// InvitationTTL bounds how long a pending invitation may wait for an
	// accept before the janitor withdraws it.
	InvitationTTL   time.Duration
	JanitorInterval time.Duration

	limiter *SenderLimiter

	// rooms, pairs and members are touched only from the Run goroutine.
	rooms map[string]*Room
	// pairs maps an unordered user pair to its single pending/active room.
	pairs map[string]string
	// members maps a user id to every room they belong to.
	members map[string]map[string]*Room

	stopCh chan struct{}
}

func NewCoordinatorService(s storage.Storage) *CoordinatorService {
	return &CoordinatorService{
		Presence:        NewPresenceDirectory(),
		RegisterCh:      make(chan Client),
		UnregisterCh:    make(chan Client),
		CommandCh:       make(chan Command),
		Storage:         s,
		InvitationTTL:   config.InvitationTTL,
		JanitorInterval: config.JanitorInterval,
		limiter:         NewSenderLimiter(config.MessagesPerMinute, config.MessageBurst),
		rooms:           make(map[string]*Room),
		pairs:           make(map[string]string),
		members:         make(map[string]map[string]*Room),
		stopCh:          make(chan struct{}),
	}
}

// Run is the coordinator's dispatch loop. It must run in exactly one goroutine.
func (m *CoordinatorService) Run() {
	janitor := time.NewTicker(m.JanitorInterval)
	defer janitor.Stop()

	log.Println("Chat coordinator started.")

	for {
		select {
		case client := <-m.RegisterCh:
			m.handleRegister(client)

		case client := <-m.UnregisterCh:
			m.handleUnregister(client)

		case cmd := <-m.CommandCh:
			m.dispatch(cmd)

		case <-janitor.C:
			m.expirePendingInvitations(time.Now())
			m.refreshPresenceFlags()

		case <-m.stopCh:
			return
		}
	}
}

// Stop terminates the Run loop and the limiter's cleanup goroutine.
func (m *CoordinatorService) Stop() {
	close(m.stopCh)
	m.limiter.Stop()
}

func (m *CoordinatorService) handleRegister(client Client) {
	if old := m.Presence.Add(client); old != nil && old != client {
		// A fresh connection supersedes the previous one for this user.
		// Rooms stay intact; events simply route to the new connection.
		old.Close()
	}
	if err := m.Storage.SetUserOnline(client.GetUserID()); err != nil {
		log.Printf("ERROR: failed to set online flag for %s: %v", client.GetUserID(), err)
	}
	log.Printf("User %s connected", client.GetUserID())
}

func (m *CoordinatorService) handleUnregister(client Client) {
	userID := client.GetUserID()
	if m.Presence.Get(userID) != client {
		// Stale unregister from a connection that was already replaced.
		return
	}
	m.Presence.Remove(userID)
	if err := m.Storage.SetUserOffline(userID); err != nil {
		log.Printf("ERROR: failed to clear online flag for %s: %v", userID, err)
	}
	m.cleanupDisconnect(userID)
	client.Close()
	log.Printf("User %s disconnected", userID)
}

func (m *CoordinatorService) dispatch(cmd Command) {
	// A replaced or unregistered connection may still deliver frames its
	// read pump accepted before the socket died. Its send channel is
	// already closed, so nothing below may ever answer it.
	if m.Presence.Get(cmd.Client.GetUserID()) != cmd.Client {
		return
	}

	switch cmd.Action {
	case models.ActionStartChat:
		m.handleStartChat(cmd)
	case models.ActionAcceptChat:
		m.handleAcceptChat(cmd)
	case models.ActionSendMessage:
		m.handleSendMessage(cmd)
	case models.ActionLeaveChat:
		m.handleLeaveChat(cmd)
	case models.ActionTypingStart:
		m.relayTyping(cmd, models.EventTypingStart)
	case models.ActionTypingStop:
		m.relayTyping(cmd, models.EventTypingStop)
	default:
		m.sendError(cmd.Client, models.EventChatError, "", "unknown action")
	}
}

// sendTo delivers an event to the live connection of userID, reporting
// whether the user was reachable. A full send buffer drops the event rather
// than blocking the dispatch loop.
func (m *CoordinatorService) sendTo(userID string, ev models.Event) bool {
	client := m.Presence.Get(userID)
	if client == nil {
		return false
	}
	select {
	case client.GetSendChannel() <- ev:
		return true
	default:
		log.Printf("WARNING: dropping %s event for slow client %s", ev.Event, userID)
		return false
	}
}

// sendError emits a chat_error/message_error to the issuing connection only.
func (m *CoordinatorService) sendError(client Client, event, roomID, message string) {
	select {
	case client.GetSendChannel() <- models.Event{Event: event, RoomID: roomID, Error: message}:
	default:
		log.Printf("WARNING: dropping %s for slow client %s", event, client.GetUserID())
	}
}

func (m *CoordinatorService) refreshPresenceFlags() {
	ids := m.Presence.UserIDs()
	if len(ids) == 0 {
		return
	}
	if err := m.Storage.RefreshUserOnline(ids); err != nil {
		log.Printf("ERROR: failed to refresh online flags: %v", err)
	}
}
