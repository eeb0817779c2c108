// Package chatclient is a Go client for the PawLink chat coordinator. It
// keeps a local mirror of invitations, rooms and message lists, updated only
// from server events: the server's relay order is the message order, the
// client never reorders.
package chatclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"pawlink/backend/internal/models"

	"github.com/gorilla/websocket"
)

// Invitation is a pending incoming chat invitation.
type Invitation struct {
	RoomID      string
	From        models.UserRef
	Appointment *models.AppointmentSummary
	ReceivedAt  time.Time
}

// Room is the client-side mirror of one chat room.
type Room struct {
	ID           string
	Participants []models.Participant
	Appointment  *models.AppointmentSummary
	Messages     []models.Message
	Closed       bool
}

// Client is one authenticated connection to the coordinator.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	mu          sync.RWMutex
	connected   bool
	invitations map[string]Invitation
	rooms       map[string]*Room

	onEvent func(models.Event)
	done    chan struct{}
}

// Dial connects to the coordinator's websocket endpoint with a bearer token.
// onEvent, when non-nil, is invoked for every server event after the local
// mirror has been updated.
func Dial(url, token string, onEvent func(models.Event)) (*Client, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return nil, err
	}

	c := &Client{
		conn:        conn,
		connected:   true,
		invitations: make(map[string]Invitation),
		rooms:       make(map[string]*Room),
		onEvent:     onEvent,
		done:        make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Close tears down the connection. Local state is disposable; a reconnect
// starts from scratch.
func (c *Client) Close() error {
	c.writeMu.Lock()
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	c.writeMu.Unlock()
	return c.conn.Close()
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// --- Intents ---

func (c *Client) StartChat(targetUserID, appointmentID string) error {
	return c.send(models.Command{
		Action:        models.ActionStartChat,
		TargetUserID:  targetUserID,
		AppointmentID: appointmentID,
	})
}

func (c *Client) AcceptChat(roomID string) error {
	return c.send(models.Command{Action: models.ActionAcceptChat, RoomID: roomID})
}

func (c *Client) SendMessage(roomID, body string) error {
	return c.send(models.Command{
		Action:  models.ActionSendMessage,
		RoomID:  roomID,
		Message: body,
		Type:    models.MessageTypeText,
	})
}

// LeaveChat exits a room. The server notifies the peer only, so the local
// mirror is closed here.
func (c *Client) LeaveChat(roomID string) error {
	if err := c.send(models.Command{Action: models.ActionLeaveChat, RoomID: roomID}); err != nil {
		return err
	}
	c.mu.Lock()
	if room := c.rooms[roomID]; room != nil {
		room.Closed = true
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) TypingStart(roomID string) error {
	return c.send(models.Command{Action: models.ActionTypingStart, RoomID: roomID})
}

func (c *Client) TypingStop(roomID string) error {
	return c.send(models.Command{Action: models.ActionTypingStop, RoomID: roomID})
}

func (c *Client) send(cmd models.Command) error {
	if !c.Connected() {
		return errors.New("not connected")
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(cmd)
}

// --- Mirror accessors ---

// Invitations returns the pending invitations, oldest first.
func (c *Client) Invitations() []Invitation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Invitation, 0, len(c.invitations))
	for _, inv := range c.invitations {
		list = append(list, inv)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ReceivedAt.Before(list[j].ReceivedAt) })
	return list
}

// Room returns a snapshot of one room's mirror.
func (c *Client) Room(roomID string) (Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	room, ok := c.rooms[roomID]
	if !ok {
		return Room{}, false
	}
	return snapshotRoom(room), true
}

// Rooms returns snapshots of every known room.
func (c *Client) Rooms() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		list = append(list, snapshotRoom(room))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func snapshotRoom(room *Room) Room {
	out := Room{
		ID:          room.ID,
		Appointment: room.Appointment,
		Closed:      room.Closed,
	}
	out.Participants = append(out.Participants, room.Participants...)
	out.Messages = append(out.Messages, room.Messages...)
	return out
}

// --- Event stream ---

func (c *Client) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
		close(c.done)
		c.conn.Close()
	}()

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		// The server may batch several events into one frame; decode the
		// frame as a JSON stream.
		dec := json.NewDecoder(bytes.NewReader(frame))
		for {
			var ev models.Event
			if err := dec.Decode(&ev); err != nil {
				// io.EOF ends the frame; anything else means a malformed
				// frame whose remainder is skipped.
				break
			}
			c.apply(ev)
			if c.onEvent != nil {
				c.onEvent(ev)
			}
		}
	}
}

func (c *Client) apply(ev models.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Event {
	case models.EventChatInvitation:
		inv := Invitation{RoomID: ev.RoomID, Appointment: ev.Appointment, ReceivedAt: time.Now()}
		if ev.From != nil {
			inv.From = *ev.From
		}
		c.invitations[ev.RoomID] = inv

	case models.EventChatStarted:
		delete(c.invitations, ev.RoomID)
		room := &Room{
			ID:           ev.RoomID,
			Participants: ev.Participants,
			Appointment:  ev.Appointment,
		}
		room.Messages = append(room.Messages, ev.Messages...)
		c.rooms[ev.RoomID] = room

	case models.EventNewMessage:
		if room := c.rooms[ev.RoomID]; room != nil && ev.Message != nil {
			room.Messages = append(room.Messages, *ev.Message)
		}

	case models.EventUserLeftChat, models.EventUserDisconnected:
		if room := c.rooms[ev.RoomID]; room != nil {
			room.Closed = true
		}

	case models.EventChatError:
		// Only a withdrawal or expiry invalidates a pending invitation.
		// Other room-scoped errors (such as a duplicate-pair rejection)
		// leave the mirror alone.
		switch ev.Code {
		case models.ErrInvitationWithdrawn, models.ErrInvitationExpired:
			delete(c.invitations, ev.RoomID)
		}
	}
}
