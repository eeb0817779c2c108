package models

import "time"

// Client->server actions.
const (
	ActionStartChat   = "start_chat"
	ActionAcceptChat  = "accept_chat"
	ActionSendMessage = "send_temp_message"
	ActionLeaveChat   = "leave_chat"
	ActionTypingStart = "typing_start"
	ActionTypingStop  = "typing_stop"
)

// Server->client event names.
const (
	EventChatInvitation   = "chat_invitation"
	EventChatStarted      = "chat_started"
	EventChatAccepted     = "chat_accepted"
	EventNewMessage       = "new_temp_message"
	EventUserLeftChat     = "user_left_chat"
	EventUserDisconnected = "user_disconnected"
	EventTypingStart      = "typing_start"
	EventTypingStop       = "typing_stop"
	EventChatError        = "chat_error"
	EventMessageError     = "message_error"
)

// Machine-readable chat_error codes. Only errors a client must act on carry
// one; plain rejections are text only.
const (
	ErrInvitationWithdrawn = "invitation_withdrawn"
	ErrInvitationExpired   = "invitation_expired"
)

// MessageTypeText is the only message kind in scope; the field is kept so
// clients can tag future non-text kinds without a protocol change.
const MessageTypeText = "text"

// UserRef identifies a participant in realtime payloads.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// Participant join states within a room.
const (
	StateInvited = "invited"
	StateJoined  = "joined"
	StateLeft    = "left"
)

// Participant is a room member together with its join state.
type Participant struct {
	UserRef
	State string `json:"state"`
}

// Message is one chat message as relayed to every room member. ID and SentAt
// are assigned by the server; messages are immutable once appended.
type Message struct {
	ID     string    `json:"id"`
	RoomID string    `json:"room_id"`
	Sender UserRef   `json:"sender"`
	Body   string    `json:"message"`
	Type   string    `json:"type"`
	SentAt time.Time `json:"sent_at"`
}

// Command is the flat client->server frame. Fields beyond Action are
// interpreted per action; unused ones stay empty.
type Command struct {
	Action        string `json:"action"`
	TargetUserID  string `json:"target_user_id,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
	RoomID        string `json:"room_id,omitempty"`
	Message       string `json:"message,omitempty"`
	Type          string `json:"type,omitempty"`
}

// Event is the flat server->client frame. Fields beyond Event are populated
// per event name; empty ones are omitted from the wire.
type Event struct {
	Event        string              `json:"event"`
	RoomID       string              `json:"room_id,omitempty"`
	From         *UserRef            `json:"from,omitempty"`
	By           *UserRef            `json:"by,omitempty"`
	User         *UserRef            `json:"user,omitempty"`
	Participants []Participant       `json:"participants,omitempty"`
	Appointment  *AppointmentSummary `json:"appointment_details,omitempty"`
	// Messages has no omitempty: the chat_started snapshot of a fresh room
	// carries an explicit empty list.
	Messages []Message `json:"messages"`
	Message  *Message  `json:"new_message,omitempty"`
	Error    string    `json:"message,omitempty"`
	Code     string    `json:"code,omitempty"`
}
