package chathub

import "pawlink/backend/internal/models"

// Client is the interface for one live connection to the coordinator. It
// abstracts the underlying transport so the coordinator can route events
// without knowing how they reach the user.
type Client interface {
	// GetUserID returns the id of the authenticated user behind the connection.
	GetUserID() string
	// GetUser returns the reference (id, name, role) carried in events the
	// user originates.
	GetUser() models.UserRef

	// GetSendChannel returns the channel the coordinator pushes events into.
	GetSendChannel() chan<- models.Event

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the outgoing side of the connection.
	Close()
}

// Command pairs a decoded client frame with the connection that issued it.
type Command struct {
	Client Client
	models.Command
}
