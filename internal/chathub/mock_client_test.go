package chathub_test

import (
	"testing"
	"time"

	"pawlink/backend/internal/models"
)

// MockClient is a transport-free client; events pushed by the coordinator
// land in RecvChannel.
type MockClient struct {
	user        models.UserRef
	RecvChannel chan models.Event
}

func newMockClient(userID, name, role string) *MockClient {
	return &MockClient{
		user:        models.UserRef{ID: userID, Name: name, Role: role},
		RecvChannel: make(chan models.Event, 32),
	}
}

func (c *MockClient) GetUserID() string       { return c.user.ID }
func (c *MockClient) GetUser() models.UserRef { return c.user }

func (c *MockClient) GetSendChannel() chan<- models.Event { return c.RecvChannel }

func (c *MockClient) Run() {
	// Not needed for testing
}

// Close closes RecvChannel the way the websocket client closes Send, so a
// send to a shut-down connection fails loudly instead of passing silently.
func (c *MockClient) Close() {
	close(c.RecvChannel)
}

// recvEvent waits for the next event delivered to the client.
func recvEvent(t *testing.T, c *MockClient) models.Event {
	t.Helper()
	select {
	case ev := <-c.RecvChannel:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("client %s timed out waiting for an event", c.user.ID)
		return models.Event{}
	}
}

// assertNoEvent verifies nothing is delivered to the client for a short window.
func assertNoEvent(t *testing.T, c *MockClient) {
	t.Helper()
	select {
	case ev := <-c.RecvChannel:
		t.Fatalf("client %s unexpectedly received %q", c.user.ID, ev.Event)
	case <-time.After(100 * time.Millisecond):
	}
}
