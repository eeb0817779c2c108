package chathub_test

import (
	"testing"
	"time"

	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// newTestCoordinator builds a coordinator with permissive presence-flag
// expectations and starts its dispatch loop.
func newTestCoordinator(t *testing.T, storageMock *MockStorage) *chathub.CoordinatorService {
	t.Helper()
	storageMock.On("SetUserOnline", mock.AnythingOfType("string")).Return(nil).Maybe()
	storageMock.On("SetUserOffline", mock.AnythingOfType("string")).Return(nil).Maybe()
	storageMock.On("RefreshUserOnline", mock.Anything).Return(nil).Maybe()

	hub := chathub.NewCoordinatorService(storageMock)
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func register(hub *chathub.CoordinatorService, clients ...*MockClient) {
	for _, c := range clients {
		hub.RegisterCh <- c
	}
	time.Sleep(50 * time.Millisecond)
}

func TestCoordinator_RegisterUnregister(t *testing.T) {
	storageMock := new(MockStorage)
	hub := newTestCoordinator(t, storageMock)

	clientA := newMockClient("user_A", "Ann", models.RoleStaff)
	register(hub, clientA)
	assert.NotNil(t, hub.Presence.Get("user_A"))
	assert.Equal(t, 1, hub.Presence.Count())

	hub.UnregisterCh <- clientA
	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, hub.Presence.Get("user_A"))

	storageMock.AssertCalled(t, "SetUserOnline", "user_A")
	storageMock.AssertCalled(t, "SetUserOffline", "user_A")
}

func TestCoordinator_ReplacedConnectionKeepsUserRegistered(t *testing.T) {
	storageMock := new(MockStorage)
	hub := newTestCoordinator(t, storageMock)

	first := newMockClient("user_A", "Ann", models.RoleStaff)
	second := newMockClient("user_A", "Ann", models.RoleStaff)
	register(hub, first, second)

	// The stale unregister from the replaced connection must not evict the
	// fresh one.
	hub.UnregisterCh <- first
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, second, hub.Presence.Get("user_A").(*MockClient))
}

func TestCoordinator_CommandFromReplacedConnectionIsDropped(t *testing.T) {
	storageMock := new(MockStorage)
	hub := newTestCoordinator(t, storageMock)

	first := newMockClient("user_A", "Ann", models.RoleStaff)
	second := newMockClient("user_A", "Ann", models.RoleStaff)
	register(hub, first, second)

	// A frame the replaced connection accepted before its socket died must
	// not be answered: its receive channel is already closed.
	hub.CommandCh <- chathub.Command{Client: first, Command: models.Command{Action: "frobnicate"}}

	// The dispatch loop survived and still serves the fresh connection.
	hub.CommandCh <- chathub.Command{Client: second, Command: models.Command{Action: "frobnicate"}}
	ev := recvEvent(t, second)
	assert.Equal(t, models.EventChatError, ev.Event)
	assert.Contains(t, ev.Error, "unknown action")
}

func TestCoordinator_UnknownActionReturnsError(t *testing.T) {
	storageMock := new(MockStorage)
	hub := newTestCoordinator(t, storageMock)

	clientA := newMockClient("user_A", "Ann", models.RoleStaff)
	register(hub, clientA)

	hub.CommandCh <- chathub.Command{Client: clientA, Command: models.Command{Action: "frobnicate"}}

	ev := recvEvent(t, clientA)
	assert.Equal(t, models.EventChatError, ev.Event)
	assert.Contains(t, ev.Error, "unknown action")
}
