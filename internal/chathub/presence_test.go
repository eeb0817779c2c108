package chathub_test

import (
	"testing"

	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestPresenceDirectory_AddGetRemove(t *testing.T) {
	dir := chathub.NewPresenceDirectory()

	clientA := newMockClient("user_A", "Ann", models.RoleStaff)
	assert.Nil(t, dir.Add(clientA))
	assert.Equal(t, chathub.Client(clientA), dir.Get("user_A"))
	assert.Equal(t, 1, dir.Count())

	replacement := newMockClient("user_A", "Ann", models.RoleStaff)
	old := dir.Add(replacement)
	assert.Equal(t, chathub.Client(clientA), old)
	assert.Equal(t, chathub.Client(replacement), dir.Get("user_A"))
	assert.Equal(t, 1, dir.Count())

	dir.Remove("user_A")
	assert.Nil(t, dir.Get("user_A"))
	assert.Empty(t, dir.UserIDs())
}

func TestPresenceDirectory_UserIDs(t *testing.T) {
	dir := chathub.NewPresenceDirectory()
	dir.Add(newMockClient("user_A", "Ann", models.RoleStaff))
	dir.Add(newMockClient("user_B", "Bob", models.RoleClient))

	ids := dir.UserIDs()
	assert.ElementsMatch(t, []string{"user_A", "user_B"}, ids)
}
