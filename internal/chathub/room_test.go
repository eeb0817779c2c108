package chathub_test

import (
	"testing"

	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func twoPartyRoom() *chathub.Room {
	return &chathub.Room{
		ID:        "room_1",
		State:     chathub.RoomActive,
		InviterID: "staff_1",
		InviteeID: "client_1",
		Participants: map[string]*models.Participant{
			"staff_1":  {UserRef: models.UserRef{ID: "staff_1", Name: "Sam"}, State: models.StateJoined},
			"client_1": {UserRef: models.UserRef{ID: "client_1", Name: "Alex"}, State: models.StateJoined},
		},
	}
}

func TestRoom_MemberAndOther(t *testing.T) {
	room := twoPartyRoom()

	assert.Equal(t, "staff_1", room.Member("staff_1").ID)
	assert.Nil(t, room.Member("stranger"))

	other := room.Other("staff_1")
	assert.Equal(t, "client_1", other.ID)
}

func TestRoom_ParticipantListInviterFirst(t *testing.T) {
	room := twoPartyRoom()
	list := room.ParticipantList()

	assert.Len(t, list, 2)
	assert.Equal(t, "staff_1", list[0].ID)
	assert.Equal(t, "client_1", list[1].ID)
}

func TestRoom_AllLeft(t *testing.T) {
	room := twoPartyRoom()
	assert.False(t, room.AllLeft())

	room.Participants["staff_1"].State = models.StateLeft
	assert.False(t, room.AllLeft())

	room.Participants["client_1"].State = models.StateLeft
	assert.True(t, room.AllLeft())
}
