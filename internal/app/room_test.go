package app

import (
	"testing"

	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestRoom_Membership(t *testing.T) {
	req := require.New(t)
	room := NewRoom("r1")

	req.NoError(room.AddMember(NewMember("c1", "alice", `{"a":1}`, domain.RolePublisher, false)))
	req.ErrorIs(room.AddMember(NewMember("c1", "other", "", domain.RolePublisher, false)), ErrMemberExists)
	req.ErrorIs(room.AddMember(NewMember("c2", "alice", "", domain.RolePublisher, false)), ErrMemberExists)
	req.NoError(room.AddMember(NewMember("c2", "bob", "", domain.RoleSubscriber, false)))
	req.Equal(2, room.MemberCount())

	m, ok := room.MemberByName("bob")
	req.True(ok)
	req.EqualValues("c2", m.CID)

	req.ElementsMatch([]domain.UserParticipant{
		{ID: "c1", Name: "alice", Metadata: `{"a":1}`},
		{ID: "c2", Name: "bob"},
	}, room.Participants())

	removed, ok := room.RemoveMember("c1")
	req.True(ok)
	req.Equal("alice", removed.Name)
	_, ok = room.MemberByName("alice")
	req.False(ok)
	_, ok = room.RemoveMember("c1")
	req.False(ok)
}

func TestRoomManager_Lifecycle(t *testing.T) {
	req := require.New(t)
	rm := NewRoomManager()

	a := rm.GetOrCreate("b-room")
	req.Same(a, rm.GetOrCreate("b-room"))
	rm.GetOrCreate("a-room")
	req.NoError(a.AddMember(NewMember("c1", "alice", "", domain.RolePublisher, false)))

	req.Equal([]domain.RoomInfo{{ID: "a-room"}, {ID: "b-room", Participants: 1}}, rm.List())

	req.False(rm.CloseIfEmpty("b-room"))
	req.True(rm.CloseIfEmpty("a-room"))
	_, ok := rm.Get("a-room")
	req.False(ok)

	rm.StopRoom("b-room")
	req.Empty(rm.List())
}
