package app

import (
	"testing"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BindAndForget(t *testing.T) {
	req := require.New(t)
	r := NewRegistry()

	r.MarkInsecure("c1")
	r.Bind("c1", Binding{RoomID: "r1", Name: "alice", Token: "tok"})
	r.Bind("c2", Binding{RoomID: "r1", Name: "bob"})
	r.Bind("c3", Binding{RoomID: "r2", Name: "carol"})

	room, ok := r.RoomOf("c1")
	req.True(ok)
	req.EqualValues("r1", room)
	req.ElementsMatch([]core.ConnectionID{"c1", "c2"}, r.MembersOfRoom("r1"))

	b, ok := r.Unbind("c1")
	req.True(ok)
	req.Equal("alice", b.Name)
	req.True(r.IsInsecure("c1"), "unbind keeps the trusted mark")
	_, ok = r.RoomOf("c1")
	req.False(ok)

	r.Forget("c1")
	req.False(r.IsInsecure("c1"))
}
