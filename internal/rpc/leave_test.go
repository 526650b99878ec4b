package rpc

import (
	"context"
	"testing"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLeave_TransportCloseAlwaysEvicts(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	// Even with a cached room, no membership lookup happens without a request.
	f.store.GetOrCreate(testCID).Bind("bob", "R1", false)
	f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(nil).Times(1)

	path := f.ctl.LeaveRoomAfterConnClosed(context.Background(), testCID)
	req.Equal(AdminEvict, path)
}

func TestLeave_TransportCloseSwallowsEvictError(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(core.ErrUserNotFound).Times(1)

	path, err := f.ctl.Leave(context.Background(), nil, core.ParticipantRequest{ConnectionID: testCID})
	req.NoError(err)
	req.Equal(AdminEvict, path)
}

func TestLeave_NoCachedRoomEvicts(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(core.ErrUserNotFound).Times(1)

	res, err := f.ctl.LeaveRoom(context.Background(), f.tx, nil)
	req.NoError(err)
	req.NotNil(res)
}

func TestLeave_StaleCacheEvictsAndIsIdempotent(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.tx.Session().Bind("bob", "R1", false)

	others := []domain.UserParticipant{{ID: "conn-9", Name: "alice"}}
	f.backend.EXPECT().Participants(gomock.Any(), domain.RoomID("R1")).Return(others, nil).Times(2)
	gomock.InOrder(
		f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(nil),
		f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(core.ErrUserNotFound),
	)
	f.backend.EXPECT().LeaveRoom(gomock.Any(), gomock.Any()).Times(0)

	path, err := f.ctl.Leave(context.Background(), f.tx, f.tx.Request)
	req.NoError(err)
	req.Equal(AdminEvict, path)

	path, err = f.ctl.Leave(context.Background(), f.tx, f.tx.Request)
	req.NoError(err)
	req.Equal(AdminEvict, path)
}

func TestLeave_RoomGoneEvicts(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.tx.Session().Bind("bob", "R1", false)
	f.backend.EXPECT().Participants(gomock.Any(), domain.RoomID("R1")).Return(nil, core.ErrRoomNotFound)
	f.backend.EXPECT().EvictParticipant(gomock.Any(), testCID).Return(nil)

	path, err := f.ctl.Leave(context.Background(), f.tx, f.tx.Request)
	req.NoError(err)
	req.Equal(AdminEvict, path)
}

func TestLeave_MemberLeavesNormally(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.tx.Session().Bind("bob", "R1", false)

	members := []domain.UserParticipant{
		{ID: "conn-9", Name: "alice"},
		{ID: domain.ParticipantID(testCID), Name: "bob"},
	}
	f.backend.EXPECT().Participants(gomock.Any(), domain.RoomID("R1")).Return(members, nil)
	f.backend.EXPECT().LeaveRoom(gomock.Any(), f.tx.Request).Return(nil).Times(1)
	f.backend.EXPECT().EvictParticipant(gomock.Any(), gomock.Any()).Times(0)

	path, err := f.ctl.Leave(context.Background(), f.tx, f.tx.Request)
	req.NoError(err)
	req.Equal(NormalLeave, path)
}

func TestLeave_NormalLeaveErrorPropagates(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.tx.Session().Bind("bob", "R1", false)

	f.backend.EXPECT().Participants(gomock.Any(), domain.RoomID("R1")).
		Return([]domain.UserParticipant{{ID: domain.ParticipantID(testCID)}}, nil)
	f.backend.EXPECT().LeaveRoom(gomock.Any(), f.tx.Request).Return(core.ErrRoomNotFound)

	_, err := f.ctl.LeaveRoom(context.Background(), f.tx, nil)
	req.ErrorIs(err, core.ErrRoomNotFound)
}
