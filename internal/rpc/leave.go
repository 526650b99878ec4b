package rpc

import (
	"context"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
)

// LeavePath is the branch a leave event resolved to.
type LeavePath int

const (
	// NormalLeave is the participant-acknowledged departure.
	NormalLeave LeavePath = iota + 1
	// AdminEvict removes the participant by connection id, best effort.
	AdminEvict
)

func (p LeavePath) String() string {
	switch p {
	case NormalLeave:
		return "normal_leave"
	case AdminEvict:
		return "admin_evict"
	}
	return "unknown"
}

func (c *Controller) LeaveRoom(ctx context.Context, tx *Transaction, _ Params) (any, error) {
	if _, err := c.Leave(ctx, tx, tx.Request); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

// LeaveRoomAfterConnClosed is the transport's entry once the connection is gone.
func (c *Controller) LeaveRoomAfterConnClosed(ctx context.Context, cid core.ConnectionID) LeavePath {
	path, _ := c.Leave(ctx, nil, core.ParticipantRequest{ConnectionID: cid})
	return path
}

// Leave reconciles the session's cached room with backend membership. Only
// the NormalLeave branch can return an error.
func (c *Controller) Leave(ctx context.Context, tx *Transaction, req core.ParticipantRequest) (LeavePath, error) {
	cid := req.ConnectionID
	if tx == nil {
		c.evict(ctx, cid)
		return AdminEvict, nil
	}

	roomName := tx.Session().RoomName()
	if roomName == "" {
		c.logger.Warn().Str("cid", string(cid)).
			Msg("no room information found for participant, using the admin method to evict")
		c.evict(ctx, cid)
		return AdminEvict, nil
	}

	if !c.isMember(ctx, domain.RoomID(roomName), req.ParticipantID()) {
		c.logger.Warn().Str("cid", string(cid)).Str("room", roomName).
			Msg("participant not found in room, using the admin method to evict")
		c.evict(ctx, cid)
		return AdminEvict, nil
	}

	c.logger.Debug().Str("cid", string(cid)).Str("room", roomName).Msg("participant is leaving room")
	if err := c.backend.LeaveRoom(ctx, req); err != nil {
		return NormalLeave, err
	}
	c.logger.Info().Str("cid", string(cid)).Str("room", roomName).Msg("participant has left room")
	return NormalLeave, nil
}

func (c *Controller) isMember(ctx context.Context, roomID domain.RoomID, pid domain.ParticipantID) bool {
	members, err := c.backend.Participants(ctx, roomID)
	if err != nil {
		c.logger.Debug().Err(err).Str("room", string(roomID)).Msg("membership lookup failed")
		return false
	}
	for _, m := range members {
		if m.ID == pid {
			return true
		}
	}
	return false
}

// evict never fails: it frequently runs after the connection has vanished.
func (c *Controller) evict(ctx context.Context, cid core.ConnectionID) {
	if err := c.backend.EvictParticipant(ctx, cid); err != nil {
		c.logger.Warn().Err(err).Str("cid", string(cid)).Msg("unable to evict")
		return
	}
	c.logger.Info().Str("cid", string(cid)).Msg("evicted participant")
}
