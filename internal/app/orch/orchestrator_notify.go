package orch

import (
	"context"
	"errors"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/rpc"
	"github.com/dkeye/roomsignal/internal/telemetry"
)

// notifyRoom delivers a notification to every member of roomID but except.
// Members that cannot keep up are handled by the backpressure policy.
func (o *Orchestrator) notifyRoom(roomID domain.RoomID, except core.ConnectionID, method string, params any) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	for _, m := range room.Members() {
		if m.CID == except {
			continue
		}
		err := o.Notifier.Notify(m.CID, method, params)
		if err == nil {
			continue
		}
		if !errors.Is(err, core.ErrBackpressure) {
			o.logger.Debug().Err(err).Str("cid", string(m.CID)).Str("method", method).Msg("notification not delivered")
			continue
		}
		switch o.Policy.OnBackPressure(roomID, m.CID) {
		case app.KickMember:
			cid := m.CID
			o.logger.Warn().Str("cid", string(cid)).Str("room", string(roomID)).Msg("slow member, evicting")
			o.pool.Submit(func() { o.evictSlow(cid) })
		case app.DropNotification:
			o.logger.Debug().Str("cid", string(m.CID)).Str("method", method).Msg("slow member, notification dropped")
		}
	}
}

func (o *Orchestrator) evictSlow(cid core.ConnectionID) {
	defer o.Registry.Forget(cid)
	if _, ok := o.Registry.Get(cid); !ok {
		return
	}
	o.removeMember(cid, reasonBackpressure)
}

// SendMessage broadcasts a chat message to the whole room, sender included.
func (o *Orchestrator) SendMessage(_ context.Context, message, userName string, roomID domain.RoomID, req core.ParticipantRequest) error {
	b, ok := o.Registry.Get(req.ConnectionID)
	if !ok {
		return core.NewError(core.KindUserNotFound, "connection %s is not in any room", req.ConnectionID)
	}
	if b.RoomID != roomID {
		return core.NewError(core.KindUserNotFound, "participant %s is not in room %s", b.Name, roomID)
	}
	o.notifyRoom(roomID, "", rpc.NotifySendMessage, rpc.MessageParams{User: userName, Room: string(roomID), Message: message})
	telemetry.MessageSent()
	return nil
}
