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

const (
	reasonLeft         = "left"
	reasonEvicted      = "evicted"
	reasonBackpressure = "backpressure"
)

func (o *Orchestrator) NewInsecureUser(_ context.Context, cid core.ConnectionID) {
	o.Registry.MarkInsecure(cid)
}

func (o *Orchestrator) IsParticipantInRoom(_ context.Context, token string, roomID domain.RoomID, cid core.ConnectionID) bool {
	if _, err := o.Tokens.Validate(token, roomID); err != nil {
		o.logger.Debug().Err(err).Str("cid", string(cid)).Str("room", string(roomID)).Msg("token rejected")
		return false
	}
	return true
}

func (o *Orchestrator) MetadataFormatCorrect(metadata string) bool {
	return domain.ValidateMetadata(metadata, o.MetadataMaxLen) == nil
}

func (o *Orchestrator) NewRandomUserName(_ context.Context, token string, roomID domain.RoomID) (string, error) {
	name, err := o.Tokens.BindUserName(token, roomID)
	if err != nil {
		return "", tokenError(err, roomID)
	}
	return name, nil
}

func (o *Orchestrator) SetTokenClientMetadata(_ context.Context, userName string, roomID domain.RoomID, metadata string) error {
	if err := o.Tokens.SetClientMetadata(userName, roomID, metadata); err != nil {
		return tokenError(err, roomID)
	}
	return nil
}

func (o *Orchestrator) JoinRoom(_ context.Context, userName string, roomID domain.RoomID, dataChannels bool, req core.ParticipantRequest) ([]domain.UserParticipant, error) {
	cid := req.ConnectionID
	if b, ok := o.Registry.Get(cid); ok {
		o.releaseUnadmitted(userName, roomID)
		return nil, core.NewError(core.KindExistingUserInRoom, "connection already joined room %s as %s", b.RoomID, b.Name)
	}
	tok, err := o.Tokens.TokenOf(userName, roomID)
	if err != nil {
		return nil, tokenError(err, roomID)
	}

	room := o.Rooms.GetOrCreate(roomID)
	m := app.NewMember(cid, userName, tok.ClientMetadata, tok.Role, dataChannels)
	existing, err := room.Admit(m)
	if err != nil {
		o.releaseUnadmitted(userName, roomID)
		o.Rooms.CloseIfEmpty(roomID)
		return nil, core.WrapError(core.KindExistingUserInRoom, err, "user %s already in room %s", userName, roomID)
	}
	o.Registry.Bind(cid, app.Binding{RoomID: roomID, Name: userName, Token: tok.Value})
	telemetry.ParticipantJoined()

	o.notifyRoom(roomID, cid, rpc.NotifyParticipantJoined, rpc.ParticipantInfo{ID: userName, Metadata: tok.ClientMetadata})
	o.logger.Info().Str("cid", string(cid)).Str("room", string(roomID)).Str("user", userName).
		Int("existing", len(existing)).Msg("participant joined")
	return existing, nil
}

// releaseUnadmitted frees a name allocated for a join that did not happen,
// unless an admitted member holds it.
func (o *Orchestrator) releaseUnadmitted(userName string, roomID domain.RoomID) {
	if room, ok := o.Rooms.Get(roomID); ok {
		if _, held := room.MemberByName(userName); held {
			return
		}
	}
	o.Tokens.ReleaseUserName(userName, roomID)
}

func (o *Orchestrator) ParticipantName(_ context.Context, cid core.ConnectionID) (string, bool) {
	b, ok := o.Registry.Get(cid)
	if !ok {
		return "", false
	}
	return b.Name, true
}

func (o *Orchestrator) RoomOf(_ context.Context, cid core.ConnectionID) (domain.RoomID, bool) {
	return o.Registry.RoomOf(cid)
}

// IsPublisherInRoom checks that cid is admitted as userName in roomID and
// may publish, either by token role or by trusted status.
func (o *Orchestrator) IsPublisherInRoom(_ context.Context, userName string, roomID domain.RoomID, cid core.ConnectionID) bool {
	b, ok := o.Registry.Get(cid)
	if !ok || b.Name != userName || b.RoomID != roomID {
		return false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return false
	}
	m, ok := room.Member(cid)
	if !ok {
		return false
	}
	return o.Registry.IsInsecure(cid) || m.Role.CanPublish()
}

func (o *Orchestrator) Participants(_ context.Context, roomID domain.RoomID) ([]domain.UserParticipant, error) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return nil, core.NewError(core.KindRoomNotFound, "room %s not found", roomID)
	}
	return room.Participants(), nil
}

func (o *Orchestrator) LeaveRoom(_ context.Context, req core.ParticipantRequest) error {
	if _, ok := o.Registry.Get(req.ConnectionID); !ok {
		return core.NewError(core.KindUserNotFound, "connection %s is not in any room", req.ConnectionID)
	}
	o.removeMember(req.ConnectionID, reasonLeft)
	return nil
}

// EvictParticipant removes cid from its room and forgets its trusted status.
func (o *Orchestrator) EvictParticipant(_ context.Context, cid core.ConnectionID) error {
	defer o.Registry.Forget(cid)
	if _, ok := o.Registry.Get(cid); !ok {
		return core.NewError(core.KindUserNotFound, "connection %s is not in any room", cid)
	}
	if err := o.Notifier.Notify(cid, rpc.NotifyParticipantEvicted, struct{}{}); err != nil {
		o.logger.Debug().Err(err).Str("cid", string(cid)).Msg("eviction notice not delivered")
	}
	o.removeMember(cid, reasonEvicted)
	return nil
}

// CloseRoom evicts every member of roomID.
func (o *Orchestrator) CloseRoom(ctx context.Context, roomID domain.RoomID) int {
	evicted := 0
	for _, cid := range o.Registry.MembersOfRoom(roomID) {
		if err := o.EvictParticipant(ctx, cid); err == nil {
			evicted++
		}
	}
	o.Rooms.StopRoom(roomID)
	return evicted
}

func (o *Orchestrator) removeMember(cid core.ConnectionID, reason string) {
	b, ok := o.Registry.Unbind(cid)
	if !ok {
		return
	}
	o.Tokens.ReleaseUserName(b.Name, b.RoomID)

	room, ok := o.Rooms.Get(b.RoomID)
	if !ok {
		return
	}
	m, ok := room.RemoveMember(cid)
	if !ok {
		return
	}

	o.Relays.StopRelay(cid)
	o.Relays.DropSubscriber(cid)
	o.closeAsync(m.TakeAll()...)
	for _, other := range room.Members() {
		if sub, ok := other.TakeSubscriber(m.Name); ok {
			o.closeAsync(sub)
		}
	}

	telemetry.ParticipantLeft()
	telemetry.Departure(reason)
	o.notifyRoom(b.RoomID, cid, rpc.NotifyParticipantLeft, rpc.NameParams{Name: m.Name})
	o.Rooms.CloseIfEmpty(b.RoomID)
	o.logger.Info().Str("cid", string(cid)).Str("room", string(b.RoomID)).Str("user", m.Name).
		Str("reason", reason).Msg("participant removed")
}

func tokenError(err error, roomID domain.RoomID) error {
	if errors.Is(err, app.ErrSessionNotFound) {
		return core.WrapError(core.KindRoomNotFound, err, "room %s not found", roomID)
	}
	if errors.Is(err, app.ErrTokenInUse) {
		return core.WrapError(core.KindExistingUserInRoom, err, "token already used in room %s", roomID)
	}
	return core.WrapError(core.KindUnauthorized, err, "token not valid for room %s", roomID)
}
