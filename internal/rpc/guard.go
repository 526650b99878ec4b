package rpc

import (
	"context"
	"errors"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
)

var (
	errNoSeparator = errors.New("sender has no '" + domain.StreamSeparator + "' separator")
	errEmptySender = errors.New("sender name is empty")
)

// Guard runs the authorization checks that precede every mutation.
type Guard struct {
	backend core.RoomBackend
	secrets core.SecretChecker
}

func NewGuard(backend core.RoomBackend, secrets core.SecretChecker) Guard {
	return Guard{backend: backend, secrets: secrets}
}

// CheckAdminSecret marks cid as trusted in the backend when secret matches.
// Trust alone never admits a connection into a room.
func (g Guard) CheckAdminSecret(ctx context.Context, secret string, cid core.ConnectionID) bool {
	if g.secrets == nil || !g.secrets.IsAdminSecret(secret) {
		return false
	}
	g.backend.NewInsecureUser(ctx, cid)
	return true
}

func (g Guard) CheckMembership(ctx context.Context, token string, roomID domain.RoomID, cid core.ConnectionID) error {
	if !g.backend.IsParticipantInRoom(ctx, token, roomID, cid) {
		return core.NewError(core.KindUnauthorized, "Unable to join room. The user is not authorized")
	}
	return nil
}

func (g Guard) CheckMetadataFormat(metadata string) error {
	if !g.backend.MetadataFormatCorrect(metadata) {
		return core.NewError(core.KindMetadataFormatInvalid, "Unable to join room. The metadata received has an invalid format")
	}
	return nil
}

// CheckPublisher verifies that cid is an admitted publisher in the room the
// backend has it in.
func (g Guard) CheckPublisher(ctx context.Context, cid core.ConnectionID) error {
	name, okName := g.backend.ParticipantName(ctx, cid)
	roomID, okRoom := g.backend.RoomOf(ctx, cid)
	if !okName || !okRoom || !g.backend.IsPublisherInRoom(ctx, name, roomID, cid) {
		return core.NewError(core.KindUnauthorized, "Unable to publish video. The user does not have a valid token")
	}
	return nil
}
