package rpc

import (
	"context"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/rs/zerolog"
)

// Controller turns validated commands into backend calls.
type Controller struct {
	backend  core.RoomBackend
	guard    Guard
	sessions *SessionStore
	logger   zerolog.Logger
}

func NewController(backend core.RoomBackend, secrets core.SecretChecker, sessions *SessionStore, logger zerolog.Logger) *Controller {
	return &Controller{
		backend:  backend,
		guard:    NewGuard(backend, secrets),
		sessions: sessions,
		logger:   logger.With().Str("module", "rpc").Logger(),
	}
}

func (c *Controller) Sessions() *SessionStore { return c.sessions }

func (c *Controller) JoinRoom(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodeJoinRoom(p)
	if err != nil {
		return nil, err
	}
	cid := tx.Request.ConnectionID
	roomID := domain.RoomID(cmd.Room)

	if c.guard.CheckAdminSecret(ctx, cmd.Secret, cid) {
		c.logger.Info().Str("cid", string(cid)).Msg("connection granted trusted status")
	}
	if err := c.guard.CheckMembership(ctx, cmd.Token, roomID, cid); err != nil {
		c.logger.Warn().Str("cid", string(cid)).Str("room", cmd.Room).Msg("join refused: token not valid for room")
		return nil, err
	}
	if err := c.guard.CheckMetadataFormat(cmd.Metadata); err != nil {
		c.logger.Warn().Str("cid", string(cid)).Str("room", cmd.Room).Msg("join refused: metadata format is incorrect")
		return nil, err
	}

	userName, err := c.backend.NewRandomUserName(ctx, cmd.Token, roomID)
	if err != nil {
		return nil, err
	}
	if err := c.backend.SetTokenClientMetadata(ctx, userName, roomID, cmd.Metadata); err != nil {
		return nil, err
	}

	tx.Session().Bind(userName, cmd.Room, cmd.DataChannels)

	existing, err := c.backend.JoinRoom(ctx, userName, roomID, cmd.DataChannels, tx.Request)
	if err != nil {
		return nil, err
	}
	c.logger.Info().Str("cid", string(cid)).Str("room", cmd.Room).Str("user", userName).Msg("joined room")
	return JoinRoomResult{ID: userName, Value: participantInfos(existing)}, nil
}

func (c *Controller) PublishVideo(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodePublishVideo(p)
	if err != nil {
		return nil, err
	}
	if err := c.guard.CheckPublisher(ctx, tx.Request.ConnectionID); err != nil {
		c.logger.Warn().Str("cid", string(tx.Request.ConnectionID)).Msg("publish refused: user is not a publisher")
		return nil, err
	}
	answer, err := c.backend.PublishMedia(ctx, tx.Request, cmd.SdpOffer, cmd.AudioOnly, cmd.DoLoopback)
	if err != nil {
		return nil, err
	}
	return SdpAnswerResult{SdpAnswer: answer}, nil
}

// UnpublishVideo does not repeat the publisher check of PublishVideo; the
// backend refuses connections that are not streaming.
func (c *Controller) UnpublishVideo(ctx context.Context, tx *Transaction, _ Params) (any, error) {
	c.logger.Debug().Str("cid", string(tx.Request.ConnectionID)).Msg("unpublish without publisher re-check")
	if err := c.backend.UnpublishMedia(ctx, tx.Request); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (c *Controller) ReceiveVideoFrom(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodeReceiveVideo(p)
	if err != nil {
		return nil, err
	}
	answer, err := c.backend.Subscribe(ctx, cmd.Sender, cmd.SdpOffer, tx.Request)
	if err != nil {
		return nil, err
	}
	return SdpAnswerResult{SdpAnswer: answer}, nil
}

func (c *Controller) UnsubscribeFromVideo(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodeUnsubscribe(p)
	if err != nil {
		return nil, err
	}
	if err := c.backend.Unsubscribe(ctx, cmd.Sender, tx.Request); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (c *Controller) OnIceCandidate(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodeIceCandidate(p)
	if err != nil {
		return nil, err
	}
	if err := c.backend.OnIceCandidate(ctx, cmd.EndpointName, cmd.Candidate, cmd.SdpMLineIndex, cmd.SdpMid, tx.Request); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (c *Controller) SendMessage(ctx context.Context, tx *Transaction, p Params) (any, error) {
	cmd, err := decodeSendMessage(p)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("user", cmd.User).Str("room", cmd.Room).Str("message", cmd.Message).Msg("message")
	if err := c.backend.SendMessage(ctx, cmd.Message, cmd.User, domain.RoomID(cmd.Room), tx.Request); err != nil {
		return nil, err
	}
	return struct{}{}, nil
}

func (c *Controller) CustomRequest(context.Context, *Transaction, Params) (any, error) {
	return nil, core.ErrUnsupported
}

func (c *Controller) Ping(context.Context, *Transaction, Params) (any, error) {
	return map[string]string{"value": "pong"}, nil
}

func participantInfos(ps []domain.UserParticipant) []ParticipantInfo {
	out := make([]ParticipantInfo, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewParticipantInfo(p))
	}
	return out
}
