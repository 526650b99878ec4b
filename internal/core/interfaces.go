package core

import (
	"context"

	"github.com/dkeye/roomsignal/internal/domain"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks . RoomBackend,SecretChecker

// ConnectionID identifies a signaling connection for its whole lifetime.
// It is the only handle left once the connection has closed.
type ConnectionID string

// ParticipantRequest routes a single inbound command.
type ParticipantRequest struct {
	ConnectionID ConnectionID
	RequestID    string
	// ClientID is the browser identity from the session cookie, if any.
	ClientID string
}

// ParticipantID is the backend id of the participant behind this connection.
func (r ParticipantRequest) ParticipantID() domain.ParticipantID {
	return domain.ParticipantID(r.ConnectionID)
}

// RoomBackend is the room/media manager the signaling layer delegates to.
// Implementations serialise membership changes per room.
type RoomBackend interface {
	NewInsecureUser(ctx context.Context, cid ConnectionID)
	IsParticipantInRoom(ctx context.Context, token string, roomID domain.RoomID, cid ConnectionID) bool
	MetadataFormatCorrect(metadata string) bool
	NewRandomUserName(ctx context.Context, token string, roomID domain.RoomID) (string, error)
	SetTokenClientMetadata(ctx context.Context, userName string, roomID domain.RoomID, metadata string) error
	JoinRoom(ctx context.Context, userName string, roomID domain.RoomID, dataChannels bool, req ParticipantRequest) ([]domain.UserParticipant, error)

	ParticipantName(ctx context.Context, cid ConnectionID) (string, bool)
	RoomOf(ctx context.Context, cid ConnectionID) (domain.RoomID, bool)
	IsPublisherInRoom(ctx context.Context, userName string, roomID domain.RoomID, cid ConnectionID) bool

	PublishMedia(ctx context.Context, req ParticipantRequest, sdpOffer string, audioOnly, doLoopback bool) (string, error)
	UnpublishMedia(ctx context.Context, req ParticipantRequest) error
	Subscribe(ctx context.Context, senderName, sdpOffer string, req ParticipantRequest) (string, error)
	Unsubscribe(ctx context.Context, senderName string, req ParticipantRequest) error
	OnIceCandidate(ctx context.Context, endpointName, candidate string, sdpMLineIndex int, sdpMid string, req ParticipantRequest) error
	SendMessage(ctx context.Context, message, userName string, roomID domain.RoomID, req ParticipantRequest) error

	Participants(ctx context.Context, roomID domain.RoomID) ([]domain.UserParticipant, error)
	LeaveRoom(ctx context.Context, req ParticipantRequest) error
	EvictParticipant(ctx context.Context, cid ConnectionID) error
}

// SecretChecker looks up the server-wide admin secret.
type SecretChecker interface {
	IsAdminSecret(secret string) bool
}

// Notifier delivers server-initiated JSON-RPC notifications to a connection.
// It returns ErrBackpressure when the connection cannot keep up.
type Notifier interface {
	Notify(cid ConnectionID, method string, params any) error
}
