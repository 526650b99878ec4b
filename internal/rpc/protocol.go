// Package rpc validates signaling commands and dispatches them to the room backend.
package rpc

import (
	"encoding/json"

	"github.com/dkeye/roomsignal/internal/domain"
)

const Version = "2.0"

// Client methods.
const (
	MethodJoinRoom             = "joinRoom"
	MethodPublishVideo         = "publishVideo"
	MethodUnpublishVideo       = "unpublishVideo"
	MethodReceiveVideoFrom     = "receiveVideoFrom"
	MethodUnsubscribeFromVideo = "unsubscribeFromVideo"
	MethodOnIceCandidate       = "onIceCandidate"
	MethodSendMessage          = "sendMessage"
	MethodLeaveRoom            = "leaveRoom"
	MethodCustomRequest        = "customRequest"
	MethodPing                 = "ping"
)

// Server notifications.
const (
	NotifyParticipantJoined      = "participantJoined"
	NotifyParticipantLeft        = "participantLeft"
	NotifyParticipantEvicted     = "participantEvicted"
	NotifyParticipantPublished   = "participantPublished"
	NotifyParticipantUnpublished = "participantUnpublished"
	NotifySendMessage            = "sendMessage"
)

// Request parameter keys.
const (
	ParamRoom          = "room"
	ParamToken         = "token"
	ParamSecret        = "secret"
	ParamMetadata      = "metadata"
	ParamDataChannels  = "dataChannels"
	ParamSdpOffer      = "sdpOffer"
	ParamAudioOnly     = "audioOnly"
	ParamDoLoopback    = "doLoopback"
	ParamSender        = "sender"
	ParamEndpointName  = "endpointName"
	ParamCandidate     = "candidate"
	ParamSdpMid        = "sdpMid"
	ParamSdpMLineIndex = "sdpMLineIndex"
	ParamUser          = "user"
	ParamMessage       = "message"
)

// Request is a JSON-RPC 2.0 request. A request without an id is a notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

func NewNotification(method string, params any) Notification {
	return Notification{JSONRPC: Version, Method: method, Params: params}
}

// ParticipantInfo describes a room member in joinRoom results and notifications.
type ParticipantInfo struct {
	ID       string       `json:"id"`
	Metadata string       `json:"metadata,omitempty"`
	Streams  []StreamInfo `json:"streams,omitempty"`
}

// NewParticipantInfo describes p with its single stream when it is publishing.
func NewParticipantInfo(p domain.UserParticipant) ParticipantInfo {
	info := ParticipantInfo{ID: p.Name, Metadata: p.Metadata}
	if p.Streaming {
		info.Streams = []StreamInfo{{ID: domain.DefaultStream, AudioActive: true, VideoActive: !p.AudioOnly}}
	}
	return info
}

type StreamInfo struct {
	ID          string `json:"id"`
	AudioActive bool   `json:"audioActive"`
	VideoActive bool   `json:"videoActive"`
}

type JoinRoomResult struct {
	ID    string            `json:"id"`
	Value []ParticipantInfo `json:"value"`
}

type SdpAnswerResult struct {
	SdpAnswer string `json:"sdpAnswer"`
}

// NameParams identifies the participant in participantLeft and participantUnpublished.
type NameParams struct {
	Name string `json:"name"`
}

type MessageParams struct {
	User    string `json:"user"`
	Room    string `json:"room"`
	Message string `json:"message"`
}
