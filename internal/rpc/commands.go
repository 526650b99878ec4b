package rpc

import (
	"strings"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
)

// Each command is decoded once from Params before any side effect.

type joinRoomCmd struct {
	Room         string `json:"room" validate:"required,max=256"`
	Token        string `json:"token" validate:"max=4096"`
	Secret       string `json:"secret" validate:"max=512"`
	Metadata     string `json:"metadata"`
	DataChannels bool   `json:"dataChannels"`
}

func decodeJoinRoom(p Params) (cmd joinRoomCmd, err error) {
	if cmd.Room, err = p.String(ParamRoom); err != nil {
		return cmd, err
	}
	if cmd.Token, err = p.String(ParamToken); err != nil {
		return cmd, err
	}
	if cmd.Secret, err = p.String(ParamSecret); err != nil {
		return cmd, err
	}
	if cmd.Metadata, err = p.String(ParamMetadata); err != nil {
		return cmd, err
	}
	if cmd.DataChannels, err = p.OptionalBool(ParamDataChannels, false); err != nil {
		return cmd, err
	}
	return cmd, check(cmd)
}

type publishVideoCmd struct {
	SdpOffer   string `json:"sdpOffer" validate:"required"`
	AudioOnly  bool   `json:"audioOnly"`
	DoLoopback bool   `json:"doLoopback"`
}

func decodePublishVideo(p Params) (cmd publishVideoCmd, err error) {
	if cmd.SdpOffer, err = p.String(ParamSdpOffer); err != nil {
		return cmd, err
	}
	if cmd.AudioOnly, err = p.Bool(ParamAudioOnly); err != nil {
		return cmd, err
	}
	if cmd.DoLoopback, err = p.Bool(ParamDoLoopback); err != nil {
		return cmd, err
	}
	return cmd, check(cmd)
}

type receiveVideoCmd struct {
	Sender   string `json:"sender" validate:"required"`
	SdpOffer string `json:"sdpOffer" validate:"required"`
}

func decodeReceiveVideo(p Params) (cmd receiveVideoCmd, err error) {
	if cmd.Sender, err = p.String(ParamSender); err != nil {
		return cmd, err
	}
	if cmd.SdpOffer, err = p.String(ParamSdpOffer); err != nil {
		return cmd, err
	}
	if err = check(cmd); err != nil {
		return cmd, err
	}
	cmd.Sender, err = SenderName(cmd.Sender)
	return cmd, err
}

type unsubscribeCmd struct {
	Sender string `json:"sender" validate:"required"`
}

func decodeUnsubscribe(p Params) (cmd unsubscribeCmd, err error) {
	if cmd.Sender, err = p.String(ParamSender); err != nil {
		return cmd, err
	}
	if err = check(cmd); err != nil {
		return cmd, err
	}
	cmd.Sender, err = SenderName(cmd.Sender)
	return cmd, err
}

type iceCandidateCmd struct {
	EndpointName  string `json:"endpointName" validate:"required"`
	Candidate     string `json:"candidate"`
	SdpMid        string `json:"sdpMid"`
	SdpMLineIndex int    `json:"sdpMLineIndex" validate:"gte=0,lte=65535"`
}

func decodeIceCandidate(p Params) (cmd iceCandidateCmd, err error) {
	if cmd.EndpointName, err = p.String(ParamEndpointName); err != nil {
		return cmd, err
	}
	if cmd.Candidate, err = p.String(ParamCandidate); err != nil {
		return cmd, err
	}
	if cmd.SdpMid, err = p.String(ParamSdpMid); err != nil {
		return cmd, err
	}
	if cmd.SdpMLineIndex, err = p.Int(ParamSdpMLineIndex); err != nil {
		return cmd, err
	}
	return cmd, check(cmd)
}

type sendMessageCmd struct {
	User    string `json:"user"`
	Room    string `json:"room" validate:"required"`
	Message string `json:"message"`
}

func decodeSendMessage(p Params) (cmd sendMessageCmd, err error) {
	if cmd.User, err = p.String(ParamUser); err != nil {
		return cmd, err
	}
	if cmd.Room, err = p.String(ParamRoom); err != nil {
		return cmd, err
	}
	if cmd.Message, err = p.String(ParamMessage); err != nil {
		return cmd, err
	}
	return cmd, check(cmd)
}

// SenderName extracts the participant name from a "<name>_<tag>" stream identifier.
func SenderName(sender string) (string, error) {
	name, _, ok := strings.Cut(sender, domain.StreamSeparator)
	if !ok {
		return "", core.MalformedParameter(ParamSender, errNoSeparator)
	}
	if name == "" {
		return "", core.MalformedParameter(ParamSender, errEmptySender)
	}
	return name, nil
}
