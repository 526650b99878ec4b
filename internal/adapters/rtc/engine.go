package rtc

import (
	"fmt"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog"
)

const (
	opusPayloadType = 111
	vp8PayloadType  = 96
)

// NewAPI builds a pion API restricted to the codecs the relay forwards.
func NewAPI(logger zerolog.Logger) (*webrtc.API, error) {
	me := &webrtc.MediaEngine{}
	if err := me.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: core.AudioCapability,
		PayloadType:        opusPayloadType,
	}, webrtc.RTPCodecTypeAudio); err != nil {
		return nil, fmt.Errorf("register opus: %w", err)
	}
	if err := me.RegisterCodec(webrtc.RTPCodecParameters{
		RTPCodecCapability: core.VideoCapability,
		PayloadType:        vp8PayloadType,
	}, webrtc.RTPCodecTypeVideo); err != nil {
		return nil, fmt.Errorf("register vp8: %w", err)
	}

	se := webrtc.SettingEngine{LoggerFactory: NewLoggerFactory(logger)}
	return webrtc.NewAPI(webrtc.WithMediaEngine(me), webrtc.WithSettingEngine(se)), nil
}

func Configuration(stunURLs []string) webrtc.Configuration {
	if len(stunURLs) == 0 {
		return webrtc.Configuration{}
	}
	return webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: stunURLs}},
	}
}

// NewFactory returns a core.MediaFactory creating peer connections from api.
func NewFactory(api *webrtc.API, cfg webrtc.Configuration) core.MediaFactory {
	return func(cid core.ConnectionID, endpoint string) (core.MediaConnection, error) {
		return NewWebRTCConnection(api, cfg, cid, endpoint)
	}
}
