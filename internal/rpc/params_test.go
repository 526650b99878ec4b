package rpc

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/stretchr/testify/require"
)

func TestParams_Extract(t *testing.T) {
	req := require.New(t)
	p, err := ParseParams(json.RawMessage(`{"s":"x","n":7,"b":true,"nil":null}`))
	req.NoError(err)

	s, err := p.String("s")
	req.NoError(err)
	req.Equal("x", s)

	n, err := p.Int("n")
	req.NoError(err)
	req.Equal(7, n)

	b, err := p.Bool("b")
	req.NoError(err)
	req.True(b)

	_, err = p.String("absent")
	req.ErrorIs(err, core.ErrMissingParameter)
	req.Equal("absent", core.AsError(err).Param)

	_, err = p.String("nil")
	req.ErrorIs(err, core.ErrMissingParameter)
}

func TestParams_NoCoercion(t *testing.T) {
	req := require.New(t)
	p, err := ParseParams(json.RawMessage(`{"n":"7","b":"true","s":1}`))
	req.NoError(err)

	_, err = p.Int("n")
	req.ErrorIs(err, core.ErrMalformedParameter)
	_, err = p.Bool("b")
	req.ErrorIs(err, core.ErrMalformedParameter)
	_, err = p.String("s")
	req.ErrorIs(err, core.ErrMalformedParameter)
	req.Equal("s", core.AsError(err).Param)
}

func TestParams_AbsentSet(t *testing.T) {
	req := require.New(t)
	for _, raw := range []string{"", "null", "  "} {
		p, err := ParseParams(json.RawMessage(raw))
		req.NoError(err)
		req.Nil(p)

		_, err = p.String("room")
		req.ErrorIs(err, core.ErrMissingParameter)
		_, err = p.Int("room")
		req.ErrorIs(err, core.ErrMissingParameter)
		_, err = p.Bool("room")
		req.ErrorIs(err, core.ErrMissingParameter)
	}

	_, err := ParseParams(json.RawMessage(`[1,2]`))
	req.Error(err)
	req.Equal(core.KindInvalidRequest, core.AsError(err).Kind)
}

func TestParams_OptionalBool(t *testing.T) {
	req := require.New(t)
	var p Params
	v, err := p.OptionalBool("dataChannels", false)
	req.NoError(err)
	req.False(v)

	p = Params{"dataChannels": json.RawMessage(`true`)}
	v, err = p.OptionalBool("dataChannels", false)
	req.NoError(err)
	req.True(v)

	p = Params{"dataChannels": json.RawMessage(`"yes"`)}
	_, err = p.OptionalBool("dataChannels", false)
	req.ErrorIs(err, core.ErrMalformedParameter)
}

func TestSenderName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "alice_1a2b3c", want: "alice"},
		{in: "alice_webcam", want: "alice"},
		{in: "bob_cam_2", want: "bob"},
		{in: "alice", wantErr: true},
		{in: "_webcam", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			req := require.New(t)
			got, err := SenderName(tt.in)
			if tt.wantErr {
				req.ErrorIs(err, core.ErrMalformedParameter)
				req.Equal(ParamSender, core.AsError(err).Param)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func TestDecodeIceCandidate_RejectsNegativeIndex(t *testing.T) {
	req := require.New(t)
	p := Params{
		"endpointName":  json.RawMessage(`"alice_webcam"`),
		"candidate":     json.RawMessage(`"candidate:1 1 UDP 1 10.0.0.1 5000 typ host"`),
		"sdpMid":        json.RawMessage(`"0"`),
		"sdpMLineIndex": json.RawMessage(`-1`),
	}
	_, err := decodeIceCandidate(p)
	req.ErrorIs(err, core.ErrMalformedParameter)
	req.Equal(ParamSdpMLineIndex, core.AsError(err).Param)
}
