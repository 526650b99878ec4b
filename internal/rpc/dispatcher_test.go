package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type wireResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int               `json:"code"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	} `json:"error"`
}

func handle(t *testing.T, f *fixture, frame string) wireResponse {
	t.Helper()
	d := NewDispatcher(f.ctl, zerolog.Nop())
	out := d.Handle(context.Background(), f.store, core.ParticipantRequest{ConnectionID: testCID}, []byte(frame))
	require.NotNil(t, out)
	var resp wireResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	return resp
}

func TestDispatcher_Errors(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		code  int
	}{
		{"parse error", `{not json`, -32700},
		{"wrong version", `{"jsonrpc":"1.0","id":1,"method":"ping"}`, -32600},
		{"unknown method", `{"jsonrpc":"2.0","id":1,"method":"dance"}`, -32601},
		{"custom request", `{"jsonrpc":"2.0","id":1,"method":"customRequest","params":{}}`, -32601},
		{"missing parameter", `{"jsonrpc":"2.0","id":1,"method":"receiveVideoFrom","params":{"sender":"a_b"}}`, 999},
		{"malformed sender", `{"jsonrpc":"2.0","id":1,"method":"unsubscribeFromVideo","params":{"sender":"ab"}}`, 999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			resp := handle(t, newFixture(t), tt.frame)
			req.Equal(Version, resp.JSONRPC)
			req.NotNil(resp.Error)
			req.Equal(tt.code, resp.Error.Code)
		})
	}
}

func TestDispatcher_GenericErrorHidesCause(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.backend.EXPECT().Unsubscribe(gomock.Any(), "alice", gomock.Any()).Return(errors.New("relay table corrupted at 0xdeadbeef"))

	resp := handle(t, f, `{"jsonrpc":"2.0","id":3,"method":"unsubscribeFromVideo","params":{"sender":"alice_webcam"}}`)
	req.NotNil(resp.Error)
	req.Equal(999, resp.Error.Code)
	req.Equal("internal error", resp.Error.Message)

	wrapped := ErrorResponse(nil, core.WrapError(core.KindUserNotFound, errors.New("no binding"), "user not found"))
	req.Equal("user not found: no binding", wrapped.Error.Message)
}

func TestDispatcher_MissingParameterNamesKey(t *testing.T) {
	req := require.New(t)
	resp := handle(t, newFixture(t), `{"jsonrpc":"2.0","id":7,"method":"sendMessage","params":{"user":"bob","room":"R1"}}`)
	req.JSONEq(`7`, string(resp.ID))
	req.NotNil(resp.Error)
	req.Equal(ParamMessage, resp.Error.Data["param"])
}

func TestDispatcher_Result(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.backend.EXPECT().Unsubscribe(gomock.Any(), "alice", gomock.Any()).Return(nil)

	resp := handle(t, f, `{"jsonrpc":"2.0","id":"abc","method":"unsubscribeFromVideo","params":{"sender":"alice_webcam"}}`)
	req.Nil(resp.Error)
	req.JSONEq(`"abc"`, string(resp.ID))
	req.JSONEq(`{}`, string(resp.Result))

	resp = handle(t, f, `{"jsonrpc":"2.0","id":2,"method":"ping","params":{"interval":5000}}`)
	req.Nil(resp.Error)
	req.JSONEq(`{"value":"pong"}`, string(resp.Result))
}

func TestDispatcher_NotificationHasNoResponse(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	d := NewDispatcher(f.ctl, zerolog.Nop())

	out := d.Handle(context.Background(), f.store, core.ParticipantRequest{ConnectionID: testCID},
		[]byte(`{"jsonrpc":"2.0","method":"ping"}`))
	req.Nil(out)
}

func TestDispatcher_Reject(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	d := NewDispatcher(f.ctl, zerolog.Nop())

	out := d.Reject([]byte(`{"jsonrpc":"2.0","id":4,"method":"ping"}`), core.ErrRateLimited)
	var resp struct {
		ID    int `json:"id"`
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	req.NoError(json.Unmarshal(out, &resp))
	req.Equal(4, resp.ID)
	req.Equal(429, resp.Error.Code)

	req.Nil(d.Reject([]byte(`{"jsonrpc":"2.0","method":"ping"}`), core.ErrRateLimited))
}
