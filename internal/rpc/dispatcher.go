package rpc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/telemetry"
	"github.com/rs/zerolog"
)

type HandlerFunc func(ctx context.Context, tx *Transaction, p Params) (any, error)

// Dispatcher maps JSON-RPC methods to controller handlers.
type Dispatcher struct {
	handlers map[string]HandlerFunc
	logger   zerolog.Logger
}

func NewDispatcher(c *Controller, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: map[string]HandlerFunc{
			MethodJoinRoom:             c.JoinRoom,
			MethodPublishVideo:         c.PublishVideo,
			MethodUnpublishVideo:       c.UnpublishVideo,
			MethodReceiveVideoFrom:     c.ReceiveVideoFrom,
			MethodUnsubscribeFromVideo: c.UnsubscribeFromVideo,
			MethodOnIceCandidate:       c.OnIceCandidate,
			MethodSendMessage:          c.SendMessage,
			MethodLeaveRoom:            c.LeaveRoom,
			MethodCustomRequest:        c.CustomRequest,
			MethodPing:                 c.Ping,
		},
		logger: logger.With().Str("module", "rpc.dispatch").Logger(),
	}
}

// Dispatch runs one command. Unknown methods are Unsupported.
func (d *Dispatcher) Dispatch(ctx context.Context, tx *Transaction, method string, raw json.RawMessage) (any, error) {
	start := time.Now()
	result, err := d.dispatch(ctx, tx, method, raw)
	status := "ok"
	if err != nil {
		kind := core.AsError(err).Kind
		status = kind.String()
		ev := d.logger.Debug()
		if kind == core.KindGeneric {
			ev = d.logger.Error()
		}
		ev.Err(err).Str("method", method).Str("cid", string(tx.Request.ConnectionID)).Msg("request failed")
	}
	telemetry.ObserveRequest(method, status, time.Since(start))
	return result, err
}

func (d *Dispatcher) dispatch(ctx context.Context, tx *Transaction, method string, raw json.RawMessage) (any, error) {
	h, ok := d.handlers[method]
	if !ok {
		return nil, core.NewError(core.KindUnsupported, "unsupported method %q", method)
	}
	p, err := ParseParams(raw)
	if err != nil {
		return nil, err
	}
	return h(ctx, tx, p)
}

// Handle decodes a raw JSON-RPC frame and returns the encoded response, or
// nil for client notifications.
func (d *Dispatcher) Handle(ctx context.Context, store *SessionStore, req core.ParticipantRequest, frame []byte) []byte {
	var r Request
	if err := json.Unmarshal(frame, &r); err != nil {
		d.logger.Error().Err(err).Str("cid", string(req.ConnectionID)).Msg("bad json")
		return encode(ErrorResponse(nil, core.WrapError(core.KindParseError, err, "parse error")))
	}
	if r.JSONRPC != Version || r.Method == "" {
		return encode(ErrorResponse(r.ID, core.NewError(core.KindInvalidRequest, "invalid request")))
	}
	req.RequestID = string(r.ID)
	result, err := d.Dispatch(ctx, NewTransaction(store, req), r.Method, r.Params)
	if r.IsNotification() {
		return nil
	}
	if err != nil {
		return encode(ErrorResponse(r.ID, err))
	}
	if result == nil {
		result = struct{}{}
	}
	return encode(Response{JSONRPC: Version, ID: r.ID, Result: result})
}

// Reject answers frame with err without running it. Client notifications
// get no answer.
func (d *Dispatcher) Reject(frame []byte, err error) []byte {
	var r Request
	if jsonErr := json.Unmarshal(frame, &r); jsonErr != nil {
		return encode(ErrorResponse(nil, err))
	}
	telemetry.ObserveRequest(r.Method, core.AsError(err).Kind.String(), 0)
	if r.IsNotification() {
		return nil
	}
	return encode(ErrorResponse(r.ID, err))
}

// ErrorResponse encodes err for the client. Causes of generic errors stay in
// the server log.
func ErrorResponse(id json.RawMessage, err error) Response {
	e := core.AsError(err)
	obj := &ErrorObject{Code: e.Code(), Message: e.Error()}
	if e.Kind == core.KindGeneric {
		obj.Message = e.Message
	}
	if e.Param != "" {
		obj.Data = map[string]string{"param": e.Param}
	}
	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	return Response{JSONRPC: Version, ID: id, Error: obj}
}

func encode(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"jsonrpc":"2.0","id":null,"error":{"code":999,"message":"internal error"}}`)
	}
	return b
}
