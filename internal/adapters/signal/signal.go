package signal

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/rpc"
	"github.com/dkeye/roomsignal/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ClientIDKey is the gin context key holding the browser identity.
const ClientIDKey = "client_id"

type Options struct {
	ReadLimit  int64
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

type SignalWSController struct {
	Dispatcher *rpc.Dispatcher
	Controller *rpc.Controller
	Hub        *Hub
	Limiter    *RateLimiter
	Opts       Options
}

func NewSignalWSController(d *rpc.Dispatcher, c *rpc.Controller, hub *Hub, limiter *RateLimiter, opts Options) *SignalWSController {
	return &SignalWSController{
		Dispatcher: d,
		Controller: c,
		Hub:        hub,
		Limiter:    limiter,
		Opts:       opts,
	}
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

var _ core.SignalConnection = (*WsSignalConn)(nil)

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnectionClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	cid := core.ConnectionID(uuid.NewString())
	clientID := c.GetString(ClientIDKey)
	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("client", clientID).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.Opts.SendBuffer),
	}
	ctl.Hub.Register(cid, conn)
	telemetry.ConnectionOpened()

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, cid, conn)
	go func() {
		defer cancel()
		ctl.readPump(ctx, core.ParticipantRequest{ConnectionID: cid, ClientID: clientID}, conn)
		ctl.connClosed(ctx, cid)
	}()
}

// connClosed reconciles membership once the transport is gone.
func (ctl *SignalWSController) connClosed(ctx context.Context, cid core.ConnectionID) {
	ctl.Hub.Unregister(cid)
	path := ctl.Controller.LeaveRoomAfterConnClosed(context.WithoutCancel(ctx), cid)
	ctl.Controller.Sessions().Remove(cid)
	ctl.Limiter.Forget(cid)
	telemetry.ConnectionClosed()
	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("path", path.String()).Msg("connection closed")
}
