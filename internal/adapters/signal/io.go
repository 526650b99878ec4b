package signal

import (
	"context"
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, cid core.ConnectionID, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.Opts.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("cid", string(cid)).Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.Opts.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("ping failed")
				return
			}
		}
	}
}

// readPump runs the connection's commands one at a time, in arrival order.
func (ctl *SignalWSController) readPump(ctx context.Context, req core.ParticipantRequest, c *WsSignalConn) {
	cid := req.ConnectionID
	defer func() {
		log.Debug().Str("module", "signal").Str("cid", string(cid)).Msg("readPump closing")
		c.Close()
	}()

	if ctl.Opts.ReadLimit > 0 {
		c.conn.SetReadLimit(ctl.Opts.ReadLimit)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))
	})

	store := ctl.Controller.Sessions()
	for {
		if ctx.Err() != nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("readPump read error")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(ctl.Opts.PongWait))

		var resp []byte
		if ctl.Limiter.Allow(cid) {
			resp = ctl.Dispatcher.Handle(ctx, store, req, data)
		} else {
			resp = ctl.Dispatcher.Reject(data, core.ErrRateLimited)
		}
		if resp == nil {
			continue
		}
		if err := c.TrySend(resp); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("response dropped")
		}
	}
}
