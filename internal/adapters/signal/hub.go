package signal

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/rpc"
)

// Hub tracks live connections and delivers server notifications to them.
type Hub struct {
	mu    sync.RWMutex
	conns map[core.ConnectionID]core.SignalConnection
}

var _ core.Notifier = (*Hub)(nil)

func NewHub() *Hub {
	return &Hub{conns: make(map[core.ConnectionID]core.SignalConnection)}
}

func (h *Hub) Register(cid core.ConnectionID, conn core.SignalConnection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[cid] = conn
}

func (h *Hub) Unregister(cid core.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, cid)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Notify(cid core.ConnectionID, method string, params any) error {
	h.mu.RLock()
	conn, ok := h.conns[cid]
	h.mu.RUnlock()
	if !ok {
		return core.ErrUnknownConnection
	}
	b, err := json.Marshal(rpc.NewNotification(method, params))
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}
	return conn.TrySend(b)
}
