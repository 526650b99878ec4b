// Package orch is the in-memory room and media backend behind the signaling layer.
package orch

import (
	"context"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/app/sfu"
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultWorkers = 4

type Deps struct {
	Registry *app.Registry
	Rooms    *app.RoomManager
	Tokens   *app.TokenStore
	Relays   *sfu.RelayManager
	Policy   app.Policy
	Notifier core.Notifier
	NewMedia core.MediaFactory
	// MetadataMaxLen bounds client metadata; zero disables the bound.
	MetadataMaxLen int
	Workers        int
}

// Orchestrator implements core.RoomBackend. Endpoint teardown and
// backpressure evictions run on a worker pool, outside room locks.
type Orchestrator struct {
	Deps

	ctx    context.Context
	cancel context.CancelFunc
	pool   *workerpool.WorkerPool
	logger zerolog.Logger
}

var _ core.RoomBackend = (*Orchestrator)(nil)

func New(d Deps) *Orchestrator {
	if d.Registry == nil {
		d.Registry = app.NewRegistry()
	}
	if d.Rooms == nil {
		d.Rooms = app.NewRoomManager()
	}
	if d.Relays == nil {
		d.Relays = sfu.NewRelayManager()
	}
	if d.Policy == nil {
		d.Policy = app.SimplePolicy{}
	}
	if d.Workers <= 0 {
		d.Workers = defaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		Deps:   d,
		ctx:    ctx,
		cancel: cancel,
		pool:   workerpool.New(d.Workers),
		logger: log.With().Str("module", "orch").Logger(),
	}
}

// Stop cancels media relays and waits for queued teardown work.
func (o *Orchestrator) Stop() {
	o.cancel()
	o.pool.StopWait()
}

// member resolves the admitted participant behind cid.
func (o *Orchestrator) member(cid core.ConnectionID) (*app.Member, *app.Room, error) {
	b, ok := o.Registry.Get(cid)
	if !ok {
		return nil, nil, core.NewError(core.KindUserNotFound, "connection %s is not in any room", cid)
	}
	room, ok := o.Rooms.Get(b.RoomID)
	if !ok {
		return nil, nil, core.NewError(core.KindRoomNotFound, "room %s not found", b.RoomID)
	}
	m, ok := room.Member(cid)
	if !ok {
		return nil, nil, core.NewError(core.KindUserNotFound, "participant %s not found in room %s", b.Name, b.RoomID)
	}
	return m, room, nil
}

func (o *Orchestrator) closeAsync(endpoints ...core.MediaConnection) {
	for _, mc := range endpoints {
		if mc == nil {
			continue
		}
		o.pool.Submit(mc.Close)
	}
}

// ListRooms summarises the open rooms.
func (o *Orchestrator) ListRooms() []domain.RoomInfo {
	return o.Rooms.List()
}
