package app

import (
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/rs/zerolog/log"
)

// Binding is what the backend knows about an admitted connection.
type Binding struct {
	RoomID domain.RoomID
	Name   string
	Token  string
}

// Registry maps connections to their room binding and trusted status.
type Registry struct {
	mu       sync.RWMutex
	bindings map[core.ConnectionID]Binding
	insecure map[core.ConnectionID]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[core.ConnectionID]Binding),
		insecure: make(map[core.ConnectionID]struct{}),
	}
}

// MarkInsecure grants cid trusted status until Forget.
func (r *Registry) MarkInsecure(cid core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insecure[cid] = struct{}{}
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("marked insecure")
}

func (r *Registry) IsInsecure(cid core.ConnectionID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.insecure[cid]
	return ok
}

func (r *Registry) Bind(cid core.ConnectionID, b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[cid] = b
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("room", string(b.RoomID)).Str("user", b.Name).Msg("bound connection")
}

func (r *Registry) Get(cid core.ConnectionID) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[cid]
	return b, ok
}

// Unbind drops the room binding and keeps the trusted mark.
func (r *Registry) Unbind(cid core.ConnectionID) (Binding, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[cid]
	delete(r.bindings, cid)
	if ok {
		log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("unbound connection")
	}
	return b, ok
}

// Forget removes every trace of cid.
func (r *Registry) Forget(cid core.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bindings, cid)
	delete(r.insecure, cid)
}

func (r *Registry) RoomOf(cid core.ConnectionID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[cid]
	if !ok || b.RoomID == "" {
		return "", false
	}
	return b.RoomID, true
}

func (r *Registry) MembersOfRoom(id domain.RoomID) []core.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.ConnectionID, 0, len(r.bindings))
	for cid, b := range r.bindings {
		if b.RoomID == id {
			out = append(out, cid)
		}
	}
	return out
}
