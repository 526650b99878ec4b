package app

import (
	"sort"
	"sync"

	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/dkeye/roomsignal/internal/telemetry"
	"github.com/rs/zerolog/log"
)

type RoomManager struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*Room
}

func NewRoomManager() *RoomManager {
	return &RoomManager{rooms: make(map[domain.RoomID]*Room)}
}

func (f *RoomManager) GetOrCreate(id domain.RoomID) *Room {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	room = NewRoom(id)
	f.rooms[id] = room
	telemetry.RoomOpened()
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room created")
	return room
}

func (f *RoomManager) Get(id domain.RoomID) (*Room, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManager) List() []domain.RoomInfo {
	f.mu.RLock()
	out := make([]domain.RoomInfo, 0, len(f.rooms))
	for id, r := range f.rooms {
		out = append(out, domain.RoomInfo{ID: id, Participants: r.MemberCount()})
	}
	f.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CloseIfEmpty drops the room once its last member is gone.
func (f *RoomManager) CloseIfEmpty(id domain.RoomID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok || room.MemberCount() > 0 {
		return false
	}
	delete(f.rooms, id)
	telemetry.RoomClosed()
	log.Info().Str("module", "app.rooms").Str("room", string(id)).Msg("room closed")
	return true
}

func (f *RoomManager) StopRoom(id domain.RoomID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; !ok {
		return
	}
	delete(f.rooms, id)
	telemetry.RoomClosed()
}
