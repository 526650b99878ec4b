package app

import (
	"errors"
	"sync"
	"time"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var ErrMemberExists = errors.New("member already in room")

// Member is a participant admitted to a room with its media endpoints.
// Endpoints are owned by the member; whoever removes them must close them.
type Member struct {
	CID          core.ConnectionID
	Name         string
	Metadata     string
	Role         domain.Role
	DataChannels bool
	JoinedAt     time.Time

	mu          sync.RWMutex
	publisher   core.MediaConnection
	audioOnly   bool
	subscribers map[string]core.MediaConnection
}

func NewMember(cid core.ConnectionID, name, metadata string, role domain.Role, dataChannels bool) *Member {
	return &Member{
		CID:          cid,
		Name:         name,
		Metadata:     metadata,
		Role:         role,
		DataChannels: dataChannels,
		JoinedAt:     time.Now(),
		subscribers:  make(map[string]core.MediaConnection),
	}
}

func (m *Member) SetPublisher(mc core.MediaConnection, audioOnly bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publisher = mc
	m.audioOnly = audioOnly
}

func (m *Member) Publisher() core.MediaConnection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.publisher
}

// TakePublisher detaches the publisher endpoint and returns it.
func (m *Member) TakePublisher() core.MediaConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc := m.publisher
	m.publisher = nil
	m.audioOnly = false
	return mc
}

// ReleasePublisher detaches mc if it is still the member's publisher.
func (m *Member) ReleasePublisher(mc core.MediaConnection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publisher == nil || m.publisher != mc {
		return false
	}
	m.publisher = nil
	m.audioOnly = false
	return true
}

func (m *Member) Streaming() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.publisher != nil
}

func (m *Member) SetSubscriber(sender string, mc core.MediaConnection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers[sender] = mc
}

func (m *Member) Subscriber(sender string) (core.MediaConnection, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mc, ok := m.subscribers[sender]
	return mc, ok
}

func (m *Member) TakeSubscriber(sender string) (core.MediaConnection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mc, ok := m.subscribers[sender]
	delete(m.subscribers, sender)
	return mc, ok
}

// ReleaseSubscriber detaches mc if it still receives sender.
func (m *Member) ReleaseSubscriber(sender string, mc core.MediaConnection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.subscribers[sender]; !ok || cur != mc {
		return false
	}
	delete(m.subscribers, sender)
	return true
}

// TakeAll detaches every endpoint of the member.
func (m *Member) TakeAll() []core.MediaConnection {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := lo.Values(m.subscribers)
	if m.publisher != nil {
		out = append(out, m.publisher)
	}
	m.publisher = nil
	m.subscribers = make(map[string]core.MediaConnection)
	return out
}

func (m *Member) Snapshot() domain.UserParticipant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return domain.UserParticipant{
		ID:        domain.ParticipantID(m.CID),
		Name:      m.Name,
		Metadata:  m.Metadata,
		Streaming: m.publisher != nil,
		AudioOnly: m.audioOnly,
	}
}

// Room is a threadsafe in-memory room. Participant names and connection
// ids are unique within it.
type Room struct {
	id     domain.RoomID
	mu     sync.RWMutex
	byCID  map[core.ConnectionID]*Member
	byName map[string]core.ConnectionID
}

func NewRoom(id domain.RoomID) *Room {
	return &Room{
		id:     id,
		byCID:  make(map[core.ConnectionID]*Member),
		byName: make(map[string]core.ConnectionID),
	}
}

func (r *Room) ID() domain.RoomID { return r.id }

func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCID)
}

func (r *Room) AddMember(m *Member) error {
	_, err := r.Admit(m)
	return err
}

// Admit adds m and returns the participants that were present before it.
func (r *Room) Admit(m *Member) ([]domain.UserParticipant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byCID[m.CID]; ok {
		return nil, ErrMemberExists
	}
	if _, ok := r.byName[m.Name]; ok {
		return nil, ErrMemberExists
	}
	existing := make([]domain.UserParticipant, 0, len(r.byCID))
	for _, other := range r.byCID {
		existing = append(existing, other.Snapshot())
	}
	r.byCID[m.CID] = m
	r.byName[m.Name] = m.CID
	log.Info().Str("module", "app.room").Str("room", string(r.id)).Str("cid", string(m.CID)).Str("user", m.Name).Msg("member added")
	return existing, nil
}

func (r *Room) RemoveMember(cid core.ConnectionID) (*Member, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byCID[cid]
	if !ok {
		return nil, false
	}
	delete(r.byCID, cid)
	delete(r.byName, m.Name)
	log.Info().Str("module", "app.room").Str("room", string(r.id)).Str("cid", string(cid)).Msg("member removed")
	return m, true
}

func (r *Room) Member(cid core.ConnectionID) (*Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byCID[cid]
	return m, ok
}

func (r *Room) MemberByName(name string) (*Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cid, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.byCID[cid], true
}

func (r *Room) Members() []*Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.byCID)
}

func (r *Room) Participants() []domain.UserParticipant {
	return lo.Map(r.Members(), func(m *Member, _ int) domain.UserParticipant {
		return m.Snapshot()
	})
}
