package rpc

import (
	"sync"

	"github.com/dkeye/roomsignal/internal/core"
	"github.com/rs/zerolog/log"
)

// ParticipantSession caches a connection's room binding. The room name is a
// hint; the backend owns membership.
type ParticipantSession struct {
	mu              sync.RWMutex
	participantName string
	roomName        string
	dataChannels    bool
}

func (s *ParticipantSession) ParticipantName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participantName
}

// RoomName returns the cached room, or "" when the connection never joined.
func (s *ParticipantSession) RoomName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomName
}

func (s *ParticipantSession) DataChannels() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataChannels
}

func (s *ParticipantSession) Bind(participantName, roomName string, dataChannels bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participantName = participantName
	s.roomName = roomName
	s.dataChannels = dataChannels
}

// SessionStore holds one ParticipantSession per live connection.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[core.ConnectionID]*ParticipantSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[core.ConnectionID]*ParticipantSession)}
}

// GetOrCreate never installs two sessions for the same connection.
func (s *SessionStore) GetOrCreate(cid core.ConnectionID) *ParticipantSession {
	s.mu.RLock()
	sess, ok := s.sessions[cid]
	s.mu.RUnlock()
	if ok {
		return sess
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[cid]; ok {
		return sess
	}
	sess = &ParticipantSession{}
	s.sessions[cid] = sess
	log.Debug().Str("module", "rpc.session").Str("cid", string(cid)).Msg("created session")
	return sess
}

func (s *SessionStore) Get(cid core.ConnectionID) (*ParticipantSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[cid]
	return sess, ok
}

// Remove is called by the transport once the connection is torn down.
func (s *SessionStore) Remove(cid core.ConnectionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, cid)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Transaction is the per-request context handed from the transport to the
// handlers. A nil *Transaction means there is no live request, as when the
// connection has already closed.
type Transaction struct {
	Request core.ParticipantRequest
	store   *SessionStore
}

func NewTransaction(store *SessionStore, req core.ParticipantRequest) *Transaction {
	return &Transaction{Request: req, store: store}
}

func (t *Transaction) Session() *ParticipantSession {
	return t.store.GetOrCreate(t.Request.ConnectionID)
}
