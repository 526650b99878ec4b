package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidRole     = errors.New("invalid role")
	ErrTokenInUse      = errors.New("token already bound to a participant")
)

const sessionPrefix = "ses_"

type tokenClaims struct {
	Room string      `json:"room"`
	Role domain.Role `json:"role"`
	Data string      `json:"data,omitempty"`
	jwt.RegisteredClaims
}

type sessionRecord struct {
	createdAt time.Time
	tokens    map[string]*domain.Token
	users     map[string]string
}

// TokenStore issues and tracks per-room credentials. A token is accepted
// only while its session exists and the token is registered in it.
type TokenStore struct {
	mu       sync.RWMutex
	key      []byte
	ttl      time.Duration
	sessions map[domain.RoomID]*sessionRecord
}

// NewTokenStore signs tokens with key. An empty key is replaced by a random one.
func NewTokenStore(key []byte, ttl time.Duration) *TokenStore {
	if len(key) == 0 {
		id := uuid.New()
		key = id[:]
	}
	return &TokenStore{
		key:      key,
		ttl:      ttl,
		sessions: make(map[domain.RoomID]*sessionRecord),
	}
}

// CreateSession registers a session. An empty id gets a generated one.
func (s *TokenStore) CreateSession(id domain.RoomID) (domain.RoomID, error) {
	if id == "" {
		id = domain.RoomID(sessionPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return id, ErrSessionExists
	}
	s.sessions[id] = &sessionRecord{
		createdAt: time.Now(),
		tokens:    make(map[string]*domain.Token),
		users:     make(map[string]string),
	}
	log.Info().Str("module", "app.tokens").Str("session", string(id)).Msg("session created")
	return id, nil
}

func (s *TokenStore) HasSession(id domain.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

func (s *TokenStore) ListSessions() []domain.RoomID {
	s.mu.RLock()
	out := make([]domain.RoomID, 0, len(s.sessions))
	for id := range s.sessions {
		out = append(out, id)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DeleteSession revokes the session with all its tokens.
func (s *TokenStore) DeleteSession(id domain.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	log.Info().Str("module", "app.tokens").Str("session", string(id)).Msg("session deleted")
	return nil
}

func (s *TokenStore) IssueToken(id domain.RoomID, role domain.Role, data string) (*domain.Token, error) {
	if role == "" {
		role = domain.RolePublisher
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	claims := &tokenClaims{
		Room: string(id),
		Role: role,
		Data: data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   "roomsignal",
		},
	}
	if s.ttl != 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	tok := &domain.Token{Value: value, RoomID: id, Role: role, ServerData: data}
	rec.tokens[value] = tok
	log.Info().Str("module", "app.tokens").Str("session", string(id)).Str("role", string(role)).Msg("token issued")
	cp := *tok
	return &cp, nil
}

// Validate checks the signature, expiry and room of value and that it was
// issued by this store.
func (s *TokenStore) Validate(value string, id domain.RoomID) (*domain.Token, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Room != string(id) {
		return nil, ErrInvalidToken
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	tok, ok := rec.tokens[value]
	if !ok {
		return nil, ErrInvalidToken
	}
	cp := *tok
	return &cp, nil
}

// BindUserName allocates a fresh participant name for the token. A token
// holds one name at a time until ReleaseUserName.
func (s *TokenStore) BindUserName(value string, id domain.RoomID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return "", ErrSessionNotFound
	}
	tok, ok := rec.tokens[value]
	if !ok {
		return "", ErrInvalidToken
	}
	if tok.UserName != "" {
		return "", ErrTokenInUse
	}
	name := domain.NewUserName()
	for _, taken := rec.users[name]; taken; _, taken = rec.users[name] {
		name = domain.NewUserName()
	}
	if err := domain.ValidateUserName(name); err != nil {
		return "", fmt.Errorf("generated user name %q: %w", name, err)
	}
	tok.UserName = name
	rec.users[name] = value
	return name, nil
}

func (s *TokenStore) SetClientMetadata(userName string, id domain.RoomID, metadata string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tok, err := s.byUserLocked(userName, id)
	if err != nil {
		return err
	}
	tok.ClientMetadata = metadata
	return nil
}

// TokenOf returns the token a participant name was bound from.
func (s *TokenStore) TokenOf(userName string, id domain.RoomID) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, err := s.byUserLocked(userName, id)
	if err != nil {
		return nil, err
	}
	cp := *tok
	return &cp, nil
}

// ReleaseUserName frees the participant name after it left the room.
func (s *TokenStore) ReleaseUserName(userName string, id domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return
	}
	if value, ok := rec.users[userName]; ok {
		if tok, ok := rec.tokens[value]; ok && tok.UserName == userName {
			tok.UserName = ""
			tok.ClientMetadata = ""
		}
		delete(rec.users, userName)
	}
}

func (s *TokenStore) byUserLocked(userName string, id domain.RoomID) (*domain.Token, error) {
	rec, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	value, ok := rec.users[userName]
	if !ok {
		return nil, ErrInvalidToken
	}
	tok, ok := rec.tokens[value]
	if !ok {
		return nil, ErrInvalidToken
	}
	return tok, nil
}
