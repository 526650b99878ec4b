package app

import (
	"testing"
	"time"

	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_IssueAndValidate(t *testing.T) {
	req := require.New(t)
	s := NewTokenStore([]byte("k"), time.Hour)

	id, err := s.CreateSession("")
	req.NoError(err)
	req.Contains(string(id), sessionPrefix)
	_, err = s.CreateSession(id)
	req.ErrorIs(err, ErrSessionExists)

	_, err = s.IssueToken("missing", domain.RolePublisher, "")
	req.ErrorIs(err, ErrSessionNotFound)
	_, err = s.IssueToken(id, "ADMIN", "")
	req.ErrorIs(err, ErrInvalidRole)

	tok, err := s.IssueToken(id, "", "server-data")
	req.NoError(err)
	req.Equal(domain.RolePublisher, tok.Role)

	got, err := s.Validate(tok.Value, id)
	req.NoError(err)
	req.Equal("server-data", got.ServerData)

	_, err = s.Validate(tok.Value, "other")
	req.ErrorIs(err, ErrInvalidToken)
	_, err = s.Validate("garbage", id)
	req.ErrorIs(err, ErrInvalidToken)

	foreign := NewTokenStore([]byte("other-key"), time.Hour)
	_, err = foreign.CreateSession(id)
	req.NoError(err)
	ftok, err := foreign.IssueToken(id, domain.RolePublisher, "")
	req.NoError(err)
	_, err = s.Validate(ftok.Value, id)
	req.ErrorIs(err, ErrInvalidToken)

	req.NoError(s.DeleteSession(id))
	_, err = s.Validate(tok.Value, id)
	req.ErrorIs(err, ErrSessionNotFound)
	req.ErrorIs(s.DeleteSession(id), ErrSessionNotFound)
}

func TestTokenStore_Expired(t *testing.T) {
	req := require.New(t)
	s := NewTokenStore([]byte("k"), -time.Minute)
	_, err := s.CreateSession("r1")
	req.NoError(err)
	tok, err := s.IssueToken("r1", domain.RoleSubscriber, "")
	req.NoError(err)
	_, err = s.Validate(tok.Value, "r1")
	req.ErrorIs(err, ErrInvalidToken)
}

func TestTokenStore_UserNames(t *testing.T) {
	req := require.New(t)
	s := NewTokenStore(nil, 0)
	_, err := s.CreateSession("r1")
	req.NoError(err)
	tok, err := s.IssueToken("r1", domain.RoleModerator, "")
	req.NoError(err)

	_, err = s.BindUserName("nope", "r1")
	req.ErrorIs(err, ErrInvalidToken)

	name, err := s.BindUserName(tok.Value, "r1")
	req.NoError(err)
	req.NoError(domain.ValidateUserName(name))
	req.NoError(s.SetClientMetadata(name, "r1", `{"x":1}`))
	_, err = s.BindUserName(tok.Value, "r1")
	req.ErrorIs(err, ErrTokenInUse)

	got, err := s.TokenOf(name, "r1")
	req.NoError(err)
	req.Equal(`{"x":1}`, got.ClientMetadata)
	req.Equal(domain.RoleModerator, got.Role)

	s.ReleaseUserName(name, "r1")
	_, err = s.TokenOf(name, "r1")
	req.ErrorIs(err, ErrInvalidToken)
	req.ErrorIs(s.SetClientMetadata(name, "r1", ""), ErrInvalidToken)

	again, err := s.BindUserName(tok.Value, "r1")
	req.NoError(err)
	req.NotEqual(name, again)
	got, err = s.TokenOf(again, "r1")
	req.NoError(err)
	req.Empty(got.ClientMetadata)
}
