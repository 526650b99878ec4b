package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/core"
	"github.com/dkeye/roomsignal/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Backend is the part of the room backend the admin API drives.
type Backend interface {
	Participants(ctx context.Context, roomID domain.RoomID) ([]domain.UserParticipant, error)
	CloseRoom(ctx context.Context, roomID domain.RoomID) int
	EvictParticipant(ctx context.Context, cid core.ConnectionID) error
}

type SessionRequest struct {
	CustomSessionID string `json:"customSessionId" binding:"omitempty,max=256,excludes=/"`
}

type TokenRequest struct {
	Session string `json:"session" binding:"required"`
	Role    string `json:"role" binding:"omitempty,oneof=SUBSCRIBER PUBLISHER MODERATOR"`
	Data    string `json:"data" binding:"max=10000"`
}

type ConnectionInfo struct {
	ConnectionID string `json:"connectionId"`
	Name         string `json:"name"`
	Metadata     string `json:"clientData,omitempty"`
	Streaming    bool   `json:"streaming"`
}

type SessionInfo struct {
	ID          string           `json:"id"`
	Connections []ConnectionInfo `json:"connections"`
}

type SessionList struct {
	NumberOfElements int           `json:"numberOfElements"`
	Content          []SessionInfo `json:"content"`
}

type AdminHandlers struct {
	tokens  *app.TokenStore
	backend Backend
}

func NewAdminHandlers(tokens *app.TokenStore, backend Backend) *AdminHandlers {
	return &AdminHandlers{tokens: tokens, backend: backend}
}

func (h *AdminHandlers) Register(g *gin.RouterGroup) {
	g.POST("/sessions", h.createSession)
	g.GET("/sessions", h.listSessions)
	g.GET("/sessions/:id", h.getSession)
	g.DELETE("/sessions/:id", h.deleteSession)
	g.DELETE("/sessions/:id/connection/:cid", h.evictConnection)
	g.POST("/tokens", h.createToken)
}

func (h *AdminHandlers) createSession(c *gin.Context) {
	var req SessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	id, err := h.tokens.CreateSession(domain.RoomID(req.CustomSessionID))
	if errors.Is(err, app.ErrSessionExists) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "id": id})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Info().Str("module", "transport.http").Str("session", string(id)).Msg("session created")
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *AdminHandlers) sessionInfo(c *gin.Context, id domain.RoomID) SessionInfo {
	ps, err := h.backend.Participants(c.Request.Context(), id)
	if err != nil {
		ps = nil
	}
	return SessionInfo{
		ID: string(id),
		Connections: lo.Map(ps, func(p domain.UserParticipant, _ int) ConnectionInfo {
			return ConnectionInfo{ConnectionID: string(p.ID), Name: p.Name, Metadata: p.Metadata, Streaming: p.Streaming}
		}),
	}
}

func (h *AdminHandlers) listSessions(c *gin.Context) {
	ids := h.tokens.ListSessions()
	content := lo.Map(ids, func(id domain.RoomID, _ int) SessionInfo { return h.sessionInfo(c, id) })
	c.JSON(http.StatusOK, SessionList{NumberOfElements: len(content), Content: content})
}

func (h *AdminHandlers) getSession(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	if !h.tokens.HasSession(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": app.ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, h.sessionInfo(c, id))
}

func (h *AdminHandlers) deleteSession(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	if err := h.tokens.DeleteSession(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	evicted := h.backend.CloseRoom(c.Request.Context(), id)
	log.Info().Str("module", "transport.http").Str("session", string(id)).Int("evicted", evicted).Msg("session closed")
	c.Status(http.StatusNoContent)
}

func (h *AdminHandlers) evictConnection(c *gin.Context) {
	id := domain.RoomID(c.Param("id"))
	cid := core.ConnectionID(c.Param("cid"))
	ps, err := h.backend.Participants(c.Request.Context(), id)
	if err != nil || !lo.ContainsBy(ps, func(p domain.UserParticipant) bool { return p.ID == domain.ParticipantID(cid) }) {
		c.JSON(http.StatusNotFound, gin.H{"error": "connection not found in session"})
		return
	}
	if err := h.backend.EvictParticipant(c.Request.Context(), cid); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandlers) createToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tok, err := h.tokens.IssueToken(domain.RoomID(req.Session), domain.Role(req.Role), req.Data)
	switch {
	case errors.Is(err, app.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tok)
}
