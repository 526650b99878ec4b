package http

import (
	"context"

	"github.com/dkeye/roomsignal/internal/adapters/signal"
	"github.com/dkeye/roomsignal/internal/config"
	transport "github.com/dkeye/roomsignal/internal/transport/http"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	sessionCookie = "RoomSignalSession"
	clientIDField = "cid"
	// AdminUser is the basic auth user of the admin API.
	AdminUser = "OPENVIDUAPP"
)

// ClientIDMiddleware gives every browser a stable id kept in the session cookie.
func ClientIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		id, _ := s.Get(clientIDField).(string)
		if id == "" {
			id = uuid.NewString()
			s.Set(clientIDField, id)
			if err := s.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
			}
		}
		c.Set(signal.ClientIDKey, id)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, sig *signal.SignalWSController, admin *transport.AdminHandlers) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.CookieSecret))
	r.Use(sessions.Sessions(sessionCookie, store))
	r.Use(ClientIDMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/openvidu", func(c *gin.Context) {
		sig.HandleSignal(ctx, c)
	})

	if cfg.AdminSecret == "" {
		log.Warn().Str("module", "adapters.http").Msg("admin secret not set, admin API disabled")
	} else {
		api := r.Group("/api", gin.BasicAuth(gin.Accounts{AdminUser: cfg.AdminSecret}))
		admin.Register(api)
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
