package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/roomsignal/internal/adapters/http"
	"github.com/dkeye/roomsignal/internal/adapters/rtc"
	sig "github.com/dkeye/roomsignal/internal/adapters/signal"
	"github.com/dkeye/roomsignal/internal/app"
	"github.com/dkeye/roomsignal/internal/app/orch"
	"github.com/dkeye/roomsignal/internal/app/sfu"
	"github.com/dkeye/roomsignal/internal/config"
	"github.com/dkeye/roomsignal/internal/rpc"
	transport "github.com/dkeye/roomsignal/internal/transport/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Mode == "release" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	api, err := rtc.NewAPI(log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build webrtc api")
	}

	policy, err := app.PolicyByName(cfg.Backpressure)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backpressure policy")
	}

	hub := sig.NewHub()
	tokens := app.NewTokenStore([]byte(cfg.AdminSecret), cfg.TokenTTL)
	backend := orch.New(orch.Deps{
		Registry:       app.NewRegistry(),
		Rooms:          app.NewRoomManager(),
		Tokens:         tokens,
		Relays:         sfu.NewRelayManager(),
		Policy:         policy,
		Notifier:       hub,
		NewMedia:       rtc.NewFactory(api, rtc.Configuration(cfg.WebRTC.STUNURLs)),
		MetadataMaxLen: cfg.MetadataMaxLen,
	})
	defer backend.Stop()

	controller := rpc.NewController(backend, cfg, rpc.NewSessionStore(), log.Logger)
	dispatcher := rpc.NewDispatcher(controller, log.Logger)
	signalCtl := sig.NewSignalWSController(dispatcher, controller, hub,
		sig.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Interval),
		sig.Options{
			ReadLimit:  cfg.ReadLimit,
			PingPeriod: cfg.PingPeriod,
			PongWait:   cfg.PongWait(),
			WriteWait:  cfg.WriteWait,
			SendBuffer: cfg.SendBuffer,
		})

	r := router.SetupRouter(ctx, cfg, signalCtl, transport.NewAdminHandlers(tokens, backend))
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("signaling server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
