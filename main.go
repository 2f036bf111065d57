package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Crystallen1/lyricsWordle/internal/httpserver"
	"github.com/Crystallen1/lyricsWordle/internal/leaderboard"
	"github.com/Crystallen1/lyricsWordle/internal/songs"
	"github.com/Crystallen1/lyricsWordle/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := songs.Load(cfg.SongsFile)
	log.Info().Int("songs", catalog.Len()).Msg("catalog loaded")

	backend, closeBackend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open leaderboard")
	}
	defer closeBackend()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sessions := store.NewMemoryStore()
	srv := httpserver.New(httpserver.Options{
		Sessions:      sessions,
		Catalog:       catalog,
		Board:         leaderboard.New(backend, catalog),
		DailySalt:     cfg.DailySalt,
		SessionSecret: cfg.SessionSecret,
		SessionTTL:    cfg.SessionTTL,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.Production,
		Registry:      reg,
	})
	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET not set; using development secret")
	}

	go sweepSessions(ctx, sessions, cfg.SessionTTL)

	hs := &http.Server{Addr: ":" + cfg.Port, Handler: srv.Router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = hs.Shutdown(shutdownCtx)
	}()

	log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend).Msg("starting lyrics server")
	if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// openBackend opens the configured leaderboard storage.
func openBackend(ctx context.Context, cfg config) (leaderboard.Backend, func(), error) {
	if cfg.Backend == "sqlite" {
		db, err := leaderboard.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
	return leaderboard.OpenJSON(cfg.LeaderboardFile), func() {}, nil
}

// sweepSessions drops idle sessions until ctx is done.
func sweepSessions(ctx context.Context, s store.Store, ttl time.Duration) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Debug().Int("removed", n).Msg("swept idle sessions")
			}
		}
	}
}
