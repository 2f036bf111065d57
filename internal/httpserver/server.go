// internal/httpserver/server.go
//
// HTTP server wiring for the lyrics guessing game.
// Responsibilities:
//   - Router + middleware (request IDs, access logs, panic recovery,
//     timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Game endpoints under /game (one session per player cookie).
//   - Leaderboard endpoints under /leaderboard, catalog under /songs.
//
// Notes:
//   - Player-facing failures (no round, no hint, unknown performer...) are
//     answered with a 4xx and a short message; they are never logged as
//     server errors.
//   - CORS is origin-aware and credentials-enabled so the session cookie
//     works from the client origin.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/Crystallen1/lyricsWordle/internal/game"
	"github.com/Crystallen1/lyricsWordle/internal/leaderboard"
	"github.com/Crystallen1/lyricsWordle/internal/songs"
	"github.com/Crystallen1/lyricsWordle/internal/store"
)

// Options bundles the server's collaborators and settings.
type Options struct {
	Sessions store.Store
	Catalog  *songs.Catalog
	Board    *leaderboard.Board
	Rand     game.Source // nil uses the process-wide generator

	DailySalt     string
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	SecureCookies bool

	Registry *prometheus.Registry // nil disables /metrics
}

// Server bundles router, session registry, catalog and leaderboard.
type Server struct {
	r       *chi.Mux
	opts    Options
	metrics *metrics
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 14 * 24 * time.Hour
	}
	s := &Server{r: chi.NewRouter(), opts: opts, metrics: newMetrics(opts.Registry, opts.Sessions)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "lyrics-guess",
			"endpoints": []string{
				"/health", "POST /game/new", "POST /game/guess", "POST /game/hint",
				"POST /game/reveal/performer", "POST /game/reveal/answer", "GET /game",
				"GET /leaderboard", "GET /leaderboard/stats", "GET /leaderboard/top",
				"GET /leaderboard/{songId}", "GET /songs/performers",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "songs": opts.Catalog.Len()})
	})
	if opts.Registry != nil {
		s.r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	s.mountGame(s.r)
	s.mountLeaderboard(s.r)
	s.mountSongs(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorRes{Error: "not_found", Message: r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("req_id", chimw.GetReqID(r.Context())).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- responses ---------------------------------

// errorRes is the body of every non-2xx JSON response.
type errorRes struct {
	Error   string         `json:"error"`
	Message string         `json:"message,omitempty"`
	State   *game.Snapshot `json:"state,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeGameError maps engine errors to HTTP. Player errors carry the
// current snapshot so the client can re-render.
func writeGameError(w http.ResponseWriter, r *http.Request, err error, snap *game.Snapshot) {
	var status int
	var code string
	switch {
	case errors.Is(err, songs.ErrNoSongs):
		status, code = http.StatusNotFound, "no_songs"
	case errors.Is(err, game.ErrNoRound):
		status, code = http.StatusConflict, "no_round"
	case errors.Is(err, game.ErrRoundOver):
		status, code = http.StatusConflict, "round_over"
	case errors.Is(err, game.ErrNoHint):
		status, code = http.StatusConflict, "no_hint"
	case errors.Is(err, game.ErrNotGuessable), errors.Is(err, game.ErrEmptyGuess):
		status, code = http.StatusBadRequest, "invalid_guess"
	case errors.Is(err, errBadJSON):
		status, code = http.StatusBadRequest, "bad_json"
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorRes{Error: "server_error"})
		return
	}
	writeJSON(w, status, errorRes{Error: code, Message: err.Error(), State: snap})
}
