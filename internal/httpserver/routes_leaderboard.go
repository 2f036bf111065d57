package httpserver

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/Crystallen1/lyricsWordle/internal/leaderboard"
)

// mountLeaderboard registers the read-only /leaderboard routes.
func (s *Server) mountLeaderboard(r chi.Router) {
	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", s.handleLeaderboard)
		r.Get("/stats", s.handleStats)
		r.Get("/top", s.handleTop)
		r.Get("/{songId}", s.handleRank)
	})
}

// mountSongs registers catalog lookups.
func (s *Server) mountSongs(r chi.Router) {
	r.Get("/songs/performers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.opts.Catalog.Performers())
	})
	r.Get("/songs/performers/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if v, err := url.PathUnescape(name); err == nil {
			name = v
		}
		titles := s.opts.Catalog.Titles(name)
		if len(titles) == 0 {
			writeJSON(w, http.StatusNotFound, errorRes{Error: "no_songs", Message: "no songs found for performer " + strconv.Quote(name)})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"performer": name, "titles": titles})
	})
}

// handleLeaderboard lists entries: ?q= filters on title/artist, ?sort= is
// "attempts" (default) or "time".
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := s.opts.Board.List(r.Context(), q.Get("q"), leaderboard.ParseSortKey(q.Get("sort")))
	if err != nil {
		s.serverError(w, r, err, "list leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st, err := s.opts.Board.Stats(r.Context())
	if err != nil {
		s.serverError(w, r, err, "leaderboard stats")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleTop returns the n best scores (?n=, default 10).
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	n := 10
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_limit"})
			return
		}
		n = parsed
	}
	top, err := s.opts.Board.Top(r.Context(), n)
	if err != nil {
		s.serverError(w, r, err, "leaderboard top")
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// rankRes is returned by GET /leaderboard/{songId}. Ranked is false for
// songs never completed.
type rankRes struct {
	SongID     int   `json:"songId"`
	Ranked     bool  `json:"ranked"`
	Rank       int   `json:"rank,omitempty"`
	MinGuesses int   `json:"minGuesses,omitempty"`
	Timestamp  int64 `json:"timestamp,omitempty"`
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "songId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: "bad_song_id"})
		return
	}
	res := rankRes{SongID: id}
	rank, ok, err := s.opts.Board.Rank(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err, "leaderboard rank")
		return
	}
	if ok {
		res.Ranked, res.Rank = true, rank
		if sc, found, err := s.opts.Board.Score(r.Context(), id); err == nil && found {
			res.MinGuesses, res.Timestamp = sc.MinGuesses, sc.Timestamp
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error, what string) {
	hlog.FromRequest(r).Error().Err(err).Msg(what)
	writeJSON(w, http.StatusInternalServerError, errorRes{Error: "server_error"})
}
