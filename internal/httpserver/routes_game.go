// internal/httpserver/routes_game.go
//
// Player actions. Every route runs inside the caller's session:
//   - POST /game/new              → start a round (random, performer, daily)
//   - POST /game/guess            → guess one character
//   - POST /game/hint             → reveal one random hidden character
//   - POST /game/reveal/performer → show the performer
//   - POST /game/reveal/answer    → show everything (round not scored)
//   - GET  /game                  → current view

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Crystallen1/lyricsWordle/internal/game"
)

var errBadJSON = errors.New("malformed request body")

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/", s.handleState)
		r.Post("/new", s.handleNew)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.handleHint)
		r.Post("/reveal/performer", s.handleRevealPerformer)
		r.Post("/reveal/answer", s.handleRevealAnswer)
	})
}

// stateRes is the session view returned by the round-level routes.
type stateRes struct {
	game.Snapshot
	Performer string `json:"performerFilter,omitempty"`
	Round     int    `json:"round"`
}

func viewOf(sess *game.Session, snap game.Snapshot) stateRes {
	return stateRes{Snapshot: snap, Performer: sess.Performer, Round: sess.Round}
}

// handleState returns the current view without changing anything.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var res stateRes
	err := s.withPlayer(r, func(sess *game.Session) error {
		res = viewOf(sess, sess.Snapshot())
		return nil
	})
	if err != nil {
		writeGameError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// newReq is the optional body of POST /game/new.
//   - mode "daily" plays today's song.
//   - performer, when present, replaces the performer filter ("" clears it).
//   - otherwise a random song under the current filter.
type newReq struct {
	Mode      string  `json:"mode"`
	Performer *string `json:"performer"`
}

func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	var req newReq
	if err := decodeOptional(r, &req); err != nil {
		writeGameError(w, r, err, nil)
		return
	}

	mode := "random"
	var res stateRes
	err := s.withPlayer(r, func(sess *game.Session) error {
		var snap game.Snapshot
		var err error
		switch {
		case req.Mode == "daily":
			mode = "daily"
			snap, err = sess.Daily(r.Context())
		case req.Performer != nil:
			mode = "performer"
			snap, err = sess.FilterPerformer(r.Context(), *req.Performer)
		default:
			snap, err = sess.Next(r.Context())
		}
		res = viewOf(sess, snap)
		return err
	})
	if err != nil {
		writeGameError(w, r, err, &res.Snapshot)
		return
	}
	s.metrics.roundStarted(mode)
	writeJSON(w, http.StatusOK, res)
}

// guessReq is the body of POST /game/guess. Only the first character of
// Char is used.
type guessReq struct {
	Char string `json:"char"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGameError(w, r, errBadJSON, nil)
		return
	}
	s.play(w, r, "guess", func(ctx context.Context, sess *game.Session) (game.Result, error) {
		return sess.Guess(ctx, req.Char)
	})
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	s.play(w, r, "hint", func(ctx context.Context, sess *game.Session) (game.Result, error) {
		return sess.Hint(ctx)
	})
}

// play runs a guess-like action and records its outcome.
func (s *Server) play(w http.ResponseWriter, r *http.Request, kind string, fn func(context.Context, *game.Session) (game.Result, error)) {
	var res game.Result
	err := s.withPlayer(r, func(sess *game.Session) error {
		var err error
		res, err = fn(r.Context(), sess)
		return err
	})
	s.metrics.guessed(kind, res, err)
	if err != nil {
		writeGameError(w, r, err, &res.Snapshot)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRevealPerformer(w http.ResponseWriter, r *http.Request) {
	s.reveal(w, r, (*game.Session).RevealPerformer)
}

func (s *Server) handleRevealAnswer(w http.ResponseWriter, r *http.Request) {
	s.reveal(w, r, (*game.Session).RevealAnswer)
}

func (s *Server) reveal(w http.ResponseWriter, r *http.Request, fn func(*game.Session, context.Context) (game.Snapshot, error)) {
	var res stateRes
	err := s.withPlayer(r, func(sess *game.Session) error {
		snap, err := fn(sess, r.Context())
		res = viewOf(sess, snap)
		return err
	})
	if err != nil {
		writeGameError(w, r, err, &res.Snapshot)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeOptional decodes a JSON body if one was sent.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errBadJSON
}
