// internal/game/session.go
//
// Session is one player's game context: the current round, the performer
// filter, and the collaborators a round needs (catalog, leaderboard,
// random source). Each player action maps to one method.
//
// A Session is not safe for concurrent use; the session store serialises
// access.

package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/Crystallen1/lyricsWordle/internal/daily"
	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

// Catalog supplies songs to a session.
type Catalog interface {
	Random(src songs.Source, performer string) (songs.Song, error)
	Len() int
	At(i int) songs.Song
}

// Scorer receives finished rounds.
type Scorer interface {
	UpdateScore(ctx context.Context, songID, attempts int) (bool, error)
	Rank(ctx context.Context, songID int) (int, bool, error)
}

// Deps are the collaborators shared by every session.
type Deps struct {
	Catalog   Catalog
	Board     Scorer
	Rand      Source // also used for song picks
	DailySalt string
	Now       func() time.Time
}

// Session is a single player's game context.
type Session struct {
	ID        string
	Performer string // exact-match performer filter for Next; empty means any
	Round     int    // rounds started in this session

	game *Game
	deps Deps
}

// Result is what the player sees after a guess or hint.
type Result struct {
	Snapshot
	Char    string `json:"char,omitempty"`
	Repeat  bool   `json:"repeat,omitempty"`
	Absent  bool   `json:"absent,omitempty"`
	Won     bool   `json:"won,omitempty"`
	NewBest bool   `json:"newBest,omitempty"`
	Rank    int    `json:"rank,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewSession returns a session with no round started.
func NewSession(id string, deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Session{ID: id, game: New(), deps: deps}
}

// Game exposes the current round.
func (s *Session) Game() *Game { return s.game }

// Snapshot returns the current view.
func (s *Session) Snapshot() Snapshot { return s.game.Snapshot() }

// Next starts a round on a random song, honouring the performer filter.
// On failure the current round is left as is.
func (s *Session) Next(ctx context.Context) (Snapshot, error) {
	song, err := s.deps.Catalog.Random(s.source(), s.Performer)
	if err != nil {
		return s.Snapshot(), err
	}
	s.start(song)
	return s.Snapshot(), nil
}

// FilterPerformer sets the performer filter and starts a round on one of
// that performer's songs. If the performer has no songs, both the filter
// and the current round are left unchanged. An empty name clears the
// filter.
func (s *Session) FilterPerformer(ctx context.Context, performer string) (Snapshot, error) {
	performer = strings.TrimSpace(performer)
	song, err := s.deps.Catalog.Random(s.source(), performer)
	if err != nil {
		return s.Snapshot(), err
	}
	s.Performer = performer
	s.start(song)
	return s.Snapshot(), nil
}

// Daily starts a round on today's song.
func (s *Session) Daily(ctx context.Context) (Snapshot, error) {
	song, err := daily.Song(s.deps.Catalog, s.deps.Now(), s.deps.DailySalt)
	if err != nil {
		return s.Snapshot(), err
	}
	s.start(song)
	return s.Snapshot(), nil
}

// Guess applies the first character of input.
func (s *Session) Guess(ctx context.Context, input string) (Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{Snapshot: s.Snapshot()}, ErrEmptyGuess
	}
	r, _ := utf8.DecodeRuneInString(input)
	out, err := s.game.Guess(r)
	if err != nil {
		return Result{Snapshot: s.Snapshot()}, err
	}
	return s.settle(ctx, out), nil
}

// Hint reveals one random hidden character as if it were guessed.
func (s *Session) Hint(ctx context.Context) (Result, error) {
	out, err := s.game.Hint(s.source())
	if err != nil {
		return Result{Snapshot: s.Snapshot()}, err
	}
	res := s.settle(ctx, out)
	if res.Message == "" {
		res.Message = fmt.Sprintf("Hint: %q", res.Char)
	}
	return res, nil
}

// RevealPerformer shows the performer.
func (s *Session) RevealPerformer(ctx context.Context) (Snapshot, error) {
	err := s.game.RevealPerformer()
	return s.Snapshot(), err
}

// RevealAnswer shows everything. The round is not scored afterwards.
func (s *Session) RevealAnswer(ctx context.Context) (Snapshot, error) {
	err := s.game.RevealAnswer()
	return s.Snapshot(), err
}

func (s *Session) start(song songs.Song) {
	s.game.Start(song)
	s.Round++
}

// settle turns a game outcome into a player result, reporting wins to the
// leaderboard. Leaderboard failures are logged and do not fail the guess.
func (s *Session) settle(ctx context.Context, out Outcome) Result {
	res := Result{
		Snapshot: s.Snapshot(),
		Char:     string(out.Char),
		Repeat:   out.Repeat,
		Absent:   out.Absent,
		Won:      s.game.State == StateWon,
	}
	if out.Absent {
		res.Message = fmt.Sprintf("Character %q is not in this song.", res.Char)
	}
	if !res.Won {
		return res
	}

	song := s.game.Song
	res.Message = fmt.Sprintf("You got it: %s! %d guesses.", song.Name, s.game.Attempts)
	if out.Won == nil || s.deps.Board == nil {
		return res
	}

	newBest, err := s.deps.Board.UpdateScore(ctx, out.Won.SongID, out.Won.Attempts)
	if err != nil {
		log.Warn().Err(err).Int("songId", out.Won.SongID).Msg("record score")
		return res
	}
	res.NewBest = newBest
	if rank, ok, err := s.deps.Board.Rank(ctx, out.Won.SongID); err == nil && ok {
		res.Rank = rank
	} else if err != nil {
		log.Warn().Err(err).Int("songId", out.Won.SongID).Msg("rank lookup")
	}
	if newBest {
		res.Message += fmt.Sprintf(" New best, rank #%d.", res.Rank)
	}
	log.Info().
		Str("session", s.ID).
		Int("songId", out.Won.SongID).
		Int("attempts", out.Won.Attempts).
		Bool("newBest", newBest).
		Msg("round won")
	return res
}

func (s *Session) source() Source {
	if s.deps.Rand == nil {
		return defaultSource{}
	}
	return s.deps.Rand
}

// IsPlayerError reports whether err is a non-fatal signal meant for the
// player rather than a server fault.
func IsPlayerError(err error) bool {
	for _, e := range []error{ErrNoRound, ErrRoundOver, ErrNoHint, ErrNotGuessable, ErrEmptyGuess, songs.ErrNoSongs} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
