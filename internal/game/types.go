// internal/game/types.go
//
// Core type definitions for the guessing engine.
// Defines:
//   - State: lifecycle of a single round (idle/active/won).
//   - Game: state of one round.
//   - Outcome / RoundWon: what a guess did.
//   - Snapshot: the read-only view handed to the presentation layer.

package game

import (
	"errors"

	"github.com/Crystallen1/lyricsWordle/internal/mask"
	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

// State is the lifecycle position of a round.
type State string

const (
	StateIdle   State = "idle"
	StateActive State = "active"
	StateWon    State = "won"
)

// Errors reported to the player. None of them change round state.
var (
	ErrNoRound      = errors.New("no active round")
	ErrRoundOver    = errors.New("round already won")
	ErrNoHint       = errors.New("no hint available")
	ErrNotGuessable = errors.New("character cannot be guessed")
	ErrEmptyGuess   = errors.New("empty guess")
)

// Game holds the state of a single round.
type Game struct {
	Song              songs.Song // Song being guessed; zero while idle.
	State             State
	Attempts          int    // Distinct characters guessed, hints included.
	Guesses           []rune // Guessed characters in the order they were entered.
	PerformerRevealed bool   // Performer shown in full regardless of guesses.
	AnswerRevealed    bool   // Player peeked; the round will not be scored.

	guessed mask.Set
}

// RoundWon is emitted once when the title becomes fully revealed.
type RoundWon struct {
	SongID   int
	Attempts int
}

// Outcome describes the effect of one guess or hint.
type Outcome struct {
	Char   rune
	Repeat bool      // Char had been guessed before; no attempt consumed.
	Absent bool      // Char occurs in none of title, performer or lyric.
	Won    *RoundWon // Set on the guess that completed the title, unless the answer was peeked.
}

// Snapshot is the presentation view of a round.
type Snapshot struct {
	SongID            int      `json:"songId,omitempty"`
	State             State    `json:"state"`
	Title             string   `json:"title"`
	Performer         string   `json:"performer"`
	Lyric             string   `json:"lyric"`
	Guesses           []string `json:"guesses"`
	Attempts          int      `json:"attempts"`
	PerformerRevealed bool     `json:"performerRevealed"`
	AnswerRevealed    bool     `json:"answerRevealed"`
}
