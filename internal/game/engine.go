// internal/game/engine.go
//
// Round state machine for the song guessing game.
// Responsibilities:
//   - Start rounds on a song and reset all per-round state.
//   - Apply single-character guesses and hints, keeping the attempt count
//     equal to the number of distinct characters guessed.
//   - Decide the win: the title alone governs it. Performer and lyric are
//     opened in full once the title is solved.
//   - Produce masked views for presentation.
//
// Transitions:
//
//	idle ──Start──▶ active ──title solved──▶ won ──Start──▶ active
//
// Guess, Hint and RevealPerformer need an active round. RevealAnswer also
// works on a won round. Start works from any state.
package game

import (
	"strings"

	"github.com/Crystallen1/lyricsWordle/internal/mask"
	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

// Source is the random source used to pick hints.
type Source interface {
	IntN(n int) int
}

// New returns an idle game.
func New() *Game {
	return &Game{State: StateIdle, guessed: mask.NewSet()}
}

// Start begins a round on s, discarding any previous round.
// A title with nothing to guess is won immediately and never scored.
func (g *Game) Start(s songs.Song) {
	*g = Game{
		Song:    s,
		State:   StateActive,
		Guesses: []rune{},
		guessed: mask.NewSet(),
	}
	if mask.Solved(s.Name, g.guessed) {
		g.State = StateWon
	}
}

// Guess applies a single character.
//
// Rules:
//   - The round must be active.
//   - r must be guessable; pass-through characters never cost an attempt.
//   - A character already guessed is accepted again but not counted.
//   - Once every guessable character of the title is guessed the round is
//     won and Outcome.Won is set (unless the answer was peeked).
func (g *Game) Guess(r rune) (Outcome, error) {
	if err := g.requireActive(); err != nil {
		return Outcome{}, err
	}
	if !mask.IsGuessable(r) {
		return Outcome{}, ErrNotGuessable
	}

	out := Outcome{Char: r}
	if g.guessed.Add(r) {
		g.Attempts++
		g.Guesses = append(g.Guesses, r)
	} else {
		out.Repeat = true
	}

	s := g.Song
	if !strings.ContainsRune(s.Name, r) && !strings.ContainsRune(s.Artist, r) && !strings.ContainsRune(s.Lyric, r) {
		out.Absent = true
	}

	if mask.Solved(s.Name, g.guessed) {
		g.State = StateWon
		if !g.AnswerRevealed {
			out.Won = &RoundWon{SongID: s.ID, Attempts: g.Attempts}
		}
	}
	return out, nil
}

// Hint guesses one character, chosen uniformly among the guessable
// characters of title, performer and lyric that are still hidden.
// Returns ErrNoHint when nothing is left to reveal, including on a won
// round whose every character has been guessed; any other won round
// gives ErrRoundOver.
func (g *Game) Hint(src Source) (Outcome, error) {
	if g.State == StateIdle {
		return Outcome{}, ErrNoRound
	}
	left := g.HintCandidates()
	if len(left) == 0 {
		return Outcome{}, ErrNoHint
	}
	if err := g.requireActive(); err != nil {
		return Outcome{}, err
	}
	return g.Guess(left[src.IntN(len(left))])
}

// HintCandidates lists the unguessed guessable characters of the song in
// order of first appearance (title, then performer, then lyric).
func (g *Game) HintCandidates() []rune {
	s := g.Song
	var left []rune
	for _, r := range mask.Distinct(s.Name + "\n" + s.Artist + "\n" + s.Lyric) {
		if !g.guessed.Has(r) {
			left = append(left, r)
		}
	}
	return left
}

// RevealPerformer shows the performer in full. Attempts and the win
// condition are untouched.
func (g *Game) RevealPerformer() error {
	if err := g.requireActive(); err != nil {
		return err
	}
	g.PerformerRevealed = true
	return nil
}

// RevealAnswer shows every field in full without changing state or
// attempts. A round whose answer was revealed is not scored: guessing may
// go on and can still complete the title, but that win emits no RoundWon.
func (g *Game) RevealAnswer() error {
	if g.State == StateIdle {
		return ErrNoRound
	}
	g.AnswerRevealed = true
	return nil
}

// Guessed reports whether r has been guessed this round.
func (g *Game) Guessed(r rune) bool { return g.guessed.Has(r) }

// Views returns the masked title, performer and lyric.
func (g *Game) Views() (title, performer, lyric string) {
	s := g.Song
	if g.State == StateWon || g.AnswerRevealed {
		return s.Name, s.Artist, s.Lyric
	}
	title = mask.Reveal(s.Name, g.guessed)
	performer = mask.Reveal(s.Artist, g.guessed)
	if g.PerformerRevealed {
		performer = s.Artist
	}
	lyric = mask.Reveal(s.Lyric, g.guessed)
	return title, performer, lyric
}

// Snapshot returns the presentation view of the round.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		State:             g.State,
		Guesses:           make([]string, 0, len(g.Guesses)),
		Attempts:          g.Attempts,
		PerformerRevealed: g.PerformerRevealed,
		AnswerRevealed:    g.AnswerRevealed,
	}
	if g.State == StateIdle {
		return snap
	}
	snap.SongID = g.Song.ID
	snap.Title, snap.Performer, snap.Lyric = g.Views()
	for _, r := range g.Guesses {
		snap.Guesses = append(snap.Guesses, string(r))
	}
	return snap
}

// requireActive maps non-active states to their player-facing error.
func (g *Game) requireActive() error {
	switch g.State {
	case StateActive:
		return nil
	case StateWon:
		return ErrRoundOver
	default:
		return ErrNoRound
	}
}
