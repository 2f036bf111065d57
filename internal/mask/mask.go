// internal/mask/mask.go
//
// Character classification and masking for song text.
// Responsibilities:
//   - Decide which runes are guessable (Han ideographs, ASCII letters).
//   - Produce the fully hidden view of a string.
//   - Produce the partially revealed view for a set of guessed runes.
//
// Notes:
//   - Matching is on the exact rune. Guessing 'A' never reveals 'a'.
//   - Digits, punctuation, whitespace and line breaks pass through untouched
//     and never count toward completion.
package mask

import "strings"

// Placeholder is the glyph shown in place of an unguessed character.
const Placeholder = '_'

// Han range used for guessable ideographs (the GB2312-era basic block).
const (
	hanFirst = '一'
	hanLast  = '龥'
)

// IsGuessable reports whether r is a character the player has to guess.
func IsGuessable(r rune) bool {
	switch {
	case r >= hanFirst && r <= hanLast:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	}
	return false
}

// Set holds guessed runes. The zero value is not usable; use NewSet.
type Set map[rune]struct{}

// NewSet returns a set containing rs.
func NewSet(rs ...rune) Set {
	s := make(Set, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

// Has reports whether r is in the set.
func (s Set) Has(r rune) bool {
	_, ok := s[r]
	return ok
}

// Add inserts r and reports whether it was newly added.
func (s Set) Add(r rune) bool {
	if _, ok := s[r]; ok {
		return false
	}
	s[r] = struct{}{}
	return true
}

// All hides every guessable character of text.
func All(text string) string {
	return Reveal(text, nil)
}

// Reveal shows the characters of text that are in guessed and hides every
// other guessable character. A nil set reveals nothing.
func Reveal(text string, guessed Set) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case guessed.Has(r):
			b.WriteRune(r)
		case IsGuessable(r):
			b.WriteRune(Placeholder)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Solved reports whether every guessable character of text is in guessed.
// Text without guessable characters is trivially solved.
func Solved(text string, guessed Set) bool {
	for _, r := range text {
		if IsGuessable(r) && !guessed.Has(r) {
			return false
		}
	}
	return true
}

// Distinct returns the guessable runes of text in order of first appearance.
func Distinct(text string) []rune {
	seen := make(Set)
	var out []rune
	for _, r := range text {
		if IsGuessable(r) && seen.Add(r) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of placeholders in a masked string.
func Count(masked string) int {
	return strings.Count(masked, string(Placeholder))
}
