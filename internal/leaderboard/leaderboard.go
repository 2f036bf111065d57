// internal/leaderboard/leaderboard.go
//
// Best-attempt leaderboard, one entry per song.
// Responsibilities:
//   - Record a finished round, keeping only the lowest attempt count.
//   - Rank songs by best attempt count (fewer is better, rank 1 is best).
//   - Aggregate stats, top-N, and a filtered/sorted listing joined with
//     the song catalog for display.
//
// Durable state lives in a Backend (JSON file or SQLite). Board owns the
// compare-and-write so both backends share the same rules.

package leaderboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

// Score is the best finished round for one song.
type Score struct {
	SongID     int   `json:"songId"`
	MinGuesses int   `json:"minGuesses"`
	Timestamp  int64 `json:"timestamp"` // Unix milliseconds of the best round.
}

// Backend persists scores. Put must be durable before it returns.
type Backend interface {
	Get(ctx context.Context, songID int) (Score, bool, error)
	Put(ctx context.Context, s Score) error
	All(ctx context.Context) ([]Score, error)
}

// Catalog resolves song ids for display and filtering.
type Catalog interface {
	ByID(id int) (songs.Song, bool)
}

// Stats summarises the whole leaderboard.
type Stats struct {
	TotalEntries int     `json:"totalEntries"`
	AverageBest  float64 `json:"averageBest"` // rounded to one decimal
	BestOverall  int     `json:"bestOverall"`
}

// Entry is one row of a listing.
type Entry struct {
	Rank       int       `json:"rank"`
	SongID     int       `json:"songId"`
	SongName   string    `json:"songName"`
	Artist     string    `json:"artist"`
	Guesses    int       `json:"guesses"`
	Timestamp  int64     `json:"timestamp"`
	AchievedAt time.Time `json:"achievedAt"`
}

// SortKey selects the listing order.
type SortKey string

const (
	SortAttempts SortKey = "attempts" // fewest attempts first
	SortTime     SortKey = "time"     // most recent first
)

// ParseSortKey maps a query value to a SortKey. Unknown values sort by
// attempts; "guesses" is accepted as an alias.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time":
		return SortTime
	default:
		return SortAttempts
	}
}

// Board applies leaderboard rules over a Backend.
type Board struct {
	mu      sync.Mutex // serialises read-compare-write in UpdateScore
	backend Backend
	catalog Catalog
	now     func() time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithClock overrides the clock used to stamp new bests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// New returns a Board over backend. catalog may be nil if List is unused.
func New(backend Backend, catalog Catalog, opts ...Option) *Board {
	b := &Board{backend: backend, catalog: catalog, now: time.Now}
	for _, o := range opts {
		o(b)
	}
	return b
}

// UpdateScore records a finished round. It writes and returns true when
// the song has no entry yet or attempts beats the stored best; otherwise
// nothing changes and it returns false.
func (b *Board) UpdateScore(ctx context.Context, songID, attempts int) (bool, error) {
	if attempts <= 0 {
		return false, fmt.Errorf("leaderboard: invalid attempt count %d", attempts)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	cur, ok, err := b.backend.Get(ctx, songID)
	if err != nil {
		return false, fmt.Errorf("leaderboard: get %d: %w", songID, err)
	}
	if ok && attempts >= cur.MinGuesses {
		return false, nil
	}
	s := Score{SongID: songID, MinGuesses: attempts, Timestamp: b.now().UnixMilli()}
	if err := b.backend.Put(ctx, s); err != nil {
		return false, fmt.Errorf("leaderboard: put %d: %w", songID, err)
	}
	return true, nil
}

// Score returns the stored best for songID.
func (b *Board) Score(ctx context.Context, songID int) (Score, bool, error) {
	return b.backend.Get(ctx, songID)
}

// Rank returns the 1-based rank of songID, or false if it has no entry.
// Equal scores are ordered by song id.
func (b *Board) Rank(ctx context.Context, songID int) (int, bool, error) {
	all, err := b.ranked(ctx)
	if err != nil {
		return 0, false, err
	}
	for i, s := range all {
		if s.SongID == songID {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

// Top returns the n best scores.
func (b *Board) Top(ctx context.Context, n int) ([]Score, error) {
	all, err := b.ranked(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(all) {
		all = all[:n]
	}
	return all, nil
}

// Stats returns aggregate figures; all zero when the board is empty.
func (b *Board) Stats(ctx context.Context) (Stats, error) {
	all, err := b.backend.All(ctx)
	if err != nil {
		return Stats{}, err
	}
	if len(all) == 0 {
		return Stats{}, nil
	}
	total, best := 0, math.MaxInt
	for _, s := range all {
		total += s.MinGuesses
		best = min(best, s.MinGuesses)
	}
	avg := float64(total) / float64(len(all))
	return Stats{
		TotalEntries: len(all),
		AverageBest:  math.Round(avg*10) / 10,
		BestOverall:  best,
	}, nil
}

// List returns leaderboard rows joined with the catalog. A non-empty filter
// keeps songs whose name or artist contains it, ignoring case. Songs no
// longer in the catalog are left out. Ranks follow the final order.
func (b *Board) List(ctx context.Context, filter string, key SortKey) ([]Entry, error) {
	all, err := b.ranked(ctx)
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter))

	out := make([]Entry, 0, len(all))
	for _, s := range all {
		if b.catalog == nil {
			break
		}
		song, ok := b.catalog.ByID(s.SongID)
		if !ok {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(song.Name), needle) &&
			!strings.Contains(fold.String(song.Artist), needle) {
			continue
		}
		out = append(out, Entry{
			SongID:     s.SongID,
			SongName:   song.Name,
			Artist:     song.Artist,
			Guesses:    s.MinGuesses,
			Timestamp:  s.Timestamp,
			AchievedAt: time.UnixMilli(s.Timestamp).UTC(),
		})
	}

	if key == SortTime {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// ranked returns every score ordered best first, ties by song id.
func (b *Board) ranked(ctx context.Context) ([]Score, error) {
	all, err := b.backend.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].MinGuesses != all[j].MinGuesses {
			return all[i].MinGuesses < all[j].MinGuesses
		}
		return all[i].SongID < all[j].SongID
	})
	return all, nil
}
