// internal/songs/songs.go
//
// Song catalog for the game.
//
// Responsibilities:
//   - Load songs from a JSON document, or fall back to the embedded sample.
//   - Drop records that cannot be played (duplicate ids, titles with
//     nothing to guess).
//   - Supply random selection (optionally by performer), lookup by id,
//     and the per-performer title list.
//
// Document format:
//
//	{"songs": [{"id": 1, "name": "...", "artist": "...", "lyric": "..."}]}
//
// "lyrics" is accepted as an alias for "lyric".
//
// Loading behavior (Load):
//  1. Empty path → embedded assets/songs.json.
//  2. Path set but missing or unparseable → empty catalog, logged at warn.
//     The server still starts; every pick returns ErrNoSongs.
//
// A Catalog is read-only after construction and safe for concurrent use.
package songs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/Crystallen1/lyricsWordle/assets"
	"github.com/Crystallen1/lyricsWordle/internal/mask"
)

// ErrNoSongs is returned when no song matches a selection.
var ErrNoSongs = errors.New("no songs found")

// Song is a single playable record.
type Song struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Lyric  string `json:"lyric"`
}

// Source is the random source used for picks. *rand.Rand from
// math/rand/v2 satisfies it; tests inject a fixed sequence.
type Source interface {
	IntN(n int) int
}

// Catalog is an immutable list of songs.
type Catalog struct {
	songs []Song
	byID  map[int]int // song id → index in songs
}

// document mirrors the on-disk JSON shape.
type document struct {
	Songs []struct {
		Song
		Lyrics string `json:"lyrics"`
	} `json:"songs"`
}

// Load reads the catalog at path. See the package comment for fallbacks.
func Load(path string) *Catalog {
	if path == "" {
		data, err := assets.SongsJSON()
		if err != nil {
			log.Warn().Err(err).Msg("embedded song catalog unavailable")
			return New(nil)
		}
		c, err := Parse(data)
		if err != nil {
			log.Warn().Err(err).Msg("embedded song catalog unreadable")
			return New(nil)
		}
		return c
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("song catalog missing, starting empty")
		return New(nil)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("song catalog unreadable, starting empty")
		return New(nil)
	}
	return c
}

// Parse builds a catalog from a JSON document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("songs: decode: %w", err)
	}
	return fromDocument(doc), nil
}

// Decode builds a catalog from a JSON stream.
func Decode(r io.Reader) (*Catalog, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("songs: decode: %w", err)
	}
	return fromDocument(doc), nil
}

func fromDocument(doc document) *Catalog {
	list := make([]Song, 0, len(doc.Songs))
	for _, s := range doc.Songs {
		song := s.Song
		if song.Lyric == "" {
			song.Lyric = s.Lyrics
		}
		list = append(list, song)
	}
	return New(list)
}

// New builds a catalog from list, skipping unplayable records.
func New(list []Song) *Catalog {
	c := &Catalog{byID: make(map[int]int, len(list))}
	for _, s := range list {
		if _, dup := c.byID[s.ID]; dup {
			log.Warn().Int("songId", s.ID).Msg("duplicate song id skipped")
			continue
		}
		if len(mask.Distinct(s.Name)) == 0 {
			log.Warn().Int("songId", s.ID).Str("name", s.Name).Msg("song title has nothing to guess, skipped")
			continue
		}
		c.byID[s.ID] = len(c.songs)
		c.songs = append(c.songs, s)
	}
	return c
}

// Len returns the number of playable songs.
func (c *Catalog) Len() int { return len(c.songs) }

// At returns the i-th song in load order.
func (c *Catalog) At(i int) Song { return c.songs[i] }

// ByID looks up a song by id.
func (c *Catalog) ByID(id int) (Song, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Song{}, false
	}
	return c.songs[i], true
}

// Random picks a song uniformly. A non-empty performer restricts the pick
// to songs whose Artist equals it exactly.
func (c *Catalog) Random(src Source, performer string) (Song, error) {
	pool := c.songs
	if performer != "" {
		pool = c.ByPerformer(performer)
	}
	if len(pool) == 0 {
		if performer != "" {
			return Song{}, fmt.Errorf("%w for performer %q", ErrNoSongs, performer)
		}
		return Song{}, ErrNoSongs
	}
	return pool[src.IntN(len(pool))], nil
}

// ByPerformer returns the songs whose Artist equals performer, in load order.
func (c *Catalog) ByPerformer(performer string) []Song {
	var out []Song
	for _, s := range c.songs {
		if s.Artist == performer {
			out = append(out, s)
		}
	}
	return out
}

// Titles returns the song names of a performer.
func (c *Catalog) Titles(performer string) []string {
	list := c.ByPerformer(performer)
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Name)
	}
	return out
}

// Performers returns every distinct performer, sorted.
func (c *Catalog) Performers() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range c.songs {
		if _, ok := seen[s.Artist]; ok {
			continue
		}
		seen[s.Artist] = struct{}{}
		out = append(out, s.Artist)
	}
	sort.Strings(out)
	return out
}
