// Package daily picks the song of the day.
//
// Every player sees the same song on a given UTC date. The pick is keyed
// by an HMAC of the date so the schedule cannot be read ahead without the
// salt, and it moves only when the catalog size changes.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

// Catalog is the part of songs.Catalog a daily pick needs.
type Catalog interface {
	Len() int
	At(i int) songs.Song
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Song returns the song of the day for t. An empty catalog gives
// songs.ErrNoSongs.
func Song(c Catalog, t time.Time, salt string) (songs.Song, error) {
	n := c.Len()
	if n == 0 {
		return songs.Song{}, songs.ErrNoSongs
	}
	return c.At(SongIndex(t, salt, n)), nil
}

// SongIndex maps the UTC date of t onto [0, n).
func SongIndex(t time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(t)))
	v := binary.BigEndian.Uint64(mac.Sum(nil))
	return int(v % uint64(n))
}
