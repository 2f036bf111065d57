// internal/songs/import.go
//
// Converts scraped music records into catalog songs.
//
// Input is a JSON array of
//
//	{"song_name": "...", "singer_name": ["..."], "lyric": "..."}
//
// A record is dropped when:
//   - it has more or fewer than one singer;
//   - its title contains "(" or ")", a Latin letter, or "串烧" (medley);
//   - nothing is left of its lyric once credit lines are stripped.
//
// Surviving records get sequential ids starting at firstID.

package songs

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// FirstImportID is where imported ids start. Lower ids are kept for the
// hand-curated songs.
const FirstImportID = 26

// RawSong is one scraped record.
type RawSong struct {
	SongName   string   `json:"song_name"`
	SingerName []string `json:"singer_name"`
	Lyric      string   `json:"lyric"`
}

// creditMarkers flag header lines (lyricist, composer, arranger...) that
// precede the lyric proper.
var creditMarkers = []string{"作词", "作曲", "编曲", "制作", "词：", "曲：", "-", "：", ":", "翻唱", "授权"}

// Import reads raw records from r and returns the playable ones.
func Import(r io.Reader, firstID int) ([]Song, error) {
	var raw []RawSong
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode raw songs: %w", err)
	}
	return Convert(raw, firstID), nil
}

// Convert filters and renumbers raw records.
func Convert(raw []RawSong, firstID int) []Song {
	out := make([]Song, 0, len(raw))
	for _, rs := range raw {
		if len(rs.SingerName) != 1 || SkipTitle(rs.SongName) {
			continue
		}
		lyric := CleanLyric(rs.Lyric)
		if strings.TrimSpace(lyric) == "" {
			continue
		}
		out = append(out, Song{
			ID:     firstID + len(out),
			Name:   rs.SongName,
			Artist: rs.SingerName[0],
			Lyric:  lyric,
		})
	}
	return out
}

// SkipTitle reports whether a title is unsuitable for play.
func SkipTitle(name string) bool {
	if strings.ContainsAny(name, "()") || strings.Contains(name, "串烧") {
		return true
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// CleanLyric drops the blank and credit lines at the head of a lyric.
// Escaped "\n" sequences are treated as line breaks. A lyric made only of
// such lines cleans to "".
func CleanLyric(lyric string) string {
	lines := strings.Split(strings.ReplaceAll(lyric, `\n`, "\n"), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || isCredit(line) {
			continue
		}
		return strings.Join(lines[i:], "\n")
	}
	return ""
}

func isCredit(line string) bool {
	for _, m := range creditMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
