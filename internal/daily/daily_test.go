package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	// 02:00 in UTC+8 is still the previous day in UTC.
	ts := time.Date(2026, 10, 16, 2, 0, 0, 0, loc)
	assert.Equal(t, "2026-10-15", DateKey(ts))
}

func TestSongIndex(t *testing.T) {
	day := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	t.Run("stable within a day", func(t *testing.T) {
		later := day.Add(10 * time.Hour)
		assert.Equal(t, SongIndex(day, "salt", 50), SongIndex(later, "salt", 50))
	})

	t.Run("in range", func(t *testing.T) {
		for d := 0; d < 30; d++ {
			i := SongIndex(day.AddDate(0, 0, d), "salt", 7)
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, 7)
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		assert.Equal(t, 0, SongIndex(day, "salt", 0))
	})
}

func TestSong(t *testing.T) {
	day := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	cat := songs.New([]songs.Song{
		{ID: 1, Name: "爱你", Artist: "张三", Lyric: "我爱你"},
		{ID: 2, Name: "晚风", Artist: "李四", Lyric: "晚风吹过"},
		{ID: 3, Name: "夜车", Artist: "赵六", Lyric: "夜车向北"},
	})

	got, err := Song(cat, day, "salt")
	require.NoError(t, err)
	assert.Equal(t, cat.At(SongIndex(day, "salt", 3)), got)

	again, err := Song(cat, day.Add(12*time.Hour), "salt")
	require.NoError(t, err)
	assert.Equal(t, got.ID, again.ID)

	_, err = Song(songs.New(nil), day, "salt")
	assert.ErrorIs(t, err, songs.ErrNoSongs)
}
