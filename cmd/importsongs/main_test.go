package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

func TestImportWritesLoadableCatalog(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "music.json")
	out := filepath.Join(dir, "songs.json")
	require.NoError(t, os.WriteFile(in, []byte(`[
		{"song_name": "晚风", "singer_name": ["李四"], "lyric": "作词：李四\n晚风吹过"},
		{"song_name": "晚风 (Live)", "singer_name": ["李四"], "lyric": "晚风吹过"}
	]`), 0o644))

	require.NoError(t, newApp().Run([]string{"importsongs", "--in", in, "--out", out, "--first-id", "100"}))

	cat := songs.Load(out)
	require.Equal(t, 1, cat.Len())
	got, ok := cat.ByID(100)
	require.True(t, ok)
	assert.Equal(t, songs.Song{ID: 100, Name: "晚风", Artist: "李四", Lyric: "晚风吹过"}, got)
}

func TestImportMissingInput(t *testing.T) {
	err := newApp().Run([]string{"importsongs", "--in", filepath.Join(t.TempDir(), "nope.json")})
	assert.Error(t, err)
}
