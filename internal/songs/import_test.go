package songs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipTitle(t *testing.T) {
	cases := []struct {
		name string
		skip bool
	}{
		{"晚风", false},
		{"晚风 (Live)", true},
		{"晚风(伴奏)", true},
		{"Love 爱你", true},
		{"经典串烧", true},
		{"夜车·一九九八", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.skip, SkipTitle(c.name))
		})
	}
}

func TestCleanLyric(t *testing.T) {
	t.Run("drops leading credits", func(t *testing.T) {
		in := "晚风 - 李四\n作词：李四\n作曲：王五\n\n晚风吹过\n海边的信"
		assert.Equal(t, "晚风吹过\n海边的信", CleanLyric(in))
	})

	t.Run("escaped newlines", func(t *testing.T) {
		assert.Equal(t, "晚风吹过\n海边", CleanLyric(`编曲 赵六\n晚风吹过\n海边`))
	})

	t.Run("credits after the first lyric line stay", func(t *testing.T) {
		assert.Equal(t, "晚风吹过\n翻唱：某人", CleanLyric("晚风吹过\n翻唱：某人"))
	})

	t.Run("only credits", func(t *testing.T) {
		assert.Empty(t, CleanLyric("作词：李四\n作曲：王五\n"))
	})
}

func TestImport(t *testing.T) {
	in := `[
		{"song_name": "晚风", "singer_name": ["李四"], "lyric": "作词：李四\\n晚风吹过"},
		{"song_name": "合唱", "singer_name": ["李四", "王五"], "lyric": "我们一起唱"},
		{"song_name": "无名", "singer_name": [], "lyric": "无人唱"},
		{"song_name": "晚风 (Live)", "singer_name": ["李四"], "lyric": "晚风吹过"},
		{"song_name": "空白", "singer_name": ["赵六"], "lyric": "作曲：赵六\\n\\n"},
		{"song_name": "夜车", "singer_name": ["赵六"], "lyric": "夜车向北"}
	]`
	got, err := Import(strings.NewReader(in), FirstImportID)
	require.NoError(t, err)
	assert.Equal(t, []Song{
		{ID: 26, Name: "晚风", Artist: "李四", Lyric: "晚风吹过"},
		{ID: 27, Name: "夜车", Artist: "赵六", Lyric: "夜车向北"},
	}, got)
}

func TestImportBadJSON(t *testing.T) {
	_, err := Import(strings.NewReader(`{"songs": 1}`), 1)
	assert.Error(t, err)
}
