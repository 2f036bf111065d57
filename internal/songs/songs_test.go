package songs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seq returns the queued values in order, then zeros.
type seq []int

func (s *seq) IntN(n int) int {
	if len(*s) == 0 {
		return 0
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v % n
}

func sample() *Catalog {
	return New([]Song{
		{ID: 1, Name: "爱你", Artist: "张三", Lyric: "我爱你\n爱你一万年"},
		{ID: 2, Name: "晚风", Artist: "李四", Lyric: "晚风吹过"},
		{ID: 3, Name: "海边", Artist: "李四", Lyric: "海边的信"},
	})
}

func TestNewSkipsUnplayable(t *testing.T) {
	c := New([]Song{
		{ID: 1, Name: "爱你", Artist: "张三"},
		{ID: 1, Name: "重复", Artist: "张三"},
		{ID: 2, Name: "2046", Artist: "某人"},
		{ID: 3, Name: "", Artist: "某人"},
		{ID: 4, Name: "Go", Artist: "Band"},
	})
	assert.Equal(t, 2, c.Len())
	_, ok := c.ByID(2)
	assert.False(t, ok)
	s, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "爱你", s.Name)
}

func TestRandom(t *testing.T) {
	c := sample()

	t.Run("picks from whole catalog", func(t *testing.T) {
		src := &seq{2}
		s, err := c.Random(src, "")
		require.NoError(t, err)
		assert.Equal(t, 3, s.ID)
	})

	t.Run("performer filter restricts pool", func(t *testing.T) {
		for i := 0; i < 4; i++ {
			src := &seq{i}
			s, err := c.Random(src, "李四")
			require.NoError(t, err)
			assert.Equal(t, "李四", s.Artist)
		}
	})

	t.Run("unknown performer", func(t *testing.T) {
		_, err := c.Random(&seq{}, "王五")
		assert.ErrorIs(t, err, ErrNoSongs)
		assert.Contains(t, err.Error(), "王五")
	})

	t.Run("empty catalog", func(t *testing.T) {
		_, err := New(nil).Random(&seq{}, "")
		assert.ErrorIs(t, err, ErrNoSongs)
	})
}

func TestPerformersAndTitles(t *testing.T) {
	c := sample()
	assert.Equal(t, []string{"张三", "李四"}, c.Performers())
	assert.Equal(t, []string{"晚风", "海边"}, c.Titles("李四"))
	assert.Empty(t, c.Titles("nobody"))
}

func TestParseAcceptsLyricsAlias(t *testing.T) {
	c, err := Parse([]byte(`{"songs":[{"id":9,"name":"夜车","artist":"赵六","lyrics":"夜车开往北方"}]}`))
	require.NoError(t, err)
	s, ok := c.ByID(9)
	require.True(t, ok)
	assert.Equal(t, "夜车开往北方", s.Lyric)
}

func TestLoad(t *testing.T) {
	t.Run("embedded default", func(t *testing.T) {
		c := Load("")
		assert.Greater(t, c.Len(), 0)
		_, ok := c.ByID(1)
		assert.True(t, ok)
	})

	t.Run("missing file is empty", func(t *testing.T) {
		c := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("garbage file is empty", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "songs.json")
		require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))
		assert.Equal(t, 0, Load(p).Len())
	})

	t.Run("file on disk", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "songs.json")
		doc := `{"songs":[{"id":7,"name":"春天","artist":"王五","lyric":"春天来了"}]}`
		require.NoError(t, os.WriteFile(p, []byte(doc), 0o644))
		c := Load(p)
		require.Equal(t, 1, c.Len())
		assert.Equal(t, 7, c.At(0).ID)
	})
}

func TestDecodeError(t *testing.T) {
	_, err := Decode(strings.NewReader("[]"))
	assert.Error(t, err)
}
