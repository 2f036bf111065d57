package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crystallen1/lyricsWordle/internal/songs"
)

var loveSong = songs.Song{ID: 1, Name: "爱你", Artist: "张三", Lyric: "我爱你\n爱你一万年"}

// fixed always returns the same index.
type fixed int

func (f fixed) IntN(n int) int { return int(f) % n }

func TestNewGameIsIdle(t *testing.T) {
	g := New()
	assert.Equal(t, StateIdle, g.State)

	_, err := g.Guess('爱')
	assert.ErrorIs(t, err, ErrNoRound)
	_, err = g.Hint(fixed(0))
	assert.ErrorIs(t, err, ErrNoRound)
	assert.ErrorIs(t, g.RevealPerformer(), ErrNoRound)
	assert.ErrorIs(t, g.RevealAnswer(), ErrNoRound)

	snap := g.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Title)
	assert.NotNil(t, snap.Guesses)
}

func TestLoveSongScenario(t *testing.T) {
	g := New()
	g.Start(loveSong)

	snap := g.Snapshot()
	assert.Equal(t, "__", snap.Title)
	assert.Equal(t, "__", snap.Performer)
	assert.Equal(t, "___\n_____", snap.Lyric)
	assert.Equal(t, StateActive, snap.State)

	out, err := g.Guess('爱')
	require.NoError(t, err)
	assert.Nil(t, out.Won)
	assert.False(t, out.Absent)
	assert.Equal(t, StateActive, g.State)
	assert.Equal(t, 1, g.Attempts)
	assert.Equal(t, "爱_", g.Snapshot().Title)
	assert.Equal(t, "_爱_\n爱____", g.Snapshot().Lyric)

	out, err = g.Guess('你')
	require.NoError(t, err)
	require.NotNil(t, out.Won)
	assert.Equal(t, RoundWon{SongID: 1, Attempts: 2}, *out.Won)
	assert.Equal(t, StateWon, g.State)

	snap = g.Snapshot()
	assert.Equal(t, "爱你", snap.Title)
	assert.Equal(t, "张三", snap.Performer, "performer opened on win")
	assert.Equal(t, "我爱你\n爱你一万年", snap.Lyric, "lyric opened on win")
	assert.Equal(t, []string{"爱", "你"}, snap.Guesses)
	assert.Equal(t, 2, snap.Attempts)
}

func TestRepeatGuessCountsOnce(t *testing.T) {
	g := New()
	g.Start(loveSong)

	_, err := g.Guess('我')
	require.NoError(t, err)
	out, err := g.Guess('我')
	require.NoError(t, err)
	assert.True(t, out.Repeat)
	assert.Equal(t, 1, g.Attempts)
	assert.Equal(t, []rune{'我'}, g.Guesses)
}

func TestAbsentGuessStillCosts(t *testing.T) {
	g := New()
	g.Start(loveSong)

	out, err := g.Guess('月')
	require.NoError(t, err)
	assert.True(t, out.Absent)
	assert.Equal(t, StateActive, g.State)
	assert.Equal(t, 1, g.Attempts)
	assert.Equal(t, "__", g.Snapshot().Title)
}

func TestPassThroughGuessRejected(t *testing.T) {
	g := New()
	g.Start(songs.Song{ID: 2, Name: "2046 爱", Artist: "x", Lyric: "1, 2"})

	for _, r := range []rune{'2', ',', ' ', '\n', '_'} {
		_, err := g.Guess(r)
		assert.ErrorIs(t, err, ErrNotGuessable, "rune %q", r)
	}
	assert.Equal(t, 0, g.Attempts)
	assert.Empty(t, g.Guesses)
	assert.Equal(t, "2046 _", g.Snapshot().Title)
}

func TestGuessIsCaseSensitive(t *testing.T) {
	g := New()
	g.Start(songs.Song{ID: 3, Name: "Go", Artist: "Band", Lyric: "go go"})

	_, err := g.Guess('g')
	require.NoError(t, err)
	assert.Equal(t, "__", g.Snapshot().Title)
	assert.Equal(t, "g_ g_", g.Snapshot().Lyric)
}

func TestGuessAfterWin(t *testing.T) {
	g := New()
	g.Start(loveSong)
	_, _ = g.Guess('爱')
	_, _ = g.Guess('你')

	_, err := g.Guess('我')
	assert.ErrorIs(t, err, ErrRoundOver)
	_, err = g.Hint(fixed(0))
	assert.ErrorIs(t, err, ErrRoundOver)
	assert.ErrorIs(t, g.RevealPerformer(), ErrRoundOver)
	assert.NoError(t, g.RevealAnswer())
	assert.Equal(t, 2, g.Attempts)
}

func TestRevealPerformer(t *testing.T) {
	g := New()
	g.Start(loveSong)
	require.NoError(t, g.RevealPerformer())

	snap := g.Snapshot()
	assert.Equal(t, "张三", snap.Performer)
	assert.Equal(t, "__", snap.Title)
	assert.Equal(t, 0, snap.Attempts)
	assert.Equal(t, StateActive, snap.State)

	// performer stays open after further guesses
	_, err := g.Guess('爱')
	require.NoError(t, err)
	assert.Equal(t, "张三", g.Snapshot().Performer)
	assert.False(t, g.Guessed('张'))
}

func TestRevealAnswerIsNotScored(t *testing.T) {
	g := New()
	g.Start(loveSong)
	_, _ = g.Guess('爱')
	require.NoError(t, g.RevealAnswer())

	snap := g.Snapshot()
	assert.Equal(t, StateActive, snap.State)
	assert.Equal(t, "爱你", snap.Title)
	assert.Equal(t, "我爱你\n爱你一万年", snap.Lyric)
	assert.Equal(t, 1, snap.Attempts)
	assert.Equal(t, []string{"爱"}, snap.Guesses)

	out, err := g.Guess('你')
	require.NoError(t, err)
	assert.Equal(t, StateWon, g.State)
	assert.Nil(t, out.Won, "peeked round must not be scored")
}

func TestHint(t *testing.T) {
	t.Run("picks an unguessed character", func(t *testing.T) {
		for seed := uint64(0); seed < 20; seed++ {
			g := New()
			g.Start(loveSong)
			_, _ = g.Guess('爱')
			before := g.HintCandidates()

			out, err := g.Hint(NewRand(seed))
			require.NoError(t, err)
			assert.Contains(t, before, out.Char)
			assert.False(t, out.Repeat)
			assert.Equal(t, 2, g.Attempts)
		}
	})

	t.Run("candidates cover title, performer and lyric", func(t *testing.T) {
		g := New()
		g.Start(loveSong)
		assert.Equal(t, []rune{'爱', '你', '张', '三', '我', '一', '万', '年'}, g.HintCandidates())
	})

	t.Run("hint can win the round", func(t *testing.T) {
		g := New()
		g.Start(loveSong)
		_, _ = g.Guess('爱')
		out, err := g.Hint(fixed(0)) // '你' is first in order
		require.NoError(t, err)
		require.NotNil(t, out.Won)
		assert.Equal(t, 2, out.Won.Attempts)
	})

	t.Run("nothing left after the win", func(t *testing.T) {
		g := New()
		g.Start(songs.Song{ID: 4, Name: "爱你", Artist: "你", Lyric: "爱"})
		_, _ = g.Guess('爱')
		out, err := g.Guess('你')
		require.NoError(t, err)
		require.NotNil(t, out.Won)
		require.Empty(t, g.HintCandidates())

		_, err = g.Hint(fixed(0))
		assert.ErrorIs(t, err, ErrNoHint)
		assert.Equal(t, StateWon, g.State)
		assert.Equal(t, 2, g.Attempts)
		assert.Equal(t, []rune{'爱', '你'}, g.Guesses)
	})

	t.Run("won with hidden lyric is over", func(t *testing.T) {
		g := New()
		g.Start(loveSong)
		_, _ = g.Guess('爱')
		_, _ = g.Guess('你')
		require.NotEmpty(t, g.HintCandidates())

		_, err := g.Hint(fixed(0))
		assert.ErrorIs(t, err, ErrRoundOver)
	})
}

func TestStartResets(t *testing.T) {
	g := New()
	g.Start(loveSong)
	_, _ = g.Guess('爱')
	_ = g.RevealPerformer()
	_ = g.RevealAnswer()

	g.Start(songs.Song{ID: 2, Name: "晚风", Artist: "李四", Lyric: "晚风吹过"})
	assert.Equal(t, StateActive, g.State)
	assert.Equal(t, 0, g.Attempts)
	assert.Empty(t, g.Guesses)
	assert.False(t, g.PerformerRevealed)
	assert.False(t, g.AnswerRevealed)
	assert.False(t, g.Guessed('爱'))
	assert.Equal(t, "__", g.Snapshot().Title)
}

func TestDegenerateTitleWinsImmediately(t *testing.T) {
	g := New()
	g.Start(songs.Song{ID: 5, Name: "", Artist: "某人", Lyric: "啦啦"})
	assert.Equal(t, StateWon, g.State)
	assert.Equal(t, 0, g.Attempts)

	_, err := g.Guess('啦')
	assert.ErrorIs(t, err, ErrRoundOver)
}
