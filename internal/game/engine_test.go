package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScore(t *testing.T, guess, solution string) Feedback {
	t.Helper()
	fb, err := Score(Word(guess), Word(solution))
	require.NoError(t, err)
	return fb
}

func TestScoreSelfIsAllExact(t *testing.T) {
	for _, w := range []string{"crane", "speed", "eerie", "mamma", "abcde"} {
		fb := mustScore(t, w, w)
		assert.True(t, fb.Solved(), w)
		assert.Equal(t, "22222", fb.String(), w)
	}
}

func TestScoreDuplicateLetters(t *testing.T) {
	// erase holds two e's; speed's three e/s tiles can claim at most those.
	fb := mustScore(t, "speed", "erase")
	assert.Equal(t, "10110", fb.String())

	// Exact matches are resolved before present ones.
	fb = mustScore(t, "eerie", "there")
	assert.Equal(t, Feedback{Present, Absent, Present, Absent, Exact}, fb)

	// hello holds two l's, so both of llama's l's are present.
	fb = mustScore(t, "llama", "hello")
	assert.Equal(t, "11000", fb.String())
}

func TestScoreNeverOverAwards(t *testing.T) {
	words := []string{"speed", "erase", "eerie", "there", "geese", "crane", "slate", "abbey", "kebab", "mamma"}
	for _, g := range words {
		for _, s := range words {
			fb := mustScore(t, g, s)
			hits := map[byte]int{}
			for i, c := range fb {
				if c != Absent {
					hits[g[i]]++
				}
			}
			for letter, n := range hits {
				assert.LessOrEqual(t, n, Word(s).Count(letter), "%s vs %s letter %c", g, s, letter)
			}
		}
	}
}

func TestScoreStarterAgainstCrane(t *testing.T) {
	fb := mustScore(t, "slate", "crane")
	assert.Equal(t, Feedback{Absent, Absent, Exact, Absent, Exact}, fb)
}

func TestScoreRejectsBadInput(t *testing.T) {
	_, err := Score("toolong", "crane")
	assert.True(t, errors.Is(err, ErrInvalidWordLength))

	_, err = Score("cr4ne", "crane")
	assert.True(t, errors.Is(err, ErrInvalidLetter))
}

func TestParseWord(t *testing.T) {
	w, err := ParseWord("  CrAnE ", 5)
	require.NoError(t, err)
	assert.Equal(t, Word("crane"), w)

	_, err = ParseWord("cranes", 5)
	assert.ErrorIs(t, err, ErrInvalidWordLength)
}

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback("01202", 5)
	require.NoError(t, err)
	assert.Equal(t, Feedback{Absent, Present, Exact, Absent, Exact}, fb)
	assert.Equal(t, []int{0, 1, 2, 0, 2}, fb.Ints())

	_, err = ParseFeedback("0120", 5)
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	_, err = ParseFeedback("01x02", 5)
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestGameWin(t *testing.T) {
	g, err := New("crane", 6)
	require.NoError(t, err)
	assert.Len(t, g.ID, 16)

	fb, st, err := g.ApplyGuess("slate")
	require.NoError(t, err)
	assert.Equal(t, "00202", fb.String())
	assert.Equal(t, StatePlaying, st)

	_, st, err = g.ApplyGuess("crane")
	require.NoError(t, err)
	assert.Equal(t, StateWon, st)
	assert.Equal(t, 2, g.Turn())

	_, _, err = g.ApplyGuess("crane")
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestGameLoss(t *testing.T) {
	g, err := New("crane", 2)
	require.NoError(t, err)
	_, _, err = g.ApplyGuess("slate")
	require.NoError(t, err)
	_, st, err := g.ApplyGuess("plate")
	require.NoError(t, err)
	assert.Equal(t, StateLost, st)
}

func TestGameRejectsWrongLength(t *testing.T) {
	g, err := New("crane", 6)
	require.NoError(t, err)
	_, st, err := g.ApplyGuess("cranes")
	assert.ErrorIs(t, err, ErrInvalidWordLength)
	assert.Equal(t, StatePlaying, st)
	assert.Empty(t, g.Guesses)
}
