package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

func TestBreakerPointsSplitCandidates(t *testing.T) {
	points := BreakerPoints(set("crane", "crate", "crave"), NewMatchState(5))
	// c, r, a and e are in every candidate and tell nothing.
	assert.Equal(t, map[string]float64{"n": 2, "t": 2, "v": 2}, points)
}

func TestBreakerPointsHalfSplitEarnsMost(t *testing.T) {
	points := BreakerPoints(set("crane", "crate", "brave", "grave"), NewMatchState(5))
	// r, a and e are everywhere; c and v sit in exactly half of the words.
	assert.Equal(t, 4.0, points["v"])
	assert.Equal(t, 4.0, points["c"])
	assert.Equal(t, 1.0, points["n"])
	assert.NotContains(t, points, "r")
}

func TestBreakerPointsDoubledTokens(t *testing.T) {
	points := BreakerPoints(set("geese", "genre", "gents"), NewMatchState(5))
	assert.Contains(t, points, "ee")
	assert.Contains(t, points, "e")
	assert.NotContains(t, points, "g")
}

func TestRankBreakersScoresRepeatedLetters(t *testing.T) {
	strict := set("crane", "crate", "crave")
	ranked := RankBreakers(set("tenet", "vinyl", "tabby"), strict, NewMatchState(5))

	scores := make(map[game.Word]float64, len(ranked))
	for _, s := range ranked {
		scores[s.Word] = s.Score
	}
	// t and n count once each even though tenet repeats t.
	assert.Equal(t, 4.0, scores["tenet"])
	assert.Equal(t, 4.0, scores["vinyl"])
	assert.Equal(t, 2.0, scores["tabby"])
}

func TestRankBreakersAddDoubledTokenPoints(t *testing.T) {
	strict := set("geese", "genre", "gents")
	ranked := RankBreakers(set("eerie"), strict, NewMatchState(5))
	require.Len(t, ranked, 1)
	// e, ee and r each earn 2; i is in no candidate.
	assert.Equal(t, 6.0, ranked[0].Score)
}

func TestBreakerPointsUseMatchState(t *testing.T) {
	strict := set("crane", "crate", "crave")

	st := NewMatchState(5)
	st.Update("nzzzz", feedback("10000"))
	assert.Equal(t, 1.0, BreakerPoints(strict, st)["n"])

	st = NewMatchState(5)
	st.Update("zzznz", feedback("00020"))
	assert.Equal(t, 0.0, BreakerPoints(strict, st)["n"])
}

func TestFindBreakerPrefersNewLetters(t *testing.T) {
	strict := set("crane", "crate", "crave")
	pool := set("crane", "crate", "crave", "vents")
	st := NewMatchState(5)

	w, err := FindBreaker(pool, strict, st)
	require.NoError(t, err)
	assert.Equal(t, game.Word("vents"), w)

	st.Record(w)
	w, err = FindBreaker(pool, strict, st)
	require.NoError(t, err)
	assert.Equal(t, game.Word("crane"), w)
}

func TestFindBreakerNeverRepeatsAGuess(t *testing.T) {
	strict := NewSet(testCorpus)
	st := NewMatchState(5)
	for i := 0; i < 10; i++ {
		w, err := FindBreaker(strict, strict, st)
		require.NoError(t, err)
		assert.False(t, st.Guessed(w), "breaker repeated %s", w)
		st.Record(w)
	}
}

func TestFindBreakerFallsBackToMatchedWords(t *testing.T) {
	strict := set("crane", "crate", "crave")
	pool := set("crane", "crate", "crave", "vents")
	st := NewMatchState(5)
	st.Update("crzzz", feedback("22000"))

	w, err := FindBreaker(pool, strict, st)
	require.NoError(t, err)
	assert.Equal(t, game.Word("vents"), w)

	st.Record(w)
	w, err = FindBreaker(pool, strict, st)
	require.NoError(t, err)
	assert.Equal(t, game.Word("crane"), w)
}

func TestFindBreakerExhausted(t *testing.T) {
	pool := set("crane", "crate")
	st := NewMatchState(5)
	st.Record("crane")
	st.Record("crate")

	_, err := FindBreaker(pool, pool, st)
	assert.ErrorIs(t, err, ErrBreakerExhausted)
}
