package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

func rankedWords(ranked []Scored) []game.Word {
	out := make([]game.Word, len(ranked))
	for i, s := range ranked {
		out[i] = s.Word
	}
	return out
}

func TestPositionalTableSingletonIsZero(t *testing.T) {
	table := PositionalTable(set("crane"), 5)
	for i := range table {
		for l, e := range table[i] {
			assert.Zero(t, e, "position %d letter %c", i, 'a'+l)
		}
	}
}

func TestTablesOfEmptySetAreZero(t *testing.T) {
	empty := set("crane").Filter(func(game.Word) bool { return false })
	for _, row := range PositionalTable(empty, 5) {
		assert.Equal(t, [26]float64{}, row)
	}
	assert.Equal(t, [26]float64{}, AggregateTable(empty, 5))
}

func TestEntropyNeverNegative(t *testing.T) {
	all := NewSet(testCorpus)
	st := NewMatchState(5)
	for _, s := range RankPositional(all, all, st) {
		assert.GreaterOrEqual(t, s.Score, 0.0, s.Word)
	}
	for _, s := range RankAggregate(all, all, st) {
		assert.GreaterOrEqual(t, s.Score, 0.0, s.Word)
	}
	for _, e := range AggregateTable(all, 5) {
		assert.GreaterOrEqual(t, e, 0.0)
	}
}

func TestRankPositionalHalvesRepeatedLetters(t *testing.T) {
	strict := set("abxyz", "baxyz")
	ranked := RankPositional(set("aaxyz", "abxyz"), strict, NewMatchState(5))
	require.Len(t, ranked, 2)

	assert.Equal(t, words("abxyz", "aaxyz"), rankedWords(ranked))
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.75, ranked[1].Score, 1e-9)
}

func TestRankPositionalSkipsMatchedPositions(t *testing.T) {
	st := NewMatchState(5)
	st.Update("azzzz", feedback("20000"))

	ranked := RankPositional(set("aaxyz", "abxyz"), set("abxyz", "baxyz"), st)
	require.Len(t, ranked, 2)

	// Tied at 0.5, so corpus order decides.
	assert.Equal(t, words("aaxyz", "abxyz"), rankedWords(ranked))
	assert.InDelta(t, 0.5, ranked[0].Score, 1e-9)
	assert.InDelta(t, 0.5, ranked[1].Score, 1e-9)
}

func TestRankAggregateTiesKeepCorpusOrder(t *testing.T) {
	strict := set("crane", "crate", "crave")
	ranked := RankAggregate(strict, strict, NewMatchState(5))

	assert.Equal(t, words("crane", "crate", "crave"), rankedWords(ranked))
	want := 4*entropy(3.0/15) + entropy(1.0/15)
	for _, s := range ranked {
		assert.InDelta(t, want, s.Score, 1e-9, s.Word)
	}
}

func TestRankAggregateCountsDistinctLetters(t *testing.T) {
	strict := set("crane", "crate", "crave")
	ranked := RankAggregate(set("ccccc", "zzzzz"), strict, NewMatchState(5))

	require.Len(t, ranked, 2)
	assert.Equal(t, game.Word("ccccc"), ranked[0].Word)
	assert.InDelta(t, entropy(0.2), ranked[0].Score, 1e-9)
	// Letters missing from the table contribute nothing.
	assert.Zero(t, ranked[1].Score)
}

func TestBestSkipsGuessedWords(t *testing.T) {
	st := NewMatchState(5)
	st.Record("crane")
	w, err := best([]Scored{{Word: "crane", Score: 2}, {Word: "crate", Score: 1}}, st)
	require.NoError(t, err)
	assert.Equal(t, game.Word("crate"), w)

	_, err = best(nil, st)
	assert.ErrorIs(t, err, ErrNoCandidates)
}
