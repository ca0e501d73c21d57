// internal/solver/entropy.go
//
// Letter-frequency entropy ranking: per slot (positional) or across the
// whole word (aggregate), computed over the strict candidates.

package solver

import (
	"math"
	"sort"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

// Scored pairs a word with its ranking score.
type Scored struct {
	Word  game.Word
	Score float64
}

// entropy is the Shannon information content -p·log2(p), zero at p = 0.
func entropy(p float64) float64 {
	if p <= 0 {
		return 0
	}
	return -p * math.Log2(p)
}

// PositionalTable holds the entropy of each letter at each position across
// a candidate set. Letters never seen at a position have entropy 0.
func PositionalTable(strict *Set, n int) [][26]float64 {
	counts := make([][26]int, n)
	size := 0
	for w := range strict.All() {
		size++
		for i := 0; i < n; i++ {
			counts[i][w[i]-'a']++
		}
	}
	table := make([][26]float64, n)
	if size == 0 {
		return table
	}
	for i := range counts {
		for l, c := range counts[i] {
			table[i][l] = entropy(float64(c) / float64(size))
		}
	}
	return table
}

// AggregateTable holds the entropy of each letter regardless of position:
// p is the letter's share of all size×n letter slots of the set.
func AggregateTable(strict *Set, n int) [26]float64 {
	var counts [26]int
	size := 0
	for w := range strict.All() {
		size++
		for i := 0; i < n; i++ {
			counts[w[i]-'a']++
		}
	}
	var table [26]float64
	if size == 0 {
		return table
	}
	slots := float64(size * n)
	for l, c := range counts {
		table[l] = entropy(float64(c) / slots)
	}
	return table
}

// RankPositional scores every word of pool against the positional table of
// strict. A repeated letter adds half its entropy; a letter sitting on its
// own matched position adds nothing.
func RankPositional(pool, strict *Set, st *MatchState) []Scored {
	n := len(st.matched)
	table := PositionalTable(strict, n)
	return rank(pool, func(w game.Word) float64 {
		var seen [26]bool
		sum := 0.0
		for i := 0; i < n; i++ {
			l := w[i]
			if m, ok := st.Matched(i); ok && m == l {
				continue
			}
			e := table[i][l-'a']
			if seen[l-'a'] {
				e /= 2
			}
			sum += e
			seen[l-'a'] = true
		}
		return sum
	})
}

// RankAggregate scores every word of pool by the aggregate entropy of its
// distinct letters. Letters on their own matched position add nothing.
func RankAggregate(pool, strict *Set, st *MatchState) []Scored {
	n := len(st.matched)
	table := AggregateTable(strict, n)
	return rank(pool, func(w game.Word) float64 {
		var seen [26]bool
		sum := 0.0
		for i := 0; i < n; i++ {
			l := w[i]
			if m, ok := st.Matched(i); ok && m == l {
				continue
			}
			if seen[l-'a'] {
				continue
			}
			seen[l-'a'] = true
			sum += table[l-'a']
		}
		return sum
	})
}

// rank scores the pool and sorts it by descending score. Ties keep corpus
// order.
func rank(pool *Set, score func(game.Word) float64) []Scored {
	out := make([]Scored, 0, pool.Len())
	for w := range pool.All() {
		out = append(out, Scored{Word: w, Score: score(w)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// best returns the top-ranked word not yet guessed.
func best(ranked []Scored, st *MatchState) (game.Word, error) {
	for _, s := range ranked {
		if !st.Guessed(s.Word) {
			return s.Word, nil
		}
	}
	return "", ErrNoCandidates
}
