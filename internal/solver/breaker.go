// internal/solver/breaker.go
//
// Breaker words: when the strict candidates differ in only a letter or two,
// a guess from outside them can split them faster.
//   - BreakerPoints rates letters (and doubled letters) by how evenly they
//     split the strict candidates.
//   - RankBreakers scores a search pool with those points.
//   - FindBreaker picks the best unused word that tells something new.

package solver

import (
	"iter"
	"math"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

// token identifies a letter within a word: the bare letter when it occurs
// once, the letter doubled when it occurs two or more times.
func token(w game.Word, l byte) string {
	if w.Count(l) >= 2 {
		return string([]byte{l, l})
	}
	return string(l)
}

// BreakerPoints rates each token by how evenly it splits strict. A token
// found in every candidate is dropped; one found in exactly half earns 4,
// the rest earn 1/|count-mid|. Bare letters already matched earn nothing
// and confirmed ones earn half.
func BreakerPoints(strict *Set, st *MatchState) map[string]float64 {
	counts := make(map[string]int)
	size := 0
	for w := range strict.All() {
		size++
		seen := make(map[string]bool, len(w))
		for i := 0; i < len(w); i++ {
			t := token(w, w[i])
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}

	mid := float64(size) / 2
	points := make(map[string]float64, len(counts))
	for t, c := range counts {
		if c == size {
			continue
		}
		pts := 4.0
		if float64(c) != mid {
			pts = 1 / math.Abs(float64(c)-mid)
		}
		if len(t) == 1 {
			switch {
			case st.MatchedLetter(t[0]):
				pts = 0
			case st.Confirmed(t[0]):
				pts /= 2
			}
		}
		points[t] = pts
	}
	return points
}

// RankBreakers scores each word of pool as the sum of the points of its
// distinct letters. A letter the word repeats also earns its doubled
// token's points.
func RankBreakers(pool, strict *Set, st *MatchState) []Scored {
	points := BreakerPoints(strict, st)
	return rank(pool, func(w game.Word) float64 {
		var seen [26]bool
		sum := 0.0
		for i := 0; i < len(w); i++ {
			l := w[i]
			if seen[l-'a'] {
				continue
			}
			seen[l-'a'] = true
			sum += points[string(l)]
			if w.Count(l) >= 2 {
				sum += points[string([]byte{l, l})]
			}
		}
		return sum
	})
}

// breakerCandidates yields ranked words in order, skipping guessed words.
// The first pass only yields words that keep every slot free of matched
// letters; the second falls back to words with at least one such slot.
func breakerCandidates(ranked []Scored, st *MatchState) iter.Seq[game.Word] {
	return func(yield func(game.Word) bool) {
		for _, s := range ranked {
			if st.Guessed(s.Word) || st.reusesMatch(s.Word) {
				continue
			}
			if !yield(s.Word) {
				return
			}
		}
		for _, s := range ranked {
			if st.Guessed(s.Word) || !st.reusesMatch(s.Word) || !st.addsInfo(s.Word) {
				continue
			}
			if !yield(s.Word) {
				return
			}
		}
	}
}

// FindBreaker picks the best unused, informative breaker word from pool.
func FindBreaker(pool, strict *Set, st *MatchState) (game.Word, error) {
	for w := range breakerCandidates(RankBreakers(pool, strict, st), st) {
		return w, nil
	}
	return "", ErrBreakerExhausted
}
