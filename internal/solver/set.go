// internal/solver/set.go
//
// Candidate sets: an ordered subset of the corpus kept as a bitset over
// corpus positions. Trimming only clears bits, so a set never reorders.

package solver

import (
	"iter"

	"github.com/bits-and-blooms/bitset"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

// Set is an ordered subset of a corpus. Membership is a bitset over corpus
// positions, so iteration always follows the corpus order and trimming never
// copies words.
type Set struct {
	words []game.Word
	bits  *bitset.BitSet
}

// NewSet returns a set holding every word of corpus.
func NewSet(corpus []game.Word) *Set {
	n := uint(len(corpus))
	b := bitset.New(n)
	b.FlipRange(0, n)
	return &Set{words: corpus, bits: b}
}

// Len returns the number of words in the set.
func (s *Set) Len() int { return int(s.bits.Count()) }

// All yields the words of the set in corpus order.
func (s *Set) All() iter.Seq[game.Word] {
	return func(yield func(game.Word) bool) {
		for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
			if !yield(s.words[i]) {
				return
			}
		}
	}
}

// Words returns the members in corpus order.
func (s *Set) Words() []game.Word {
	out := make([]game.Word, 0, s.Len())
	for w := range s.All() {
		out = append(out, w)
	}
	return out
}

// Head returns up to n members in corpus order.
func (s *Set) Head(n int) []game.Word {
	out := make([]game.Word, 0, n)
	for w := range s.All() {
		if len(out) == n {
			break
		}
		out = append(out, w)
	}
	return out
}

// First returns the first member, if any.
func (s *Set) First() (game.Word, bool) {
	i, ok := s.bits.NextSet(0)
	if !ok {
		return "", false
	}
	return s.words[i], true
}

// Contains reports whether w is a member.
func (s *Set) Contains(w game.Word) bool {
	for m := range s.All() {
		if m == w {
			return true
		}
	}
	return false
}

// Filter returns a new set over the same corpus holding the members for
// which keep returns true. The receiver is not modified.
func (s *Set) Filter(keep func(game.Word) bool) *Set {
	out := s.bits.Clone()
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if !keep(s.words[i]) {
			out.Clear(i)
		}
	}
	return &Set{words: s.words, bits: out}
}

// SubsetOf reports whether every member of s is a member of o. Both sets
// must share a corpus.
func (s *Set) SubsetOf(o *Set) bool {
	return o.bits.IsSuperSet(s.bits)
}
