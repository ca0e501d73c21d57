// internal/solver/state.go
//
// MatchState: matched slots, confirmed letters and guess history learned
// from feedback, plus the checks breaker selection asks of it.

package solver

import (
	"slices"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

// MatchState is what a game has learned so far about the hidden solution.
//
// Matched slots are set only by Exact feedback and are never cleared;
// confirmed letters only grow; the guess history is append-only.
type MatchState struct {
	matched    []byte // 0 while the position is unknown
	confirmed  [26]bool
	nConfirmed int
	history    []game.Word
}

// NewMatchState returns an empty state for words of length n.
func NewMatchState(n int) *MatchState {
	return &MatchState{matched: make([]byte, n)}
}

// Update folds one guess/feedback pair into the state.
func (m *MatchState) Update(guess game.Word, fb game.Feedback) {
	for i, c := range fb {
		l := guess[i]
		if c != game.Absent && !m.confirmed[l-'a'] {
			m.confirmed[l-'a'] = true
			m.nConfirmed++
		}
		if c == game.Exact && m.matched[i] == 0 {
			m.matched[i] = l
		}
	}
}

// Record appends w to the guess history.
func (m *MatchState) Record(w game.Word) { m.history = append(m.history, w) }

// Guessed reports whether w was guessed before.
func (m *MatchState) Guessed(w game.Word) bool { return slices.Contains(m.history, w) }

// History returns a copy of the guesses in the order they were made.
func (m *MatchState) History() []game.Word { return slices.Clone(m.history) }

// Matched returns the confirmed letter at position i.
func (m *MatchState) Matched(i int) (byte, bool) {
	return m.matched[i], m.matched[i] != 0
}

// MatchedLetter reports whether l is confirmed Exact at any position.
func (m *MatchState) MatchedLetter(l byte) bool {
	return slices.Contains(m.matched, l)
}

// MatchedCount is the number of positions confirmed Exact.
func (m *MatchState) MatchedCount() int {
	n := 0
	for _, l := range m.matched {
		if l != 0 {
			n++
		}
	}
	return n
}

// Complete reports whether every position has been confirmed Exact.
func (m *MatchState) Complete() bool { return m.MatchedCount() == len(m.matched) }

// Confirmed reports whether l is known to occur in the solution.
func (m *MatchState) Confirmed(l byte) bool { return m.confirmed[l-'a'] }

// ConfirmedCount is the number of distinct letters known to occur.
func (m *MatchState) ConfirmedCount() int { return m.nConfirmed }

// Pattern renders the matched slots with '_' for unknown positions.
func (m *MatchState) Pattern() string {
	b := make([]byte, len(m.matched))
	for i, l := range m.matched {
		if l == 0 {
			b[i] = '_'
		} else {
			b[i] = l
		}
	}
	return string(b)
}

// reusesMatch reports whether w puts an already matched letter back on its
// matched position, which spends a slot on information already held.
func (m *MatchState) reusesMatch(w game.Word) bool {
	for i := range m.matched {
		if m.matched[i] != 0 && w[i] == m.matched[i] {
			return true
		}
	}
	return false
}

// addsInfo reports whether w has at least one position that does not
// repeat a matched letter.
func (m *MatchState) addsInfo(w game.Word) bool {
	for i := range m.matched {
		if m.matched[i] == 0 || w[i] != m.matched[i] {
			return true
		}
	}
	return false
}
