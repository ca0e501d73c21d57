// internal/solver/filter.go
//
// Candidate trimming from one guess and its feedback.
//   - strict: the word could still be the solution.
//   - broad: the word agrees with the feedback's lower bounds only.

package solver

import (
	"github.com/evanmacbride/beat-wordle/internal/game"
)

// constraint is one guess/feedback pair compiled into per-letter counts.
type constraint struct {
	guess game.Word
	fb    game.Feedback

	// confirmed counts the Exact+Present codes for each letter.
	confirmed [26]int
	// capped marks letters that were also Absent somewhere in the guess,
	// which pins their count in the solution to confirmed.
	capped [26]bool
}

func compile(guess game.Word, fb game.Feedback) *constraint {
	c := &constraint{guess: guess, fb: fb}
	for i, code := range fb {
		if code != game.Absent {
			c.confirmed[guess[i]-'a']++
		}
	}
	for i, code := range fb {
		if code == game.Absent {
			c.capped[guess[i]-'a'] = true
		}
	}
	return c
}

// strict is the tightest test the feedback allows: exact positions, the
// guessed letter excluded wherever it was not Exact, and letter counts that
// are exact for capped letters and lower bounds otherwise.
func (c *constraint) strict(w game.Word) bool {
	for i, code := range c.fb {
		g := c.guess[i]
		if code == game.Exact {
			if w[i] != g {
				return false
			}
		} else if w[i] == g {
			return false
		}
	}
	return c.counts(w, true)
}

// broad only uses "at least" reasoning: an Exact letter must occur
// somewhere, a Present letter must occur elsewhere, an Absent letter is
// excluded only when no other tile of the guess confirmed it.
func (c *constraint) broad(w game.Word) bool {
	for i, code := range c.fb {
		g := c.guess[i]
		switch code {
		case game.Present:
			if w[i] == g {
				return false
			}
		case game.Absent:
			if c.confirmed[g-'a'] == 0 && w.Count(g) > 0 {
				return false
			}
		}
	}
	return c.counts(w, false)
}

func (c *constraint) counts(w game.Word, exact bool) bool {
	var have [26]int
	for i := 0; i < len(w); i++ {
		have[w[i]-'a']++
	}
	for l := 0; l < 26; l++ {
		want := c.confirmed[l]
		if exact && c.capped[l] {
			if have[l] != want {
				return false
			}
		} else if have[l] < want {
			return false
		}
	}
	return true
}

// Trim returns the members of set consistent with guess/feedback under the
// strict or broad rule. The guessed word itself is dropped unless the
// feedback solved the game.
func Trim(set *Set, guess game.Word, fb game.Feedback, strict bool) *Set {
	c := compile(guess, fb)
	solved := fb.Solved()
	return set.Filter(func(w game.Word) bool {
		if w == guess && !solved {
			return false
		}
		if strict {
			return c.strict(w)
		}
		return c.broad(w)
	})
}
