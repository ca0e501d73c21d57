// internal/game/engine.go
//
// Scoring and the solution oracle for a single game.
// Responsibilities:
//   - Score guesses using the two-pass multiset algorithm.
//   - Create games around a hidden solution with a fixed turn budget.
//   - Validate and apply guesses, tracking playing → won/lost.
//
// Notes:
//   - The word list is not consulted here; a game accepts any well-formed
//     word so that solvers may play words outside the answer list.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New constructs a game around answer with the given turn budget.
// A non-positive turns value selects DefaultTurns.
func New(answer Word, turns int) (*Game, error) {
	if turns <= 0 {
		turns = DefaultTurns
	}
	if err := answer.Validate(len(answer)); err != nil {
		return nil, err
	}
	if len(answer) == 0 {
		return nil, fmt.Errorf("%w: empty answer", ErrInvalidWordLength)
	}
	return &Game{
		ID:     randomID(),
		Answer: answer,
		Rows:   turns,
		Cols:   len(answer),
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the feedback, the new state, or an error.
//
// State transitions:
//   - If all tiles are Exact → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess Word) (Feedback, State, error) {
	if g.Finished {
		return nil, g.State(), ErrGameFinished
	}
	if err := guess.Validate(g.Cols); err != nil {
		return nil, g.State(), err
	}

	fb := score(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)
	g.Scores = append(g.Scores, fb)

	if fb.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return fb, g.State(), nil
}

// ScoreGuess is ApplyGuess without the state; it lets a Game act as the
// solution oracle for a solver.
func (g *Game) ScoreGuess(guess Word) (Feedback, error) {
	fb, _, err := g.ApplyGuess(guess)
	return fb, err
}

// State reports the current game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Turn is the zero-based index of the next guess.
func (g *Game) Turn() int { return len(g.Guesses) }

// Score returns the feedback for guess against solution.
// Both words must have the same length and contain only a–z.
func Score(guess, solution Word) (Feedback, error) {
	if err := solution.Validate(len(solution)); err != nil {
		return nil, err
	}
	if err := guess.Validate(len(solution)); err != nil {
		return nil, err
	}
	return score(guess, solution), nil
}

// score implements the two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Exact.
//   - Count remaining (non-exact) solution letters by letter index.
//
// Pass 2:
//   - For each non-exact guess letter: if there is remaining count for that
//     letter, mark Present and decrement the count; otherwise mark Absent.
//
// This keeps the number of non-Absent codes for a letter at or below its
// multiplicity in the solution.
func score(guess, solution Word) Feedback {
	n := len(guess)
	res := make(Feedback, n)

	var counts [26]int

	for i := 0; i < n; i++ {
		if guess[i] == solution[i] {
			res[i] = Exact
		} else {
			counts[idx(solution[i])]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Exact {
			continue
		}
		j := idx(guess[i])
		if counts[j] > 0 {
			res[i] = Present
			counts[j]--
		} else {
			res[i] = Absent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
// Assumes inputs are validated to a–z elsewhere.
func idx(c byte) int { return int(c - 'a') }

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
