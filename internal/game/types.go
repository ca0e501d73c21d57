// internal/game/types.go
//
// Core type definitions for the word-guessing model.
// Defines:
//   - Word: a fixed-length lowercase guess or solution.
//   - Code: per-letter result of a guess (absent/present/exact).
//   - Feedback: one Code per guess position.
//   - Game: state for a single game played against a hidden solution.

package game

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultLength is the word length used when a game does not configure one.
const DefaultLength = 5

// DefaultTurns is the guess budget of a standard game.
const DefaultTurns = 6

var (
	ErrInvalidWordLength = errors.New("invalid word length")
	ErrInvalidLetter     = errors.New("word must be lowercase a-z")
	ErrInvalidFeedback   = errors.New("invalid feedback")
	ErrGameFinished      = errors.New("game finished")
)

// Word is an immutable sequence of lowercase ASCII letters.
type Word string

// ParseWord normalises s (trim + lowercase) and validates it as a word of
// length n.
func ParseWord(s string, n int) (Word, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	if err := Word(w).Validate(n); err != nil {
		return "", err
	}
	return Word(w), nil
}

// Validate reports whether w has exactly n letters, all in a–z.
func (w Word) Validate(n int) error {
	if len(w) != n {
		return fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWordLength, string(w), len(w), n)
	}
	if !isAlpha(string(w)) {
		return fmt.Errorf("%w: %q", ErrInvalidLetter, string(w))
	}
	return nil
}

// Count returns how many times letter c occurs in w.
func (w Word) Count(c byte) int {
	n := 0
	for i := 0; i < len(w); i++ {
		if w[i] == c {
			n++
		}
	}
	return n
}

// Code is the evaluation result for a single letter in a guess.
//   - Absent:  letter has no unmatched occurrence left in the solution.
//   - Present: letter is in the solution at a different position.
//   - Exact:   letter is correct and in the correct position.
type Code uint8

const (
	Absent Code = iota
	Present
	Exact
)

func (c Code) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Exact:
		return "exact"
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

// Feedback holds one Code per guess position.
type Feedback []Code

// Solved reports whether every position is Exact.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, c := range f {
		if c != Exact {
			return false
		}
	}
	return true
}

// String renders feedback as digits, e.g. "00202".
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, c := range f {
		b[i] = '0' + byte(c)
	}
	return string(b)
}

// Ints returns the feedback as 0/1/2 integers (wire format).
func (f Feedback) Ints() []int {
	out := make([]int, len(f))
	for i, c := range f {
		out[i] = int(c)
	}
	return out
}

// ParseFeedback parses a digit string such as "00202" of length n.
func ParseFeedback(s string, n int) (Feedback, error) {
	s = strings.TrimSpace(s)
	if len(s) != n {
		return nil, fmt.Errorf("%w: %q has %d codes, want %d", ErrInvalidFeedback, s, len(s), n)
	}
	f := make(Feedback, n)
	for i := 0; i < n; i++ {
		switch s[i] {
		case '0':
			f[i] = Absent
		case '1':
			f[i] = Present
		case '2':
			f[i] = Exact
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrInvalidFeedback, s[i], i)
		}
	}
	return f, nil
}

// State is a coarse representation of a game's progress.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Game holds the state of a single game against a hidden solution.
type Game struct {
	ID       string // Unique game identifier (random hex string).
	Answer   Word   // The hidden solution.
	Rows     int    // Maximum number of guesses allowed.
	Cols     int    // Number of letters per word.
	Guesses  []Word // Guesses made so far.
	Scores   []Feedback
	Finished bool // True once the game is over (won or lost).
	Won      bool // True if the game was finished with a win.
}
