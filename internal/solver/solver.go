// Package solver narrows a corpus of candidate words from per-letter
// feedback and picks the next guess.
//
// A Solver owns one game: its broad and strict candidate sets, the
// MatchState, and the turn counter. Each turn is Next (pick a guess), then
// the caller scores it, then Update (trim with the feedback). A Solver is
// not safe for concurrent use.
package solver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

var (
	ErrNoCandidates     = errors.New("no candidates remaining")
	ErrBreakerExhausted = errors.New("no unused informative breaker word")
	ErrGameOver         = errors.New("turn budget exhausted")
	ErrNoPendingGuess   = errors.New("no guess awaiting feedback")
	ErrPendingGuess     = errors.New("previous guess still awaiting feedback")
	ErrAlreadyGuessed   = errors.New("word already guessed")
)

// Starters are opening words known to play well.
var Starters = []game.Word{"stoae", "spear", "slate", "cares", "crane"}

// DefaultStarter is the opening word used when none is configured.
const DefaultStarter game.Word = "slate"

// Config tunes a Solver.
type Config struct {
	Length  int       // word length; game.DefaultLength when zero
	Turns   int       // guess budget; game.DefaultTurns when zero
	Starter game.Word // fixed opening guess; empty disables it
	Hard    bool      // breaker searches the auxiliary pool
}

func (c Config) withDefaults() Config {
	if c.Length <= 0 {
		c.Length = game.DefaultLength
	}
	if c.Turns <= 0 {
		c.Turns = game.DefaultTurns
	}
	return c
}

// Move is a chosen guess and the policy decision behind it.
type Move struct {
	Word     game.Word
	Decision Decision
}

// Solver holds the state of one game.
type Solver struct {
	cfg Config

	broad  *Set
	strict *Set
	aux    *Set
	state  *MatchState

	turn            int
	breakerLastTurn bool
	current         game.Word
	pending         bool
	solved          bool
}

// New builds a solver over corpus. aux is the pool searched by hard breaker
// turns; when empty the corpus is used. Every word must have cfg.Length
// letters.
func New(corpus, aux []game.Word, cfg Config) (*Solver, error) {
	cfg = cfg.withDefaults()
	if err := validateAll(corpus, cfg.Length); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if err := validateAll(aux, cfg.Length); err != nil {
		return nil, fmt.Errorf("aux: %w", err)
	}
	if cfg.Starter != "" {
		if err := cfg.Starter.Validate(cfg.Length); err != nil {
			return nil, fmt.Errorf("starter: %w", err)
		}
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("corpus: %w", ErrNoCandidates)
	}

	words := append([]game.Word(nil), corpus...)
	s := &Solver{
		cfg:    cfg,
		broad:  NewSet(words),
		strict: NewSet(words),
		state:  NewMatchState(cfg.Length),
	}
	if len(aux) > 0 {
		s.aux = NewSet(append([]game.Word(nil), aux...))
	} else {
		s.aux = NewSet(words)
	}
	return s, nil
}

func validateAll(words []game.Word, n int) error {
	for i, w := range words {
		if err := w.Validate(n); err != nil {
			return fmt.Errorf("word %d: %w", i, err)
		}
	}
	return nil
}

// Situation snapshots what the turn policy needs.
func (s *Solver) Situation() Situation {
	return Situation{
		Turn:            s.turn,
		Turns:           s.cfg.Turns,
		Length:          s.cfg.Length,
		HasStarter:      s.cfg.Starter != "",
		Strict:          s.strict.Len(),
		Matched:         s.state.MatchedCount(),
		Confirmed:       s.state.ConfirmedCount(),
		Complete:        s.state.Complete(),
		Similar:         NearlyCollapsed(s.strict),
		BreakerLastTurn: s.breakerLastTurn,
	}
}

// Next runs the turn policy and returns the guess for this turn. The guess
// is recorded in the history and awaits Update.
func (s *Solver) Next() (Move, error) {
	if err := s.ready(); err != nil {
		return Move{}, err
	}
	if s.strict.Len() == 0 {
		return Move{}, ErrNoCandidates
	}

	sit := s.Situation()
	d := Decide(sit, s.cfg.Hard)

	var (
		w   game.Word
		err error
	)
	switch d.Mode {
	case ModeStarter:
		w = s.cfg.Starter
	case ModePositional:
		w, err = best(RankPositional(s.broad, s.strict, s.state), s.state)
	case ModeAggregate:
		w, err = best(RankAggregate(s.strict, s.strict, s.state), s.state)
	case ModeBreaker:
		pool := s.broad
		if d.Hard {
			pool = s.aux
		}
		w, err = FindBreaker(pool, s.strict, s.state)
	}
	if err != nil {
		return Move{}, fmt.Errorf("turn %d (%s): %w", s.turn, d.Reason, err)
	}

	log.Debug().
		Int("turn", s.turn).
		Str("mode", d.Mode.String()).
		Str("reason", d.Reason.String()).
		Int("strict", sit.Strict).
		Int("broad", s.broad.Len()).
		Str("guess", string(w)).
		Msg("turn policy")

	s.record(w)
	s.breakerLastTurn = d.Mode == ModeBreaker
	return Move{Word: w, Decision: d}, nil
}

// Force records a caller-chosen guess for this turn in place of Next.
func (s *Solver) Force(w game.Word) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := w.Validate(s.cfg.Length); err != nil {
		return err
	}
	if s.state.Guessed(w) {
		return fmt.Errorf("%w: %s", ErrAlreadyGuessed, w)
	}
	s.record(w)
	s.breakerLastTurn = false
	return nil
}

func (s *Solver) ready() error {
	if s.pending {
		return ErrPendingGuess
	}
	if s.solved || s.turn >= s.cfg.Turns {
		return ErrGameOver
	}
	return nil
}

func (s *Solver) record(w game.Word) {
	s.state.Record(w)
	s.current = w
	s.pending = true
}

// Update trims both candidate sets with the feedback for the pending guess.
// When the strict set would become empty the solver is left unchanged and
// ErrNoCandidates is returned.
func (s *Solver) Update(fb game.Feedback) error {
	if !s.pending {
		return ErrNoPendingGuess
	}
	if len(fb) != s.cfg.Length {
		return fmt.Errorf("%w: %d codes, want %d", game.ErrInvalidFeedback, len(fb), s.cfg.Length)
	}

	if fb.Solved() {
		s.state.Update(s.current, fb)
		s.strict = s.strict.Filter(func(w game.Word) bool { return w == s.current })
		s.broad = s.broad.Filter(func(w game.Word) bool { return w == s.current })
		s.solved = true
		s.advance()
		return nil
	}

	strict := Trim(s.strict, s.current, fb, true)
	if strict.Len() == 0 {
		return fmt.Errorf("%w after %s %s", ErrNoCandidates, s.current, fb)
	}
	broad := Trim(s.broad, s.current, fb, false)

	log.Debug().
		Str("guess", string(s.current)).
		Str("feedback", fb.String()).
		Int("strict", strict.Len()).
		Int("broad", broad.Len()).
		Msg("trimmed candidates")

	s.strict, s.broad = strict, broad
	s.state.Update(s.current, fb)
	s.advance()
	return nil
}

func (s *Solver) advance() {
	s.turn++
	s.pending = false
}

// Config returns the effective configuration.
func (s *Solver) Config() Config { return s.cfg }

// Turn is the zero-based index of the next guess.
func (s *Solver) Turn() int { return s.turn }

// Current is the most recent guess.
func (s *Solver) Current() game.Word { return s.current }

// Solved reports whether Update has seen all-Exact feedback.
func (s *Solver) Solved() bool { return s.solved }

// Strict is the set of words that may still be the solution.
func (s *Solver) Strict() *Set { return s.strict }

// Broad is the relaxed candidate set.
func (s *Solver) Broad() *Set { return s.broad }

// State exposes what has been learned so far.
func (s *Solver) State() *MatchState { return s.state }
