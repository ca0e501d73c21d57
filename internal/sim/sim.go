// Package sim drives the solver against a hidden solution: one game with
// Play, or batches with Simulate.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/words"
)

// PreviewSize is how many strict candidates a turn records for display.
const PreviewSize = 10

// Turn is one guess of a played game.
type Turn struct {
	Move           solver.Move
	Feedback       game.Feedback
	TurnsRemaining int
	// Candidates is the strict set size when the guess was made; Preview
	// holds its first PreviewSize members.
	Candidates int
	Preview    []game.Word
}

// Result is the outcome of one game.
type Result struct {
	Solution  game.Word
	Won       bool
	Turns     []Turn
	Remaining []game.Word // strict set when the game ended
	// Err is set when the solver gave up early (no candidates or no
	// breaker left); the game counts as lost.
	Err error
}

// Played is the number of guesses made.
func (r Result) Played() int { return len(r.Turns) }

// Play runs one game. The solver gets a freshly shuffled copy of the corpus.
// An empty solution picks a random answer; a solution outside the corpus is
// allowed and may end in a loss.
func Play(c *words.Corpus, solution game.Word, cfg solver.Config) (Result, error) {
	return play(c, solution, cfg, c.Shuffled, c.ShuffledAux)
}

// PlayInOrder is Play over the corpus in load order, so the same solution
// and config always produce the same game.
func PlayInOrder(c *words.Corpus, solution game.Word, cfg solver.Config) (Result, error) {
	return play(c, solution, cfg, c.Answers, c.Aux)
}

func play(c *words.Corpus, solution game.Word, cfg solver.Config, answers, aux func() []game.Word) (Result, error) {
	if solution == "" {
		solution = c.RandomAnswer()
	}
	if cfg.Turns <= 0 {
		cfg.Turns = game.DefaultTurns
	}
	if cfg.Length <= 0 {
		cfg.Length = c.Length()
	}
	if err := solution.Validate(cfg.Length); err != nil {
		return Result{}, fmt.Errorf("solution: %w", err)
	}

	s, err := solver.New(answers(), aux(), cfg)
	if err != nil {
		return Result{}, err
	}
	g, err := game.New(solution, cfg.Turns)
	if err != nil {
		return Result{}, err
	}

	res := Result{Solution: solution}
	for !g.Finished {
		strict := s.Strict()
		sit := s.Situation()

		mv, err := s.Next()
		if err != nil {
			if giveUp(err) {
				res.Err = err
				break
			}
			return res, err
		}
		fb, err := g.ScoreGuess(mv.Word)
		if err != nil {
			return res, err
		}
		res.Turns = append(res.Turns, Turn{
			Move:           mv,
			Feedback:       fb,
			TurnsRemaining: sit.TurnsRemaining(),
			Candidates:     strict.Len(),
			Preview:        strict.Head(PreviewSize),
		})

		if err := s.Update(fb); err != nil {
			if giveUp(err) {
				res.Err = err
				break
			}
			return res, err
		}
	}
	res.Won = g.Won
	res.Remaining = s.Strict().Words()

	ev := log.Debug()
	if res.Err != nil {
		ev = log.Warn().Err(res.Err)
	}
	ev.Str("solution", string(solution)).
		Bool("won", res.Won).
		Int("turns", res.Played()).
		Msg("game finished")
	return res, nil
}

func giveUp(err error) bool {
	return errors.Is(err, solver.ErrNoCandidates) || errors.Is(err, solver.ErrBreakerExhausted)
}

// Config controls a batch of games.
type Config struct {
	Games    int
	Workers  int       // concurrent games; 1 when zero
	Solution game.Word // fixed solution for every game; random when empty
	Solver   solver.Config
	// Progress receives a progress bar when set.
	Progress io.Writer
}

// Summary aggregates a batch.
type Summary struct {
	RunID    string
	Started  time.Time
	Elapsed  time.Duration
	Games    int
	Wins     int
	WinRate  float64
	AvgTurns float64
	Lost     []game.Word
	Results  []Result // in game order
}

// Simulate plays cfg.Games independent games, cfg.Workers at a time. Every
// game owns its solver, so workers share only the read-only corpus.
func Simulate(ctx context.Context, c *words.Corpus, cfg Config) (*Summary, error) {
	if cfg.Games <= 0 {
		cfg.Games = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	sum := &Summary{
		RunID:   uuid.NewString(),
		Started: time.Now().UTC(),
		Games:   cfg.Games,
		Results: make([]Result, cfg.Games),
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(cfg.Games,
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("simulating"),
			progressbar.OptionShowCount(),
		)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Games; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Play(c, cfg.Solution, cfg.Solver)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			sum.Results[i] = res
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	turns := 0
	for _, r := range sum.Results {
		turns += r.Played()
		if r.Won {
			sum.Wins++
		} else {
			sum.Lost = append(sum.Lost, r.Solution)
		}
	}
	sum.WinRate = float64(sum.Wins) / float64(sum.Games)
	sum.AvgTurns = float64(turns) / float64(sum.Games)
	sum.Elapsed = time.Since(sum.Started)

	log.Info().
		Str("run", sum.RunID).
		Int("games", sum.Games).
		Int("wins", sum.Wins).
		Float64("winRate", sum.WinRate).
		Float64("avgTurns", sum.AvgTurns).
		Dur("elapsed", sum.Elapsed).
		Msg("simulation finished")
	return sum, nil
}
