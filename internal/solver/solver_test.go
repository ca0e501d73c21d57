package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmacbride/beat-wordle/internal/game"
)

func newTestSolver(t *testing.T, cfg Config) *Solver {
	t.Helper()
	s, err := New(testCorpus, nil, cfg)
	require.NoError(t, err)
	return s
}

func TestNewValidatesInput(t *testing.T) {
	_, err := New(words("crane", "cranes"), nil, Config{})
	assert.ErrorIs(t, err, game.ErrInvalidWordLength)

	_, err = New(words("crane"), words("tiny"), Config{})
	assert.ErrorIs(t, err, game.ErrInvalidWordLength)

	_, err = New(words("crane"), nil, Config{Starter: "slates"})
	assert.ErrorIs(t, err, game.ErrInvalidWordLength)

	_, err = New(nil, nil, Config{})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestNewDefaults(t *testing.T) {
	s := newTestSolver(t, Config{})
	assert.Equal(t, game.DefaultLength, s.Config().Length)
	assert.Equal(t, game.DefaultTurns, s.Config().Turns)
	assert.Equal(t, len(testCorpus), s.Strict().Len())
	assert.Equal(t, len(testCorpus), s.Broad().Len())
}

func TestSolverOpensWithStarter(t *testing.T) {
	s := newTestSolver(t, Config{Starter: DefaultStarter, Hard: true})
	g, err := game.New("crane", 6)
	require.NoError(t, err)

	mv, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, DefaultStarter, mv.Word)
	assert.Equal(t, ModeStarter, mv.Decision.Mode)

	fb, err := g.ScoreGuess(mv.Word)
	require.NoError(t, err)
	require.NoError(t, s.Update(fb))

	assert.Equal(t, words("crane", "crave", "grape", "brave", "grace", "brace"), s.Strict().Words())
	assert.True(t, s.Strict().SubsetOf(s.Broad()))
	assert.Equal(t, "__a_e", s.State().Pattern())
	assert.Equal(t, 2, s.State().ConfirmedCount())
	assert.Equal(t, words("slate"), s.State().History())

	mv, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, ReasonDefault, mv.Decision.Reason)
	assert.NotEqual(t, DefaultStarter, mv.Word)
}

func TestSolverPlaysWholeCorpus(t *testing.T) {
	wins := 0
	for _, solution := range testCorpus {
		s := newTestSolver(t, Config{Starter: DefaultStarter, Hard: true})
		g, err := game.New(solution, 6)
		require.NoError(t, err)

		for !g.Finished {
			mv, err := s.Next()
			require.NoError(t, err, "solution %s", solution)
			fb, err := g.ScoreGuess(mv.Word)
			require.NoError(t, err)
			require.NoError(t, s.Update(fb), "solution %s", solution)
			if !fb.Solved() {
				require.True(t, s.Strict().Contains(solution), "lost %s after %s", solution, mv.Word)
			}
		}
		if g.Won {
			wins++
			assert.True(t, s.Solved())
		}
	}
	assert.Greater(t, wins, len(testCorpus)/2)
}

func TestSolverNeverRepeatsGuesses(t *testing.T) {
	s := newTestSolver(t, Config{Starter: DefaultStarter, Hard: true})
	g, err := game.New("mamma", 6)
	require.NoError(t, err)
	for !g.Finished {
		mv, err := s.Next()
		require.NoError(t, err)
		fb, err := g.ScoreGuess(mv.Word)
		require.NoError(t, err)
		require.NoError(t, s.Update(fb))
	}
	seen := map[game.Word]bool{}
	for _, w := range s.State().History() {
		assert.False(t, seen[w], "repeated %s", w)
		seen[w] = true
	}
}

func TestSolverTurnProtocol(t *testing.T) {
	s := newTestSolver(t, Config{})

	assert.ErrorIs(t, s.Update(feedback("00000")), ErrNoPendingGuess)

	require.NoError(t, s.Force("crane"))
	_, err := s.Next()
	assert.ErrorIs(t, err, ErrPendingGuess)

	assert.ErrorIs(t, s.Update(feedback("000")), game.ErrInvalidFeedback)
	assert.ErrorIs(t, s.Force("crane"), ErrPendingGuess)
}

func TestSolverForceRejectsRepeatedGuess(t *testing.T) {
	s := newTestSolver(t, Config{})
	require.NoError(t, s.Force("slate"))
	require.NoError(t, s.Update(feedback("00202")))

	assert.ErrorIs(t, s.Force("slate"), ErrAlreadyGuessed)
	assert.Equal(t, []game.Word{"slate"}, s.State().History())
	require.NoError(t, s.Force("crane"))
}

func TestStartersAreValidOpeners(t *testing.T) {
	assert.Contains(t, Starters, DefaultStarter)
	for _, w := range Starters {
		assert.NoError(t, w.Validate(game.DefaultLength), string(w))
	}
}

func TestSolverContradictoryFeedback(t *testing.T) {
	s, err := New(words("crane", "crate"), nil, Config{})
	require.NoError(t, err)
	require.NoError(t, s.Force("crane"))

	err = s.Update(feedback("00000"))
	assert.ErrorIs(t, err, ErrNoCandidates)
	assert.Equal(t, 0, s.Turn())
	assert.Equal(t, 2, s.Strict().Len())
	assert.Equal(t, "_____", s.State().Pattern())
}

func TestSolverStopsAtTurnBudget(t *testing.T) {
	s := newTestSolver(t, Config{Turns: 1})
	mv, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, ReasonFinalTurn, mv.Decision.Reason)

	fb, err := game.Score(mv.Word, "crane")
	require.NoError(t, err)
	require.NoError(t, s.Update(fb))
	_, err = s.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestSolverStopsWhenSolved(t *testing.T) {
	s := newTestSolver(t, Config{})
	require.NoError(t, s.Force("crane"))
	require.NoError(t, s.Update(feedback("22222")))

	assert.True(t, s.Solved())
	assert.Equal(t, words("crane"), s.Strict().Words())
	assert.Equal(t, "crane", s.State().Pattern())
	_, err := s.Next()
	assert.ErrorIs(t, err, ErrGameOver)
}
