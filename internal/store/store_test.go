package store

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/sim"
	"github.com/evanmacbride/beat-wordle/internal/solver"
)

func openTestDB(t *testing.T) *Runs {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRuns(db)
}

func TestMemorySessions(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	s, err := solver.New([]game.Word{"crane", "slate"}, nil, solver.Config{})
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, &Session{ID: "a", Solver: s}))

	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, s, got.Solver)
	assert.False(t, got.Created.IsZero())

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(ctx, "a"))
	_, err = m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemorySweep(t *testing.T) {
	ctx := context.Background()
	mem := &memory{sessions: map[string]*Session{}}
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem.now = func() time.Time { return clock }

	require.NoError(t, mem.Save(ctx, &Session{ID: "old"}))
	clock = clock.Add(time.Hour)
	require.NoError(t, mem.Save(ctx, &Session{ID: "new"}))

	assert.Equal(t, 1, mem.Sweep(ctx, clock.Add(-time.Minute)))
	_, err := mem.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = mem.Get(ctx, "new")
	assert.NoError(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	r := openTestDB(t)
	require.NoError(t, Migrate(r.db, migrations))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestMigrateSelfManaged(t *testing.T) {
	r := openTestDB(t)
	fsys := fstest.MapFS{
		"003_extra.sql": {Data: []byte("BEGIN TRANSACTION;\nCREATE TABLE extra (id INTEGER);\nCOMMIT;\n")},
	}
	require.NoError(t, Migrate(r.db, fsys))
	require.NoError(t, Migrate(r.db, fsys))

	_, err := r.db.Exec(`INSERT INTO extra (id) VALUES (1)`)
	assert.NoError(t, err)
}

func TestRunsRoundTrip(t *testing.T) {
	ctx := context.Background()
	r := openTestDB(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Insert(ctx, Run{
		ID: "r1", StartedAt: started, Games: 4, Wins: 2, WinRate: 0.5, AvgTurns: 5.25,
		Starter: "slate", Hard: true, Lost: []string{"mamma", "jazzy"},
	}))
	require.NoError(t, r.Insert(ctx, Run{
		ID: "r2", StartedAt: started.Add(time.Hour), Games: 1, Wins: 0, Lost: []string{"mamma"},
	}))

	got, err := r.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mamma", "jazzy"}, got.Lost)
	assert.True(t, got.Hard)
	assert.Equal(t, started, got.StartedAt)
	assert.InDelta(t, 5.25, got.AvgTurns, 1e-9)

	recent, err := r.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "r2", recent[0].ID)

	hard, err := r.Hardest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []WordLosses{{Solution: "mamma", Losses: 2}}, hard)

	_, err = r.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, r.Insert(ctx, Run{ID: "r1", StartedAt: started}))
}

func TestNewRunFromSummary(t *testing.T) {
	sum := &sim.Summary{
		RunID: "abc", Started: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Elapsed: 1500 * time.Millisecond,
		Games: 2, Wins: 1, WinRate: 0.5, AvgTurns: 5, Lost: []game.Word{"jazzy"},
	}
	r := NewRun(sum, "slate", true)
	assert.Equal(t, "abc", r.ID)
	assert.Equal(t, int64(1500), r.ElapsedMs)
	assert.Equal(t, []string{"jazzy"}, r.Lost)
	assert.Equal(t, "slate", r.Starter)
	assert.True(t, r.Hard)
}
