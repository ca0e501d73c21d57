// internal/store/sqlite.go
//
// SQLite persistence for simulation runs and daily results.
// Responsibilities:
//   - Opening the database with WAL journaling, a busy timeout and foreign keys.
//   - Applying the embedded sql/*.sql migrations once each, recorded in _migrations.
//   - Recording simulation runs with their lost solutions.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/sim"
)

//go:embed sql/*.sql
var migrations embed.FS

// Open opens (and creates if missing) a SQLite database and applies the
// migrations. The parent directory of a file DSN is created as needed.
func Open(dsn string) (*sql.DB, error) {
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if err := Migrate(db, migrations); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies every *.sql file of fsys in lexical order, skipping files
// already recorded in _migrations. Scripts that manage their own transaction
// or foreign-key pragma run as-is; the rest run in a transaction.
func Migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		b, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		text := string(b)

		upper := strings.ToUpper(text)
		selfManaged := strings.Contains(upper, "BEGIN TRANSACTION") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS=OFF") ||
			strings.Contains(upper, "PRAGMA FOREIGN_KEYS = OFF")

		if selfManaged {
			if _, err := db.Exec(text); err != nil {
				return fmt.Errorf("apply %s: %w", f, err)
			}
			if _, err := db.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
				return fmt.Errorf("record %s: %w", f, err)
			}
			log.Info().Str("migration", f).Msg("applied (self-managed)")
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

/* ---------------------------- simulation runs ---------------------------- */

// Run is a stored simulation batch.
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"startedAt"`
	ElapsedMs int64     `json:"elapsedMs"`
	Games     int       `json:"games"`
	Wins      int       `json:"wins"`
	WinRate   float64   `json:"winRate"`
	AvgTurns  float64   `json:"avgTurns"`
	Starter   string    `json:"starter"`
	Hard      bool      `json:"hard"`
	Lost      []string  `json:"lost,omitempty"`
}

// NewRun converts a batch summary into its stored form.
func NewRun(sum *sim.Summary, starter game.Word, hard bool) Run {
	lost := make([]string, len(sum.Lost))
	for i, w := range sum.Lost {
		lost[i] = string(w)
	}
	return Run{
		ID:        sum.RunID,
		StartedAt: sum.Started,
		ElapsedMs: sum.Elapsed.Milliseconds(),
		Games:     sum.Games,
		Wins:      sum.Wins,
		WinRate:   sum.WinRate,
		AvgTurns:  sum.AvgTurns,
		Starter:   string(starter),
		Hard:      hard,
		Lost:      lost,
	}
}

// WordLosses counts how often a solution was lost across all runs.
type WordLosses struct {
	Solution string `json:"solution"`
	Losses   int    `json:"losses"`
}

// Runs reads and writes simulation runs.
type Runs struct{ db *sql.DB }

// NewRuns wraps an opened database.
func NewRuns(db *sql.DB) *Runs { return &Runs{db: db} }

// Insert stores a run and its lost solutions in one transaction.
func (s *Runs) Insert(ctx context.Context, r Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        INSERT INTO runs (id, started_at, elapsed_ms, games, wins, win_rate, avg_turns, starter, hard)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.ElapsedMs, r.Games, r.Wins,
		r.WinRate, r.AvgTurns, r.Starter, r.Hard,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for i, w := range r.Lost {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_losses (run_id, seq, solution) VALUES (?, ?, ?)`, r.ID, i, w,
		); err != nil {
			return fmt.Errorf("insert loss: %w", err)
		}
	}
	return tx.Commit()
}

// Recent returns the newest runs first, without their lost solutions.
// A non-positive limit defaults to 20.
func (s *Runs) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, elapsed_ms, games, wins, win_rate, avg_turns, starter, hard
        FROM runs
        ORDER BY started_at DESC, id
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// Get loads one run with its lost solutions in game order.
func (s *Runs) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT id, started_at, elapsed_ms, games, wins, win_rate, avg_turns, starter, hard
        FROM runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT solution FROM run_losses WHERE run_id=? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		r.Lost = append(r.Lost, w)
	}
	return r, rows.Err()
}

// Hardest returns the solutions lost most often across all runs.
func (s *Runs) Hardest(ctx context.Context, limit int) ([]WordLosses, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT solution, COUNT(1) AS n
        FROM run_losses
        GROUP BY solution
        ORDER BY n DESC, solution
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WordLosses
	for rows.Next() {
		var w WordLosses
		if err := rows.Scan(&w.Solution, &w.Losses); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanRun(row scanner) (*Run, error) {
	var r Run
	var started string
	if err := row.Scan(&r.ID, &started, &r.ElapsedMs, &r.Games, &r.Wins,
		&r.WinRate, &r.AvgTurns, &r.Starter, &r.Hard); err != nil {
		return nil, err
	}
	r.StartedAt, _ = time.Parse(time.RFC3339, started)
	return &r, nil
}
