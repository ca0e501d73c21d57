// internal/daily/store.go
//
// SQLite persistence for daily results. One row per date; the first result
// stored for a date is kept.

package daily

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/evanmacbride/beat-wordle/internal/sim"
)

// ErrNotFound is returned when no result is stored for a date.
var ErrNotFound = errors.New("daily: no result for date")

// Result is the solver's game for one day.
type Result struct {
	Date       string    `json:"date"`
	WordIndex  int       `json:"wordIndex"`
	Solution   string    `json:"solution"`
	Won        bool      `json:"won"`
	Guesses    int       `json:"guesses"`
	Transcript string    `json:"transcript"`
	ElapsedMs  int64     `json:"elapsedMs"`
	CreatedAt  time.Time `json:"createdAt"`

	// Game is the full game when the result was just played; it is not stored.
	Game *sim.Result `json:"-"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r unless the date already has a result, and reports
// whether a row was written.
func (s *Store) Insert(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(date, word_index, solution, won, guesses, transcript, elapsed_ms)
		VALUES(?,?,?,?,?,?,?)`,
		r.Date, r.WordIndex, r.Solution, r.Won, r.Guesses, r.Transcript, r.ElapsedMs,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Store) Get(ctx context.Context, date string) (*Result, error) {
	row := s.db.QueryRowContext(ctx, selectResult+` WHERE date=?`, date)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// Recent lists stored days, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx, selectResult+` ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

const selectResult = `SELECT date, word_index, solution, won, guesses, transcript, elapsed_ms, created_at
FROM daily_results`

func scanResult(row interface{ Scan(...any) error }) (*Result, error) {
	var r Result
	var created string
	if err := row.Scan(&r.Date, &r.WordIndex, &r.Solution, &r.Won, &r.Guesses,
		&r.Transcript, &r.ElapsedMs, &created); err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return &r, nil
}
