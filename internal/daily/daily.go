// Package daily picks a deterministic solution per calendar day and keeps
// the solver's result for each day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/sim"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Solution returns the day's word from answers, which must be in a stable
// (load) order.
func Solution(answers []game.Word, salt string, date time.Time) (int, game.Word) {
	if len(answers) == 0 {
		return 0, ""
	}
	i := WordIndex(date, salt, len(answers))
	return i, answers[i]
}

// Solve lets the solver play the day's word over the corpus in load order,
// so a date always yields the same game.
func Solve(c *words.Corpus, salt string, date time.Time, cfg solver.Config) (Result, error) {
	start := time.Now()
	idx, w := Solution(c.Answers(), salt, date)
	res, err := sim.PlayInOrder(c, w, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("daily %s: %w", DateKey(date), err)
	}
	return Result{
		Date:       DateKey(date),
		WordIndex:  idx,
		Solution:   string(w),
		Won:        res.Won,
		Guesses:    res.Played(),
		Transcript: Transcript(res),
		ElapsedMs:  time.Since(start).Milliseconds(),
		Game:       &res,
	}, nil
}

// Transcript is a compact record of a game: "slate:00202 crane:22222".
func Transcript(r sim.Result) string {
	parts := make([]string, len(r.Turns))
	for i, t := range r.Turns {
		parts[i] = string(t.Move.Word) + ":" + t.Feedback.String()
	}
	return strings.Join(parts, " ")
}
