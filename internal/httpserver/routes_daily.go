// internal/httpserver/routes_daily.go
//
// Daily solve routes under /daily:
//   - GET /daily/solve[?date=YYYY-MM-DD] → the solver plays that day's word
//     (today by default); the first result per date is stored and returned
//     on later calls.
//   - GET /daily/results[?date=YYYY-MM-DD][&limit=N] → one stored result, or
//     the most recent ones.
//
// The day's word is picked deterministically from date + DAILY_SALT.

package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/daily"
)

// dailyMu serialises solves so concurrent first requests for a date run
// the solver once.
var dailyMu sync.Mutex

func (s *Server) mountDaily() {
	s.r.Route("/daily", func(r chi.Router) {
		r.Get("/solve", s.handleDailySolve)
		r.Get("/results", s.handleDailyResults)
	})
}

// dateParam reads ?date=YYYY-MM-DD, defaulting to today (UTC).
func (s *Server) dateParam(r *http.Request) (time.Time, bool) {
	v := r.URL.Query().Get("date")
	if v == "" {
		return s.now().UTC(), true
	}
	t, err := time.Parse("2006-01-02", v)
	return t, err == nil
}

func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(r)
	if !ok {
		jsonError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	key := daily.DateKey(date)

	dailyMu.Lock()
	defer dailyMu.Unlock()

	if res, err := s.daily.Get(r.Context(), key); err == nil {
		writeJSON(w, http.StatusOK, res)
		return
	} else if !errors.Is(err, daily.ErrNotFound) {
		writeError(w, err)
		return
	}

	res, err := daily.Solve(s.corpus, s.cfg.DailySalt, date, s.cfg.Solver())
	if err != nil {
		writeError(w, err)
		return
	}
	res.CreatedAt = s.now().UTC().Truncate(time.Second)
	if _, err := s.daily.Insert(r.Context(), res); err != nil {
		log.Warn().Err(err).Str("date", key).Msg("store daily result")
	} else if stored, err := s.daily.Get(r.Context(), key); err == nil {
		res = *stored
	}
	log.Info().Str("date", key).Bool("won", res.Won).Int("guesses", res.Guesses).Msg("daily solved")
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDailyResults(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("date"); v != "" {
		date, ok := s.dateParam(r)
		if !ok {
			jsonError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		res, err := s.daily.Get(r.Context(), daily.DateKey(date))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.daily.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []daily.Result{}
	}
	writeJSON(w, http.StatusOK, list)
}
