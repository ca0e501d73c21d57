// internal/httpserver/routes_sim.go
//
// Batch simulation routes under /sim:
//   - POST /sim              → run a batch (admin only) and store it
//   - GET  /sim/runs         → recent runs
//   - GET  /sim/runs/{id}    → one run with its lost solutions
//   - GET  /sim/hardest      → solutions lost most often
//
// The admin guard is HTTP basic auth checked against the bcrypt hash in
// ADMIN_PASSWORD_HASH; with no hash configured POST /sim is disabled.

package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/evanmacbride/beat-wordle/internal/config"
	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/sim"
	"github.com/evanmacbride/beat-wordle/internal/store"
)

const (
	adminUser   = "admin"
	maxSimGames = 2000
)

func (s *Server) mountSim() {
	s.r.Route("/sim", func(r chi.Router) {
		r.With(s.requireAdmin()).Post("/", s.handleSimulate)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
		r.Get("/hardest", s.handleHardest)
	})
}

// requireAdmin enforces basic auth against the configured bcrypt hash.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hash := s.cfg.AdminPasswordHash
			if hash == "" {
				jsonError(w, http.StatusForbidden, "simulation disabled")
				return
			}
			user, pw, ok := r.BasicAuth()
			if !ok || user != adminUser || !checkPassword(hash, pw) {
				w.Header().Set("WWW-Authenticate", `Basic realm="sim"`)
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

type simReq struct {
	Games    int     `json:"games"`
	Starter  *string `json:"starter"`
	Hard     *bool   `json:"hard"`
	Solution string  `json:"solution"`
}
type simRes struct {
	RunID    string   `json:"runId"`
	Games    int      `json:"games"`
	Wins     int      `json:"wins"`
	WinRate  float64  `json:"winRate"`
	AvgTurns float64  `json:"avgTurns"`
	Lost     []string `json:"lost"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simReq
	if !decode(w, r, &req) {
		return
	}
	if req.Games <= 0 {
		req.Games = 1
	}
	if req.Games > maxSimGames {
		jsonError(w, http.StatusBadRequest, "too many games, max "+strconv.Itoa(maxSimGames))
		return
	}

	cfg := s.cfg.Solver()
	if req.Starter != nil {
		st, err := config.ParseStarter(*req.Starter, cfg.Length)
		if err != nil {
			writeError(w, err)
			return
		}
		cfg.Starter = st
	}
	if req.Hard != nil {
		cfg.Hard = *req.Hard
	}
	var solution game.Word
	if req.Solution != "" {
		var err error
		if solution, err = game.ParseWord(req.Solution, cfg.Length); err != nil {
			writeError(w, err)
			return
		}
	}

	sum, err := sim.Simulate(r.Context(), s.corpus, sim.Config{
		Games:    req.Games,
		Workers:  s.cfg.Workers,
		Solution: solution,
		Solver:   cfg,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	run := store.NewRun(sum, cfg.Starter, cfg.Hard)
	if err := s.runs.Insert(r.Context(), run); err != nil {
		log.Warn().Err(err).Str("run", run.ID).Msg("store run")
	}
	writeJSON(w, http.StatusOK, simRes{
		RunID:    sum.RunID,
		Games:    sum.Games,
		Wins:     sum.Wins,
		WinRate:  sum.WinRate,
		AvgTurns: sum.AvgTurns,
		Lost:     run.Lost,
	})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.runs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleHardest(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.runs.Hardest(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []store.WordLosses{}
	}
	writeJSON(w, http.StatusOK, list)
}
