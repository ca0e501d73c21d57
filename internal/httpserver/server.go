// internal/httpserver/server.go
//
// HTTP API exposing the solver as a guessing assistant.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words", POST /score.
//   - Solver sessions (signed bearer token): mounted under /solver.
//   - Daily solve and stored results: mounted under /daily.
//   - Batch simulations (admin basic auth) and stored runs: mounted under /sim.
//
// Errors are JSON bodies {"error": "..."}; validation errors are 400,
// unknown sessions or records 404, solver state conflicts 409.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/config"
	"github.com/evanmacbride/beat-wordle/internal/daily"
	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/store"
	"github.com/evanmacbride/beat-wordle/internal/words"
)

// Server bundles the router, the corpus, the session store and the result stores.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	corpus   *words.Corpus
	sessions store.Sessions
	runs     *store.Runs
	daily    *daily.Store
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, corpus *words.Corpus, sessions store.Sessions, db *sql.DB) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		corpus:   corpus,
		sessions: sessions,
		runs:     store.NewRuns(db),
		daily:    daily.NewStore(db),
		now:      time.Now,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(60 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(corsFromEnv)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service": "beat-wordle",
			"endpoints": []string{
				"/health", "/debug/words", "POST /score",
				"POST /solver/new", "POST /solver/next", "POST /solver/guess", "POST /solver/feedback",
				"GET /daily/solve", "GET /daily/results", "POST /sim", "GET /sim/runs",
			},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := s.corpus.Stats()
		writeJSON(w, http.StatusOK, map[string]int{"answers": a, "allowed": g, "length": s.corpus.Length()})
	})
	s.r.Post("/score", s.handleScore)

	s.mountSolver()
	s.mountDaily()
	s.mountSim()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables CORS for a single origin (CLIENT_ORIGIN, default
// http://localhost:5173).
func corsFromEnv(next http.Handler) http.Handler {
	origin := getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------- scoring -----------------------------------

type scoreReq struct {
	Guess    string `json:"guess"`
	Solution string `json:"solution"`
}
type scoreRes struct {
	Marks  []int `json:"marks"`
	Solved bool  `json:"solved"`
}

// handleScore scores a guess against a given solution.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if !decode(w, r, &req) {
		return
	}
	sol, err := game.ParseWord(req.Solution, s.corpus.Length())
	if err != nil {
		writeError(w, err)
		return
	}
	guess, err := game.ParseWord(req.Guess, s.corpus.Length())
	if err != nil {
		writeError(w, err)
		return
	}
	fb, err := game.Score(guess, sol)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreRes{Marks: fb.Ints(), Solved: fb.Solved()})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decode reads a JSON body into v; an empty body leaves v untouched.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, http.StatusBadRequest, "bad_json")
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidWordLength),
		errors.Is(err, game.ErrInvalidLetter),
		errors.Is(err, game.ErrInvalidFeedback):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound), errors.Is(err, daily.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, solver.ErrNoCandidates),
		errors.Is(err, solver.ErrBreakerExhausted),
		errors.Is(err, solver.ErrGameOver),
		errors.Is(err, solver.ErrPendingGuess),
		errors.Is(err, solver.ErrNoPendingGuess),
		errors.Is(err, solver.ErrAlreadyGuessed),
		errors.Is(err, game.ErrGameFinished):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		jsonError(w, status, "internal_error")
		return
	}
	jsonError(w, status, err.Error())
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
