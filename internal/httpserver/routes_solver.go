// internal/httpserver/routes_solver.go
//
// Solver sessions: a client opens a session, asks for suggestions, reports
// the guess it actually played and the feedback it got back.
//
//   - POST   /solver/new      → {sessionId, token, expiresAt}
//   - POST   /solver/next     → suggested guess and the rule behind it
//   - POST   /solver/guess    → record a guess other than the suggestion
//   - POST   /solver/feedback → trim candidates with "0/1/2" feedback
//   - GET    /solver/state    → history, pattern and remaining candidates
//   - DELETE /solver          → end the session
//
// Every route but /new needs "Authorization: Bearer <token>"; the token is
// an HS256 JWT carrying the session ID in "sid".

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/config"
	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/store"
)

const (
	sessionTTL = 24 * time.Hour
	previewLen = 10
)

var errBadToken = errors.New("invalid token")

func (s *Server) mountSolver() {
	s.r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleNewSession)
		r.Group(func(r chi.Router) {
			r.Use(s.requireSession())
			r.Post("/next", s.handleNext)
			r.Post("/guess", s.handleManualGuess)
			r.Post("/feedback", s.handleFeedback)
			r.Get("/state", s.handleState)
			r.Delete("/", s.handleEndSession)
		})
	})
}

// ------------------------------ sessions -----------------------------------

type newSessionReq struct {
	// Starter overrides the configured opening word; "none" disables it.
	Starter *string `json:"starter"`
	Hard    *bool   `json:"hard"`
}
type newSessionRes struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// handleNewSession creates a solver over the corpus and signs a token for it.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if !decode(w, r, &req) {
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

	sv, err := solver.New(s.corpus.Answers(), s.corpus.Aux(), cfg)
	if err != nil {
		writeError(w, err)
		return
	}

	if n := s.sessions.Sweep(r.Context(), s.now().Add(-sessionTTL)); n > 0 {
		log.Debug().Int("dropped", n).Msg("swept idle sessions")
	}
	sess := &store.Session{ID: genID(), Solver: sv}
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		writeError(w, err)
		return
	}

	tok, exp, err := s.signSession(sess.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		jsonError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, newSessionRes{SessionID: sess.ID, Token: tok, ExpiresAt: exp})
}

type moveRes struct {
	Guess          string `json:"guess"`
	Mode           string `json:"mode"`
	Reason         string `json:"reason"`
	Turn           int    `json:"turn"`
	TurnsRemaining int    `json:"turnsRemaining"`
	Remaining      int    `json:"remaining"`
}

// handleNext runs the turn policy and returns the suggested guess.
func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.Lock()
	defer sess.Unlock()

	sv := sess.Solver
	sit := sv.Situation()
	mv, err := sv.Next()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moveRes{
		Guess:          string(mv.Word),
		Mode:           mv.Decision.Mode.String(),
		Reason:         mv.Decision.Reason.String(),
		Turn:           sit.Turn,
		TurnsRemaining: sit.TurnsRemaining(),
		Remaining:      sit.Strict,
	})
}

type manualGuessReq struct {
	Guess string `json:"guess"`
}

// handleManualGuess records a guess chosen by the player.
func (s *Server) handleManualGuess(w http.ResponseWriter, r *http.Request) {
	var req manualGuessReq
	if !decode(w, r, &req) {
		return
	}
	sess := currentSession(r)
	sess.Lock()
	defer sess.Unlock()

	sv := sess.Solver
	guess, err := game.ParseWord(req.Guess, sv.Config().Length)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sv.Force(guess); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guess": string(guess), "turn": sv.Turn()})
}

type feedbackReq struct {
	Feedback string `json:"feedback"`
}
type stateRes struct {
	Turn       int      `json:"turn"`
	Solved     bool     `json:"solved"`
	Pattern    string   `json:"pattern"`
	History    []string `json:"history"`
	Remaining  int      `json:"remaining"`
	Candidates []string `json:"candidates"`
}

// handleFeedback applies feedback for the pending guess.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if !decode(w, r, &req) {
		return
	}
	sess := currentSession(r)
	sess.Lock()
	defer sess.Unlock()

	sv := sess.Solver
	fb, err := game.ParseFeedback(req.Feedback, sv.Config().Length)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sv.Update(fb); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot(sv))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	sess.Lock()
	defer sess.Unlock()
	writeJSON(w, http.StatusOK, snapshot(sess.Solver))
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), currentSession(r).ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func snapshot(sv *solver.Solver) stateRes {
	res := stateRes{
		Turn:      sv.Turn(),
		Solved:    sv.Solved(),
		Pattern:   sv.State().Pattern(),
		Remaining: sv.Strict().Len(),
	}
	for _, w := range sv.State().History() {
		res.History = append(res.History, string(w))
	}
	for _, w := range sv.Strict().Head(previewLen) {
		res.Candidates = append(res.Candidates, string(w))
	}
	return res
}

// ------------------------------ tokens -------------------------------------

// signSession creates an HS256 JWT for a session ID.
func (s *Server) signSession(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(sessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": id,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString([]byte(s.cfg.SessionSecret))
	return ss, exp, err
}

// parseSession validates a token and returns its session ID.
func (s *Server) parseSession(tok string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", fmt.Errorf("%w: %v", errBadToken, err)
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errBadToken
	}
	return sid, nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ---------------------------- session middleware ----------------------------

type ctxSessionKey struct{}

// requireSession enforces a valid token and injects its session into the
// request context.
func (s *Server) requireSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearer(r)
			if tok == "" {
				jsonError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			sid, err := s.parseSession(tok)
			if err != nil {
				jsonError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sess, err := s.sessions.Get(r.Context(), sid)
			if err != nil {
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func currentSession(r *http.Request) *store.Session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*store.Session)
	return sess
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
