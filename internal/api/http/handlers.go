package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/smashlab/racquet-manager/internal/apisrv/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		slog.Default().ErrorContext(r.Context(), "health check failed",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrTooManyAttempts):
		respondError(w, http.StatusTooManyRequests, "too many login attempts")
		return
	case errors.Is(err, auth.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	case err != nil:
		slog.Default().ErrorContext(r.Context(), "login failed",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{AuthToken: token})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snaps.Snapshot(r.Context())
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "dashboard snapshot failed",
			slog.String("err", err.Error()),
		)
		respondError(w, http.StatusInternalServerError, "dashboard unavailable")
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("private, max-age=%d", snap.CacheMaxAge))
	respondJSON(w, http.StatusOK, snap)
}

func respondJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response",
			slog.String("err", err.Error()),
		)
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, errorResponse{Error: msg})
}
