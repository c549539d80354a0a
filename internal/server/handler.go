// Package server provides the HTTP boundary: one chat endpoint plus
// health checking, mounted on a chi router.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wordspark/wordspark/internal/chat"
)

// maxBodyBytes bounds the request body; sessions round-trip through the
// client so bodies grow with story length, but never legitimately this far.
const maxBodyBytes = 1 << 20

// Pinger is the health-check view of the vocabulary store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the chat API.
type Handler struct {
	engine *chat.Controller
	db     Pinger
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(engine *chat.Controller, db Pinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{engine: engine, db: db, logger: logger}
}

// HandleChat processes one conversation turn.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req chat.TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" && req.SessionData == nil {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}

	resp := h.engine.HandleTurn(r.Context(), req)
	JSON(w, http.StatusOK, resp)
}

// HandleHealthz reports liveness and database reachability.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			h.logger.Error("health check: database unreachable", "error", err)
			status["status"] = "degraded"
			status["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}

	JSON(w, code, status)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
