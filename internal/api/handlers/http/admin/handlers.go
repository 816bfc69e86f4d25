package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pawguard/internal/domain"
	"pawguard/internal/service"
)

// PendingCache is the warmed snapshot of open tickets kept by the cron
// worker, so the ops dashboard does not hit the live projection.
//
//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type PendingCache interface {
	GetPending(ctx context.Context) ([]domain.RescueTicket, error)
}

type Handler struct {
	logger      *slog.Logger
	coordinator service.CoordinatorService
	pending     PendingCache
}

func NewHandler(logger *slog.Logger, coordinator service.CoordinatorService, pending PendingCache) *Handler {
	return &Handler{
		logger:      logger,
		coordinator: coordinator,
		pending:     pending,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.coordinator.Stats())
}

// Pending serves the cached open-ticket list. Falls back to the live
// projection when the cache is cold.
func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	tickets, err := h.pending.GetPending(r.Context())
	if err != nil {
		l.Warn("pending cache miss, serving live view", slog.Any("error", err))
		tickets = h.coordinator.Active("")
	}
	if tickets == nil {
		tickets = h.coordinator.Active("")
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"tickets": tickets,
		"total":   len(tickets),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
