package impact

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"pawguard/internal/middleware"
	"pawguard/internal/service"
)

type Handler struct {
	logger *slog.Logger
	impact service.ImpactService
}

func NewHandler(logger *slog.Logger, impact service.ImpactService) *Handler {
	return &Handler{logger: logger, impact: impact}
}

// Get serves the caller's own impact statistics.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	writeJSON(h.logger, w, http.StatusOK, h.impact.ImpactFor(user.UserID))
}

func writeJSON(logger *slog.Logger, w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}
