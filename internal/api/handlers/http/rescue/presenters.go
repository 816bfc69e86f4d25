package rescue

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"

	"pawguard/internal/domain"
	"pawguard/internal/geo"
	"pawguard/pkg/e"
)

// routeResponse flattens a route for the map screen, with the display
// strings the client renders verbatim.
type routeResponse struct {
	domain.RouteResult
	DurationMinutes int    `json:"duration_minutes"`
	DistanceDisplay string `json:"distance_display"`
	DurationDisplay string `json:"duration_display"`
}

func presentRoute(r *domain.RouteResult) routeResponse {
	return routeResponse{
		RouteResult:     *r,
		DurationMinutes: r.DurationMinutes(),
		DistanceDisplay: geo.FormatDistance(r.DistanceMeters),
		DurationDisplay: geo.FormatDuration(r.DurationSeconds),
	}
}

func (h *Handler) handleError(w http.ResponseWriter, l *slog.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrValidation), errors.Is(err, e.ErrInvalidCoordinates), errors.Is(err, e.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrInvalidTransition), errors.Is(err, e.ErrEvidenceRequired), errors.Is(err, e.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, e.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, e.ErrRouteSuperseded):
		// The client already fired a newer lookup; nothing to render.
		status = http.StatusConflict
	case errors.Is(err, e.ErrRouteUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, e.ErrEvidenceUploadFailed):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		l.Error("request failed", slog.Any("error", err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}

// queryLatLng requires lat and lng query params.
func (h *Handler) queryLatLng(w http.ResponseWriter, r *http.Request) (domain.LatLng, bool) {
	ll, ok := h.optionalLatLng(r)
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng query params required"})
		return domain.LatLng{}, false
	}
	return ll, true
}

func (h *Handler) optionalLatLng(r *http.Request) (domain.LatLng, bool) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		return domain.LatLng{}, false
	}
	ll := domain.LatLng{Lat: lat, Lng: lng}
	return ll, ll.InRange()
}
