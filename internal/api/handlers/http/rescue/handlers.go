package rescue

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pawguard/internal/domain"
	"pawguard/internal/geo"
	"pawguard/internal/media"
	"pawguard/internal/middleware"
	"pawguard/internal/service"
	"pawguard/pkg/validator"
)

// maxEvidenceBytes caps a single uploaded photo.
const maxEvidenceBytes = 10 << 20

type Handler struct {
	logger      *slog.Logger
	lifecycle   service.LifecycleService
	coordinator service.CoordinatorService
	uploader    media.Uploader
}

func NewHandler(logger *slog.Logger, lifecycle service.LifecycleService, coordinator service.CoordinatorService, uploader media.Uploader) *Handler {
	return &Handler{
		logger:      logger,
		lifecycle:   lifecycle,
		coordinator: coordinator,
		uploader:    uploader,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	var req domain.CreateTicketRequest
	if !h.decode(w, r, &req) {
		return
	}

	ticket, err := h.lifecycle.Create(r.Context(), req, user)
	if err != nil {
		h.handleError(w, l, err)
		return
	}

	l.Info("rescue created", slog.String("ticket_id", ticket.ID))
	h.writeJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	ticket, err := h.lifecycle.Claim(r.Context(), chi.URLParam(r, "id"), user)
	if err != nil {
		h.handleError(w, l, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

// AttachEvidence accepts either a JSON body with a photo_ref URL or a
// multipart upload under the "photo" field, which goes to object storage
// first.
func (h *Handler) AttachEvidence(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	photoRef, ok := h.evidenceRef(w, r)
	if !ok {
		return
	}

	ticket, err := h.lifecycle.AttachEvidence(r.Context(), chi.URLParam(r, "id"), photoRef, user)
	if err != nil {
		h.handleError(w, l, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) evidenceRef(w http.ResponseWriter, r *http.Request) (string, bool) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		var req domain.AttachEvidenceRequest
		if !h.decode(w, r, &req) {
			return "", false
		}
		return req.PhotoRef, true
	}

	if h.uploader == nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "photo uploads are not configured"})
		return "", false
	}
	if err := r.ParseMultipartForm(maxEvidenceBytes); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return "", false
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing photo field"})
		return "", false
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.handleError(w, h.log(r), err)
		return "", false
	}
	return url, true
}

func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	var req domain.FinalizeTicketRequest
	if !h.decode(w, r, &req) {
		return
	}

	ticket, err := h.lifecycle.Finalize(r.Context(), chi.URLParam(r, "id"), req.FinalComment, user)
	if err != nil {
		h.handleError(w, l, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	h.coordinator.Dismiss(user.UserID, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Undismiss(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	h.coordinator.Undismiss(user.UserID, chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// ListActive serves the viewer's feed of open tickets. When the viewer
// passes their position, each row carries a straight-line distance; no
// routing calls happen here.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	tickets := h.coordinator.Active(user.UserID)
	h.writeJSON(w, http.StatusOK, h.present(r, tickets))
}

func (h *Handler) ListInProgress(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.present(r, h.coordinator.InProgress()))
}

func (h *Handler) ListFinalized(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.present(r, h.coordinator.Finalized()))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	h.writeJSON(w, http.StatusOK, h.present(r, h.coordinator.Mine(user.UserID)))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ticket, ok := h.coordinator.Ticket(chi.URLParam(r, "id"))
	if !ok {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "ticket not found"})
		return
	}
	h.writeJSON(w, http.StatusOK, ticket)
}

// Route resolves a route from the caller's position to the ticket.
// Query: lat, lng, mode (driving when absent).
func (h *Handler) Route(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	origin, ok := h.queryLatLng(w, r)
	if !ok {
		return
	}
	mode, ok := domain.ParseTransportMode(r.URL.Query().Get("mode"))
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown transport mode"})
		return
	}

	route, err := h.coordinator.RouteFor(r.Context(), user.UserID, origin, chi.URLParam(r, "id"), mode)
	if err != nil {
		h.handleError(w, l, err)
		return
	}
	h.writeJSON(w, http.StatusOK, presentRoute(route))
}

// present decorates list rows with the viewer's straight-line distance
// when lat/lng query params are set.
func (h *Handler) present(r *http.Request, tickets []domain.RescueTicket) domain.TicketListResponse {
	views := make([]domain.TicketView, 0, len(tickets))

	origin, hasOrigin := h.optionalLatLng(r)
	for _, t := range tickets {
		v := domain.TicketView{RescueTicket: t}
		if hasOrigin {
			m := geo.HaversineM(origin, t.Location)
			v.DistanceMeters = &m
			v.DistanceDisplay = geo.FormatDistance(m)
		}
		views = append(views, v)
	}
	return domain.TicketListResponse{Tickets: views, Total: len(views)}
}

// decode reads one JSON object, rejects trailing data and runs struct
// validation.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(target); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return false
	}
	if err := validator.ValidateStruct(target); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return false
	}
	return true
}
