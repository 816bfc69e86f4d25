package rescue

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"pawguard/internal/domain"
	"pawguard/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Auth happens via the JWT middleware before the upgrade.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamFrame is one full push to a connected client. The client diffs
// locally; the server never sends deltas.
type streamFrame struct {
	Active     []domain.RescueTicket `json:"active"`
	InProgress []domain.RescueTicket `json:"in_progress"`
	Finalized  []domain.RescueTicket `json:"finalized"`
	SentAt     time.Time             `json:"sent_at"`
}

// Stream upgrades to a websocket and pushes the derived views on every
// collection change, plus an initial frame right after connect.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing identity"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	ticks := h.coordinator.Watch(ctx)

	// Reader goroutine: we only care about the close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func() bool {
		frame := streamFrame{
			Active:     h.coordinator.Active(user.UserID),
			InProgress: h.coordinator.InProgress(),
			Finalized:  h.coordinator.Finalized(),
			SentAt:     time.Now().UTC(),
		}
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(frame); err != nil {
			l.Debug("websocket write failed", slog.Any("error", err))
			return false
		}
		return true
	}

	if !send() {
		return
	}
	l.Info("rescue stream opened", slog.String("user_id", user.UserID))

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticks:
			if !send() {
				return
			}
		}
	}
}
