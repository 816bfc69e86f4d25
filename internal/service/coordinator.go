package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"pawguard/internal/domain"
	"pawguard/internal/routing"
	"pawguard/internal/storage"
	"pawguard/pkg/e"
)

// Coordinator holds the live in-memory projection of the shared ticket
// collection and serves the derived views from it. It consumes the
// store's full-snapshot subscription and rebuilds on every change, so
// reads never touch the store.
type Coordinator struct {
	store    storage.TicketStore
	provider routing.Provider
	cache    RouteCache
	logger   *slog.Logger

	mu        sync.RWMutex
	tickets   map[string]domain.RescueTicket
	dismissed map[string]map[string]struct{}
	focused   map[string]*domain.RouteResult
	flights   map[string]*routeFlight
	watchers  map[chan struct{}]struct{}
}

// routeFlight is one in-flight routing lookup for a viewer. A newer
// lookup for the same viewer cancels it.
type routeFlight struct {
	cancel context.CancelFunc
}

func NewCoordinator(store storage.TicketStore, provider routing.Provider, cache RouteCache, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:     store,
		provider:  provider,
		cache:     cache,
		logger:    logger,
		tickets:   make(map[string]domain.RescueTicket),
		dismissed: make(map[string]map[string]struct{}),
		focused:   make(map[string]*domain.RouteResult),
		flights:   make(map[string]*routeFlight),
		watchers:  make(map[chan struct{}]struct{}),
	}
}

// Run consumes the store subscription until the context ends. It blocks;
// callers run it in its own goroutine.
func (c *Coordinator) Run(ctx context.Context) error {
	const op = "service.Coordinator.Run"

	snapshots, err := c.store.Subscribe(ctx)
	if err != nil {
		return e.Wrap(op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			c.apply(snap)
		}
	}
}

// apply replaces the projection with a fresh snapshot and wakes watchers.
func (c *Coordinator) apply(snap []domain.RescueTicket) {
	c.mu.Lock()
	c.tickets = make(map[string]domain.RescueTicket, len(snap))
	for _, t := range snap {
		c.tickets[t.ID] = t
	}
	for ch := range c.watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	c.mu.Unlock()
}

// Watch returns a channel that receives a tick on every collection
// change. The channel is dropped when ctx ends.
func (c *Coordinator) Watch(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.watchers, ch)
		c.mu.Unlock()
	}()
	return ch
}

// Active returns pending tickets minus the viewer's dismissals, newest
// first. Dismissals are per viewer and session scoped; they never leave
// this process.
func (c *Coordinator) Active(viewerID string) []domain.RescueTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hidden := c.dismissed[viewerID]
	out := make([]domain.RescueTicket, 0)
	for _, t := range c.tickets {
		if t.State != domain.TicketPending {
			continue
		}
		if _, ok := hidden[t.ID]; ok {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// InProgress returns claimed, unfinished tickets, most recently claimed
// first.
func (c *Coordinator) InProgress() []domain.RescueTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RescueTicket, 0)
	for _, t := range c.tickets {
		if t.State == domain.TicketAssigned {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return claimedAt(out[i]).After(claimedAt(out[j]))
	})
	return out
}

// Finalized returns closed tickets, most recently finalized first.
func (c *Coordinator) Finalized() []domain.RescueTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RescueTicket, 0)
	for _, t := range c.tickets {
		if t.State == domain.TicketFinalized {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return finalizedAt(out[i]).After(finalizedAt(out[j]))
	})
	return out
}

// Mine returns every ticket the user reported or helped on, ordered by
// most recent relevant activity.
func (c *Coordinator) Mine(userID string) []domain.RescueTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RescueTicket, 0)
	for _, t := range c.tickets {
		if t.InvolvesUser(userID) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RelevantAt().After(out[j].RelevantAt())
	})
	return out
}

func (c *Coordinator) Ticket(id string) (*domain.RescueTicket, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.tickets[id]
	if !ok {
		return nil, false
	}
	cp := t
	return &cp, true
}

// Dismiss hides a ticket from the viewer's active view. Dismissing a
// ticket that is not pending, or not present at all, is a no-op for the
// views but still recorded so a later snapshot cannot resurface it.
func (c *Coordinator) Dismiss(viewerID, ticketID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dismissed[viewerID] == nil {
		c.dismissed[viewerID] = make(map[string]struct{})
	}
	c.dismissed[viewerID][ticketID] = struct{}{}
}

func (c *Coordinator) Undismiss(viewerID, ticketID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.dismissed[viewerID], ticketID)
}

// SweepDismissals drops dismissal marks whose tickets left the collection
// or moved past pending. Run periodically; the marks are session junk
// otherwise.
func (c *Coordinator) SweepDismissals() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for viewer, hidden := range c.dismissed {
		for id := range hidden {
			t, ok := c.tickets[id]
			if !ok || t.State != domain.TicketPending {
				delete(hidden, id)
				removed++
			}
		}
		if len(hidden) == 0 {
			delete(c.dismissed, viewer)
		}
	}
	return removed
}

// RouteFor resolves a route from the viewer's position to a ticket. At
// most one lookup per viewer is in flight: starting a new one cancels
// the previous, which returns ErrRouteSuperseded. The winning result
// becomes the viewer's focused route.
func (c *Coordinator) RouteFor(ctx context.Context, viewerID string, origin domain.LatLng, ticketID string, mode domain.TransportMode) (*domain.RouteResult, error) {
	const op = "service.Coordinator.RouteFor"

	ticket, ok := c.Ticket(ticketID)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	if !origin.InRange() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}

	flightCtx, cancel := context.WithCancel(ctx)
	flight := &routeFlight{cancel: cancel}

	c.mu.Lock()
	if prev, ok := c.flights[viewerID]; ok {
		prev.cancel()
	}
	c.flights[viewerID] = flight
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.flights[viewerID] == flight {
			delete(c.flights, viewerID)
		}
		c.mu.Unlock()
		cancel()
	}()

	route, err := c.lookup(flightCtx, origin, ticket.Location, ticketID, mode)
	if err != nil {
		if flightCtx.Err() != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("%s: %w", op, e.ErrRouteSuperseded)
		}
		return nil, e.Wrap(op, err)
	}

	c.mu.Lock()
	superseded := c.flights[viewerID] != flight
	if !superseded {
		c.focused[viewerID] = route
	}
	c.mu.Unlock()

	if superseded {
		return nil, fmt.Errorf("%s: %w", op, e.ErrRouteSuperseded)
	}
	return route, nil
}

// lookup checks the route cache before asking the provider. Caching is
// keyed per ticket and mode; the origin varies too little between
// consecutive taps to matter for the TTL in use.
func (c *Coordinator) lookup(ctx context.Context, origin, dest domain.LatLng, ticketID string, mode domain.TransportMode) (*domain.RouteResult, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, ticketID, mode)
		if err != nil {
			c.logger.Warn("route cache read failed", slog.String("ticket_id", ticketID), slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	route, err := c.provider.GetRoute(ctx, origin, dest, mode)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, ticketID, route); err != nil {
			c.logger.Warn("route cache write failed", slog.String("ticket_id", ticketID), slog.String("error", err.Error()))
		}
	}
	return route, nil
}

// FocusedRoute returns the viewer's last successfully resolved route.
func (c *Coordinator) FocusedRoute(viewerID string) (*domain.RouteResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.focused[viewerID]
	return r, ok
}

// ClearFocus drops the viewer's focused route, for example when they
// leave the map screen.
func (c *Coordinator) ClearFocus(viewerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.focused, viewerID)
}

// Stats aggregates counters over the current projection.
func (c *Coordinator) Stats() domain.TicketStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var st domain.TicketStats
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, t := range c.tickets {
		switch t.State {
		case domain.TicketPending:
			st.Pending++
		case domain.TicketAssigned:
			st.Assigned++
		case domain.TicketFinalized:
			st.Finalized++
		}
		if !t.CreatedAt.Before(today) {
			st.CreatedToday++
		}
		if t.FinalizedAt != nil && !t.FinalizedAt.Before(today) {
			st.FinalizedToday++
		}
	}
	return st
}

// All returns a copy of the current projection, for analytics folds.
func (c *Coordinator) All() []domain.RescueTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.RescueTicket, 0, len(c.tickets))
	for _, t := range c.tickets {
		out = append(out, t)
	}
	return out
}

func claimedAt(t domain.RescueTicket) time.Time {
	if t.AssignedAt != nil {
		return *t.AssignedAt
	}
	return t.CreatedAt
}

func finalizedAt(t domain.RescueTicket) time.Time {
	if t.FinalizedAt != nil {
		return *t.FinalizedAt
	}
	return t.RelevantAt()
}
