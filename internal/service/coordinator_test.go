package service_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"pawguard/internal/domain"
	mock_routing "pawguard/internal/routing/mocks"
	"pawguard/internal/service"
	mock_service "pawguard/internal/service/mocks"
	"pawguard/internal/storage"
	"pawguard/internal/storage/memory"
	"pawguard/pkg/e"
)

func startCoordinator(t *testing.T, store *memory.Store, provider *mock_routing.MockProvider, cache service.RouteCache) *service.Coordinator {
	t.Helper()

	c := service.NewCoordinator(store, provider, cache, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = c.Run(ctx) }()
	return c
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func seedTicket(t *testing.T, store *memory.Store, ticket domain.RescueTicket) string {
	t.Helper()

	id, err := store.Create(context.Background(), &ticket)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return id
}

func TestCoordinator_Views_OrderAndFilter(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	loc := domain.LatLng{Lat: -17.39, Lng: -66.16}

	oldPending := seedTicket(t, store, domain.RescueTicket{
		Description: "Stray cat stuck on a roof downtown",
		Location:    loc, State: domain.TicketPending,
		Reporter: domain.UserRef{UserID: "u1"}, CreatedAt: base,
	})
	newPending := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    loc, State: domain.TicketPending,
		Reporter: domain.UserRef{UserID: "u2"}, CreatedAt: base.Add(time.Hour),
	})
	assignedAt := base.Add(30 * time.Minute)
	inProgress := seedTicket(t, store, domain.RescueTicket{
		Description: "Dog tangled in wire by the river",
		Location:    loc, State: domain.TicketAssigned,
		Reporter: domain.UserRef{UserID: "u1"}, Helper: &domain.UserRef{UserID: "h1"},
		CreatedAt: base, AssignedAt: &assignedAt,
	})
	finalizedAt := base.Add(2 * time.Hour)
	done := seedTicket(t, store, domain.RescueTicket{
		Description: "Puppy abandoned in a cardboard box",
		Location:    loc, State: domain.TicketFinalized,
		Reporter: domain.UserRef{UserID: "u2"}, Helper: &domain.UserRef{UserID: "h1"},
		CreatedAt: base, AssignedAt: &assignedAt, FinalizedAt: &finalizedAt,
		EvidencePhotoRef: "https://cdn.example/p.jpg",
	})

	c := startCoordinator(t, store, nil, nil)
	waitFor(t, func() bool { return len(c.Active("viewer")) == 2 })

	active := c.Active("viewer")
	if active[0].ID != newPending || active[1].ID != oldPending {
		t.Fatalf("active order: got %s, %s", active[0].ID, active[1].ID)
	}

	prog := c.InProgress()
	if len(prog) != 1 || prog[0].ID != inProgress {
		t.Fatalf("in progress: got %+v", prog)
	}

	fin := c.Finalized()
	if len(fin) != 1 || fin[0].ID != done {
		t.Fatalf("finalized: got %+v", fin)
	}

	mine := c.Mine("h1")
	if len(mine) != 2 || mine[0].ID != done || mine[1].ID != inProgress {
		t.Fatalf("mine order: got %+v", mine)
	}

	st := c.Stats()
	if st.Pending != 2 || st.Assigned != 1 || st.Finalized != 1 {
		t.Fatalf("stats: got %+v", st)
	}
}

func TestCoordinator_Dismiss_PerViewer(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	c := startCoordinator(t, store, nil, nil)
	waitFor(t, func() bool { return len(c.Active("a")) == 1 })

	c.Dismiss("a", id)
	if got := c.Active("a"); len(got) != 0 {
		t.Fatalf("viewer a still sees %d tickets", len(got))
	}
	// Other viewers are unaffected.
	if got := c.Active("b"); len(got) != 1 {
		t.Fatalf("viewer b sees %d tickets, want 1", len(got))
	}

	c.Undismiss("a", id)
	if got := c.Active("a"); len(got) != 1 {
		t.Fatalf("after undismiss viewer a sees %d tickets, want 1", len(got))
	}
}

func TestCoordinator_Dismiss_SurvivesSnapshots(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	c := startCoordinator(t, store, nil, nil)
	waitFor(t, func() bool { return len(c.Active("a")) == 1 })
	c.Dismiss("a", id)

	// A new ticket triggers a fresh snapshot; the dismissal must hold.
	seedTicket(t, store, domain.RescueTicket{
		Description: "Stray cat stuck on a roof downtown",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u2"}, CreatedAt: time.Now().UTC(),
	})
	waitFor(t, func() bool { return len(c.Active("a")) == 1 })

	for _, ticket := range c.Active("a") {
		if ticket.ID == id {
			t.Fatal("dismissed ticket resurfaced after snapshot")
		}
	}
}

func TestCoordinator_SweepDismissals(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	c := startCoordinator(t, store, nil, nil)
	waitFor(t, func() bool { return len(c.Active("a")) == 1 })
	c.Dismiss("a", id)

	if removed := c.SweepDismissals(); removed != 0 {
		t.Fatalf("sweep removed %d marks from a live pending ticket", removed)
	}

	assigned := domain.TicketAssigned
	now := time.Now().UTC()
	if _, err := store.Update(context.Background(), id, storage.TicketUpdate{
		State: &assigned, Helper: &domain.UserRef{UserID: "h1"}, AssignedAt: &now,
	}, nil); err != nil {
		t.Fatalf("update: %v", err)
	}
	waitFor(t, func() bool { return len(c.InProgress()) == 1 })

	if removed := c.SweepDismissals(); removed != 1 {
		t.Fatalf("sweep: got %d, want 1", removed)
	}
}

func TestCoordinator_RouteFor_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	provider := mock_routing.NewMockProvider(ctrl)

	store := memory.NewStore()
	dest := domain.LatLng{Lat: -17.39, Lng: -66.16}
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    dest, State: domain.TicketPending,
		Reporter: domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	origin := domain.LatLng{Lat: -17.38, Lng: -66.15}
	want := &domain.RouteResult{Origin: origin, Destination: dest, Mode: domain.ModeDriving, DistanceMeters: 1500, DurationSeconds: 240}
	provider.EXPECT().GetRoute(gomock.Any(), origin, dest, domain.ModeDriving).Return(want, nil)

	c := startCoordinator(t, store, provider, nil)
	waitFor(t, func() bool { _, ok := c.Ticket(id); return ok })

	got, err := c.RouteFor(context.Background(), "viewer", origin, id, domain.ModeDriving)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if got.DistanceMeters != want.DistanceMeters {
		t.Fatalf("distance: got %v", got.DistanceMeters)
	}

	focused, ok := c.FocusedRoute("viewer")
	if !ok || focused != got {
		t.Fatal("expected route to become the viewer's focused route")
	}
}

func TestCoordinator_RouteFor_LastRequestWins(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	provider := mock_routing.NewMockProvider(ctrl)

	store := memory.NewStore()
	dest := domain.LatLng{Lat: -17.39, Lng: -66.16}
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    dest, State: domain.TicketPending,
		Reporter: domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	origin := domain.LatLng{Lat: -17.38, Lng: -66.15}
	firstStarted := make(chan struct{})

	// The first lookup hangs until its context is canceled by the second.
	provider.EXPECT().GetRoute(gomock.Any(), origin, dest, domain.ModeDriving).
		DoAndReturn(func(ctx context.Context, _, _ domain.LatLng, _ domain.TransportMode) (*domain.RouteResult, error) {
			close(firstStarted)
			<-ctx.Done()
			return nil, e.ErrRouteUnavailable
		})
	want := &domain.RouteResult{Origin: origin, Destination: dest, Mode: domain.ModeWalking, DistanceMeters: 900, DurationSeconds: 700}
	provider.EXPECT().GetRoute(gomock.Any(), origin, dest, domain.ModeWalking).Return(want, nil)

	c := startCoordinator(t, store, provider, nil)
	waitFor(t, func() bool { _, ok := c.Ticket(id); return ok })

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.RouteFor(context.Background(), "viewer", origin, id, domain.ModeDriving)
		firstErr <- err
	}()

	<-firstStarted
	got, err := c.RouteFor(context.Background(), "viewer", origin, id, domain.ModeWalking)
	if err != nil {
		t.Fatalf("second route: %v", err)
	}
	if got.Mode != domain.ModeWalking {
		t.Fatalf("mode: got %q", got.Mode)
	}

	if err := <-firstErr; !errors.Is(err, e.ErrRouteSuperseded) {
		t.Fatalf("first route: want ErrRouteSuperseded, got %v", err)
	}

	focused, ok := c.FocusedRoute("viewer")
	if !ok || focused.Mode != domain.ModeWalking {
		t.Fatal("focused route must be the later request's result")
	}
}

func TestCoordinator_RouteFor_CacheHit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	provider := mock_routing.NewMockProvider(ctrl)
	cache := mock_service.NewMockRouteCache(ctrl)

	store := memory.NewStore()
	dest := domain.LatLng{Lat: -17.39, Lng: -66.16}
	id := seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    dest, State: domain.TicketPending,
		Reporter: domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	origin := domain.LatLng{Lat: -17.38, Lng: -66.15}
	cached := &domain.RouteResult{Origin: origin, Destination: dest, Mode: domain.ModeDriving, DistanceMeters: 1200, DurationSeconds: 180}
	cache.EXPECT().Get(gomock.Any(), id, domain.ModeDriving).Return(cached, nil)
	// No provider call expected on a cache hit.

	c := startCoordinator(t, store, provider, cache)
	waitFor(t, func() bool { _, ok := c.Ticket(id); return ok })

	got, err := c.RouteFor(context.Background(), "viewer", origin, id, domain.ModeDriving)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	if got != cached {
		t.Fatal("expected the cached route")
	}
}

func TestCoordinator_RouteFor_UnknownTicket(t *testing.T) {
	t.Parallel()

	c := startCoordinator(t, memory.NewStore(), nil, nil)

	_, err := c.RouteFor(context.Background(), "viewer", domain.LatLng{Lat: -17.38, Lng: -66.15}, "missing", domain.ModeDriving)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCoordinator_Watch_TicksOnChange(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	c := startCoordinator(t, store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := c.Watch(ctx)

	seedTicket(t, store, domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u1"}, CreatedAt: time.Now().UTC(),
	})

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("no tick after collection change")
	}
}
