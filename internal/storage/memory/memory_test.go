package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"pawguard/internal/domain"
	"pawguard/internal/storage"
	"pawguard/internal/storage/memory"
	"pawguard/pkg/e"
)

func pendingTicket(t *testing.T, store *memory.Store) string {
	t.Helper()
	id, err := store.Create(context.Background(), &domain.RescueTicket{
		Description: "Injured dog near the plaza, limping on one leg",
		Location:    domain.LatLng{Lat: -17.39, Lng: -66.16},
		State:       domain.TicketPending,
		Reporter:    domain.UserRef{UserID: "u-reporter", DisplayName: "R"},
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return id
}

func TestUpdate_PreconditionHolds(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := pendingTicket(t, store)

	pending := domain.TicketPending
	assigned := domain.TicketAssigned
	now := time.Now().UTC()

	got, err := store.Update(context.Background(), id, storage.TicketUpdate{
		State:      &assigned,
		Helper:     &domain.UserRef{UserID: "u-helper", DisplayName: "H"},
		AssignedAt: &now,
	}, &storage.Precondition{State: &pending})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.State != domain.TicketAssigned {
		t.Fatalf("expected assigned, got %s", got.State)
	}
	if got.Helper == nil || got.Helper.UserID != "u-helper" {
		t.Fatalf("helper not set: %+v", got.Helper)
	}
}

func TestUpdate_PreconditionFails(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := pendingTicket(t, store)

	assigned := domain.TicketAssigned
	_, err := store.Update(context.Background(), id, storage.TicketUpdate{},
		&storage.Precondition{State: &assigned})
	if !errors.Is(err, e.ErrPreconditionFailed) {
		t.Fatalf("expected ErrPreconditionFailed, got %v", err)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	_, err := store.Update(context.Background(), "nope", storage.TicketUpdate{}, nil)
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// Two concurrent conditional claims on the same pending ticket: exactly one
// must win, regardless of interleaving.
func TestUpdate_ConcurrentClaims_OneWinner(t *testing.T) {
	t.Parallel()

	store := memory.NewStore(memory.WithWriteDelay(20 * time.Millisecond))
	id := pendingTicket(t, store)

	pending := domain.TicketPending
	assigned := domain.TicketAssigned

	claim := func(helperID string) error {
		now := time.Now().UTC()
		_, err := store.Update(context.Background(), id, storage.TicketUpdate{
			State:      &assigned,
			Helper:     &domain.UserRef{UserID: helperID},
			AssignedAt: &now,
		}, &storage.Precondition{State: &pending})
		return err
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, h := range []string{"h1", "h2"} {
		wg.Add(1)
		go func(i int, h string) {
			defer wg.Done()
			errs[i] = claim(h)
		}(i, h)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, e.ErrPreconditionFailed):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner, got wins=%d losses=%d", wins, losses)
	}
}

func TestSubscribe_StreamsSnapshots(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := store.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Initial snapshot is empty.
	select {
	case snap := <-ch:
		if len(snap) != 0 {
			t.Fatalf("expected empty initial snapshot, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("no initial snapshot")
	}

	pendingTicket(t, store)

	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Fatalf("expected 1 ticket in snapshot, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot after create")
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	id := pendingTicket(t, store)

	a, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	a.Description = "mutated locally"

	b, err := store.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Description == "mutated locally" {
		t.Fatal("store leaked internal pointer")
	}
}
