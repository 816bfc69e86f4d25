// Package memory is an in-process ticket store used by unit tests and
// local development. It honors the same conditional-update contract as the
// real adapters, including under concurrent callers.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"pawguard/internal/domain"
	"pawguard/internal/storage"
	"pawguard/pkg/e"
)

type Store struct {
	mu      sync.RWMutex
	tickets map[string]*domain.RescueTicket
	subs    map[int]chan []domain.RescueTicket
	nextSub int

	// writeDelay simulates store latency between a caller deciding to
	// write and the write landing; used to provoke claim races in tests.
	writeDelay time.Duration
}

type Option func(*Store)

func WithWriteDelay(d time.Duration) Option {
	return func(s *Store) { s.writeDelay = d }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		tickets: make(map[string]*domain.RescueTicket),
		subs:    make(map[int]chan []domain.RescueTicket),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Create(ctx context.Context, t *domain.RescueTicket) (string, error) {
	const op = "memory.Store.Create"

	if t == nil {
		return "", fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	s.delay(ctx)

	s.mu.Lock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	cp := *t
	s.tickets[cp.ID] = &cp
	s.mu.Unlock()

	s.broadcast()
	return t.ID, nil
}

func (s *Store) Get(ctx context.Context, id string) (*domain.RescueTicket, error) {
	const op = "memory.Store.Get"

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (s *Store) List(ctx context.Context) ([]domain.RescueTicket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(), nil
}

func (s *Store) Update(ctx context.Context, id string, upd storage.TicketUpdate, pre *storage.Precondition) (*domain.RescueTicket, error) {
	const op = "memory.Store.Update"

	// Latency happens before the atomic section, the same way a slow
	// network write still lands atomically at the store.
	s.delay(ctx)

	s.mu.Lock()
	t, ok := s.tickets[id]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	if !pre.Check(t) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", op, e.ErrPreconditionFailed)
	}
	upd.Apply(t)
	cp := *t
	s.mu.Unlock()

	s.broadcast()
	return &cp, nil
}

func (s *Store) Subscribe(ctx context.Context) (<-chan []domain.RescueTicket, error) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan []domain.RescueTicket, 8)
	s.subs[id] = ch
	snap := s.snapshotLocked()
	s.mu.Unlock()

	// Initial snapshot so a new subscriber does not wait for a write.
	ch <- snap

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *Store) delay(ctx context.Context) {
	if s.writeDelay <= 0 {
		return
	}
	select {
	case <-time.After(s.writeDelay):
	case <-ctx.Done():
	}
}

func (s *Store) broadcast() {
	s.mu.RLock()
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Slow subscriber; it will catch up on the next change.
		}
	}
	s.mu.RUnlock()
}

func (s *Store) snapshotLocked() []domain.RescueTicket {
	list := make([]domain.RescueTicket, 0, len(s.tickets))
	for _, t := range s.tickets {
		list = append(list, *t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}
