package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pawguard/internal/config"
	"pawguard/internal/domain"
	"pawguard/internal/storage"
	"pawguard/pkg/e"
)

// Lifecycle implements the ticket state machine on top of the shared
// store. Every transition is a conditional update: under concurrent
// callers exactly one wins and the rest get ErrInvalidTransition.
type Lifecycle struct {
	store  storage.TicketStore
	events EventSink
	bounds config.GeoBounds
	logger *slog.Logger

	now func() time.Time
}

func NewLifecycle(store storage.TicketStore, events EventSink, bounds config.GeoBounds, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{
		store:  store,
		events: events,
		bounds: bounds,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Lifecycle) Create(ctx context.Context, req domain.CreateTicketRequest, reporter domain.UserRef) (*domain.RescueTicket, error) {
	const op = "service.Lifecycle.Create"

	desc := strings.TrimSpace(req.Description)
	if !domain.ValidDescription(desc) {
		return nil, fmt.Errorf("%s: description shorter than %d chars: %w", op, domain.MinDescriptionLen, e.ErrValidation)
	}
	if !req.Location.InRange() {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if !req.AllowOutOfBounds && !s.bounds.Contains(req.Location.Lat, req.Location.Lng) {
		return nil, fmt.Errorf("%s: location outside service area: %w", op, e.ErrValidation)
	}
	if reporter.IsZero() {
		return nil, fmt.Errorf("%s: missing reporter: %w", op, e.ErrUnauthorized)
	}

	ticket := &domain.RescueTicket{
		Description: desc,
		Location:    req.Location,
		State:       domain.TicketPending,
		Reporter:    reporter,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.store.Create(ctx, ticket)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	ticket.ID = id

	s.emit(ctx, domain.EventTicketCreated, ticket, reporter)
	s.logger.Info("rescue ticket created", slog.String("ticket_id", id), slog.String("reporter", reporter.UserID))
	return ticket, nil
}

// Claim assigns the caller as helper. The pending precondition makes the
// claim race safe: the second caller hits the guard and is told the
// ticket already moved on.
func (s *Lifecycle) Claim(ctx context.Context, ticketID string, helper domain.UserRef) (*domain.RescueTicket, error) {
	const op = "service.Lifecycle.Claim"

	if helper.IsZero() {
		return nil, fmt.Errorf("%s: missing helper: %w", op, e.ErrUnauthorized)
	}

	pending := domain.TicketPending
	assigned := domain.TicketAssigned
	at := s.now().UTC()

	ticket, err := s.store.Update(ctx, ticketID,
		storage.TicketUpdate{
			State:      &assigned,
			Helper:     &helper,
			AssignedAt: &at,
		},
		&storage.Precondition{State: &pending},
	)
	if err != nil {
		if errors.Is(err, e.ErrPreconditionFailed) {
			return nil, fmt.Errorf("%s: ticket is no longer pending: %w", op, e.ErrInvalidTransition)
		}
		return nil, e.Wrap(op, err)
	}

	s.emit(ctx, domain.EventTicketClaimed, ticket, helper)
	s.logger.Info("rescue ticket claimed", slog.String("ticket_id", ticketID), slog.String("helper", helper.UserID))
	return ticket, nil
}

// AttachEvidence stores a photo reference on an assigned ticket. Only the
// assigned helper may attach; re-attaching replaces the previous reference.
func (s *Lifecycle) AttachEvidence(ctx context.Context, ticketID, photoRef string, caller domain.UserRef) (*domain.RescueTicket, error) {
	const op = "service.Lifecycle.AttachEvidence"

	if strings.TrimSpace(photoRef) == "" {
		return nil, fmt.Errorf("%s: empty photo reference: %w", op, e.ErrValidation)
	}

	pending := domain.TicketPending
	ticket, err := s.store.Update(ctx, ticketID,
		storage.TicketUpdate{EvidencePhotoRef: &photoRef},
		&storage.Precondition{NotState: &pending, HelperID: caller.UserID},
	)
	if err != nil {
		if errors.Is(err, e.ErrPreconditionFailed) {
			return nil, fmt.Errorf("%s: only the assigned helper can attach evidence: %w", op, e.ErrInvalidTransition)
		}
		return nil, e.Wrap(op, err)
	}

	s.logger.Info("evidence attached", slog.String("ticket_id", ticketID), slog.String("helper", caller.UserID))
	return ticket, nil
}

// Finalize closes an assigned ticket. Requires attached evidence and the
// caller to be the assigned helper; the transition is one-way.
func (s *Lifecycle) Finalize(ctx context.Context, ticketID, finalComment string, caller domain.UserRef) (*domain.RescueTicket, error) {
	const op = "service.Lifecycle.Finalize"

	current, err := s.store.Get(ctx, ticketID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current.State != domain.TicketAssigned {
		return nil, fmt.Errorf("%s: ticket is %s, not assigned: %w", op, current.State, e.ErrInvalidTransition)
	}
	if !current.HelperIs(caller.UserID) {
		return nil, fmt.Errorf("%s: caller is not the assigned helper: %w", op, e.ErrInvalidTransition)
	}
	if current.EvidencePhotoRef == "" {
		return nil, fmt.Errorf("%s: %w", op, e.ErrEvidenceRequired)
	}

	assigned := domain.TicketAssigned
	finalized := domain.TicketFinalized
	at := s.now().UTC()
	comment := strings.TrimSpace(finalComment)

	ticket, err := s.store.Update(ctx, ticketID,
		storage.TicketUpdate{
			State:        &finalized,
			FinalizedAt:  &at,
			FinalComment: &comment,
		},
		&storage.Precondition{State: &assigned, HelperID: caller.UserID},
	)
	if err != nil {
		if errors.Is(err, e.ErrPreconditionFailed) {
			return nil, fmt.Errorf("%s: ticket moved on between read and write: %w", op, e.ErrInvalidTransition)
		}
		return nil, e.Wrap(op, err)
	}

	s.emit(ctx, domain.EventTicketFinalized, ticket, caller)
	s.logger.Info("rescue ticket finalized", slog.String("ticket_id", ticketID), slog.String("helper", caller.UserID))
	return ticket, nil
}

// emit queues an outbound event. Delivery is best effort: a full or down
// queue never fails the transition that already landed.
func (s *Lifecycle) emit(ctx context.Context, typ domain.TicketEventType, t *domain.RescueTicket, actor domain.UserRef) {
	if s.events == nil {
		return
	}
	ev := domain.TicketEvent{
		Type:       typ,
		TicketID:   t.ID,
		Actor:      actor,
		State:      t.State,
		OccurredAt: s.now().UTC(),
	}
	if err := s.events.Enqueue(ctx, ev); err != nil {
		s.logger.Warn("failed to enqueue ticket event",
			slog.String("type", string(typ)),
			slog.String("ticket_id", t.ID),
			slog.String("error", err.Error()))
	}
}
