package service

import (
	"context"

	"pawguard/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// LifecycleService owns the ticket state machine: creation, claim,
// evidence attachment and finalization. Caller identity always comes from
// the authenticated session, never from the request body.
type LifecycleService interface {
	Create(ctx context.Context, req domain.CreateTicketRequest, reporter domain.UserRef) (*domain.RescueTicket, error)
	Claim(ctx context.Context, ticketID string, helper domain.UserRef) (*domain.RescueTicket, error)
	AttachEvidence(ctx context.Context, ticketID, photoRef string, caller domain.UserRef) (*domain.RescueTicket, error)
	Finalize(ctx context.Context, ticketID, finalComment string, caller domain.UserRef) (*domain.RescueTicket, error)
}

// CoordinatorService is the aggregate live view over the shared ticket
// collection plus the focused-ticket route lookups.
type CoordinatorService interface {
	Active(viewerID string) []domain.RescueTicket
	InProgress() []domain.RescueTicket
	Finalized() []domain.RescueTicket
	Mine(userID string) []domain.RescueTicket
	Ticket(id string) (*domain.RescueTicket, bool)

	Dismiss(viewerID, ticketID string)
	Undismiss(viewerID, ticketID string)

	RouteFor(ctx context.Context, viewerID string, origin domain.LatLng, ticketID string, mode domain.TransportMode) (*domain.RouteResult, error)
	FocusedRoute(viewerID string) (*domain.RouteResult, bool)

	Stats() domain.TicketStats
	Watch(ctx context.Context) <-chan struct{}
}

// ImpactService derives per-user statistics from the full ticket history.
type ImpactService interface {
	ImpactFor(userID string) domain.ImpactStats
}

// EventSink receives lifecycle events for outbound delivery.
type EventSink interface {
	Enqueue(ctx context.Context, event domain.TicketEvent) error
}

// RouteCache holds recent route results keyed by ticket and mode.
type RouteCache interface {
	Get(ctx context.Context, ticketID string, mode domain.TransportMode) (*domain.RouteResult, error)
	Set(ctx context.Context, ticketID string, route *domain.RouteResult) error
}

type Service struct {
	Lifecycle   LifecycleService
	Coordinator CoordinatorService
	Impact      ImpactService
}

func NewService(
	lifecycle LifecycleService,
	coordinator CoordinatorService,
	impact ImpactService,
) *Service {
	return &Service{
		Lifecycle:   lifecycle,
		Coordinator: coordinator,
		Impact:      impact,
	}
}
