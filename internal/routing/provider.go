package routing

import (
	"context"

	"pawguard/internal/domain"
)

// Provider is the consumed routing interface. Implementations must return
// e.ErrRouteUnavailable on network failure or an empty route list; callers
// never treat that as fatal, the ticket stays usable without a route.
//
//go:generate mockgen -source=provider.go -destination=mocks/mock.go
type Provider interface {
	GetRoute(ctx context.Context, origin, dest domain.LatLng, mode domain.TransportMode) (*domain.RouteResult, error)
}
