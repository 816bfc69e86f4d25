package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pawguard/internal/domain"
)

// RouteCache holds recent routing-provider results per ticket and mode so
// repeated focus on the same ticket does not hammer the external service.
type RouteCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewRouteCache(r *Redis, ttl time.Duration) *RouteCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RouteCache{client: r.Client, ttl: ttl}
}

func routeKey(ticketID string, mode domain.TransportMode) string {
	return fmt.Sprintf("routes:%s:%s", ticketID, mode)
}

// Get returns the cached route or (nil, nil) on a miss.
func (c *RouteCache) Get(ctx context.Context, ticketID string, mode domain.TransportMode) (*domain.RouteResult, error) {
	data, err := c.client.Get(ctx, routeKey(ticketID, mode)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var route domain.RouteResult
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, err
	}
	return &route, nil
}

func (c *RouteCache) Set(ctx context.Context, ticketID string, route *domain.RouteResult) error {
	b, err := json.Marshal(route)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, routeKey(ticketID, route.Mode), b, c.ttl).Err()
}
