package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pawguard/internal/domain"
)

// TicketCache holds the current pending ticket set for cheap reads by the
// admin stats surface; it is warmed periodically by a scheduled job.
type TicketCache struct {
	client *goredis.Client
	key    string
}

func NewTicketCache(r *Redis) *TicketCache {
	return &TicketCache{client: r.Client, key: "tickets:pending"}
}

func (c *TicketCache) GetPending(ctx context.Context) ([]domain.RescueTicket, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var tickets []domain.RescueTicket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *TicketCache) SetPending(ctx context.Context, tickets []domain.RescueTicket, ttl time.Duration) error {
	b, err := json.Marshal(tickets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, ttl).Err()
}
