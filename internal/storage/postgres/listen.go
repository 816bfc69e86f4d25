package postgres

import (
	"context"

	"log/slog"

	"github.com/jackc/pgx/v5"

	"pawguard/internal/domain"
	"pawguard/pkg/e"
)

// Subscribe opens a dedicated listening connection and streams the full
// collection on every change notification. The first snapshot arrives
// immediately. The channel closes when ctx is done.
func (s *Store) Subscribe(ctx context.Context) (<-chan []domain.RescueTicket, error) {
	const op = "postgres.Store.Subscribe"

	conn, err := pgx.Connect(ctx, s.dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if _, err := conn.Exec(ctx, `LISTEN `+notifyChannel); err != nil {
		_ = conn.Close(ctx)
		return nil, e.Wrap(op, err)
	}

	ch := make(chan []domain.RescueTicket, 8)

	go func() {
		defer close(ch)
		defer func() { _ = conn.Close(context.Background()) }()

		send := func() {
			snap, err := s.List(ctx)
			if err != nil {
				s.logger.Error("snapshot after notify failed", slog.String("op", op), slog.Any("error", err))
				return
			}
			select {
			case ch <- snap:
			case <-ctx.Done():
			}
		}

		send()

		for {
			if _, err := conn.WaitForNotification(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.Error("wait for notification failed", slog.String("op", op), slog.Any("error", err))
				return
			}
			send()
		}
	}()

	return ch, nil
}
