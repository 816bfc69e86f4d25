package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pawguard/internal/config"
	"pawguard/internal/domain"
	"pawguard/internal/redis"
	"pawguard/pkg/e"
)

// EventSender drains the lifecycle event queue and posts each event to
// the configured webhook. It runs as a worker next to the HTTP server.
type EventSender struct {
	logger *slog.Logger
	cfg    config.WebhookConfig
	queue  *redis.EventQueue
	http   *http.Client
}

func NewEventSender(logger *slog.Logger, cfg config.WebhookConfig, q *redis.EventQueue) *EventSender {
	return &EventSender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *EventSender) Run(ctx context.Context) {
	s.logger.Info("eventSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("eventSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		event, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			time.Sleep(500 * time.Millisecond)
			continue
		}

		s.logger.Info("sending ticket event",
			slog.String("type", string(event.Type)),
			slog.String("ticket_id", event.TicketID))
		s.sendWithRetry(ctx, event)
	}
}

func (s *EventSender) sendWithRetry(ctx context.Context, event domain.TicketEvent) {
	const maxRetries = 3

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal ticket event failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create event request failed", slog.String("error", err.Error()))
			return
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("ticket event delivery failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		time.Sleep(time.Duration(attempt) * time.Second)
	}
}
