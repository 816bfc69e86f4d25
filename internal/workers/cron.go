package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pawguard/internal/domain"
)

const pendingCacheTTL = 5 * time.Minute

// TicketSource is the live view the jobs read from.
type TicketSource interface {
	Active(viewerID string) []domain.RescueTicket
	SweepDismissals() int
}

// PendingSetter is the warmed cache the ops dashboard reads.
type PendingSetter interface {
	SetPending(ctx context.Context, tickets []domain.RescueTicket, ttl time.Duration) error
}

// Jobs runs the periodic housekeeping: warming the pending-ticket cache
// and sweeping stale per-viewer dismissal marks.
type Jobs struct {
	logger *slog.Logger
	source TicketSource
	cache  PendingSetter
	cron   *cron.Cron
}

func NewJobs(logger *slog.Logger, source TicketSource, cache PendingSetter) *Jobs {
	return &Jobs{
		logger: logger,
		source: source,
		cache:  cache,
		cron:   cron.New(),
	}
}

// Run schedules the jobs and blocks until ctx ends.
func (j *Jobs) Run(ctx context.Context) error {
	if _, err := j.cron.AddFunc("@every 1m", func() { j.warmPendingCache(ctx) }); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("@every 10m", j.sweepDismissals); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("cron jobs STARTED")

	<-ctx.Done()
	stopped := j.cron.Stop()
	<-stopped.Done()
	j.logger.Info("cron jobs STOPPED")
	return nil
}

func (j *Jobs) warmPendingCache(ctx context.Context) {
	if j.cache == nil {
		return
	}
	pending := j.source.Active("")
	if err := j.cache.SetPending(ctx, pending, pendingCacheTTL); err != nil {
		j.logger.Warn("pending cache warm failed", slog.Any("error", err))
		return
	}
	j.logger.Debug("pending cache warmed", slog.Int("tickets", len(pending)))
}

func (j *Jobs) sweepDismissals() {
	if removed := j.source.SweepDismissals(); removed > 0 {
		j.logger.Debug("dismissal marks swept", slog.Int("removed", removed))
	}
}
