package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pawguard/internal/api"
	"pawguard/internal/api/handlers/http/system"
	"pawguard/internal/config"
	"pawguard/internal/media"
	"pawguard/internal/redis"
	"pawguard/internal/routing"
	"pawguard/internal/service"
	"pawguard/internal/storage"
	"pawguard/internal/storage/firestore"
	"pawguard/internal/storage/memory"
	"pawguard/internal/storage/postgres"
	"pawguard/internal/workers"
	"pawguard/pkg/logger"
)

type Components struct {
	logger *slog.Logger

	HttpServer  *api.Server
	Coordinator *service.Coordinator
	EventSender *service.EventSender
	CronJobs    *workers.Jobs

	Redis      *redis.Redis
	storeClose func()
}

func InitComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Components, error) {
	store, storeClose, storePing, err := initStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	log.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, log)
	if err != nil {
		storeClose()
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	eventQueue := redis.NewEventQueue(redisClient.Client, "events:queue")
	routeCache := redis.NewRouteCache(redisClient, cfg.Routing.CacheTTL)
	ticketCache := redis.NewTicketCache(redisClient)

	provider := routing.NewOSRMClient(cfg.Routing.BaseURL, cfg.Routing.LookupTimeout, log)

	coordinator := service.NewCoordinator(store, provider, routeCache, log)
	lifecycle := service.NewLifecycle(store, eventQueue, cfg.Bounds, log)
	impact := service.NewImpact(coordinator)

	svc := service.NewService(lifecycle, coordinator, impact)

	var uploader media.Uploader
	if cfg.Media.Endpoint != "" {
		uploader, err = media.NewMinioUploader(ctx, cfg, log)
		if err != nil {
			storeClose()
			_ = redisClient.Close()
			return nil, fmt.Errorf("failed to init object storage: %w", err)
		}
	}

	deps := map[string]system.Pinger{
		"store": storePing,
		"redis": pingFunc(func(ctx context.Context) error {
			return redisClient.Client.Ping(ctx).Err()
		}),
	}

	httpServer := api.NewServer(cfg, log, svc, uploader, ticketCache, deps)
	log.Info("Initialized server")

	comps := &Components{
		logger:      log,
		HttpServer:  httpServer,
		Coordinator: coordinator,
		Redis:       redisClient,
		storeClose:  storeClose,
		CronJobs:    workers.NewJobs(log, coordinator, ticketCache),
	}
	if !cfg.Webhook.Disabled && cfg.Webhook.URL != "" {
		comps.EventSender = service.NewEventSender(log, cfg.Webhook, eventQueue)
	}
	return comps, nil
}

// initStore picks the ticket store adapter from config.
func initStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.TicketStore, func(), system.Pinger, error) {
	switch cfg.Store.Backend {
	case "postgres":
		log.Info("Initializing Postgres ticket store")
		st, err := postgres.NewStore(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		ping := pingFunc(func(ctx context.Context) error { return st.Pool.Ping(ctx) })
		return st, st.Close, ping, nil

	case "firestore":
		log.Info("Initializing Firestore ticket store")
		st, err := firestore.NewStore(ctx, cfg, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to init firestore: %w", err)
		}
		ping := pingFunc(func(context.Context) error { return nil })
		return st, func() { _ = st.Close() }, ping, nil

	case "memory":
		log.Warn("Using in-memory ticket store, data will not survive restarts")
		st := memory.NewStore()
		return st, func() {}, pingFunc(func(context.Context) error { return nil }), nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.storeClose()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
