package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"pawguard/internal/api/handlers/http/admin"
	"pawguard/internal/api/handlers/http/impact"
	"pawguard/internal/api/handlers/http/rescue"
	"pawguard/internal/api/handlers/http/system"
	"pawguard/internal/config"
	"pawguard/internal/media"
	"pawguard/internal/middleware"
	"pawguard/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, uploader media.Uploader, pending admin.PendingCache, deps map[string]system.Pinger) *Server {
	rescueHandler := rescue.NewHandler(logger, svc.Lifecycle, svc.Coordinator, uploader)
	impactHandler := impact.NewHandler(logger, svc.Impact)
	adminHandler := admin.NewHandler(logger, svc.Coordinator, pending)
	systemHandler := system.NewHandler(logger, deps)

	r := InitRouter(cfg, rescueHandler, impactHandler, adminHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(cfg *config.Config, rescueHandler *rescue.Handler, impactHandler *impact.Handler, adminHandler *admin.Handler, systemHandler *system.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		// MOBILE
		api.Route("/rescues", func(rr chi.Router) {
			rr.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, logger))
			rr.Use(middleware.Limit(10, 20, 5*time.Minute, logger))

			rr.Post("/", rescueHandler.Create)
			rr.Get("/", rescueHandler.ListActive)
			rr.Get("/in-progress", rescueHandler.ListInProgress)
			rr.Get("/finalized", rescueHandler.ListFinalized)
			rr.Get("/mine", rescueHandler.ListMine)
			rr.Get("/stream", rescueHandler.Stream)

			rr.Route("/{id}", func(ir chi.Router) {
				ir.Get("/", rescueHandler.Get)
				ir.Post("/claim", rescueHandler.Claim)
				ir.Post("/evidence", rescueHandler.AttachEvidence)
				ir.Post("/finalize", rescueHandler.Finalize)
				ir.Post("/dismiss", rescueHandler.Dismiss)
				ir.Delete("/dismiss", rescueHandler.Undismiss)
				ir.Get("/route", rescueHandler.Route)
			})
		})

		api.Route("/impact", func(ir chi.Router) {
			ir.Use(middleware.JWTAuth(cfg.Auth.JWTSecret, logger))
			ir.Get("/", impactHandler.Get)
		})

		// ADMIN
		api.Route("/admin", func(ar chi.Router) {
			ar.Use(middleware.APIKeyMiddleware(cfg.Auth.APIKey))
			ar.Use(middleware.Limit(2, 5, 10*time.Minute, logger))

			ar.Get("/stats", adminHandler.Stats)
			ar.Get("/pending", adminHandler.Pending)
		})

		// SYSTEM
		api.Get("/health", systemHandler.Health)
		api.Get("/ready", systemHandler.Ready)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("🚀 Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("🛑 Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
