package main

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/esterlin12/tvplus/internal/auth"
	"github.com/esterlin12/tvplus/internal/config"
	"github.com/esterlin12/tvplus/internal/handlers"
	"github.com/esterlin12/tvplus/internal/middleware"
	"github.com/esterlin12/tvplus/internal/repo"
	"github.com/esterlin12/tvplus/internal/service"
	"github.com/esterlin12/tvplus/internal/tracing"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full HTTP surface over db. It is shared by main and the API tests.
func newRouter(db *sql.DB, cfg config.Config, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	userRepo := repo.NewUserRepo(db)
	channelRepo := repo.NewChannelRepo(db)
	auditRepo := repo.NewAuditRepo(db)

	tokens := auth.NewTokenIssuer([]byte(cfg.SecretKey))
	users := service.NewUserService(userRepo, tokens, cfg.TokenTTL(), auditRepo, logger)
	channels := service.NewChannelService(channelRepo, auditRepo, logger)

	authn := &middleware.Authenticator{Tokens: tokens, Users: users, Logger: logger}
	authHandler := &handlers.AuthHandler{Users: users, Logger: logger}
	channelHandler := &handlers.ChannelHandler{Channels: channels, Logger: logger}
	userHandler := &handlers.UserHandler{Users: users, Logger: logger}
	auditHandler := &handlers.AuditHandler{Repo: auditRepo, Logger: logger}
	healthHandler := &handlers.HealthHandler{DB: db}
	authLimiter := middleware.AuthRateLimiter()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog(logger))
	r.Use(middleware.Prometheus)
	r.Use(tracing.Middleware)
	r.Use(middleware.SecurityHeaders(cfg.TLSEnabled()))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(cfg.MaxBodyBytes))

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/", healthHandler.Root)
		r.Get("/health", healthHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.With(authLimiter.Middleware).Post("/register", authHandler.Register)
			r.With(authLimiter.Middleware).Post("/login", authHandler.Login)
			r.With(authn.RequireUser).Get("/me", authHandler.Me)
		})

		// Public reads
		r.Get("/channels", channelHandler.ListChannels)
		r.Get("/channels/{id}", channelHandler.GetChannel)
		r.Get("/categories", channelHandler.Categories)

		r.Group(func(r chi.Router) {
			r.Use(authn.RequireUser)

			r.Post("/channels", channelHandler.CreateChannel)
			r.Put("/channels/{id}", channelHandler.UpdateChannel)
			r.Delete("/channels/{id}", channelHandler.DeleteChannel)
			r.Get("/my-channels", channelHandler.MyChannels)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperUser)

				r.Get("/channels/{id}/m3u8", channelHandler.PlayableURLs)
				r.Post("/admin/users/{id}/make-super", userHandler.MakeSuper)
				r.Get("/admin/channels", channelHandler.AllChannels)
				r.Get("/admin/users", userHandler.ListUsers)
				r.Get("/admin/audit", auditHandler.ListAudit)
			})
		})
	})

	return r
}
