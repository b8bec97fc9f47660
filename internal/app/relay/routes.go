// Package relay предоставляет маршруты сервиса уведомлений.
package relay

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/health"
	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/push/notifyadmins"
	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/push/notifyuser"
	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/push/sendall"
	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/token/count"
	"github.com/magabrotheeeer/notification-relay/internal/http/handlers/token/register"
	"github.com/magabrotheeeer/notification-relay/internal/http/middlewarectx"
	notificationservice "github.com/magabrotheeeer/notification-relay/internal/services/notification"
	"github.com/magabrotheeeer/notification-relay/internal/tokenregistry"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, registry *tokenregistry.Registry, notificationService *notificationservice.NotificationService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         300,
		}),
	)

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Post("/register-token", register.New(logger, registry).ServeHTTP)
	r.Get("/count", count.New(logger, registry).ServeHTTP)

	// Группа рассылок с ограничением частоты запросов
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/send-notification", sendall.New(logger, notificationService).ServeHTTP)
		r.Post("/notify-user", notifyuser.New(logger, notificationService).ServeHTTP)
		r.Post("/notify-admins", notifyadmins.New(logger, notificationService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
