// Package relay собирает сервис: хранилище, реестр токенов, клиент
// push-шлюза, фоновую задачу проверки подписок и HTTP-сервер.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/notification-relay/internal/config"
	"github.com/magabrotheeeer/notification-relay/internal/migrations"
	"github.com/magabrotheeeer/notification-relay/internal/pushgateway"
	expirationservice "github.com/magabrotheeeer/notification-relay/internal/services/expiration"
	notificationservice "github.com/magabrotheeeer/notification-relay/internal/services/notification"
	"github.com/magabrotheeeer/notification-relay/internal/storage/repository"
	"github.com/magabrotheeeer/notification-relay/internal/tokenregistry"
)

// App представляет собранное приложение сервиса уведомлений.
type App struct {
	server     *http.Server
	expiration *expirationservice.ExpirationService
	logger     *slog.Logger
	db         *repository.Storage
	registry   *tokenregistry.Registry
}

func waitForDB(db *repository.Storage) error {
	for range 10 {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения: подключает ресурсы,
// прогоняет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}
	if err = waitForDB(db); err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	registry, err := tokenregistry.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, fmt.Errorf("token registry not initialized: %w", err)
	}

	gateway := pushgateway.NewClient(cfg.PushGateway.URL, cfg.PushGateway.TimeoutAPI)

	expirationService := expirationservice.New(db, gateway, cfg.Expiration, logger)
	notificationService := notificationservice.New(registry, db, gateway, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, registry, notificationService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		expiration: expirationService,
		logger:     logger,
		db:         db,
		registry:   registry,
	}, nil
}

// Run запускает фоновую задачу проверки подписок и HTTP-сервер.
// Блокируется до отмены контекста или ошибки сервера; при завершении
// дожидается конца текущего цикла задачи.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.expiration.Run(ctx)
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		wg.Wait()
		a.db.DB.Close()
		if cerr := a.registry.Db.Close(); cerr != nil {
			a.logger.Error("failed to close redis connection", slog.Any("err", cerr))
		}
		return err
	}
}
