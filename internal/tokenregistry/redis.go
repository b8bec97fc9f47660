// Package tokenregistry реализует реестр зарегистрированных push-токенов
// на основе Redis. Реестр заменяет глобальное множество в памяти процесса:
// он передаётся как зависимость и переживает перезапуск сервиса.
package tokenregistry

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/notification-relay/internal/config"
)

// Ключ множества токенов в Redis.
const tokensKey = "push:tokens"

type Registry struct {
	Db *redis.Client
}

// InitServer создаёт подключение к Redis и проверяет его доступность.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Registry, error) {
	const op = "tokenregistry.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Registry{Db: db}, nil
}

// Add добавляет токен в реестр и возвращает общее количество токенов.
// Повторная регистрация того же токена не меняет реестр.
func (r *Registry) Add(ctx context.Context, token string) (int64, error) {
	const op = "tokenregistry.Add"
	if err := r.Db.SAdd(ctx, tokensKey, token).Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	total, err := r.Db.SCard(ctx, tokensKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// Count возвращает количество зарегистрированных токенов.
func (r *Registry) Count(ctx context.Context) (int64, error) {
	const op = "tokenregistry.Count"
	total, err := r.Db.SCard(ctx, tokensKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}

// List возвращает все зарегистрированные токены.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	const op = "tokenregistry.List"
	tokens, err := r.Db.SMembers(ctx, tokensKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tokens, nil
}
