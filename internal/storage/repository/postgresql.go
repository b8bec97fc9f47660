// Package repository реализует хранилище данных на основе PostgreSQL
// для платёжных записей и пользователей сервиса уведомлений.
//
// Все записи обновляются без токенов оптимистичной блокировки:
// действует правило "последняя запись побеждает", конкурирующие
// процессы могут перезаписать друг друга. Обе целевые операции
// (перевод платежа в expired и понижение роли) идемпотентны,
// поэтому повторное применение безопасно.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с платежами и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "repository.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
// Проверяется только доступность соединения: схему создают миграции
// самого сервиса, поэтому до их запуска таблиц ещё нет.
func CheckDatabaseReady(storage *Storage) error {
	const op = "repository.CheckDatabaseReady"
	if err := storage.DB.Ping(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
