package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя. pushToken может быть nil.
func (f *TestDataFactory) CreateUser(t *testing.T, userUID, username, role string, pushToken *string) {
	t.Helper()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, role, push_token)
		VALUES ($1, $2, $3, $4)`,
		userUID, username, role, pushToken)
	require.NoError(t, err)
}

// CreatePayment создает тестовую платёжную запись и возвращает её ID.
// userUID и expiresAt могут быть nil для имитации битой записи.
func (f *TestDataFactory) CreatePayment(t *testing.T, userUID *string, status string, expiresAt *time.Time) int {
	t.Helper()
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO payments (user_uid, status, expires_at)
		VALUES ($1, $2, $3) RETURNING id`,
		userUID, status, expiresAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyPaymentStatus проверяет статус платёжной записи
func (v *TestVerification) VerifyPaymentStatus(t *testing.T, paymentID int, expectedStatus string) {
	t.Helper()
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM payments WHERE id = $1", paymentID).
		Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyUserRole проверяет роль пользователя
func (v *TestVerification) VerifyUserRole(t *testing.T, userUID, expectedRole string) {
	t.Helper()
	var role string
	err := v.storage.DB.QueryRow("SELECT role FROM users WHERE uid = $1", userUID).
		Scan(&role)
	require.NoError(t, err)
	require.Equal(t, expectedRole, role)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS payments CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            push_token TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE payments (
            id SERIAL PRIMARY KEY,
            user_uid UUID REFERENCES users(uid),
            status TEXT NOT NULL DEFAULT 'active',
            expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_payments_status ON payments(status);
        CREATE INDEX idx_payments_user_uid_status ON payments(user_uid, status);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		_ = pgContainer.Terminate(ctx)
	}

	return storage, cleanup
}
