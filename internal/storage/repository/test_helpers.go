package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash)
		VALUES ($1, $2, $3, $4)`,
		uid, username, email, passwordHash)
	require.NoError(t, err)
	return uid
}

// CreateTransaction создает тестовую денежную операцию
func (f *TestDataFactory) CreateTransaction(t *testing.T, userUID string, amount float64,
	kind, category string, date time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO transactions (user_uid, amount, kind, category, date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		userUID, amount, kind, category, date).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateBudget создает тестовый лимит по категории
func (f *TestDataFactory) CreateBudget(t *testing.T, userUID string, month time.Time,
	category string, amount float64) {
	_, err := f.storage.DB.Exec(`INSERT INTO budgets (user_uid, month, category, amount)
		VALUES ($1, $2, $3, $4)`,
		userUID, month, category, amount)
	require.NoError(t, err)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            email TEXT NOT NULL UNIQUE,
            username TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE transactions (
            id SERIAL PRIMARY KEY,
            user_uid UUID NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
            amount FLOAT NOT NULL,
            kind TEXT NOT NULL,
            category TEXT,
            date DATE NOT NULL,
            description TEXT
        );

        CREATE TABLE budgets (
            user_uid UUID NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
            month DATE NOT NULL,
            category TEXT NOT NULL,
            amount FLOAT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            PRIMARY KEY (user_uid, month, category)
        );

        CREATE INDEX idx_transactions_user_uid_date ON transactions(user_uid, date);
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
