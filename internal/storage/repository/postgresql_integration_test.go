package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

func TestStorage_RegisterUserAndGetByIdentifier(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "hashedpassword",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	byUsername, err := storage.GetUserByIdentifier(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uid, byUsername.UID)
	assert.Equal(t, "alice@example.com", byUsername.Email)

	byEmail, err := storage.GetUserByIdentifier(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, uid, byEmail.UID)

	_, err = storage.GetUserByIdentifier(ctx, "nobody")
	require.Error(t, err)
}

func TestStorage_CreateAndListTransactions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	userUID := factory.CreateUser(t, "bob", "bob@example.com", "hashedpassword")

	category := "groceries"
	id, err := storage.CreateTransaction(ctx, models.Transaction{
		UserUID:  userUID,
		Amount:   250.0,
		Kind:     models.KindExpense,
		Category: &category,
		Date:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	_, err = storage.CreateTransaction(ctx, models.Transaction{
		UserUID: userUID,
		Amount:  5000.0,
		Kind:    models.KindIncome,
		Date:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	got, err := storage.ListTransactions(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Новые операции идут первыми
	assert.Equal(t, models.KindExpense, got[0].Kind)
	assert.Equal(t, models.KindIncome, got[1].Kind)
	assert.Nil(t, got[1].Category)
}

func TestStorage_SumExpenses(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	userUID := factory.CreateUser(t, "carol", "carol@example.com", "hashedpassword")

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	factory.CreateTransaction(t, userUID, 120.0, "expense", "groceries", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	factory.CreateTransaction(t, userUID, 80.0, "expense", "groceries", time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC))
	// Вне окна и другого вида, в сумму не попадают
	factory.CreateTransaction(t, userUID, 999.0, "expense", "groceries", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	factory.CreateTransaction(t, userUID, 999.0, "expense", "transport", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	factory.CreateTransaction(t, userUID, 999.0, "income", "groceries", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	total, err := storage.SumExpenses(ctx, userUID, "groceries", from, to)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, total, 0.001)

	empty, err := storage.SumExpenses(ctx, userUID, "entertainment", from, to)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestStorage_UpsertBudget(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	userUID := factory.CreateUser(t, "dave", "dave@example.com", "hashedpassword")

	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	err := storage.UpsertBudget(ctx, models.Budget{
		UserUID:  userUID,
		Month:    month,
		Category: "groceries",
		Amount:   500.0,
	})
	require.NoError(t, err)

	// Повторный вызов заменяет сумму, строка остаётся одна
	err = storage.UpsertBudget(ctx, models.Budget{
		UserUID:  userUID,
		Month:    month,
		Category: "groceries",
		Amount:   700.0,
	})
	require.NoError(t, err)

	got, err := storage.ListBudgets(ctx, userUID, &month)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 700.0, got[0].Amount, 0.001)
}

func TestStorage_ListBudgets(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	userUID := factory.CreateUser(t, "erin", "erin@example.com", "hashedpassword")

	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	factory.CreateBudget(t, userUID, march, "transport", 100.0)
	factory.CreateBudget(t, userUID, march, "groceries", 500.0)
	factory.CreateBudget(t, userUID, april, "groceries", 550.0)

	forMarch, err := storage.ListBudgets(ctx, userUID, &march)
	require.NoError(t, err)
	require.Len(t, forMarch, 2)
	assert.Equal(t, "groceries", forMarch[0].Category)
	assert.Equal(t, "transport", forMarch[1].Category)

	all, err := storage.ListBudgets(ctx, userUID, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Свежие месяцы первыми
	assert.Equal(t, april.Month(), all[0].Month.Month())
}

func TestStorage_FindOverspentBudgets(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()
	userUID := factory.CreateUser(t, "frank", "frank@example.com", "hashedpassword")

	month := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	factory.CreateBudget(t, userUID, month, "groceries", 500.0)
	factory.CreateBudget(t, userUID, month, "transport", 100.0)

	factory.CreateTransaction(t, userUID, 450.0, "expense", "groceries", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	factory.CreateTransaction(t, userUID, 200.0, "expense", "groceries", time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC))
	factory.CreateTransaction(t, userUID, 50.0, "expense", "transport", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	got, err := storage.FindOverspentBudgets(ctx, month)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "frank@example.com", got[0].Email)
	assert.Equal(t, "groceries", got[0].Category)
	assert.InDelta(t, 650.0, got[0].Spent, 0.001)
	assert.InDelta(t, 500.0, got[0].BudgetAmount, 0.001)
}
