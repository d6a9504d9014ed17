// Package services содержит бизнес-логику учёта операций и бюджетов,
// включая кеширование списков и расчёт исполнения бюджета.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/month"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// ErrInvalidMonth возвращается, когда месяц в запросе не разбирается
// как дата в формате 2006-01-02. Это ошибка клиента, а не сервера.
var ErrInvalidMonth = errors.New("invalid month")

// LedgerRepository определяет методы для работы с операциями и бюджетами в хранилище.
type LedgerRepository interface {
	// CreateTransaction добавляет новую операцию и возвращает её ID.
	CreateTransaction(ctx context.Context, tr models.Transaction) (int, error)
	// ListTransactions возвращает все операции пользователя.
	ListTransactions(ctx context.Context, userUID string) ([]*models.Transaction, error)
	// SumExpenses подсчитывает расходы по категории за окно дат [from, to).
	SumExpenses(ctx context.Context, userUID, category string, from, to time.Time) (float64, error)
	// UpsertBudget создаёт или заменяет лимит по категории за месяц.
	UpsertBudget(ctx context.Context, b models.Budget) error
	// ListBudgets возвращает лимиты пользователя, опционально за один месяц.
	ListBudgets(ctx context.Context, userUID string, month *time.Time) ([]*models.Budget, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// LedgerService реализует бизнес-логику учёта операций и бюджетов.
type LedgerService struct {
	repo  LedgerRepository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewLedgerService создает новый экземпляр LedgerService.
func NewLedgerService(repo LedgerRepository, cache Cache, log *slog.Logger) *LedgerService {
	return &LedgerService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// NewLedgerServiceAt создает LedgerService с заданным источником времени.
func NewLedgerServiceAt(repo LedgerRepository, cache Cache, log *slog.Logger, now func() time.Time) *LedgerService {
	s := NewLedgerService(repo, cache, log)
	s.now = now
	return s
}

const listCacheTTL = 5 * time.Minute

func transactionsCacheKey(userUID string) string {
	return "transactions:" + userUID
}

// AddTransaction записывает новую операцию пользователя и возвращает её ID.
// Кеш списка операций инвалидируется, чтобы следующий запрос увидел запись.
func (s *LedgerService) AddTransaction(ctx context.Context, userUID string, req models.DummyTransaction) (int, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid date: %w", err)
	}
	kind, err := models.ParseTransactionKind(req.Kind)
	if err != nil {
		return 0, err
	}

	tr := models.Transaction{
		UserUID: userUID,
		Amount:  req.Amount,
		Kind:    kind,
		Date:    date,
	}
	if req.Category != "" {
		tr.Category = &req.Category
	}
	if req.Description != "" {
		tr.Description = &req.Description
	}

	id, err := s.repo.CreateTransaction(ctx, tr)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new transaction", slog.Int("id", id))

	cacheKey := transactionsCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return id, nil
}

// ListTransactions возвращает операции пользователя, используя кеш или репозиторий.
func (s *LedgerService) ListTransactions(ctx context.Context, userUID string) ([]*models.Transaction, error) {
	var result []*models.Transaction
	cacheKey := transactionsCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListTransactions(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, listCacheTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// UpsertBudget устанавливает лимит по категории за месяц. Месяц нормализуется
// к первому дню, повторный вызов заменяет сумму.
func (s *LedgerService) UpsertBudget(ctx context.Context, userUID string, req models.DummyBudget) error {
	monthDate, err := time.Parse("2006-01-02", req.Month)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMonth, err)
	}
	b := models.Budget{
		UserUID:  userUID,
		Month:    month.Normalize(monthDate),
		Category: req.Category,
		Amount:   req.Amount,
	}
	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return err
	}
	s.log.Info("upserted budget",
		slog.String("category", b.Category),
		slog.Time("month", b.Month))
	return nil
}

// ListBudgets возвращает лимиты пользователя. Если monthRaw непустой,
// он парсится как дата и выборка ограничивается этим месяцем.
func (s *LedgerService) ListBudgets(ctx context.Context, userUID, monthRaw string) ([]*models.Budget, error) {
	var filter *time.Time
	if monthRaw != "" {
		parsed, err := time.Parse("2006-01-02", monthRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
		}
		normalized := month.Normalize(parsed)
		filter = &normalized
	}
	return s.repo.ListBudgets(ctx, userUID, filter)
}

// Progress считает исполнение бюджетов пользователя за месяц.
// Пустой monthRaw означает текущий месяц. Для каждого лимита берётся сумма
// расходов по категории за окно [начало месяца, начало следующего месяца).
// Категории без расходов включаются с нулём, перерасход даёт отрицательный
// остаток. Порядок — по категории по возрастанию.
func (s *LedgerService) Progress(ctx context.Context, userUID, monthRaw string) ([]*models.BudgetProgress, error) {
	var monthStart time.Time
	if monthRaw == "" {
		monthStart = month.Current(s.now())
	} else {
		parsed, err := time.Parse("2006-01-02", monthRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
		}
		monthStart = month.Normalize(parsed)
	}

	budgets, err := s.repo.ListBudgets(ctx, userUID, &monthStart)
	if err != nil {
		return nil, err
	}

	from, to := month.Window(monthStart)
	result := make([]*models.BudgetProgress, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.repo.SumExpenses(ctx, userUID, b.Category, from, to)
		if err != nil {
			return nil, err
		}
		result = append(result, &models.BudgetProgress{
			Category:     b.Category,
			BudgetAmount: b.Amount,
			Spent:        spent,
			Remaining:    b.Amount - spent,
		})
	}
	return result, nil
}
