package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// UpsertBudget создаёт или обновляет лимит по категории за месяц.
// Повторный вызов для той же тройки (пользователь, месяц, категория)
// заменяет сумму, а не добавляет новую строку.
func (s *Storage) UpsertBudget(ctx context.Context, b models.Budget) error {
	const op = "storage.UpsertBudget"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO budgets (user_uid, month, category, amount)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (user_uid, month, category)
			  DO UPDATE SET amount = EXCLUDED.amount, updated_at = CURRENT_TIMESTAMP`
	if _, err := s.DB.ExecContext(ctx, query, b.UserUID, b.Month, b.Category, b.Amount); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListBudgets возвращает лимиты пользователя. Если месяц задан,
// выборка ограничивается им и сортируется по категории, иначе
// возвращаются все лимиты, свежие месяцы первыми.
func (s *Storage) ListBudgets(ctx context.Context, userUID string, month *time.Time) ([]*models.Budget, error) {
	const op = "storage.ListBudgets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var (
		query string
		args  []any
	)
	if month != nil {
		query = `SELECT user_uid, month, category, amount, updated_at
				 FROM budgets
				 WHERE user_uid = $1 AND month = $2
				 ORDER BY category ASC`
		args = []any{userUID, *month}
	} else {
		query = `SELECT user_uid, month, category, amount, updated_at
				 FROM budgets
				 WHERE user_uid = $1
				 ORDER BY month DESC, category ASC`
		args = []any{userUID}
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Budget
	for rows.Next() {
		var item models.Budget
		if err := rows.Scan(&item.UserUID, &item.Month, &item.Category,
			&item.Amount, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// FindOverspentBudgets находит лимиты, по которым расходы за месячное
// окно превысили установленную сумму, вместе с контактами владельцев.
func (s *Storage) FindOverspentBudgets(ctx context.Context, monthStart time.Time) ([]*models.OverspendInfo, error) {
	const op = "storage.FindOverspentBudgets"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	monthEnd := monthStart.AddDate(0, 1, 0)
	query := `SELECT u.email, u.username, b.category, b.month, b.amount,
					 COALESCE(SUM(t.amount), 0) AS spent
			  FROM budgets b
			  JOIN users u ON u.uid = b.user_uid
			  LEFT JOIN transactions t
			    ON t.user_uid = b.user_uid
			   AND t.category = b.category
			   AND t.kind = 'expense'
			   AND t.date >= $1
			   AND t.date < $2
			  WHERE b.month = $1
			  GROUP BY u.email, u.username, b.category, b.month, b.amount
			  HAVING COALESCE(SUM(t.amount), 0) > b.amount`
	rows, err := s.DB.QueryContext(ctx, query, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.OverspendInfo
	for rows.Next() {
		var item models.OverspendInfo
		if err := rows.Scan(&item.Email, &item.Username, &item.Category,
			&item.Month, &item.BudgetAmount, &item.Spent); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
