package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// CreateTransaction вставляет новую денежную операцию и возвращает её ID.
func (s *Storage) CreateTransaction(ctx context.Context, tr models.Transaction) (int, error) {
	const op = "storage.CreateTransaction"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO transactions (user_uid, amount, kind, category, date, description)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		tr.UserUID, tr.Amount, string(tr.Kind), tr.Category, tr.Date, tr.Description).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListTransactions возвращает все операции пользователя, новые первыми.
//
// Нераспознанный вид операции в строке таблицы — ошибка целостности данных,
// она возвращается вызывающей стороне, а не игнорируется.
func (s *Storage) ListTransactions(ctx context.Context, userUID string) ([]*models.Transaction, error) {
	const op = "storage.ListTransactions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, amount, kind, category, date, description
			  FROM transactions
			  WHERE user_uid = $1
			  ORDER BY date DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Transaction
	for rows.Next() {
		var item models.Transaction
		var kind string
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Amount, &kind,
			&item.Category, &item.Date, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Kind, err = models.ParseTransactionKind(kind)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumExpenses подсчитывает сумму расходов пользователя по категории
// за полуоткрытое окно дат [from, to). Отсутствие операций даёт 0.
func (s *Storage) SumExpenses(ctx context.Context, userUID, category string, from, to time.Time) (float64, error) {
	const op = "storage.SumExpenses"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM transactions
			  WHERE user_uid = $1
			    AND kind = 'expense'
			    AND category = $2
			    AND date >= $3
			    AND date < $4`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, userUID, category, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
