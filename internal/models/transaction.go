package models

import (
	"errors"
	"fmt"
	"time"
)

// TransactionKind обозначает направление денежной операции.
type TransactionKind string

const (
	// KindIncome — поступление средств.
	KindIncome TransactionKind = "income"
	// KindExpense — расход средств.
	KindExpense TransactionKind = "expense"
)

// ErrUnknownTransactionKind возвращается, когда в хранилище встречается
// нераспознанное значение вида транзакции. Такая запись — ошибка целостности
// данных: она должна дойти до вызывающей стороны как обычная ошибка,
// а не ронять процесс.
var ErrUnknownTransactionKind = errors.New("unknown transaction kind")

// ParseTransactionKind разбирает строковое представление вида транзакции.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindIncome:
		return KindIncome, nil
	case KindExpense:
		return KindExpense, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTransactionKind, s)
	}
}

// Transaction представляет одну денежную операцию пользователя.
// Запись неизменяема после создания.
type Transaction struct {
	ID          int             `json:"id"`                    // Идентификатор записи
	UserUID     string          `json:"user_uid"`              // Владелец записи
	Amount      float64         `json:"amount"`                // Сумма операции
	Kind        TransactionKind `json:"kind"`                  // income или expense
	Category    *string         `json:"category,omitempty"`    // Категория (опционально)
	Date        time.Time       `json:"date"`                  // Календарная дата операции
	Description *string         `json:"description,omitempty"` // Описание (опционально)
}

// DummyTransaction используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Transaction. Дата приходит строкой,
// чтобы её можно было валидировать и парсить вручную.
type DummyTransaction struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`               // Сумма (>0)
	Kind        string  `json:"kind" validate:"required,oneof=income expense"` // Вид операции
	Category    string  `json:"category,omitempty"`                            // Категория (опционально)
	Date        string  `json:"date" validate:"required"`                      // Дата в формате 2006-01-02
	Description string  `json:"description,omitempty"`                         // Описание (опционально)
}
