package models

import "time"

// Budget представляет месячный бюджет пользователя на категорию.
// Ключ уникальности — (UserUID, Month, Category); сумма изменяется
// только через upsert, последняя запись побеждает.
type Budget struct {
	UserUID   string    `json:"user_uid"`   // Владелец бюджета
	Month     time.Time `json:"month"`      // Первый день месяца (например, 2026-01-01)
	Category  string    `json:"category"`   // Категория расходов
	Amount    float64   `json:"amount"`     // Запланированная сумма
	UpdatedAt time.Time `json:"updated_at"` // Время последнего изменения
}

// DummyBudget используется для приёма данных из JSON-запроса
// на создание или обновление бюджета.
type DummyBudget struct {
	Month    string  `json:"month" validate:"required"`       // Первый день месяца в формате 2006-01-02
	Category string  `json:"category" validate:"required"`    // Категория расходов
	Amount   float64 `json:"amount" validate:"required,gt=0"` // Запланированная сумма (>0)
}

// BudgetProgress — производный отчёт «план против факта» по одной категории
// за один месяц. Не хранится, вычисляется заново на каждый запрос.
// Remaining может быть отрицательным — это валидный перерасход, а не ошибка.
type BudgetProgress struct {
	Category     string  `json:"category"`
	BudgetAmount float64 `json:"budget_amount"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
}

// OverspendInfo — сообщение о перерасходе бюджета, публикуемое планировщиком
// в очередь уведомлений и потребляемое сервисом рассылки.
type OverspendInfo struct {
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Category     string    `json:"category"`
	Month        time.Time `json:"month"`
	BudgetAmount float64   `json:"budget_amount"`
	Spent        float64   `json:"spent"`
}
