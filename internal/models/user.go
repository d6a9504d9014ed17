// Package models содержит доменные структуры финансового трекера:
// пользователей, транзакции, бюджеты и производные отчёты,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя (UUID), назначается при регистрации
	Email        string    // Электронная почта (уникальная)
	Username     string    // Имя пользователя (уникальное)
	PasswordHash string    // Хеш пароля; открытый пароль нигде не хранится и не логируется
	CreatedAt    time.Time // Дата создания учётной записи
}
