// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Maker определяет интерфейс для выпуска и проверки токенов, несущих
// идентификатор пользователя в subject-клейме.
// MakerImpl — конкретная реализация на HMAC-SHA256 с общим секретным ключом.
package jwt

import (
	"time"

	"github.com/google/uuid"
)

// Maker описывает интерфейс для выпуска и разбора JWT токенов.
type Maker interface {
	// Issue выпускает подписанный токен с user UID в качестве subject.
	Issue(userUID string) (string, error)
	// Parse проверяет подпись и срок действия токена и возвращает user UID.
	Parse(tokenStr string) (uuid.UUID, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string           // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration    // Время жизни токена.
	now       func() time.Time // Источник текущего времени, подменяется в тестах.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return NewMakerAt(secretKey, ttl, time.Now)
}

// NewMakerAt создаёт MakerImpl с явным источником времени,
// что позволяет фиксировать момент выпуска и проверки в тестах.
func NewMakerAt(secretKey string, ttl time.Duration, now func() time.Time) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       now,
	}
}
