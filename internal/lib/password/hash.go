// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает argon2id-хеш пароля в самоописывающем PHC-формате
// (алгоритм, версия, параметры стоимости и соль закодированы в самой строке).
// CompareHash сравнивает сохранённый хеш с введённым паролем, проверяя их соответствие.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры стоимости по рекомендациям x/crypto/argon2 для интерактивного входа.
const (
	saltLength = 16
	keyLength  = 32
	timeCost   = 1
	memoryCost = 64 * 1024
	threads    = 4
)

// ErrMismatch возвращается, когда пароль не соответствует хешу
// либо сохранённая строка не распознана как argon2id-хеш.
var ErrMismatch = errors.New("password does not match hash")

// GetHash принимает пароль пользователя и возвращает его argon2id‑хеш
// со свежей случайной солью.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(rawPassword string) (string, error) {
	const op = "password.GetHash"
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	key := argon2.IDKey([]byte(rawPassword), salt, timeCost, memoryCost, threads, keyLength)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryCost, timeCost, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	return encoded, nil
}

// CompareHash сравнивает argon2id‑хеш с введённым паролем, пересчитывая ключ
// с параметрами и солью, закодированными в самом хеше.
//
// Возвращает nil, если пароль соответствует хешу. Любая ошибка разбора
// сохранённой строки трактуется как несоответствие.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"

	parts := strings.Split(originalHash, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}

	var memory, time uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &parallelism); err != nil {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}

	computed := argon2.IDKey([]byte(externalPassword), salt, time, memory, parallelism, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, computed) != 1 {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	return nil
}
