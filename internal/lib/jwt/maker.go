package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Ошибки проверки токена. Вызывающая сторона не должна транслировать
// различие между ними наружу, чтобы не давать оракула атакующему.
var (
	// ErrInvalidSignature — подпись не сходится либо токен не разбирается вовсе.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired — подпись верна, но срок действия истёк.
	ErrExpired = errors.New("token expired")
	// ErrMalformedSubject — subject-клейм не является валидным UUID.
	ErrMalformedSubject = errors.New("malformed token subject")
)

// Issue выпускает JWT с user UID в subject и сроком действия tokenTTL,
// подписывая его секретным ключом по HS256.
//
// Выпуск детерминирован: при фиксированном источнике времени один и тот же
// UID даёт один и тот же токен.
func (j *MakerImpl) Issue(userUID string) (string, error) {
	const op = "jwt.Issue"
	claims := jwt.RegisteredClaims{
		Subject:   userUID,
		ExpiresAt: jwt.NewNumericDate(j.now().Add(j.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия токена, затем разбирает subject
// как UUID пользователя.
//
// Порядок проверок: подпись, срок действия, subject. Любая порча токена
// даёт ErrInvalidSignature, просроченный токен — ErrExpired.
func (j *MakerImpl) Parse(tokenStr string) (uuid.UUID, error) {
	const op = "jwt.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{},
		func(_ *jwt.Token) (any, error) {
			return []byte(j.secretKey), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrExpired)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}
	userUID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrMalformedSubject)
	}
	return userUID, nil
}
