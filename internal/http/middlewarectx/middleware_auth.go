// Package middlewarectx содержит HTTP middleware для проверки JWT токенов
// и прав доступа к ресурсам пользователя.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization
// и в случае успеха добавляет в контекст UID пользователя для дальнейшего
// использования в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/finance-tracker/internal/http/response"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUID — ключ для UID пользователя в контексте.
const UserUID Key = "user_uid"

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RejectionKind различает причины отказа при разборе заголовка Authorization.
type RejectionKind string

const (
	// RejectionNoHeader — заголовок Authorization отсутствует.
	RejectionNoHeader RejectionKind = "no_header"
	// RejectionMalformedHeader — заголовок есть, но схема не Bearer.
	RejectionMalformedHeader RejectionKind = "malformed_header"
	// RejectionUnauthorized — токен не прошёл проверку.
	RejectionUnauthorized RejectionKind = "unauthorized"
)

// Rejection описывает отказ в аутентификации с сообщением для клиента.
// Все отказы отдаются клиенту со статусом 401.
type Rejection struct {
	Kind    RejectionKind
	Message string
}

// Authenticate разбирает заголовок Authorization и проверяет токен через service.
// Возвращает UID пользователя либо Rejection с точной причиной отказа.
func Authenticate(ctx context.Context, service Service, authHeader string) (uuid.UUID, *Rejection) {
	if authHeader == "" {
		return uuid.Nil, &Rejection{
			Kind:    RejectionNoHeader,
			Message: "Missing Authorization header",
		}
	}
	tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || tokenStr == "" {
		return uuid.Nil, &Rejection{
			Kind:    RejectionMalformedHeader,
			Message: "Invalid Authorization format, expected: Bearer <token>",
		}
	}
	userUID, err := service.ValidateToken(ctx, tokenStr)
	if err != nil {
		return uuid.Nil, &Rejection{
			Kind:    RejectionUnauthorized,
			Message: "invalid or expired token",
		}
	}
	return userUID, nil
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Если токен валиден, добавляет UID пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, rejection := Authenticate(r.Context(), authService, r.Header.Get("Authorization"))
			if rejection != nil {
				log.Error("authentication rejected",
					slog.String("kind", string(rejection.Kind)))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error(rejection.Message))
				return
			}

			ctx := context.WithValue(r.Context(), UserUID, userUID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
