// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/finance-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/finance-tracker/internal/lib/password"
	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
// Формулировка одинакова для неизвестного пользователя и неверного пароля.
var ErrInvalidCredentials = errors.New("invalid username/email or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByIdentifier возвращает пользователя по username или email.
	GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и возвращает его UID.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	const op = "services.auth.Register"
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return uid, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Идентификатором может быть как username, так и email.
func (s *AuthService) Login(ctx context.Context, identifier, rawPassword string) (userUID, token string, err error) {
	user, err := s.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.Issue(user.UID)
	if err != nil {
		return "", "", err
	}
	return user.UID, token, nil
}

// ValidateToken проверяет JWT и возвращает UID пользователя.
func (s *AuthService) ValidateToken(_ context.Context, token string) (uuid.UUID, error) {
	return s.jwtMaker.Parse(token)
}
