package auth

import (
	"context"
	"fmt"

	"ProfcomService/internal/models"
	"ProfcomService/pkg/apperrors"
)

// UserReader находит пользователя по идентификатору
type UserReader interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// Authorizer определяет вызывающего пользователя по его идентификатору.
// Сессий нет: права вычисляются по строке пользователя при каждом вызове.
type Authorizer struct {
	users      UserReader
	enforceBan bool
}

// NewAuthorizer создает новый экземпляр Authorizer
func NewAuthorizer(users UserReader, enforceBan bool) *Authorizer {
	return &Authorizer{
		users:      users,
		enforceBan: enforceBan,
	}
}

// ResolveCaller возвращает пользователя, от имени которого выполняется запрос
func (a *Authorizer) ResolveCaller(ctx context.Context, callerID uint) (*models.User, error) {
	if callerID == 0 {
		return nil, fmt.Errorf("caller id is missing: %w", apperrors.ErrUnauthorized)
	}

	caller, err := a.users.GetUser(ctx, callerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, fmt.Errorf("caller %d: %w", callerID, apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if a.enforceBan && caller.Banned {
		return nil, fmt.Errorf("caller %d is banned: %w", callerID, apperrors.ErrForbidden)
	}

	return caller, nil
}

// RequireAdmin разрешает действие администратору или суперпользователю
func RequireAdmin(caller *models.User) error {
	if caller == nil || !caller.IsAdmin() {
		return fmt.Errorf("admin rights required: %w", apperrors.ErrForbidden)
	}
	return nil
}

// RequireSuperUser разрешает действие только суперпользователю
func RequireSuperUser(caller *models.User) error {
	if caller == nil || !caller.IsSuperUser() {
		return fmt.Errorf("super user rights required: %w", apperrors.ErrForbidden)
	}
	return nil
}

// RequireSelfOrAdmin разрешает действие над своим профилем или администратору
func RequireSelfOrAdmin(caller *models.User, targetID uint) error {
	if caller == nil {
		return fmt.Errorf("caller is missing: %w", apperrors.ErrForbidden)
	}
	if caller.UserID == targetID || caller.IsAdmin() {
		return nil
	}
	return fmt.Errorf("user %d cannot modify user %d: %w", caller.UserID, targetID, apperrors.ErrForbidden)
}
