package apperrors

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Таксономия ошибок, которые доходят до границы сервиса
var (
	// ErrNotFound возвращается, когда пользователь или гайд не найден
	ErrNotFound = errors.New("запись не найдена")

	// ErrUnauthorized возвращается, когда идентификатор вызывающего не соответствует ни одному пользователю
	ErrUnauthorized = errors.New("пользователь не авторизован")

	// ErrForbidden возвращается, когда у вызывающего недостаточно прав
	ErrForbidden = errors.New("недостаточно прав")

	// ErrInvalidArgument возвращается при некорректных входных данных
	ErrInvalidArgument = errors.New("некорректные входные данные")

	// ErrCacheMiss возвращается, когда запись не найдена в кэше
	ErrCacheMiss = redis.Nil

	// ErrRecordNotFound возвращается, когда запись не найдена в базе данных
	ErrRecordNotFound = gorm.ErrRecordNotFound

	// IgnoredErrors содержит ошибки, которые не считаются отказом для circuit breaker
	IgnoredErrors = []error{
		ErrNotFound,
		ErrCacheMiss,
		ErrRecordNotFound,
	}
)

// IsNotFound проверяет, является ли ошибка ошибкой "запись не найдена"
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCacheMiss) ||
		errors.Is(err, ErrRecordNotFound)
}

// IsUnauthorized проверяет, является ли ошибка ошибкой авторизации
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden проверяет, является ли ошибка ошибкой недостатка прав
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsInvalidArgument проверяет, является ли ошибка ошибкой входных данных
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
