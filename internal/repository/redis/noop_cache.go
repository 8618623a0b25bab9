package redis

import (
	"context"

	"ProfcomService/internal/models"

	"github.com/redis/go-redis/v9"
)

// NoopCache используется, когда Redis отключен: запись игнорируется, чтение всегда промах
type NoopCache struct{}

// NewNoopCache создает кэш без хранилища
func NewNoopCache() *NoopCache {
	return &NoopCache{}
}

// UserVersion всегда возвращает версию 0
func (NoopCache) UserVersion(context.Context, uint) (int64, error) { return 0, nil }

// SetUser ничего не сохраняет
func (NoopCache) SetUser(context.Context, *models.User, int64) error { return nil }

// GetUser всегда сообщает о промахе
func (NoopCache) GetUser(context.Context, uint) (*models.User, error) { return nil, redis.Nil }

// DeleteUser ничего не делает
func (NoopCache) DeleteUser(context.Context, uint) error { return nil }

// GuidesVersion всегда возвращает версию 0
func (NoopCache) GuidesVersion(context.Context) (int64, error) { return 0, nil }

// SetGuides ничего не сохраняет
func (NoopCache) SetGuides(context.Context, []models.Guide, int64) error { return nil }

// GetGuides всегда сообщает о промахе
func (NoopCache) GetGuides(context.Context) ([]models.Guide, error) { return nil, redis.Nil }

// DeleteGuides ничего не делает
func (NoopCache) DeleteGuides(context.Context) error { return nil }
