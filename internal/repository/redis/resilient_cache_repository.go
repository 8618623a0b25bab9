package redis

import (
	"context"
	"time"

	"ProfcomService/internal/models"
	"ProfcomService/pkg/database"
	"ProfcomService/pkg/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisExecutor выполняет операцию Redis через circuit breaker
type RedisExecutor interface {
	WithRedisResilience(ctx context.Context, operation string, fn func(ctx context.Context) error) error
}

// ResilientCacheRepository добавляет механизмы отказоустойчивости к кэш-репозиторию.
// Ошибки записи и удаления не пробрасываются: кэш не влияет на корректность.
type ResilientCacheRepository struct {
	client   *redis.Client
	repo     *CacheRepository
	logger   *zap.Logger
	executor RedisExecutor
}

// NewResilientCacheRepository создает новый экземпляр отказоустойчивого кэш-репозитория
func NewResilientCacheRepository(client *redis.Client, executor RedisExecutor, logger *zap.Logger) *ResilientCacheRepository {
	return &ResilientCacheRepository{
		client:   client,
		repo:     NewCacheRepository(client),
		logger:   logger,
		executor: executor,
	}
}

// UserVersion получает версию профиля; ошибка означает, что заполнять кэш нельзя
func (r *ResilientCacheRepository) UserVersion(ctx context.Context, id uint) (int64, error) {
	var version int64
	err := r.run(ctx, "get_user_version", func(ctx context.Context) error {
		var err error
		version, err = r.repo.UserVersion(ctx, id)
		return err
	})
	return version, err
}

// SetUser кэширует пользователя, если версия профиля не изменилась
func (r *ResilientCacheRepository) SetUser(ctx context.Context, user *models.User, version int64) error {
	err := r.run(ctx, "set_user_cache", func(ctx context.Context) error {
		return r.repo.SetUser(ctx, user, version)
	})
	if err != nil {
		r.logger.Warn("Failed to cache user, continuing without caching",
			zap.Error(err),
			zap.Uint("user_id", user.UserID))
	}
	return nil
}

// GetUser получает пользователя из кэша; любая ошибка означает промах
func (r *ResilientCacheRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user *models.User
	err := r.run(ctx, "get_user_cache", func(ctx context.Context) error {
		var err error
		user, err = r.repo.GetUser(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser удаляет пользователя из кэша
func (r *ResilientCacheRepository) DeleteUser(ctx context.Context, id uint) error {
	err := r.run(ctx, "delete_user_cache", func(ctx context.Context) error {
		return r.repo.DeleteUser(ctx, id)
	})
	if err != nil {
		r.logger.Warn("Failed to invalidate cached user",
			zap.Error(err),
			zap.Uint("user_id", id))
	}
	return nil
}

// GuidesVersion получает версию списка гайдов
func (r *ResilientCacheRepository) GuidesVersion(ctx context.Context) (int64, error) {
	var version int64
	err := r.run(ctx, "get_guides_version", func(ctx context.Context) error {
		var err error
		version, err = r.repo.GuidesVersion(ctx)
		return err
	})
	return version, err
}

// SetGuides кэширует список гайдов, если его версия не изменилась
func (r *ResilientCacheRepository) SetGuides(ctx context.Context, guides []models.Guide, version int64) error {
	err := r.run(ctx, "set_guides_cache", func(ctx context.Context) error {
		return r.repo.SetGuides(ctx, guides, version)
	})
	if err != nil {
		r.logger.Warn("Failed to cache guides, continuing without caching", zap.Error(err))
	}
	return nil
}

// GetGuides получает список гайдов из кэша
func (r *ResilientCacheRepository) GetGuides(ctx context.Context) ([]models.Guide, error) {
	var guides []models.Guide
	err := r.run(ctx, "get_guides_cache", func(ctx context.Context) error {
		var err error
		guides, err = r.repo.GetGuides(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return guides, nil
}

// DeleteGuides удаляет список гайдов из кэша
func (r *ResilientCacheRepository) DeleteGuides(ctx context.Context) error {
	err := r.run(ctx, "delete_guides_cache", func(ctx context.Context) error {
		return r.repo.DeleteGuides(ctx)
	})
	if err != nil {
		r.logger.Warn("Failed to invalidate cached guides", zap.Error(err))
	}
	return nil
}

// run выполняет операцию через circuit breaker и записывает метрики
func (r *ResilientCacheRepository) run(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	startTime := time.Now()

	err := r.executor.WithRedisResilience(ctx, operation, func(ctx context.Context) error {
		return database.SafeRedisOperation(ctx, r.client, r.logger, operation, func(ctx context.Context, _ *redis.Client) error {
			return fn(ctx)
		})
	})

	server.RecordCacheOperation(operation, time.Since(startTime), err)

	return err
}
