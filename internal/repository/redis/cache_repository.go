package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ProfcomService/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	// TTL для разных типов кэша
	userProfileTTL = 30 * time.Minute
	guideListTTL   = 5 * time.Minute
	// Версия живет дольше любого кэшированного значения
	versionTTL = 24 * time.Hour

	guideListKey        = "guides:all"
	guideListVersionKey = "guides:version"
)

// CacheRepository представляет репозиторий для работы с кэшем в Redis.
// Каждый ключ сопровождается счетчиком версии: инвалидация увеличивает его,
// а заполнение кэша проходит только при неизменной версии.
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository создает новый экземпляр CacheRepository
func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

func userKey(id uint) string {
	return fmt.Sprintf("user:%d:profile", id)
}

func userVersionKey(id uint) string {
	return fmt.Sprintf("user:%d:version", id)
}

// UserVersion возвращает текущую версию профиля; читать ее нужно до обращения к базе
func (r *CacheRepository) UserVersion(ctx context.Context, id uint) (int64, error) {
	return r.version(ctx, userVersionKey(id))
}

// SetUser кэширует пользователя, прочитанного при версии version.
// Если профиль с тех пор инвалидирован, запись пропускается.
func (r *CacheRepository) SetUser(ctx context.Context, user *models.User, version int64) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return r.setIfVersion(ctx, userVersionKey(user.UserID), version, userKey(user.UserID), userData, userProfileTTL)
}

// GetUser получает пользователя из кэша, при промахе возвращает redis.Nil
func (r *CacheRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	userData, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// DeleteUser удаляет пользователя из кэша и увеличивает версию профиля
func (r *CacheRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.invalidate(ctx, userVersionKey(id), userKey(id))
}

// GuidesVersion возвращает текущую версию списка гайдов
func (r *CacheRepository) GuidesVersion(ctx context.Context) (int64, error) {
	return r.version(ctx, guideListVersionKey)
}

// SetGuides кэширует список гайдов, прочитанный при версии version
func (r *CacheRepository) SetGuides(ctx context.Context, guides []models.Guide, version int64) error {
	guidesData, err := json.Marshal(guides)
	if err != nil {
		return err
	}

	return r.setIfVersion(ctx, guideListVersionKey, version, guideListKey, guidesData, guideListTTL)
}

// GetGuides получает список гайдов из кэша, при промахе возвращает redis.Nil
func (r *CacheRepository) GetGuides(ctx context.Context) ([]models.Guide, error) {
	guidesData, err := r.client.Get(ctx, guideListKey).Bytes()
	if err != nil {
		return nil, err
	}

	var guides []models.Guide
	if err := json.Unmarshal(guidesData, &guides); err != nil {
		return nil, err
	}

	return guides, nil
}

// DeleteGuides удаляет список гайдов из кэша и увеличивает его версию
func (r *CacheRepository) DeleteGuides(ctx context.Context) error {
	return r.invalidate(ctx, guideListVersionKey, guideListKey)
}

// version читает счетчик; отсутствующий ключ соответствует версии 0
func (r *CacheRepository) version(ctx context.Context, versionKey string) (int64, error) {
	version, err := r.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// setIfVersion записывает значение в транзакции WATCH/MULTI, только если версия не изменилась
func (r *CacheRepository) setIfVersion(ctx context.Context, versionKey string, version int64, key string, value []byte, ttl time.Duration) error {
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, versionKey)

	// Инвалидация между WATCH и EXEC: значение устарело, запись пропущена
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// invalidate атомарно увеличивает версию и удаляет значение
func (r *CacheRepository) invalidate(ctx context.Context, versionKey, key string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, versionTTL)
		pipe.Del(ctx, key)
		return nil
	})
	return err
}
