package database

import (
	"context"
	"errors"

	"ProfcomService/config"
	"ProfcomService/pkg/apperrors"
	"ProfcomService/pkg/resilience"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthChecker проверяет состояние хранилища и Redis и защищает вызовы Redis circuit breaker'ом
type HealthChecker struct {
	db           *gorm.DB
	redisClient  *redis.Client
	logger       *zap.Logger
	cfg          config.ResilienceConfig
	dbCircuit    *resilience.CircuitBreaker
	redisCircuit *resilience.CircuitBreaker
}

// NewDatabaseHealthChecker создает новый экземпляр проверки состояния баз данных.
// redisClient может быть nil, если кэш отключен.
func NewDatabaseHealthChecker(db *gorm.DB, redisClient *redis.Client, logger *zap.Logger, cfg config.ResilienceConfig) *HealthChecker {
	threshold := cfg.CircuitBreaker.FailureThreshold
	resetTimeout := cfg.CircuitBreaker.ResetTimeout

	return &HealthChecker{
		db:           db,
		redisClient:  redisClient,
		logger:       logger,
		cfg:          cfg,
		dbCircuit:    resilience.NewCircuitBreaker("database_health", threshold, resetTimeout, logger),
		redisCircuit: resilience.NewCircuitBreaker("redis", threshold, resetTimeout, logger, apperrors.IgnoredErrors...),
	}
}

// IsDatabaseHealthy проверяет доступность хранилища запросом SELECT 1
func (c *HealthChecker) IsDatabaseHealthy(ctx context.Context) bool {
	var result int
	err := c.dbCircuit.Execute(ctx, "database_health_check", func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.cfg.Database.HealthCheckTimeout)
		defer cancel()

		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}

		return sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	})

	return err == nil && result == 1
}

// IsRedisHealthy проверяет доступность Redis; отключенный кэш считается здоровым
func (c *HealthChecker) IsRedisHealthy(ctx context.Context) bool {
	if c.redisClient == nil {
		return true
	}

	err := c.WithRedisResilience(ctx, "redis_health_check", func(ctx context.Context) error {
		return c.redisClient.Ping(ctx).Err()
	})

	return err == nil
}

// WithRedisResilience выполняет операцию в Redis через circuit breaker с таймаутом команды
func (c *HealthChecker) WithRedisResilience(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	err := c.redisCircuit.Execute(ctx, operation, func(ctx context.Context) error {
		if c.cfg.Redis.CommandTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.cfg.Redis.CommandTimeout)
			defer cancel()
		}
		return fn(ctx)
	})

	// redis.Nil не считается отказом, но возвращается вызывающему как промах кэша
	if errors.Is(err, redis.Nil) {
		c.logger.Debug("Ключ не найден в Redis",
			zap.String("operation", operation))
	}

	return err
}

// SafeDBOperation выполняет операцию в базе данных с контекстом запроса и логирует ошибки.
// Повторов и таймаутов нет: ошибка возвращается вызывающему как есть.
func SafeDBOperation(ctx context.Context, db *gorm.DB, logger *zap.Logger, operation string, fn func(tx *gorm.DB) error) error {
	err := fn(db.WithContext(ctx))
	if err == nil {
		return nil
	}

	if apperrors.IsNotFound(err) {
		logger.Debug("Database record not found",
			zap.String("operation", operation))
		return err
	}

	logger.Error("Database operation failed",
		zap.String("operation", operation),
		zap.Error(err))

	if errors.Is(err, gorm.ErrInvalidTransaction) {
		logger.Error("Database transaction failed due to invalid transaction",
			zap.String("operation", operation))
	}

	return err
}

// SafeRedisOperation выполняет операцию в Redis, логируя ошибки и добавляя контекст
func SafeRedisOperation(ctx context.Context, client *redis.Client, logger *zap.Logger, operation string, fn func(ctx context.Context, client *redis.Client) error) error {
	err := fn(ctx, client)
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}

	logger.Error("Redis operation failed",
		zap.String("operation", operation),
		zap.Error(err))

	if errors.Is(err, context.DeadlineExceeded) {
		logger.Error("Redis operation timed out", zap.String("operation", operation))
	} else if errors.Is(err, redis.ErrClosed) {
		logger.Error("Redis connection closed", zap.String("operation", operation))
	}

	return err
}
