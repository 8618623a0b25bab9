package config

import (
	"time"

	"github.com/spf13/viper"
)

// ResilienceConfig задает защиту инфраструктурных вызовов (Redis, проверки здоровья).
// Доменные операции с хранилищем не повторяются и не ограничиваются таймаутами.
type ResilienceConfig struct {
	CircuitBreaker CircuitBreakerConfig  `mapstructure:"circuit_breaker"`
	Database       DatabaseHealthConfig  `mapstructure:"database"`
	Redis          RedisResilienceConfig `mapstructure:"redis"`
}

// CircuitBreakerConfig задает порог ошибок подряд и время до пробного запроса
type CircuitBreakerConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	ResetTimeout     time.Duration `mapstructure:"reset_timeout"`
}

// DatabaseHealthConfig ограничивает время запроса SELECT 1 при проверке здоровья
type DatabaseHealthConfig struct {
	HealthCheckTimeout time.Duration `mapstructure:"health_check_timeout"`
}

// RedisResilienceConfig ограничивает время одной команды кэша
type RedisResilienceConfig struct {
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
}

// DefaultResilienceConfig возвращает конфигурацию отказоустойчивости по умолчанию
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		CircuitBreaker: CircuitBreakerConfig{
			FailureThreshold: 5,
			ResetTimeout:     30 * time.Second,
		},
		Database: DatabaseHealthConfig{HealthCheckTimeout: 2 * time.Second},
		Redis:    RedisResilienceConfig{CommandTimeout: time.Second},
	}
}

func setResilienceDefaults(v *viper.Viper) {
	d := DefaultResilienceConfig()
	v.SetDefault("resilience.circuit_breaker.failure_threshold", d.CircuitBreaker.FailureThreshold)
	v.SetDefault("resilience.circuit_breaker.reset_timeout", d.CircuitBreaker.ResetTimeout)
	v.SetDefault("resilience.database.health_check_timeout", d.Database.HealthCheckTimeout)
	v.SetDefault("resilience.redis.command_timeout", d.Redis.CommandTimeout)
}
