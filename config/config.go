package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Поддерживаемые драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config содержит все настройки приложения
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Health   HealthConfig   `mapstructure:"health"`
	Auth     AuthConfig     `mapstructure:"auth"`

	Resilience ResilienceConfig `mapstructure:"resilience"`
}

// AppConfig содержит общие настройки сервиса
type AppConfig struct {
	Env string `mapstructure:"env"`
}

// LogConfig содержит настройки логирования
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig содержит настройки хранилища
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	DBName     string `mapstructure:"dbname"`
	SSLMode    string `mapstructure:"sslmode"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig содержит настройки для Redis
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// HTTPConfig содержит настройки HTTP API
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// GRPCConfig содержит настройки для gRPC сервера проверки здоровья
type GRPCConfig struct {
	Port int `mapstructure:"port"`
}

// MetricsConfig содержит настройки сервера метрик Prometheus
type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

// HealthConfig содержит настройки HTTP сервера проверки здоровья
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// AuthConfig содержит настройки слоя авторизации
type AuthConfig struct {
	// EnforceBan запрещает заблокированным пользователям выполнять операции от своего имени
	EnforceBan bool `mapstructure:"enforce_ban"`
}

// IsDevelopment сообщает, запущен ли сервис в режиме разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// LoadConfig загружает настройки из файла или переменных окружения
func LoadConfig() (*Config, error) {
	return LoadConfigFromPath("")
}

// LoadConfigFromPath загружает настройки из указанного файла, если путь задан
func LoadConfigFromPath(path string) (*Config, error) {
	// .env не обязателен, переменные окружения могут быть заданы напрямую
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()

	// Значения по умолчанию
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Если файл конфигурации не найден, используем переменные окружения
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Переменные окружения имеют приоритет над файлом
	loadFromEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "production")
	v.SetDefault("log.level", "info")

	// Хранилище
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "profcom")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "profcom.db")

	// Redis
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)

	// Порты
	v.SetDefault("http.port", 8080)
	v.SetDefault("grpc.port", 50051)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("health.port", 8081)

	v.SetDefault("auth.enforce_ban", false)

	setResilienceDefaults(v)
}

func loadFromEnv(v *viper.Viper) {
	setString(v, "APP_ENV", "app.env")
	setString(v, "LOG_LEVEL", "log.level")

	// Хранилище
	setString(v, "DB_DRIVER", "database.driver")
	setString(v, "DB_HOST", "database.host")
	setInt(v, "DB_PORT", "database.port")
	setString(v, "DB_USER", "database.username")
	setString(v, "DB_PASSWORD", "database.password")
	setString(v, "DB_NAME", "database.dbname")
	setString(v, "DB_SSLMODE", "database.sslmode")
	setString(v, "DB_SQLITE_PATH", "database.sqlite_path")

	// Redis
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisPort := "6379"
		if port := os.Getenv("REDIS_PORT"); port != "" {
			redisPort = port
		}
		v.Set("redis.addr", redisHost+":"+redisPort)
	}
	setString(v, "REDIS_PASSWORD", "redis.password")
	setBool(v, "REDIS_ENABLED", "redis.enabled")

	setInt(v, "HTTP_PORT", "http.port")
	setInt(v, "GRPC_PORT", "grpc.port")
	setInt(v, "METRICS_PORT", "metrics.port")
	setInt(v, "HEALTH_PORT", "health.port")

	setBool(v, "AUTH_ENFORCE_BAN", "auth.enforce_ban")
}

func setString(v *viper.Viper, env, key string) {
	if value := os.Getenv(env); value != "" {
		v.Set(key, value)
	}
}

func setInt(v *viper.Viper, env, key string) {
	if value := os.Getenv(env); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			v.Set(key, n)
		}
	}
}

func setBool(v *viper.Viper, env, key string) {
	if value := os.Getenv(env); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			v.Set(key, b)
		}
	}
}
