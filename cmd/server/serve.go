package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"ProfcomService/internal/auth"
	"ProfcomService/internal/database/seed"
	"ProfcomService/internal/delivery/grpc"
	httpdelivery "ProfcomService/internal/delivery/http"
	"ProfcomService/internal/repository/postgres"
	"ProfcomService/internal/repository/redis"
	"ProfcomService/internal/service"
	"ProfcomService/pkg/database"
	"ProfcomService/pkg/server"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout     = 30 * time.Second
	healthWatchInterval = 10 * time.Second
)

func runServe(configPath string) error {
	cfg, log, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	log.Info("Запуск сервиса профкома", zap.String("version", ServiceVersion))

	gracefulShutdown := server.NewGracefulShutdown(log, shutdownTimeout)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("не удалось получить экземпляр SQL DB: %w", err)
	}
	gracefulShutdown.AddShutdownFunc("database", func(ctx context.Context) error {
		return sqlDB.Close()
	})

	// Кэш необязателен: без Redis все чтения идут в хранилище
	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			return fmt.Errorf("не удалось подключиться к Redis: %w", err)
		}
		log.Info("Подключение к Redis установлено", zap.String("addr", cfg.Redis.Addr))
		gracefulShutdown.AddShutdownFunc("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	healthChecker := database.NewDatabaseHealthChecker(db, redisClient, log, cfg.Resilience)

	var cacheRepo service.CacheRepositoryInterface = redis.NewNoopCache()
	if redisClient != nil {
		cacheRepo = redis.NewResilientCacheRepository(redisClient, healthChecker, log)
	}

	profileRepo := postgres.NewInstrumentedProfileRepository(db, log)
	guideRepo := postgres.NewInstrumentedGuideRepository(db, log)
	authorizer := auth.NewAuthorizer(profileRepo, cfg.Auth.EnforceBan)

	profileService := service.NewProfileService(profileRepo, cacheRepo, authorizer, log)
	guideService := service.NewGuideService(guideRepo, cacheRepo, authorizer, log)
	contactService := service.NewContactService(profileRepo, authorizer, log)

	if cfg.IsDevelopment() {
		if err := seed.NewDevEnvironmentSeeder(db, log, true).SeedAllDevData(context.Background()); err != nil {
			log.Warn("Не удалось заполнить данные для разработки", zap.Error(err))
		}
	}

	metricsServer := server.MetricsServer(cfg.Metrics.Port, log)
	gracefulShutdown.AddShutdownFunc("metrics", metricsServer.Shutdown)

	healthCheck := server.NewHealthCheck(healthChecker, log, ServiceVersion)
	healthCheck.StartServer(cfg.Health.Port)
	gracefulShutdown.AddShutdownFunc("health", healthCheck.Stop)

	handler := httpdelivery.NewHandler(profileService, guideService, contactService, log)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           httpdelivery.NewRouter(handler, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Запуск HTTP API", zap.Int("port", cfg.HTTP.Port))
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP API остановлен с ошибкой", zap.Error(err))
			go gracefulShutdown.Shutdown()
		}
	}()
	gracefulShutdown.AddShutdownFunc("http", apiServer.Shutdown)

	grpcServer := grpc.NewServer(log, cfg.GRPC.Port)
	watchCtx, stopWatch := context.WithCancel(context.Background())
	go grpcServer.WatchHealth(watchCtx, healthChecker, healthWatchInterval)
	go func() {
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC сервер остановлен с ошибкой", zap.Error(err))
			go gracefulShutdown.Shutdown()
		}
	}()
	gracefulShutdown.AddShutdownFunc("grpc", func(ctx context.Context) error {
		stopWatch()
		grpcServer.Stop()
		return nil
	})

	hostname, _ := os.Hostname()
	log.Info("Сервис успешно запущен",
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Int("grpc_port", cfg.GRPC.Port),
		zap.Int("health_port", cfg.Health.Port),
		zap.Int("metrics_port", cfg.Metrics.Port),
		zap.Int("pid", os.Getpid()),
		zap.String("hostname", hostname))

	gracefulShutdown.Wait()
	log.Info("Завершение работы сервиса выполнено")
	_ = log.Sync()
	return nil
}

func runSeed(cmd *cobra.Command, configPath string) error {
	cfg, log, db, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	seeder := seed.NewDevEnvironmentSeeder(db, log, cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		log.Warn("Заполнение данными доступно только в режиме разработки", zap.String("env", cfg.App.Env))
	}
	return seeder.SeedAllDevData(cmd.Context())
}
