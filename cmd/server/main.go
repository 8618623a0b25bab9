package main

import (
	"context"
	"fmt"
	"os"

	"ProfcomService/config"
	"ProfcomService/pkg/database"
	"ProfcomService/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Версия сервиса
const (
	ServiceVersion = "1.0.0"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "profcom",
		Short:         "Сервис участников профкома",
		Version:       ServiceVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "путь к файлу конфигурации (по умолчанию ./config/config.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Запустить HTTP API, gRPC health и сервер метрик",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(configPath)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Заполнить хранилище данными для разработки",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd, configPath)
			},
		},
	)

	return root
}

// bootstrap загружает конфигурацию, создает логгер и подключается к хранилищу
func bootstrap(configPath string) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfigFromPath(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.IsDevelopment())

	db, err := database.NewDB(cfg.Database)
	if err != nil {
		log.Error("Не удалось подключиться к хранилищу", zap.Error(err), zap.String("driver", cfg.Database.Driver))
		return nil, nil, nil, err
	}
	log.Info("Подключение к хранилищу установлено", zap.String("driver", cfg.Database.Driver))

	return cfg, log, db, nil
}
