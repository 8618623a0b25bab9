package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ProfcomService/config"
	"ProfcomService/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB создает подключение к хранилищу, выбранному в конфигурации, и выполняет миграции
func NewDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, maxOpenConns, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	// Настройка пула соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(min(10, maxOpenConns))
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return db, nil
}

// AutoMigrate создает таблицы users, contact_info и guides, если их нет
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ContactInfo{},
		&models.Guide{},
	)
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, int, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), 25, nil
	case config.DriverSQLite:
		// SQLite допускает одного писателя, поэтому пул из одного соединения
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), 1, nil
	default:
		return nil, 0, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN включает проверку внешних ключей для пути или URI базы SQLite
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1"
}
