package postgres

import (
	"context"
	"time"

	"ProfcomService/internal/models"
	"ProfcomService/pkg/database"
	"ProfcomService/pkg/server"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InstrumentedProfileRepository добавляет к ProfileRepository метрики и логирование ошибок.
// Операции не повторяются и не ограничиваются таймаутами.
type InstrumentedProfileRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInstrumentedProfileRepository создает новый экземпляр инструментированного репозитория профилей
func NewInstrumentedProfileRepository(db *gorm.DB, logger *zap.Logger) *InstrumentedProfileRepository {
	return &InstrumentedProfileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUserWithContact создает пользователя и контактную информацию
func (r *InstrumentedProfileRepository) CreateUserWithContact(ctx context.Context, contact *models.ContactInfo, user *models.User) (*models.User, error) {
	return instrument(ctx, r.db, r.logger, "create_user_with_contact", func(tx *gorm.DB) (*models.User, error) {
		return NewProfileRepository(tx).CreateUserWithContact(ctx, contact, user)
	})
}

// GetUser получает пользователя по ID
func (r *InstrumentedProfileRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return instrument(ctx, r.db, r.logger, "get_user", func(tx *gorm.DB) (*models.User, error) {
		return NewProfileRepository(tx).GetUser(ctx, id)
	})
}

// GetUserByName получает пользователя по имени
func (r *InstrumentedProfileRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	return instrument(ctx, r.db, r.logger, "get_user_by_name", func(tx *gorm.DB) (*models.User, error) {
		return NewProfileRepository(tx).GetUserByName(ctx, name)
	})
}

// GetContact получает контактную информацию пользователя
func (r *InstrumentedProfileRepository) GetContact(ctx context.Context, id uint) (*models.ContactInfo, error) {
	return instrument(ctx, r.db, r.logger, "get_contact", func(tx *gorm.DB) (*models.ContactInfo, error) {
		return NewProfileRepository(tx).GetContact(ctx, id)
	})
}

// DeleteUser удаляет пользователя вместе с контактной информацией
func (r *InstrumentedProfileRepository) DeleteUser(ctx context.Context, id uint) error {
	_, err := instrument(ctx, r.db, r.logger, "delete_user", func(tx *gorm.DB) (struct{}, error) {
		return struct{}{}, NewProfileRepository(tx).DeleteUser(ctx, id)
	})
	return err
}

// UpdateUser обновляет поля пользователя
func (r *InstrumentedProfileRepository) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	return instrument(ctx, r.db, r.logger, "update_user", func(tx *gorm.DB) (*models.User, error) {
		return NewProfileRepository(tx).UpdateUser(ctx, id, patch)
	})
}

// UpdateContact обновляет поля контактной информации
func (r *InstrumentedProfileRepository) UpdateContact(ctx context.Context, id uint, patch models.ContactPatch) (*models.ContactInfo, error) {
	return instrument(ctx, r.db, r.logger, "update_contact", func(tx *gorm.DB) (*models.ContactInfo, error) {
		return NewProfileRepository(tx).UpdateContact(ctx, id, patch)
	})
}

// ListContacts возвращает все контакты
func (r *InstrumentedProfileRepository) ListContacts(ctx context.Context) ([]models.ContactInfo, error) {
	return instrument(ctx, r.db, r.logger, "list_contacts", func(tx *gorm.DB) ([]models.ContactInfo, error) {
		return NewProfileRepository(tx).ListContacts(ctx)
	})
}

// FilterContacts возвращает контакты по фильтру
func (r *InstrumentedProfileRepository) FilterContacts(ctx context.Context, filter models.ContactFilter) ([]models.ContactInfo, error) {
	return instrument(ctx, r.db, r.logger, "filter_contacts", func(tx *gorm.DB) ([]models.ContactInfo, error) {
		return NewProfileRepository(tx).FilterContacts(ctx, filter)
	})
}

// InstrumentedGuideRepository добавляет к GuideRepository метрики и логирование ошибок
type InstrumentedGuideRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInstrumentedGuideRepository создает новый экземпляр инструментированного репозитория гайдов
func NewInstrumentedGuideRepository(db *gorm.DB, logger *zap.Logger) *InstrumentedGuideRepository {
	return &InstrumentedGuideRepository{
		db:     db,
		logger: logger,
	}
}

// ListGuides возвращает все гайды
func (r *InstrumentedGuideRepository) ListGuides(ctx context.Context) ([]models.Guide, error) {
	return instrument(ctx, r.db, r.logger, "list_guides", func(tx *gorm.DB) ([]models.Guide, error) {
		return NewGuideRepository(tx).ListGuides(ctx)
	})
}

// GetGuide получает гайд по ID
func (r *InstrumentedGuideRepository) GetGuide(ctx context.Context, id uint) (*models.Guide, error) {
	return instrument(ctx, r.db, r.logger, "get_guide", func(tx *gorm.DB) (*models.Guide, error) {
		return NewGuideRepository(tx).GetGuide(ctx, id)
	})
}

// CreateGuide создает гайд
func (r *InstrumentedGuideRepository) CreateGuide(ctx context.Context, guide *models.Guide) (*models.Guide, error) {
	return instrument(ctx, r.db, r.logger, "create_guide", func(tx *gorm.DB) (*models.Guide, error) {
		return NewGuideRepository(tx).CreateGuide(ctx, guide)
	})
}

// UpdateGuide обновляет поля гайда
func (r *InstrumentedGuideRepository) UpdateGuide(ctx context.Context, id uint, patch models.GuidePatch) (*models.Guide, error) {
	return instrument(ctx, r.db, r.logger, "update_guide", func(tx *gorm.DB) (*models.Guide, error) {
		return NewGuideRepository(tx).UpdateGuide(ctx, id, patch)
	})
}

// instrument выполняет операцию через SafeDBOperation и записывает метрики
func instrument[T any](ctx context.Context, db *gorm.DB, logger *zap.Logger, operation string, fn func(tx *gorm.DB) (T, error)) (T, error) {
	startTime := time.Now()

	var result T
	err := database.SafeDBOperation(ctx, db, logger, operation, func(tx *gorm.DB) error {
		var err error
		result, err = fn(tx)
		return err
	})

	server.RecordDBOperation(operation, time.Since(startTime), err)

	return result, err
}
