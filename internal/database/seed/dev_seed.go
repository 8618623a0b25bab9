package seed

import (
	"context"
	"fmt"

	"ProfcomService/internal/models"
	"ProfcomService/internal/repository/postgres"
	"ProfcomService/pkg/apperrors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DevSuperUserName имя суперпользователя, создаваемого в среде разработки
const DevSuperUserName = "chairman"

// DevEnvironmentSeeder заполняет хранилище данными для среды разработки
type DevEnvironmentSeeder struct {
	profiles *postgres.ProfileRepository
	guides   *postgres.GuideRepository
	logger   *zap.Logger
	enabled  bool
}

// NewDevEnvironmentSeeder создает новый объект для заполнения тестовыми данными.
// enabled должен быть true только в режиме разработки.
func NewDevEnvironmentSeeder(db *gorm.DB, logger *zap.Logger, enabled bool) *DevEnvironmentSeeder {
	return &DevEnvironmentSeeder{
		profiles: postgres.NewProfileRepository(db),
		guides:   postgres.NewGuideRepository(db),
		logger:   logger,
		enabled:  enabled,
	}
}

// SeedSuperUser создает председателя, если пользователя с таким именем еще нет
func (s *DevEnvironmentSeeder) SeedSuperUser(ctx context.Context) (*models.User, error) {
	existing, err := s.profiles.GetUserByName(ctx, DevSuperUserName)
	if err == nil {
		s.logger.Info("Суперпользователь уже существует", zap.Uint("user_id", existing.UserID))
		return existing, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, err
	}

	contact := &models.ContactInfo{
		FIO:         "Председатель Профкома",
		KKRName:     "Председатель",
		GroupNumber: "000",
		Location:    "Штаб профкома",
		Blocks:      "Президиум",
		Phone:       "+70000000000",
		Email:       "chairman@profcom.local",
		InProfcom:   true,
	}
	user := &models.User{
		UserName:    DevSuperUserName,
		GroupNumber: "000",
		Blocks:      "Президиум",
		SuperUser:   true,
		Admin:       true,
	}

	created, err := s.profiles.CreateUserWithContact(ctx, contact, user)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать суперпользователя: %w", err)
	}

	s.logger.Info("Создан суперпользователь", zap.Uint("user_id", created.UserID))
	return created, nil
}

// SeedGuides создает стартовый гайд, если гайдов еще нет
func (s *DevEnvironmentSeeder) SeedGuides(ctx context.Context) error {
	guides, err := s.guides.ListGuides(ctx)
	if err != nil {
		return err
	}
	if len(guides) > 0 {
		s.logger.Info("Гайды уже существуют", zap.Int("count", len(guides)))
		return nil
	}

	guide, err := s.guides.CreateGuide(ctx, &models.Guide{
		Title:      "Как вступить в профком",
		OwnerBlock: "Президиум",
		Text:       "Заполните заявление и передайте его профоргу группы.",
	})
	if err != nil {
		return fmt.Errorf("не удалось создать гайд: %w", err)
	}

	s.logger.Info("Создан стартовый гайд", zap.Uint("guide_id", guide.GuideID))
	return nil
}

// SeedAllDevData заполняет все данные для разработки
func (s *DevEnvironmentSeeder) SeedAllDevData(ctx context.Context) error {
	if !s.enabled {
		s.logger.Debug("Не в режиме разработки, пропускаем заполнение данными")
		return nil
	}

	if _, err := s.SeedSuperUser(ctx); err != nil {
		s.logger.Error("Не удалось создать суперпользователя", zap.Error(err))
		return err
	}

	if err := s.SeedGuides(ctx); err != nil {
		s.logger.Error("Не удалось создать гайды", zap.Error(err))
		return err
	}

	return nil
}
