package postgres

import (
	"context"
	"fmt"

	"ProfcomService/internal/models"

	"gorm.io/gorm"
)

// GuideRepository работает с таблицей guides
type GuideRepository struct {
	db *gorm.DB
}

// NewGuideRepository создает новый экземпляр GuideRepository
func NewGuideRepository(db *gorm.DB) *GuideRepository {
	return &GuideRepository{
		db: db,
	}
}

// ListGuides возвращает все гайды в порядке создания
func (r *GuideRepository) ListGuides(ctx context.Context) ([]models.Guide, error) {
	guides := make([]models.Guide, 0)
	if err := r.db.WithContext(ctx).Order("guide_id").Find(&guides).Error; err != nil {
		return nil, err
	}
	return guides, nil
}

// GetGuide получает гайд по ID
func (r *GuideRepository) GetGuide(ctx context.Context, id uint) (*models.Guide, error) {
	var guide models.Guide
	if err := r.db.WithContext(ctx).Where("guide_id = ?", id).First(&guide).Error; err != nil {
		return nil, translateError(err, "guide %d", id)
	}
	return &guide, nil
}

// CreateGuide создает новый гайд
func (r *GuideRepository) CreateGuide(ctx context.Context, guide *models.Guide) (*models.Guide, error) {
	guide.GuideID = 0
	if err := r.db.WithContext(ctx).Create(guide).Error; err != nil {
		return nil, fmt.Errorf("create guide: %w", err)
	}
	return guide, nil
}

// UpdateGuide применяет заданные поля патча к гайду
func (r *GuideRepository) UpdateGuide(ctx context.Context, id uint, patch models.GuidePatch) (*models.Guide, error) {
	if patch.IsEmpty() {
		return r.GetGuide(ctx, id)
	}

	var guide models.Guide
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("guide_id = ?", id).First(&guide).Error; err != nil {
			return translateError(err, "guide %d", id)
		}
		if err := tx.Model(&guide).Updates(patch.Updates()).Error; err != nil {
			return fmt.Errorf("update guide: %w", err)
		}
		return tx.Where("guide_id = ?", id).First(&guide).Error
	})
	if err != nil {
		return nil, err
	}

	return &guide, nil
}
