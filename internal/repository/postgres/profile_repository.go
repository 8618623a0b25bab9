package postgres

import (
	"context"
	"errors"
	"fmt"

	"ProfcomService/internal/models"
	"ProfcomService/pkg/apperrors"

	"gorm.io/gorm"
)

// ProfileRepository работает с парой таблиц users и contact_info
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository создает новый экземпляр ProfileRepository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

// CreateUserWithContact создает пользователя и его контактную информацию в одной транзакции
func (r *ProfileRepository) CreateUserWithContact(ctx context.Context, contact *models.ContactInfo, user *models.User) (*models.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Идентификатор назначает хранилище
		user.UserID = 0
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		contact.UserID = user.UserID
		if err := tx.Create(contact).Error; err != nil {
			return fmt.Errorf("create contact info: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser получает пользователя по ID
func (r *ProfileRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err, "user %d", id)
	}
	return &user, nil
}

// GetUserByName получает первого пользователя с заданным именем (с наименьшим user_id)
func (r *ProfileRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	// First упорядочивает по первичному ключу
	if err := r.db.WithContext(ctx).Where("user_name = ?", name).First(&user).Error; err != nil {
		return nil, translateError(err, "user %q", name)
	}
	return &user, nil
}

// GetContact получает контактную информацию пользователя
func (r *ProfileRepository) GetContact(ctx context.Context, id uint) (*models.ContactInfo, error) {
	var contact models.ContactInfo
	if err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&contact).Error; err != nil {
		return nil, translateError(err, "contact info %d", id)
	}
	return &contact, nil
}

// DeleteUser удаляет контактную информацию и пользователя в одной транзакции.
// Отсутствие строк ошибкой не считается.
func (r *ProfileRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.ContactInfo{}).Error; err != nil {
			return fmt.Errorf("delete contact info: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// UpdateUser применяет заданные поля патча к пользователю
func (r *ProfileRepository) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error) {
	if patch.IsEmpty() {
		return r.GetUser(ctx, id)
	}

	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).First(&user).Error; err != nil {
			return translateError(err, "user %d", id)
		}
		if err := tx.Model(&user).Updates(patch.Updates()).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return tx.Where("user_id = ?", id).First(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateContact применяет заданные поля патча к контактной информации
func (r *ProfileRepository) UpdateContact(ctx context.Context, id uint, patch models.ContactPatch) (*models.ContactInfo, error) {
	if patch.IsEmpty() {
		return r.GetContact(ctx, id)
	}

	var contact models.ContactInfo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).First(&contact).Error; err != nil {
			return translateError(err, "contact info %d", id)
		}
		if err := tx.Model(&contact).Updates(patch.Updates()).Error; err != nil {
			return fmt.Errorf("update contact info: %w", err)
		}
		return tx.Where("user_id = ?", id).First(&contact).Error
	})
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

// ListContacts возвращает контактную информацию всех пользователей
func (r *ProfileRepository) ListContacts(ctx context.Context) ([]models.ContactInfo, error) {
	contacts := make([]models.ContactInfo, 0)
	if err := r.db.WithContext(ctx).Order("user_id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FilterContacts возвращает контакты, удовлетворяющие всем заданным условиям фильтра
func (r *ProfileRepository) FilterContacts(ctx context.Context, filter models.ContactFilter) ([]models.ContactInfo, error) {
	query := r.db.WithContext(ctx)
	if conditions := filter.Conditions(); len(conditions) > 0 {
		query = query.Where(conditions)
	}

	contacts := make([]models.ContactInfo, 0)
	if err := query.Order("user_id").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// translateError заменяет gorm.ErrRecordNotFound на apperrors.ErrNotFound
func translateError(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), apperrors.ErrNotFound)
	}
	return err
}
