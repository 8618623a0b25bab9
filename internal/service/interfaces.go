package service

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks ProfcomService/internal/service ProfileServiceInterface,GuideServiceInterface,ContactServiceInterface

import (
	"context"

	"ProfcomService/internal/models"
)

// ProfileServiceInterface определяет операции с профилями участников
type ProfileServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, userName string) (*models.User, error)
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	GetContact(ctx context.Context, id uint) (*models.ContactInfo, error)
	UpdateProfile(ctx context.Context, callerID, targetID uint, patch models.ProfilePatch) (*models.User, error)
	DeleteProfile(ctx context.Context, callerID, targetID uint) error
}

// GuideServiceInterface определяет операции с гайдами
type GuideServiceInterface interface {
	ListGuides(ctx context.Context) ([]models.Guide, error)
	CreateGuide(ctx context.Context, callerID uint, req *models.GuideRequest) (*models.Guide, error)
	UpdateGuide(ctx context.Context, callerID, guideID uint, patch models.GuidePatch) (*models.Guide, error)
}

// ContactServiceInterface определяет операции со справочником контактов
type ContactServiceInterface interface {
	ListContacts(ctx context.Context) ([]models.ContactInfo, error)
	FilterContacts(ctx context.Context, callerID uint, filter models.ContactFilter) ([]models.ContactInfo, error)
}

// ProfileRepositoryInterface описывает хранилище пар User и ContactInfo
type ProfileRepositoryInterface interface {
	CreateUserWithContact(ctx context.Context, contact *models.ContactInfo, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	GetContact(ctx context.Context, id uint) (*models.ContactInfo, error)
	DeleteUser(ctx context.Context, id uint) error
	UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	UpdateContact(ctx context.Context, id uint, patch models.ContactPatch) (*models.ContactInfo, error)
	ListContacts(ctx context.Context) ([]models.ContactInfo, error)
	FilterContacts(ctx context.Context, filter models.ContactFilter) ([]models.ContactInfo, error)
}

// GuideRepositoryInterface описывает хранилище гайдов
type GuideRepositoryInterface interface {
	ListGuides(ctx context.Context) ([]models.Guide, error)
	GetGuide(ctx context.Context, id uint) (*models.Guide, error)
	CreateGuide(ctx context.Context, guide *models.Guide) (*models.Guide, error)
	UpdateGuide(ctx context.Context, id uint, patch models.GuidePatch) (*models.Guide, error)
}

// CacheRepositoryInterface описывает кэш профилей и списка гайдов.
// Любая ошибка чтения считается промахом. Версию нужно получить до чтения из базы:
// заполнение с устаревшей версией пропускается.
type CacheRepositoryInterface interface {
	UserVersion(ctx context.Context, id uint) (int64, error)
	SetUser(ctx context.Context, user *models.User, version int64) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	GuidesVersion(ctx context.Context) (int64, error)
	SetGuides(ctx context.Context, guides []models.Guide, version int64) error
	GetGuides(ctx context.Context) ([]models.Guide, error)
	DeleteGuides(ctx context.Context) error
}

// CallerResolver определяет вызывающего пользователя
type CallerResolver interface {
	ResolveCaller(ctx context.Context, callerID uint) (*models.User, error)
}
