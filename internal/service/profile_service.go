package service

import (
	"context"
	"fmt"
	"strings"

	"ProfcomService/internal/auth"
	"ProfcomService/internal/models"
	"ProfcomService/pkg/apperrors"
	"ProfcomService/pkg/server"

	"go.uber.org/zap"
)

// ProfileService реализует регистрацию, вход и управление профилями
type ProfileService struct {
	repo       ProfileRepositoryInterface
	cacheRepo  CacheRepositoryInterface
	authorizer CallerResolver
	logger     *zap.Logger
}

// NewProfileService создает новый экземпляр ProfileService
func NewProfileService(repo ProfileRepositoryInterface, cacheRepo CacheRepositoryInterface, authorizer CallerResolver, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:       repo,
		cacheRepo:  cacheRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Register создает пользователя и его контактную информацию
func (s *ProfileService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	logger := server.WithRequestID(ctx, s.logger)

	contact, user := req.ToModels()
	user, err := s.repo.CreateUserWithContact(ctx, contact, user)
	if err != nil {
		logger.Error("Failed to register user", zap.Error(err), zap.Stringp("user_name", req.User.UserName))
		return nil, err
	}

	logger.Info("User registered", zap.Uint("user_id", user.UserID), zap.String("user_name", user.UserName))
	return user, nil
}

// Login находит пользователя по имени; учетные данные не проверяются
func (s *ProfileService) Login(ctx context.Context, userName string) (*models.User, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("user_name is required: %w", apperrors.ErrInvalidArgument)
	}

	user, err := s.repo.GetUserByName(ctx, userName)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			server.WithRequestID(ctx, s.logger).Error("Failed to find user by name", zap.Error(err), zap.String("user_name", userName))
		}
		return nil, err
	}

	return user, nil
}

// GetProfile получает пользователя по ID, сначала из кэша
func (s *ProfileService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	logger := server.WithRequestID(ctx, s.logger)

	user, err := s.cacheRepo.GetUser(ctx, id)
	server.RecordCacheLookup("user", err == nil)
	if err == nil {
		logger.Debug("User retrieved from cache", zap.Uint("user_id", id))
		return user, nil
	}

	// Версия читается до базы, чтобы не перезаписать более позднюю инвалидацию
	version, versionErr := s.cacheRepo.UserVersion(ctx, id)

	user, err = s.repo.GetUser(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Error("Failed to get user", zap.Error(err), zap.Uint("user_id", id))
		}
		return nil, err
	}

	if versionErr != nil {
		return user, nil
	}
	if err := s.cacheRepo.SetUser(ctx, user, version); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.Uint("user_id", id))
	}

	return user, nil
}

// GetContact получает контактную информацию пользователя
func (s *ProfileService) GetContact(ctx context.Context, id uint) (*models.ContactInfo, error) {
	contact, err := s.repo.GetContact(ctx, id)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			server.WithRequestID(ctx, s.logger).Error("Failed to get contact info", zap.Error(err), zap.Uint("user_id", id))
		}
		return nil, err
	}
	return contact, nil
}

// UpdateProfile обновляет контактную информацию и дублируемые поля пользователя.
// Все проверки выполняются до первой записи.
func (s *ProfileService) UpdateProfile(ctx context.Context, callerID, targetID uint, patch models.ProfilePatch) (*models.User, error) {
	logger := server.WithRequestID(ctx, s.logger).With(
		zap.Uint("caller_id", callerID),
		zap.Uint("user_id", targetID))

	caller, err := s.authorizer.ResolveCaller(ctx, callerID)
	if err != nil {
		server.RecordAccessDenied("update_profile", err)
		return nil, err
	}

	if _, err := s.repo.GetUser(ctx, targetID); err != nil {
		return nil, err
	}

	if err := auth.RequireSelfOrAdmin(caller, targetID); err != nil {
		server.RecordAccessDenied("update_profile", err)
		logger.Warn("Profile update rejected", zap.Error(err))
		return nil, err
	}

	if _, err := s.repo.UpdateContact(ctx, targetID, patch); err != nil {
		logger.Error("Failed to update contact info", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.UpdateUser(ctx, targetID, patch.SharedUserPatch())
	if err != nil {
		logger.Error("Failed to update user", zap.Error(err))
		return nil, err
	}

	if err := s.cacheRepo.DeleteUser(ctx, targetID); err != nil {
		logger.Warn("Failed to invalidate cached user", zap.Error(err))
	}

	logger.Info("Profile updated")
	return user, nil
}

// DeleteProfile удаляет пользователя вместе с контактной информацией; доступно суперпользователю
func (s *ProfileService) DeleteProfile(ctx context.Context, callerID, targetID uint) error {
	logger := server.WithRequestID(ctx, s.logger).With(
		zap.Uint("caller_id", callerID),
		zap.Uint("user_id", targetID))

	caller, err := s.authorizer.ResolveCaller(ctx, callerID)
	if err != nil {
		server.RecordAccessDenied("delete_profile", err)
		return err
	}

	if err := auth.RequireSuperUser(caller); err != nil {
		server.RecordAccessDenied("delete_profile", err)
		logger.Warn("Profile deletion rejected", zap.Error(err))
		return err
	}

	if _, err := s.repo.GetUser(ctx, targetID); err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, targetID); err != nil {
		logger.Error("Failed to delete user", zap.Error(err))
		return err
	}

	if err := s.cacheRepo.DeleteUser(ctx, targetID); err != nil {
		logger.Warn("Failed to invalidate cached user", zap.Error(err))
	}

	logger.Info("Profile deleted")
	return nil
}
