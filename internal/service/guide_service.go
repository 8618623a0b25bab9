package service

import (
	"context"

	"ProfcomService/internal/auth"
	"ProfcomService/internal/models"
	"ProfcomService/pkg/server"

	"go.uber.org/zap"
)

// GuideService реализует чтение и редактирование гайдов
type GuideService struct {
	repo       GuideRepositoryInterface
	cacheRepo  CacheRepositoryInterface
	authorizer CallerResolver
	logger     *zap.Logger
}

// NewGuideService создает новый экземпляр GuideService
func NewGuideService(repo GuideRepositoryInterface, cacheRepo CacheRepositoryInterface, authorizer CallerResolver, logger *zap.Logger) *GuideService {
	return &GuideService{
		repo:       repo,
		cacheRepo:  cacheRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListGuides возвращает все гайды, сначала из кэша
func (s *GuideService) ListGuides(ctx context.Context) ([]models.Guide, error) {
	logger := server.WithRequestID(ctx, s.logger)

	guides, err := s.cacheRepo.GetGuides(ctx)
	server.RecordCacheLookup("guides", err == nil)
	if err == nil {
		logger.Debug("Guides retrieved from cache", zap.Int("count", len(guides)))
		return guides, nil
	}

	version, versionErr := s.cacheRepo.GuidesVersion(ctx)

	guides, err = s.repo.ListGuides(ctx)
	if err != nil {
		logger.Error("Failed to list guides", zap.Error(err))
		return nil, err
	}

	if versionErr != nil {
		return guides, nil
	}
	if err := s.cacheRepo.SetGuides(ctx, guides, version); err != nil {
		logger.Warn("Failed to cache guides", zap.Error(err))
	}

	return guides, nil
}

// CreateGuide создает гайд; доступно администратору
func (s *GuideService) CreateGuide(ctx context.Context, callerID uint, req *models.GuideRequest) (*models.Guide, error) {
	logger := server.WithRequestID(ctx, s.logger).With(zap.Uint("caller_id", callerID))

	if err := s.requireAdmin(ctx, "create_guide", callerID); err != nil {
		logger.Warn("Guide creation rejected", zap.Error(err))
		return nil, err
	}

	guide, err := s.repo.CreateGuide(ctx, req.ToModel())
	if err != nil {
		logger.Error("Failed to create guide", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, logger)

	logger.Info("Guide created", zap.Uint("guide_id", guide.GuideID))
	return guide, nil
}

// UpdateGuide изменяет гайд; доступно администратору
func (s *GuideService) UpdateGuide(ctx context.Context, callerID, guideID uint, patch models.GuidePatch) (*models.Guide, error) {
	logger := server.WithRequestID(ctx, s.logger).With(
		zap.Uint("caller_id", callerID),
		zap.Uint("guide_id", guideID))

	if err := s.requireAdmin(ctx, "update_guide", callerID); err != nil {
		logger.Warn("Guide update rejected", zap.Error(err))
		return nil, err
	}

	guide, err := s.repo.UpdateGuide(ctx, guideID, patch)
	if err != nil {
		logger.Error("Failed to update guide", zap.Error(err))
		return nil, err
	}

	s.invalidate(ctx, logger)

	logger.Info("Guide updated")
	return guide, nil
}

func (s *GuideService) requireAdmin(ctx context.Context, operation string, callerID uint) error {
	caller, err := s.authorizer.ResolveCaller(ctx, callerID)
	if err == nil {
		err = auth.RequireAdmin(caller)
	}
	server.RecordAccessDenied(operation, err)
	return err
}

func (s *GuideService) invalidate(ctx context.Context, logger *zap.Logger) {
	if err := s.cacheRepo.DeleteGuides(ctx); err != nil {
		logger.Warn("Failed to invalidate cached guides", zap.Error(err))
	}
}
