package service

import (
	"context"

	"ProfcomService/internal/auth"
	"ProfcomService/internal/models"
	"ProfcomService/pkg/server"

	"go.uber.org/zap"
)

// ContactService реализует справочник контактов участников
type ContactService struct {
	repo       ProfileRepositoryInterface
	authorizer CallerResolver
	logger     *zap.Logger
}

// NewContactService создает новый экземпляр ContactService
func NewContactService(repo ProfileRepositoryInterface, authorizer CallerResolver, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:       repo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// ListContacts возвращает контакты всех участников
func (s *ContactService) ListContacts(ctx context.Context) ([]models.ContactInfo, error) {
	contacts, err := s.repo.ListContacts(ctx)
	if err != nil {
		server.WithRequestID(ctx, s.logger).Error("Failed to list contacts", zap.Error(err))
		return nil, err
	}
	return contacts, nil
}

// FilterContacts возвращает контакты по фильтру; доступно администратору
func (s *ContactService) FilterContacts(ctx context.Context, callerID uint, filter models.ContactFilter) ([]models.ContactInfo, error) {
	logger := server.WithRequestID(ctx, s.logger).With(zap.Uint("caller_id", callerID))

	caller, err := s.authorizer.ResolveCaller(ctx, callerID)
	if err != nil {
		server.RecordAccessDenied("filter_contacts", err)
		return nil, err
	}

	if err := auth.RequireAdmin(caller); err != nil {
		server.RecordAccessDenied("filter_contacts", err)
		logger.Warn("Contact filter rejected", zap.Error(err))
		return nil, err
	}

	contacts, err := s.repo.FilterContacts(ctx, filter)
	if err != nil {
		logger.Error("Failed to filter contacts", zap.Error(err))
		return nil, err
	}

	return contacts, nil
}
