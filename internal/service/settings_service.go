package service

import (
	"context"

	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
)

// SettingsService определяет интерфейс бизнес-логики для настроек системы
type SettingsService interface {
	Get(ctx context.Context, actor authz.Actor) (*domain.SystemSettings, error)
	Update(ctx context.Context, actor authz.Actor, req *dto.UpdateSettingsRequest) (*domain.SystemSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService создаёт новый экземпляр сервиса
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context, actor authz.Actor) (*domain.SystemSettings, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.settingsRepo.GetOrCreate(ctx)
}

// Update сливает переданные поля в существующую строку настроек:
// незаполненные поля запроса сохраняют прежние значения
func (s *settingsService) Update(ctx context.Context, actor authz.Actor, req *dto.UpdateSettingsRequest) (*domain.SystemSettings, error) {
	if err := authorize(actor, authz.ActionUpdate, authz.Target{Kind: authz.KindSettings}); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}

	if req.Ministries != nil {
		settings.Ministries = *req.Ministries
	}
	if req.NotificationDays != nil {
		settings.NotificationDays = *req.NotificationDays
	}
	if req.EnableNotifications != nil {
		settings.EnableNotifications = *req.EnableNotifications
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
