package repository

import (
	"context"

	"github.com/phone-directory-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository определяет интерфейс для работы с настройками системы
type SettingsRepository interface {
	GetOrCreate(ctx context.Context) (*domain.SystemSettings, error)
	Update(ctx context.Context, settings *domain.SystemSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository создаёт новый экземпляр репозитория
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// GetOrCreate возвращает единственную строку настроек, лениво создавая её
// со значениями по умолчанию. Вставка идёт через ON CONFLICT DO NOTHING,
// поэтому параллельные первые чтения не породят вторую строку.
func (r *settingsRepository) GetOrCreate(ctx context.Context) (*domain.SystemSettings, error) {
	defaults := domain.SystemSettings{
		ID:                  domain.SettingsID,
		Ministries:          []string{},
		NotificationDays:    []int{},
		EnableNotifications: true,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error; err != nil {
		return nil, err
	}

	var settings domain.SystemSettings
	if err := r.db.WithContext(ctx).First(&settings, "id = ?", domain.SettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *domain.SystemSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
