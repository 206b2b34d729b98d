// Package db содержит наполнение базы стартовыми данными.
package db

import (
	"context"
	"errors"

	"github.com/phone-directory-api/internal/auth"
	"github.com/phone-directory-api/internal/config"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/repository"
	"gorm.io/gorm"
)

// Seed гарантирует наличие администратора и, по флагу, демо-данных.
// Повторные запуски ничего не дублируют.
func Seed(ctx context.Context, gdb *gorm.DB, cfg config.SeedConfig) error {
	userRepo := repository.NewUserRepository(gdb)

	if err := ensureAdmin(ctx, userRepo, cfg); err != nil {
		return err
	}

	if cfg.DemoData {
		return seedDemoData(ctx, gdb)
	}
	return nil
}

// ensureAdmin создаёт администратора из конфигурации, если учётных записей
// ещё нет. Пустой пароль означает, что провижининг выполняется вне процесса.
func ensureAdmin(ctx context.Context, userRepo repository.UserRepository, cfg config.SeedConfig) error {
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || cfg.AdminPassword == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	err = userRepo.Create(ctx, admin)
	if err != nil && errors.Is(err, domain.ErrDuplicateUsername) {
		return nil
	}
	return err
}

// seedDemoData заполняет пустую базу небольшим набором записей для
// локальной разработки
func seedDemoData(ctx context.Context, gdb *gorm.DB) error {
	var orgCount int64
	if err := gdb.WithContext(ctx).Model(&domain.Organization{}).Count(&orgCount).Error; err != nil {
		return err
	}
	if orgCount > 0 {
		return nil
	}

	return gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org := domain.Organization{
			Name:        "Департамент цифрового развития",
			Type:        "Государственное учреждение",
			Description: "Ответственно за цифровую трансформацию",
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		itDept := domain.Department{Name: "Отдел информационных технологий", OrganizationID: org.ID}
		if err := tx.Create(&itDept).Error; err != nil {
			return err
		}
		hrDept := domain.Department{Name: "Отдел кадров", OrganizationID: org.ID}
		if err := tx.Create(&hrDept).Error; err != nil {
			return err
		}

		employees := []domain.Employee{
			{
				FirstName:      "Иван",
				LastName:       "Петров",
				MiddleName:     "Сергеевич",
				Position:       "Начальник отдела",
				Email:          "petrov@example.com",
				WorkPhone:      "+7 (495) 123-45-67",
				InternalPhone:  "1001",
				OrganizationID: org.ID,
				DepartmentID:   &itDept.ID,
			},
			{
				FirstName:      "Анна",
				LastName:       "Сидорова",
				MiddleName:     "Владимировна",
				Position:       "Специалист по кадрам",
				Email:          "sidorova@example.com",
				WorkPhone:      "+7 (495) 123-45-68",
				InternalPhone:  "1002",
				OrganizationID: org.ID,
				DepartmentID:   &hrDept.ID,
			},
		}
		for i := range employees {
			if err := tx.Create(&employees[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
