package repository

import (
	"context"
	"errors"

	"github.com/phone-directory-api/internal/domain"
	"gorm.io/gorm"
)

// OrganizationRepository определяет интерфейс для работы с организациями
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	Delete(ctx context.Context, id string) error
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository создаёт новый экземпляр репозитория
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC, first_name ASC")
		}).
		Preload("Employees.Department").
		First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrganizationNotFound
		}
		return nil, err
	}
	fillOrganizationCounts(&org)
	return &org, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).
		Preload("Departments", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC, first_name ASC")
		}).
		Preload("Employees.Department").
		Order("created_at DESC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	for i := range orgs {
		fillOrganizationCounts(&orgs[i])
	}
	return orgs, nil
}

// fillOrganizationCounts проставляет счётчики по загруженным связям
func fillOrganizationCounts(org *domain.Organization) {
	org.DepartmentCount = len(org.Departments)
	org.EmployeeCount = len(org.Employees)
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// Delete отклоняет удаление, пока на организацию ссылаются отделы или
// сотрудники. Проверка и удаление выполняются в одной транзакции.
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deptCount int64
		if err := tx.Model(&domain.Department{}).Where("organization_id = ?", id).Count(&deptCount).Error; err != nil {
			return err
		}
		var empCount int64
		if err := tx.Model(&domain.Employee{}).Where("organization_id = ?", id).Count(&empCount).Error; err != nil {
			return err
		}
		if deptCount > 0 || empCount > 0 {
			return domain.ErrOrganizationNotEmpty
		}

		result := tx.Delete(&domain.Organization{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrganizationNotFound
		}
		return nil
	})
}
