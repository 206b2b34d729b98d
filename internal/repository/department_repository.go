package repository

import (
	"context"
	"errors"

	"github.com/phone-directory-api/internal/domain"
	"gorm.io/gorm"
)

// DepartmentRepository определяет интерфейс для работы с отделами
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, organizationID string) ([]domain.Department, error)
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id string) error
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC, first_name ASC")
		}).
		First(&dept, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}
	dept.EmployeeCount = len(dept.Employees)
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, organizationID string) ([]domain.Department, error) {
	query := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC, first_name ASC")
		}).
		Order("name ASC")

	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}

	var depts []domain.Department
	if err := query.Find(&depts).Error; err != nil {
		return nil, err
	}
	for i := range depts {
		depts[i].EmployeeCount = len(depts[i].Employees)
	}
	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

// Delete снимает привязку сотрудников к отделу и удаляет сам отдел в одной
// транзакции. Карточки сотрудников переживают реорганизацию отделов.
func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Employee{}).
			Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return err
		}

		result := tx.Delete(&domain.Department{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrDepartmentNotFound
		}
		return nil
	})
}
