package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter *dto.EmployeeFilter) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id string) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Department").
		First(&emp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// List применяет точные фильтры и сортировку в SQL. Поиск по подстроке
// выполняется на стороне Go: сворачивание регистра в LIKE/LOWER у части
// движков работает только для ASCII, а справочник в основном кириллический.
func (r *employeeRepository) List(ctx context.Context, filter *dto.EmployeeFilter) ([]domain.Employee, error) {
	query := r.db.WithContext(ctx).
		Preload("Organization").
		Preload("Department").
		Order("last_name ASC, first_name ASC")

	if filter.OrganizationID != "" {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.DepartmentID != "" {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}

	var employees []domain.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(filter.Search))
	if term == "" {
		return employees, nil
	}

	matched := make([]domain.Employee, 0, len(employees))
	for _, emp := range employees {
		if employeeMatches(&emp, term) {
			matched = append(matched, emp)
		}
	}
	return matched, nil
}

// employeeMatches проверяет вхождение терма в любое из полей поиска
func employeeMatches(emp *domain.Employee, term string) bool {
	for _, field := range []string{emp.FirstName, emp.LastName, emp.MiddleName, emp.Position, emp.Email} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}
