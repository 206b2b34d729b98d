package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	List(ctx context.Context, actor authz.Actor, filter *dto.EmployeeFilter) ([]domain.Employee, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Employee, error)
	Create(ctx context.Context, actor authz.Actor, req *dto.EmployeeRequest) (*domain.Employee, error)
	Update(ctx context.Context, actor authz.Actor, id string, req *dto.EmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type employeeService struct {
	empRepo  repository.EmployeeRepository
	orgRepo  repository.OrganizationRepository
	deptRepo repository.DepartmentRepository
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	orgRepo repository.OrganizationRepository,
	deptRepo repository.DepartmentRepository,
) EmployeeService {
	return &employeeService{
		empRepo:  empRepo,
		orgRepo:  orgRepo,
		deptRepo: deptRepo,
	}
}

func (s *employeeService) List(ctx context.Context, actor authz.Actor, filter *dto.EmployeeFilter) ([]domain.Employee, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.empRepo.List(ctx, filter)
}

func (s *employeeService) GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Employee, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Create(ctx context.Context, actor authz.Actor, req *dto.EmployeeRequest) (*domain.Employee, error) {
	departmentID := normalizeDepartmentID(req.DepartmentID)

	target := authz.Target{Kind: authz.KindEmployee}
	if departmentID != nil {
		target.DepartmentID = *departmentID
	}
	if err := authorize(actor, authz.ActionCreate, target); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.OrganizationID, departmentID); err != nil {
		return nil, err
	}

	emp := buildEmployee(req, departmentID)
	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, emp.ID)
}

// Update выполняет полную замену карточки сотрудника, проставляет отметку
// актуализации и снимает флаг needs_update. Руководителю отдела доступ
// нужен и к текущему, и к целевому отделу сотрудника.
func (s *employeeService) Update(ctx context.Context, actor authz.Actor, id string, req *dto.EmployeeRequest) (*domain.Employee, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}

	existing, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.AuthorizeEmployee(actor, authz.ActionUpdate, existing) {
		return nil, domain.ErrForbidden
	}

	departmentID := normalizeDepartmentID(req.DepartmentID)
	newTarget := authz.Target{Kind: authz.KindEmployee, EmployeeID: existing.ID}
	if departmentID != nil {
		newTarget.DepartmentID = *departmentID
	}
	if err := authorize(actor, authz.ActionUpdate, newTarget); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, req.OrganizationID, departmentID); err != nil {
		return nil, err
	}

	emp := buildEmployee(req, departmentID)
	emp.ID = existing.ID
	emp.CreatedAt = existing.CreatedAt
	emp.LastUpdated = time.Now()
	emp.NeedsUpdate = false
	if err := s.empRepo.Update(ctx, emp); err != nil {
		return nil, err
	}

	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}

	existing, err := s.empRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.AuthorizeEmployee(actor, authz.ActionDelete, existing) {
		return domain.ErrForbidden
	}

	return s.empRepo.Delete(ctx, id)
}

// checkReferences убеждается, что организация существует, а отдел, если
// задан, принадлежит именно ей
func (s *employeeService) checkReferences(ctx context.Context, organizationID string, departmentID *string) error {
	if _, err := s.orgRepo.GetByID(ctx, organizationID); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return domain.ErrInvalidReference
		}
		return err
	}

	if departmentID != nil {
		dept, err := s.deptRepo.GetByID(ctx, *departmentID)
		if err != nil {
			if errors.Is(err, domain.ErrDepartmentNotFound) {
				return domain.ErrInvalidReference
			}
			return err
		}
		if dept.OrganizationID != organizationID {
			return domain.ErrDepartmentOrganizationMismatch
		}
	}
	return nil
}

// normalizeDepartmentID приводит пустую строку к отсутствию отдела
func normalizeDepartmentID(departmentID *string) *string {
	if departmentID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*departmentID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func buildEmployee(req *dto.EmployeeRequest, departmentID *string) *domain.Employee {
	return &domain.Employee{
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		MiddleName:     strings.TrimSpace(req.MiddleName),
		Position:       strings.TrimSpace(req.Position),
		Email:          strings.TrimSpace(req.Email),
		WorkPhone:      strings.TrimSpace(req.WorkPhone),
		MobilePhone:    strings.TrimSpace(req.MobilePhone),
		InternalPhone:  strings.TrimSpace(req.InternalPhone),
		Street:         strings.TrimSpace(req.Street),
		Building:       strings.TrimSpace(req.Building),
		Office:         strings.TrimSpace(req.Office),
		OrganizationID: req.OrganizationID,
		DepartmentID:   departmentID,
	}
}
