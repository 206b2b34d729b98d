package service

import (
	"context"
	"errors"
	"strings"

	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для отделов
type DepartmentService interface {
	List(ctx context.Context, actor authz.Actor, organizationID string) ([]domain.Department, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Department, error)
	Create(ctx context.Context, actor authz.Actor, req *dto.DepartmentRequest) (*domain.Department, error)
	Update(ctx context.Context, actor authz.Actor, id string, req *dto.DepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type departmentService struct {
	deptRepo repository.DepartmentRepository
	orgRepo  repository.OrganizationRepository
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(deptRepo repository.DepartmentRepository, orgRepo repository.OrganizationRepository) DepartmentService {
	return &departmentService{
		deptRepo: deptRepo,
		orgRepo:  orgRepo,
	}
}

func (s *departmentService) List(ctx context.Context, actor authz.Actor, organizationID string) ([]domain.Department, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.deptRepo.List(ctx, organizationID)
}

func (s *departmentService) GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Department, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) Create(ctx context.Context, actor authz.Actor, req *dto.DepartmentRequest) (*domain.Department, error) {
	if err := authorize(actor, authz.ActionCreate, authz.Target{Kind: authz.KindDepartment}); err != nil {
		return nil, err
	}

	// Отдел не может существовать без родительской организации
	if _, err := s.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrInvalidReference
		}
		return nil, err
	}

	dept := &domain.Department{
		Name:           strings.TrimSpace(req.Name),
		OrganizationID: req.OrganizationID,
	}
	if err := s.deptRepo.Create(ctx, dept); err != nil {
		return nil, err
	}

	return s.deptRepo.GetByID(ctx, dept.ID)
}

// Update выполняет полную замену документа отдела
func (s *departmentService) Update(ctx context.Context, actor authz.Actor, id string, req *dto.DepartmentRequest) (*domain.Department, error) {
	if err := authorize(actor, authz.ActionUpdate, authz.Target{Kind: authz.KindDepartment}); err != nil {
		return nil, err
	}

	existing, err := s.deptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, domain.ErrInvalidReference
		}
		return nil, err
	}

	dept := &domain.Department{
		ID:             existing.ID,
		Name:           strings.TrimSpace(req.Name),
		OrganizationID: req.OrganizationID,
		CreatedAt:      existing.CreatedAt,
	}
	if err := s.deptRepo.Update(ctx, dept); err != nil {
		return nil, err
	}

	return s.deptRepo.GetByID(ctx, id)
}

func (s *departmentService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authorize(actor, authz.ActionDelete, authz.Target{Kind: authz.KindDepartment}); err != nil {
		return err
	}
	if _, err := s.deptRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.deptRepo.Delete(ctx, id)
}
