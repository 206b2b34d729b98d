package service

import (
	"context"
	"strings"

	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
	"github.com/phone-directory-api/internal/dto"
	"github.com/phone-directory-api/internal/repository"
)

// OrganizationService определяет интерфейс бизнес-логики для организаций
type OrganizationService interface {
	List(ctx context.Context, actor authz.Actor) ([]domain.Organization, error)
	GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Organization, error)
	Create(ctx context.Context, actor authz.Actor, req *dto.OrganizationRequest) (*domain.Organization, error)
	Update(ctx context.Context, actor authz.Actor, id string, req *dto.OrganizationRequest) (*domain.Organization, error)
	Delete(ctx context.Context, actor authz.Actor, id string) error
}

type organizationService struct {
	orgRepo repository.OrganizationRepository
}

// NewOrganizationService создаёт новый экземпляр сервиса
func NewOrganizationService(orgRepo repository.OrganizationRepository) OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) List(ctx context.Context, actor authz.Actor) ([]domain.Organization, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.orgRepo.List(ctx)
}

func (s *organizationService) GetByID(ctx context.Context, actor authz.Actor, id string) (*domain.Organization, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) Create(ctx context.Context, actor authz.Actor, req *dto.OrganizationRequest) (*domain.Organization, error) {
	if err := authorize(actor, authz.ActionCreate, authz.Target{Kind: authz.KindOrganization}); err != nil {
		return nil, err
	}

	org := &domain.Organization{
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}

	return s.orgRepo.GetByID(ctx, org.ID)
}

// Update выполняет полную замену документа организации
func (s *organizationService) Update(ctx context.Context, actor authz.Actor, id string, req *dto.OrganizationRequest) (*domain.Organization, error) {
	if err := authorize(actor, authz.ActionUpdate, authz.Target{Kind: authz.KindOrganization}); err != nil {
		return nil, err
	}

	existing, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	org := &domain.Organization{
		ID:          existing.ID,
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) Delete(ctx context.Context, actor authz.Actor, id string) error {
	if err := authorize(actor, authz.ActionDelete, authz.Target{Kind: authz.KindOrganization}); err != nil {
		return err
	}
	return s.orgRepo.Delete(ctx, id)
}
