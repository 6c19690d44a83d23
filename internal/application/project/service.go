package project

import (
	"context"
	"fmt"
	"time"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/id"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldStatus      = "status"
)

type Service interface {
	Create(ctx context.Context, objectID string, req domain.CreateProjectRequest) (*domain.Project, error)
	ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.Project, error)
	Get(ctx context.Context, projectID string, who domain.Identity) (*domain.Project, error)
	Update(ctx context.Context, projectID string, req domain.UpdateProjectRequest) (*domain.Project, error)
	Delete(ctx context.Context, projectID string) error
}

type projectStore interface {
	Put(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, projectID string) (*domain.Project, error)
	ListByObject(ctx context.Context, objectID string) ([]domain.Project, error)
	Update(ctx context.Context, projectID string, updates map[string]interface{}) error
	Delete(ctx context.Context, projectID string) error
}

type objectStore interface {
	Get(ctx context.Context, objectID string) (*domain.Object, error)
}

type ServiceDeps struct {
	Projects projectStore
	Objects  objectStore
}

type service struct {
	projects projectStore
	objects  objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{projects: deps.Projects, objects: deps.Objects}
}

// requireAccess resolves the parent object and applies the ownership check.
// Every customer-facing project read goes through here.
func (s *service) requireAccess(ctx context.Context, objectID string, who domain.Identity) error {
	o, err := s.objects.Get(ctx, objectID)
	if err != nil {
		return err
	}
	if !o.AccessibleBy(who) {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return nil
}

func (s *service) Create(ctx context.Context, objectID string, req domain.CreateProjectRequest) (*domain.Project, error) {
	if _, err := s.objects.Get(ctx, objectID); err != nil {
		return nil, err
	}
	status := req.Status
	if status == "" {
		status = domain.ProjectDraft
	}
	now := time.Now().UTC()
	p := &domain.Project{
		ProjectID:   id.New(),
		ObjectID:    objectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.Project, error) {
	if err := s.requireAccess(ctx, objectID, who); err != nil {
		return nil, err
	}
	return s.projects.ListByObject(ctx, objectID)
}

func (s *service) Get(ctx context.Context, projectID string, who domain.Identity) (*domain.Project, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, p.ObjectID, who); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, projectID string, req domain.UpdateProjectRequest) (*domain.Project, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.ProjectDraft, domain.ProjectInProgress, domain.ProjectCompleted:
			updates[fieldStatus] = *req.Status
		default:
			return nil, fmt.Errorf("invalid project status: %w", domain.ErrBadRequest)
		}
	}
	if len(updates) == 0 {
		return s.projects.Get(ctx, projectID)
	}
	if err := s.projects.Update(ctx, projectID, updates); err != nil {
		return nil, err
	}
	return s.projects.Get(ctx, projectID)
}

func (s *service) Delete(ctx context.Context, projectID string) error {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return err
	}
	return s.projects.Delete(ctx, projectID)
}
