package object

import (
	"context"
	"fmt"
	"time"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/id"
)

const (
	fieldTitle        = "title"
	fieldAddress      = "address"
	fieldDescription  = "description"
	fieldMemberEmails = "member_emails"
	fieldCoverFileID  = "cover_file_id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateObjectRequest) (*domain.Object, error)
	List(ctx context.Context, limit int, cursor string) ([]domain.Object, string, error)
	ListMine(ctx context.Context, who domain.Identity) ([]domain.Object, error)
	Get(ctx context.Context, objectID string, who domain.Identity) (*domain.Object, error)
	Update(ctx context.Context, objectID string, req domain.UpdateObjectRequest) (*domain.Object, error)
	Delete(ctx context.Context, objectID string) error
}

type objectStore interface {
	Put(ctx context.Context, o *domain.Object) error
	Get(ctx context.Context, objectID string) (*domain.Object, error)
	Update(ctx context.Context, objectID string, updates map[string]interface{}) error
	Delete(ctx context.Context, objectID string) error
	ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.Object, string, error)
	ListByMember(ctx context.Context, email string) ([]domain.Object, error)
}

type service struct {
	repo objectStore
}

func NewService(repo objectStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req domain.CreateObjectRequest) (*domain.Object, error) {
	now := time.Now().UTC()
	o := &domain.Object{
		ObjectID:     id.New(),
		Title:        req.Title,
		Address:      req.Address,
		Description:  req.Description,
		MemberEmails: req.MemberEmails,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if o.MemberEmails == nil {
		o.MemberEmails = []string{}
	}
	if err := s.repo.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Object, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.ScanPage(ctx, int32(limit), cursor)
}

func (s *service) ListMine(ctx context.Context, who domain.Identity) ([]domain.Object, error) {
	return s.repo.ListByMember(ctx, who.Email)
}

// Get returns the object after the ownership check: staff always pass,
// customers only when their email is in the member list.
func (s *service) Get(ctx context.Context, objectID string, who domain.Identity) (*domain.Object, error) {
	o, err := s.repo.Get(ctx, objectID)
	if err != nil {
		return nil, err
	}
	if !o.AccessibleBy(who) {
		return nil, fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, objectID string, req domain.UpdateObjectRequest) (*domain.Object, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.MemberEmails != nil {
		updates[fieldMemberEmails] = *req.MemberEmails
	}
	if req.CoverFileID != nil {
		updates[fieldCoverFileID] = *req.CoverFileID
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, objectID)
	}
	if err := s.repo.Update(ctx, objectID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, objectID)
}

func (s *service) Delete(ctx context.Context, objectID string) error {
	if _, err := s.repo.Get(ctx, objectID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, objectID)
}
