package message

import (
	"context"
	"fmt"
	"time"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/id"
)

type Service interface {
	Post(ctx context.Context, objectID string, req domain.PostMessageRequest, who domain.Identity) (*domain.Message, error)
	ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.Message, error)
}

type messageStore interface {
	Put(ctx context.Context, m *domain.Message) error
	ListByObject(ctx context.Context, objectID string) ([]domain.Message, error)
}

type objectStore interface {
	Get(ctx context.Context, objectID string) (*domain.Object, error)
}

type ServiceDeps struct {
	Messages messageStore
	Objects  objectStore
}

type service struct {
	messages messageStore
	objects  objectStore
}

func NewService(deps ServiceDeps) Service {
	return &service{messages: deps.Messages, objects: deps.Objects}
}

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

// Post appends to the object's thread. Author fields come from the verified
// token identity, never from the request body.
func (s *service) Post(ctx context.Context, objectID string, req domain.PostMessageRequest, who domain.Identity) (*domain.Message, error) {
	if err := s.requireAccess(ctx, objectID, who); err != nil {
		return nil, err
	}
	m := &domain.Message{
		MessageID:   id.New(),
		ObjectID:    objectID,
		AuthorID:    who.UserID,
		AuthorEmail: who.Email,
		AuthorRole:  who.Role,
		Body:        req.Body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messages.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) ListByObject(ctx context.Context, objectID string, who domain.Identity) ([]domain.Message, error) {
	if err := s.requireAccess(ctx, objectID, who); err != nil {
		return nil, err
	}
	return s.messages.ListByObject(ctx, objectID)
}
