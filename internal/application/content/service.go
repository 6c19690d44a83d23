package content

import (
	"context"
	"time"

	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/id"
)

const (
	fieldTitle    = "title"
	fieldLat      = "lat"
	fieldLng      = "lng"
	fieldObjectID = "object_id"
)

// Service manages the public marketing content: map points shown on the
// landing page. Reads are anonymous, writes are staff-only (enforced at the
// router).
type Service interface {
	ListMapPoints(ctx context.Context) ([]domain.MapPoint, error)
	CreateMapPoint(ctx context.Context, req domain.MapPointInput) (*domain.MapPoint, error)
	UpdateMapPoint(ctx context.Context, pointID string, req domain.MapPointInput) (*domain.MapPoint, error)
	DeleteMapPoint(ctx context.Context, pointID string) error
}

type mapPointStore interface {
	Put(ctx context.Context, p *domain.MapPoint) error
	Get(ctx context.Context, pointID string) (*domain.MapPoint, error)
	Scan(ctx context.Context) ([]domain.MapPoint, error)
	Update(ctx context.Context, pointID string, updates map[string]interface{}) error
	Delete(ctx context.Context, pointID string) error
}

type service struct {
	points mapPointStore
}

func NewService(points mapPointStore) Service {
	return &service{points: points}
}

func (s *service) ListMapPoints(ctx context.Context) ([]domain.MapPoint, error) {
	return s.points.Scan(ctx)
}

func (s *service) CreateMapPoint(ctx context.Context, req domain.MapPointInput) (*domain.MapPoint, error) {
	now := time.Now().UTC()
	p := &domain.MapPoint{
		PointID:   id.New(),
		Title:     req.Title,
		Lat:       req.Lat,
		Lng:       req.Lng,
		ObjectID:  req.ObjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.points.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateMapPoint(ctx context.Context, pointID string, req domain.MapPointInput) (*domain.MapPoint, error) {
	if _, err := s.points.Get(ctx, pointID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		fieldTitle: req.Title,
		fieldLat:   req.Lat,
		fieldLng:   req.Lng,
	}
	if req.ObjectID != nil {
		updates[fieldObjectID] = *req.ObjectID
	}
	if err := s.points.Update(ctx, pointID, updates); err != nil {
		return nil, err
	}
	return s.points.Get(ctx, pointID)
}

func (s *service) DeleteMapPoint(ctx context.Context, pointID string) error {
	if _, err := s.points.Get(ctx, pointID); err != nil {
		return err
	}
	return s.points.Delete(ctx, pointID)
}
