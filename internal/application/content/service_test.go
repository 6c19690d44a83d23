package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdant-studio/portal-api/internal/domain"
)

type mockMapPointStore struct{ mock.Mock }

func (m *mockMapPointStore) Put(ctx context.Context, p *domain.MapPoint) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockMapPointStore) Get(ctx context.Context, pointID string) (*domain.MapPoint, error) {
	args := m.Called(ctx, pointID)
	if p, _ := args.Get(0).(*domain.MapPoint); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMapPointStore) Scan(ctx context.Context) ([]domain.MapPoint, error) {
	args := m.Called(ctx)
	points, _ := args.Get(0).([]domain.MapPoint)
	return points, args.Error(1)
}
func (m *mockMapPointStore) Update(ctx context.Context, pointID string, updates map[string]interface{}) error {
	return m.Called(ctx, pointID, updates).Error(0)
}
func (m *mockMapPointStore) Delete(ctx context.Context, pointID string) error {
	return m.Called(ctx, pointID).Error(0)
}

func TestCreateMapPoint(t *testing.T) {
	repo := &mockMapPointStore{}
	var stored *domain.MapPoint
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.MapPoint")).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.MapPoint)
	}).Return(nil)

	svc := NewService(repo)
	p, err := svc.CreateMapPoint(context.Background(), domain.MapPointInput{
		Title: "Riverside Garden",
		Lat:   52.37,
		Lng:   4.89,
	})

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, p.PointID)
	assert.Equal(t, 52.37, p.Lat)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestUpdateMapPoint_Unknown(t *testing.T) {
	repo := &mockMapPointStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	_, err := svc.UpdateMapPoint(context.Background(), "missing", domain.MapPointInput{Title: "x", Lat: 1, Lng: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteMapPoint(t *testing.T) {
	repo := &mockMapPointStore{}
	repo.On("Get", mock.Anything, "p1").Return(&domain.MapPoint{PointID: "p1"}, nil)
	repo.On("Delete", mock.Anything, "p1").Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.DeleteMapPoint(context.Background(), "p1"))
	repo.AssertExpectations(t)
}
