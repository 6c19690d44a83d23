package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/verdant-studio/portal-api/internal/domain"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}
func (m *mockUserStore) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *mockUserStore) ScanPage(ctx context.Context, limit int32, cursor string) ([]domain.User, string, error) {
	args := m.Called(ctx, limit, cursor)
	users, _ := args.Get(0).([]domain.User)
	return users, args.String(1), args.Error(2)
}

func TestCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	var created *domain.User
	repo.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.User)
	}).Return(nil)

	svc := NewService(repo)
	u, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "a@x.com",
		Password: "secret123",
		Name:     "Anna",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Equal(t, domain.StatusActive, u.Status)
	assert.NotEmpty(t, u.UserID)
	assert.NotEqual(t, "secret123", created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
}

func TestCreate_DuplicateEmail_Conflict(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1", Email: "a@x.com"}, nil)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), domain.CreateUserRequest{
		Email:    "a@x.com",
		Password: "secret123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestExists(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)
	repo.On("GetByEmail", mock.Anything, "b@x.com").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)

	ok, err := svc.Exists(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_RejectsUnknownRole(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(repo)

	bad := "SUPERVISOR"
	_, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Role: &bad})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_StatusChange(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m[fieldStatus] == domain.StatusDisabled
	})).Return(nil)
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Status: domain.StatusDisabled}, nil)

	svc := NewService(repo)
	disabled := domain.StatusDisabled
	u, err := svc.Update(context.Background(), "u1", domain.UpdateUserRequest{Status: &disabled})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDisabled, u.Status)
}

func TestDelete_UnknownUser(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrNotFound)

	svc := NewService(repo)
	err := svc.Delete(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestResetPassword_TooShort(t *testing.T) {
	repo := &mockUserStore{}
	svc := NewService(repo)

	err := svc.ResetPassword(context.Background(), "u1", "short")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestResetPassword_HashesNewPassword(t *testing.T) {
	repo := &mockUserStore{}
	repo.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1"}, nil)
	repo.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		hash, ok := m[fieldPasswordHash].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword1")) == nil
	})).Return(nil)

	svc := NewService(repo)
	require.NoError(t, svc.ResetPassword(context.Background(), "u1", "newpassword1"))
	repo.AssertExpectations(t)
}
