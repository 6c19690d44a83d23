package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdant-studio/portal-api/internal/application/object"
	"github.com/verdant-studio/portal-api/internal/config"
	"github.com/verdant-studio/portal-api/internal/domain"
	jwtinfra "github.com/verdant-studio/portal-api/internal/infrastructure/jwt"
	"github.com/verdant-studio/portal-api/internal/transport/http/middleware"
)

type mockObjectSvc struct{ mock.Mock }

func (m *mockObjectSvc) Create(ctx context.Context, req domain.CreateObjectRequest) (*domain.Object, error) {
	args := m.Called(ctx, req)
	if o, _ := args.Get(0).(*domain.Object); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockObjectSvc) List(ctx context.Context, limit int, cursor string) ([]domain.Object, string, error) {
	args := m.Called(ctx, limit, cursor)
	objects, _ := args.Get(0).([]domain.Object)
	return objects, args.String(1), args.Error(2)
}
func (m *mockObjectSvc) ListMine(ctx context.Context, who domain.Identity) ([]domain.Object, error) {
	args := m.Called(ctx, who)
	objects, _ := args.Get(0).([]domain.Object)
	return objects, args.Error(1)
}
func (m *mockObjectSvc) Get(ctx context.Context, objectID string, who domain.Identity) (*domain.Object, error) {
	args := m.Called(ctx, objectID, who)
	if o, _ := args.Get(0).(*domain.Object); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockObjectSvc) Update(ctx context.Context, objectID string, req domain.UpdateObjectRequest) (*domain.Object, error) {
	args := m.Called(ctx, objectID, req)
	if o, _ := args.Get(0).(*domain.Object); o != nil {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockObjectSvc) Delete(ctx context.Context, objectID string) error {
	return m.Called(ctx, objectID).Error(0)
}

var _ object.Service = (*mockObjectSvc)(nil)

// newTestJWTProvider returns an HS256 provider with a throwaway secret.
func newTestJWTProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret: "handler-test-secret",
		JWTExpiry: 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

// bearerReq builds a request with a signed Bearer token for the given identity.
func bearerReq(t *testing.T, p *jwtinfra.Provider, method, target, userID, email, role string) *http.Request {
	t.Helper()
	token, err := p.Sign(userID, email, role)
	require.NoError(t, err)
	r := httptest.NewRequest(method, target, nil)
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(p *jwtinfra.Provider, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(p)(h).ServeHTTP(w, r)
}

func TestObjectGet_MissingClaims(t *testing.T) {
	h := NewObjectHandler(&mockObjectSvc{})
	r := withChiID(httptest.NewRequest(http.MethodGet, "/v1/objects/o1", nil), "o1")
	rr := httptest.NewRecorder()
	h.Get(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestObjectGet_PassesVerifiedIdentity(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockObjectSvc{}
	svc.On("Get", mock.Anything, "o1", domain.Identity{UserID: "u1", Email: "client@x.com", Role: domain.RoleUser}).
		Return(&domain.Object{ObjectID: "o1", Title: "Riverside Garden"}, nil)
	h := NewObjectHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/objects/o1", "u1", "client@x.com", domain.RoleUser)
	r = withChiID(r, "o1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.Object
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Riverside Garden", resp.Title)
	svc.AssertExpectations(t)
}

func TestObjectGet_ForbiddenMapsTo403(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockObjectSvc{}
	svc.On("Get", mock.Anything, "o1", mock.Anything).Return(nil, domain.ErrForbidden)
	h := NewObjectHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/objects/o1", "u2", "other@x.com", domain.RoleUser)
	r = withChiID(r, "o1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Get), rr, r)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestObjectListMine_UsesTokenEmailNotQuery(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockObjectSvc{}
	svc.On("ListMine", mock.Anything, mock.MatchedBy(func(who domain.Identity) bool {
		return who.Email == "client@x.com"
	})).Return([]domain.Object{{ObjectID: "o1"}}, nil)
	h := NewObjectHandler(svc)

	// The query string tries to claim another email; only the token counts.
	r := bearerReq(t, p, http.MethodGet, "/v1/objects/mine?email=other@x.com", "u1", "client@x.com", domain.RoleUser)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.ListMine), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestObjectCreate_ValidationFailure(t *testing.T) {
	h := NewObjectHandler(&mockObjectSvc{})
	r := postJSON(t, "/v1/objects", domain.CreateObjectRequest{}) // missing title
	rr := httptest.NewRecorder()
	h.Create(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestObjectDelete_NotFound(t *testing.T) {
	svc := &mockObjectSvc{}
	svc.On("Delete", mock.Anything, "missing").Return(domain.ErrNotFound)
	h := NewObjectHandler(svc)
	r := withChiID(httptest.NewRequest(http.MethodDelete, "/v1/objects/missing", nil), "missing")
	rr := httptest.NewRecorder()
	h.Delete(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
