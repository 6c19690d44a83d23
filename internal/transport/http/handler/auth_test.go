package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/verdant-studio/portal-api/internal/application/auth"
	"github.com/verdant-studio/portal-api/internal/domain"
)

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthSvc) MasterLogin(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	args := m.Called(ctx, req)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthSvc) RequestLoginCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *mockAuthSvc) VerifyLoginCode(ctx context.Context, email, code string) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, code)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAuthSvc) GoogleLogin(ctx context.Context, idToken string) (*auth.LoginResult, error) {
	args := m.Called(ctx, idToken)
	if r, _ := args.Get(0).(*auth.LoginResult); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func postJSON(t *testing.T, target string, v interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestLogin_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	r := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewBufferString("not-json"))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_ValidationFailure(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	r := postJSON(t, "/v1/auth/login", auth.LoginRequest{Email: "not-an-email", Password: "x"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", auth.LoginRequest{Email: "a@x.com", Password: "wrong"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		Token: "signed-token",
		User:  &domain.User{UserID: "u1", Email: "a@x.com", Role: domain.RoleUser},
	}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", auth.LoginRequest{Email: "a@x.com", Password: "secret123"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp.Bearer)
	assert.Equal(t, "a@x.com", resp.User.Email)
	svc.AssertExpectations(t)
}

func TestLogin_ResponseNeverContainsPasswordHash(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(&auth.LoginResult{
		Token: "signed-token",
		User:  &domain.User{UserID: "u1", Email: "a@x.com", PasswordHash: "$2a$10$hash"},
	}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/login", auth.LoginRequest{Email: "a@x.com", Password: "secret123"})
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "$2a$10$hash")
	assert.NotContains(t, rr.Body.String(), "password_hash")
}

func TestRequestCode_CodeNeverInResponse(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestLoginCode", mock.Anything, "a@x.com").Return(nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/code", auth.RequestCodeRequest{Email: "a@x.com"})
	rr := httptest.NewRecorder()
	h.RequestCode(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp MessageEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "code sent", resp.Message)
	svc.AssertExpectations(t)
}

func TestRequestCode_UnknownEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("RequestLoginCode", mock.Anything, "nobody@x.com").Return(domain.ErrNotFound)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/code", auth.RequestCodeRequest{Email: "nobody@x.com"})
	rr := httptest.NewRecorder()
	h.RequestCode(rr, r)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestVerifyCode_RejectsShortCode(t *testing.T) {
	h := NewAuthHandler(&mockAuthSvc{})
	r := postJSON(t, "/v1/auth/code/verify", auth.VerifyCodeRequest{Email: "a@x.com", Code: "123"})
	rr := httptest.NewRecorder()
	h.VerifyCode(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestVerifyCode_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyLoginCode", mock.Anything, "a@x.com", "123456").Return(&auth.LoginResult{
		Token: "signed-token",
		User:  &domain.User{UserID: "u1", Email: "a@x.com"},
	}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/code/verify", auth.VerifyCodeRequest{Email: "a@x.com", Code: "123456"})
	rr := httptest.NewRecorder()
	h.VerifyCode(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "signed-token", resp.Bearer)
	svc.AssertExpectations(t)
}

func TestMasterLogin_NonMasterRejected(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("MasterLogin", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/master/login", auth.LoginRequest{Email: "a@x.com", Password: "secret123"})
	rr := httptest.NewRecorder()
	h.MasterLogin(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGoogleLogin_HappyPath(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("GoogleLogin", mock.Anything, "google-id-token").Return(&auth.LoginResult{
		Token: "signed-token",
		User:  &domain.User{UserID: "u1", Email: "a@x.com"},
	}, nil)
	h := NewAuthHandler(svc)
	r := postJSON(t, "/v1/auth/google", auth.GoogleLoginRequest{IDToken: "google-id-token"})
	rr := httptest.NewRecorder()
	h.GoogleLogin(rr, r)
	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
