package jwtinfra

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdant-studio/portal-api/internal/config"
	"github.com/verdant-studio/portal-api/internal/domain"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSecret: "test-secret-at-least-long-enough",
		JWTExpiry: 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_EmptySecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTSecret: "  "})
	require.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t)

	signed, err := p.Sign("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	claims := p.Verify(signed)
	require.NotNil(t, claims)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t)
	assert.Nil(t, p.Verify("garbage"))
	assert.Nil(t, p.Verify(""))
}

func TestVerify_WrongSignature(t *testing.T) {
	p := newTestProvider(t)

	other, err := NewProvider(&config.Config{JWTSecret: "a-completely-different-secret", JWTExpiry: time.Hour})
	require.NoError(t, err)
	signed, err := other.Sign("u1", "a@x.com", domain.RoleUser)
	require.NoError(t, err)

	assert.Nil(t, p.Verify(signed))
}

func TestVerify_Expired(t *testing.T) {
	p := newTestProvider(t)

	claims := Claims{
		UserID: "u1",
		Email:  "a@x.com",
		Role:   domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-at-least-long-enough"))
	require.NoError(t, err)

	assert.Nil(t, p.Verify(signed))
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	p := newTestProvider(t)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Nil(t, p.Verify(signed))
}
