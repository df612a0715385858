package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/internal/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:        "9f2b8c1e-0000-0000-0000-000000000001",
		Email:     "a@x.com",
		Role:      domain.RoleUser,
		CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	account := testAccount()

	token, expiresAt, err := tm.Generate(account)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.Subject)
	assert.Equal(t, account.Email, claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.True(t, claims.CreatedAt.Equal(account.CreatedAt))
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 24)
	other := NewTokenManager("other-secret", 24)

	token, _, err := tm.Generate(testAccount())
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, _, err := tm.Generate(testAccount())
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsMissingClaims(t *testing.T) {
	// Signature checks out, but the claim bundle is incomplete.
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "some-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 24)
	_, err = tm.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseRejectsUnknownRole(t *testing.T) {
	claims := &Claims{
		Email:     "a@x.com",
		Role:      domain.Role("SUPERUSER"),
		CreatedAt: time.Now(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "some-id",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 24)
	_, err = tm.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestParseRejectsWrongSigningMethod(t *testing.T) {
	account := testAccount()
	claims := &Claims{
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 24)
	_, err = tm.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseRejectsMissingExpiry(t *testing.T) {
	account := testAccount()
	claims := &Claims{
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: account.ID,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 24)
	_, err = tm.Parse(signed)
	assert.Error(t, err)
}

func TestNewTokenManagerDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 24*time.Hour, tm.ttl)
}
