package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/auth-service/internal/domain"
)

// Token verification failure kinds. Callers log the kind but must not
// surface the distinction to clients.
var (
	ErrTokenInvalid   = errors.New("token signature or structure invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token missing required claims")
)

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager. TTL defaults to 24 hours.
func NewTokenManager(secret string, ttlHours int) *TokenManager {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlHours) * time.Hour}
}

// Claims describes the JWT payload. The claims are a snapshot of the
// account at issuance time, not a live reference.
type Claims struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
	jwt.RegisteredClaims
}

// Generate builds and signs a token for the account. Every call stamps a
// fresh iat/exp; existing tokens are never extended.
func (tm *TokenManager) Generate(account *domain.Account) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		Email:     account.Email,
		Role:      account.Role,
		CreatedAt: account.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Parse validates a token and returns its claims. A token that passes the
// signature check but lacks any of subject, email, role or createdAt is
// rejected as malformed.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Email == "" || !claims.Role.Valid() || claims.CreatedAt.IsZero() {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
