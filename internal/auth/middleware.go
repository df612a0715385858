package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

const identityKey = "auth_identity"

// AuthMiddleware is the authentication stage of the guard chain: it extracts
// the bearer token, verifies it, and attaches the resulting identity to the
// request. It never touches the store; the token claims are the identity.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes. Every rejection is
// the same generic 401; the concrete failure kind is only logged, so a
// caller cannot distinguish expired from forged tokens.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		m.logger.Debug("bearer token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(identityKey, &domain.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	})
	return c.Next()
}

// IdentityFromContext retrieves the verified caller, if any.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*domain.Identity)
	return identity, ok
}
