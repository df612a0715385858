package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// RequireRoles is the authorization stage: each route declares its required
// role set statically and this guard performs an exact membership test.
// There is no role hierarchy; ADMIN does not satisfy a USER-only set unless
// listed. An empty set admits any verified identity. The authentication
// stage must run first; this guard never re-verifies tokens.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[identity.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
