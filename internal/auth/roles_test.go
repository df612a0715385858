package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/auth-service/internal/domain"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

func withIdentity(identity *domain.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity != nil {
			c.Locals(identityKey, identity)
		}
		return c.Next()
	}
}

func newRoleApp(identity *domain.Identity, required ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).SendString(domainErr.Code)
		},
	})
	app.Get("/", withIdentity(identity), RequireRoles(required...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoles(t *testing.T) {
	user := &domain.Identity{ID: "u1", Email: "a@x.com", Role: domain.RoleUser}
	admin := &domain.Identity{ID: "a1", Email: "root@x.com", Role: domain.RoleAdmin}

	cases := []struct {
		name     string
		identity *domain.Identity
		required []domain.Role
		want     int
	}{
		{"user rejected on admin-only", user, []domain.Role{domain.RoleAdmin}, fiber.StatusForbidden},
		{"admin allowed on admin-only", admin, []domain.Role{domain.RoleAdmin}, fiber.StatusOK},
		{"no identity is unauthenticated", nil, []domain.Role{domain.RoleAdmin}, fiber.StatusUnauthorized},
		{"empty set admits any verified identity", user, nil, fiber.StatusOK},
		{"empty set still requires identity", nil, nil, fiber.StatusUnauthorized},
		// exact membership, no hierarchy
		{"admin rejected on user-only", admin, []domain.Role{domain.RoleUser}, fiber.StatusForbidden},
		{"admin allowed when listed alongside user", admin, []domain.Role{domain.RoleUser, domain.RoleAdmin}, fiber.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRoleApp(tc.identity, tc.required...)
			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
