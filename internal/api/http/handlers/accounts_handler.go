package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/service"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// AccountsHandler exposes the auth endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Signup handles POST /auth/signup.
func (h *AccountsHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	if _, err := h.accounts.Signup(c.Context(), req.Email, req.Password); err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "account created",
	})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, expiresAt, err := h.accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":    "login successful",
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Logout handles POST /auth/logout.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.accounts.Logout(c.Context(), identity.ID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "logout successful",
	})
}

// Update handles PATCH /auth/update/:id.
func (h *AccountsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.accounts.UpdateAccount(c.Context(), c.Params("id"), req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "account updated",
	})
}

// List handles GET /auth/users.
func (h *AccountsHandler) List(c *fiber.Ctx) error {
	accounts, err := h.accounts.ListAccounts(c.Context())
	if err != nil {
		return err
	}

	summaries := make([]dto.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summaries = append(summaries, dto.AccountSummary{
			ID:        account.ID,
			Email:     account.Email,
			Role:      string(account.Role),
			CreatedAt: account.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"message": "accounts retrieved",
		"users":   summaries,
	})
}

// Delete handles DELETE /auth/users/:id.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.DeleteAccount(c.Context(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "account deleted",
	})
}
