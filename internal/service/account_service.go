package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/auth-service/internal/auth"
	"github.com/spec-kit/auth-service/internal/config"
	"github.com/spec-kit/auth-service/internal/domain"
	"github.com/spec-kit/auth-service/internal/events"
	"github.com/spec-kit/auth-service/internal/repository"
	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

const uniqueViolationCode = "23505"

// AccountService coordinates signup, login, logout and admin account
// management. Role checks happen at the route boundary, not here.
type AccountService struct {
	accounts   repository.AccountRepository
	sessions   repository.SessionEventRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AccountDependencies encapsulates repo requirements for the account service.
type AccountDependencies struct {
	AccountRepo      repository.AccountRepository
	SessionEventRepo repository.SessionEventRepository
	Dispatcher       events.Dispatcher
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		sessions:   deps.SessionEventRepo,
		dispatcher: deps.Dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Signup creates a new account. Role is forced to USER regardless of caller
// input; callers cannot self-elevate. No token is issued, login is a
// separate step.
func (s *AccountService) Signup(ctx context.Context, email, password string) (*domain.Account, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// Two signups can race past the existence check; the unique index
		// is the authoritative guard and maps to the same conflict.
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Email: account.Email,
		Role:  account.Role,
	})
	return account, nil
}

// Login authenticates an account and returns a signed token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, errInvalidCredentials()
		}
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return "", time.Time{}, errInvalidCredentials()
	}

	if err := s.appendSessionEvent(ctx, account.ID, domain.SessionActionSignin); err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, expiresAt, err := s.tokenMgr.Generate(account)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountSignedIn, account.ID, events.AccountSignedInPayload{Email: account.Email})
	return token, expiresAt, nil
}

// Logout appends a SIGNOUT event. It succeeds for any well-formed account
// id, with no open-session precondition; repeated calls append repeated
// events.
func (s *AccountService) Logout(ctx context.Context, accountID string) error {
	if err := s.appendSessionEvent(ctx, accountID, domain.SessionActionSignout); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.publish(ctx, events.EventAccountSignedOut, accountID, events.AccountSignedOutPayload{})
	return nil
}

// UpdateAccount applies an email and/or password change. Passwords are
// always re-hashed on write. ADMIN-only at the route boundary.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, email, password *string) (*domain.Account, error) {
	if email == nil && password == nil {
		return nil, apperrors.NewValidationError("nothing to update", nil)
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	emailChanged := false
	if email != nil && *email != account.Email {
		existing, err := s.accounts.GetByEmail(ctx, *email)
		if err == nil && existing.ID != account.ID {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(err)
		}
		account.Email = *email
		emailChanged = true
	}

	passwordChanged := false
	if password != nil {
		hash, err := auth.HashPassword(*password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		account.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountUpdated, account.ID, events.AccountUpdatedPayload{
		EmailChanged:    emailChanged,
		PasswordChanged: passwordChanged,
	})
	return account, nil
}

// DeleteAccount removes an account and its entire session journal. The
// journal is cleared first so no orphaned events survive a partial failure.
// ADMIN-only at the route boundary.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", nil)
		}
		return apperrors.NewInternalError(err)
	}

	if err := s.sessions.DeleteByAccount(ctx, accountID); err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.accounts.Delete(ctx, accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", nil)
		}
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountDeleted, accountID, events.AccountDeletedPayload{Email: account.Email})
	return nil
}

// ListAccounts returns all accounts ordered by creation time. The handler
// layer strips password hashes before serialization. ADMIN-only at the
// route boundary.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return accounts, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) appendSessionEvent(ctx context.Context, accountID string, action domain.SessionAction) error {
	return s.sessions.Create(ctx, &domain.SessionEvent{
		AccountID: accountID,
		Action:    action,
	})
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, accountID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

// errInvalidCredentials is the single anti-enumeration error for login:
// unknown email and bad password must be byte-identical to the caller.
func errInvalidCredentials() error {
	return apperrors.NewUnauthorized("invalid email or password")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
