package events

import (
	"time"

	"github.com/spec-kit/auth-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountSignedIn   EventType = "account_signed_in"
	EventAccountSignedOut  EventType = "account_signed_out"
	EventAccountUpdated    EventType = "account_updated"
	EventAccountDeleted    EventType = "account_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// AccountSignedInPayload payload.
type AccountSignedInPayload struct {
	Email string `json:"email"`
}

// AccountSignedOutPayload payload.
type AccountSignedOutPayload struct{}

// AccountUpdatedPayload payload.
type AccountUpdatedPayload struct {
	EmailChanged    bool `json:"email_changed"`
	PasswordChanged bool `json:"password_changed"`
}

// AccountDeletedPayload payload.
type AccountDeletedPayload struct {
	Email string `json:"email"`
}
