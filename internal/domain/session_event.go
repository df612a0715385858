package domain

import "time"

// SessionAction enumerates auditable session transitions.
type SessionAction string

const (
	SessionActionSignin  SessionAction = "SIGNIN"
	SessionActionSignout SessionAction = "SIGNOUT"
)

// SessionEvent is an append-only audit record of a signin or signout.
// Events are never mutated; they are removed only when the owning account
// is deleted.
type SessionEvent struct {
	ID        string
	AccountID string
	Action    SessionAction
	CreatedAt time.Time
}
