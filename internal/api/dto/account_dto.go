package dto

import "time"

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccountRequest payload for admin account updates. Both fields are
// optional but at least one must be present.
type UpdateAccountRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// AccountSummary is the outward account shape. It never carries the
// password hash.
type AccountSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
