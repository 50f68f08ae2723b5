package admin

import (
	"time"

	"github.com/google/uuid"
)

// Admin accounts are provisioned out of band; there is no self-service admin
// registration.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Audit reasons recorded with every admin login attempt.
const (
	ReasonSuccess            = "success"
	ReasonMissingCredentials = "missing_credentials"
	ReasonNotFound           = "not_found"
	ReasonInvalidPassword    = "invalid_password"
	ReasonUserSessionActive  = "user-session-active"
	ReasonRateLimited        = "rate_limited"
)

// BlockedEmailPlaceholder is recorded instead of the attempted email when a
// login is rejected because a user session is active. The attempted email is
// never read in that path.
const BlockedEmailPlaceholder = "blocked-while-user-logged"

// EmptyEmailPlaceholder is recorded when the attempt carried no email at all.
const EmptyEmailPlaceholder = "empty-email"

// LoginLog is one append-only admin login audit row.
type LoginLog struct {
	ID             uuid.UUID `db:"id" json:"id"`
	EmailAttempted string    `db:"email_attempted" json:"email_attempted"`
	Success        bool      `db:"success" json:"success"`
	IP             string    `db:"ip" json:"ip"`
	UserAgent      string    `db:"user_agent" json:"user_agent"`
	Reason         string    `db:"reason" json:"reason"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
