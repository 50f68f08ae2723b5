package admin

import (
	"time"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRow is the admin console's view of a user account.
type UserRow struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Credits   int       `db:"credits" json:"credits"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CheckResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

type AddCreditsRequest struct {
	UserID uuid.UUID `json:"userId"`
	Amount int       `json:"amount"`
	Reason string    `json:"reason"`
}

type AddCreditsResponse struct {
	UserID     uuid.UUID `json:"userId"`
	NewBalance int       `json:"newBalance"`
}
