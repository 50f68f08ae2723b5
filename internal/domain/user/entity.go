package user

import (
	"time"

	"github.com/google/uuid"
)

// User is a storefront account. Credits is the current balance; the credit
// ledger keeps the history, and the two are updated in lockstep.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Credits      int       `db:"credits" json:"credits"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
