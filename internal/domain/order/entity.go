package order

import (
	"time"

	"github.com/google/uuid"
)

// Status of an order. Orders are created pending by a purchase and move to a
// terminal state only through the game-server bridge.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type Order struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	ProductID     uuid.UUID `db:"product_id" json:"product_id"`
	Amount        int       `db:"amount" json:"amount"`
	Status        Status    `db:"status" json:"status"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// BridgeOrder is an order enriched with the username and product fields the
// game server needs to deliver it without extra round trips.
type BridgeOrder struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	Username           string    `db:"username" json:"username"`
	ProductName        string    `db:"product_name" json:"productName"`
	ProductCategory    string    `db:"product_category" json:"productCategory"`
	ProductDescription string    `db:"product_description" json:"productDescription"`
	Amount             int       `db:"amount" json:"amount"`
	Status             Status    `db:"status" json:"status"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}
