package credit

import (
	"time"

	"github.com/google/uuid"
)

// TxType defines supported credit transaction types.
type TxType string

const (
	TxTypeAdd      TxType = "add"
	TxTypePurchase TxType = "purchase"
)

// CreditTransaction is an append-only ledger row. Balance is a denormalized
// snapshot of the user's balance immediately after this transaction, so the
// history can be audited without recomputation.
type CreditTransaction struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Amount    int       `db:"amount" json:"amount"`
	Type      string    `db:"type" json:"type"`
	Reason    string    `db:"reason" json:"reason"`
	Balance   int       `db:"balance" json:"balance"`
	Reference string    `db:"reference" json:"reference"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PurchaseResult reports a completed purchase back to the handler, including
// the recipient fields the confirmation email needs.
type PurchaseResult struct {
	NewBalance  int
	OrderID     uuid.UUID
	ProductName string
	Amount      int
	UserEmail   string
	Username    string
}

// GrantResult reports a completed admin credit grant.
type GrantResult struct {
	NewBalance int
	UserEmail  string
	Username   string
}
