package bridge

import (
	"github.com/google/uuid"

	"github.com/skymarket/skymarket-api/internal/domain/order"
)

// PendingResponse is the poll result the game server consumes.
type PendingResponse struct {
	Count  int                 `json:"count"`
	Orders []order.BridgeOrder `json:"orders"`
}

// ExecuteRequest reports delivery of one order. Executed is a pointer so the
// game server can fetch an order summary without changing its status.
type ExecuteRequest struct {
	OrderID  uuid.UUID `json:"orderId"`
	Executed *bool     `json:"executed"`
}

// ExecuteResponse echoes the order after any status change.
type ExecuteResponse struct {
	Order OrderSummary `json:"order"`
}

type OrderSummary struct {
	ID          uuid.UUID    `json:"id"`
	Username    string       `json:"username"`
	ProductName string       `json:"productName"`
	Amount      int          `json:"amount"`
	Status      order.Status `json:"status"`
}

// VerifyRequest resolves a player name to their account.
type VerifyRequest struct {
	Username string `json:"username"`
}

// VerifyResponse reports the player's account and balance.
type VerifyResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Credits  int       `json:"credits"`
	Email    string    `json:"email"`
}
