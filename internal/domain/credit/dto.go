package credit

import "github.com/google/uuid"

// PurchaseRequest buys one product with the authenticated user's credits.
type PurchaseRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// PurchaseResponse is returned after a successful purchase.
type PurchaseResponse struct {
	NewBalance int       `json:"new_balance"`
	OrderID    uuid.UUID `json:"order_id"`
	Product    string    `json:"product"`
	Amount     int       `json:"amount"`
}

// BalanceResponse reports the authenticated user's current balance.
type BalanceResponse struct {
	Credits  int    `json:"credits"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// InsufficientFundsPayload is the error body of a rejected purchase.
type InsufficientFundsPayload struct {
	CurrentCredits int `json:"currentCredits"`
	NeededCredits  int `json:"neededCredits"`
	Shortfall      int `json:"shortfall"`
}
