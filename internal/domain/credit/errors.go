package credit

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits is the sentinel matched by errors.Is; the typed
	// InsufficientFundsError carries the exact shortfall.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrInvalidAmount is returned when a grant amount is not a positive integer
	ErrInvalidAmount = errors.New("invalid amount: must be greater than 0")

	// ErrUserNotFound is returned when the purchasing user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrProductNotFound is returned when the product doesn't exist
	ErrProductNotFound = errors.New("product not found")

	// ErrProductInactive is returned when the product exists but is disabled
	ErrProductInactive = errors.New("product not active")
)

// InsufficientFundsError reports the current balance, required amount and
// shortfall of a rejected purchase.
type InsufficientFundsError struct {
	Current int
	Needed  int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Current, e.Needed)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// Shortfall is the number of credits missing.
func (e *InsufficientFundsError) Shortfall() int {
	return e.Needed - e.Current
}
