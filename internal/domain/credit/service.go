package credit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skymarket/skymarket-api/internal/pkg/email"
)

type Service struct {
	repo   Repository
	emails email.Sender
}

func NewService(repo Repository, emails email.Sender) *Service {
	return &Service{repo: repo, emails: emails}
}

// Purchase buys a product with the user's credit balance. The confirmation
// email is sent best-effort after the transaction commits.
func (s *Service) Purchase(ctx context.Context, userID, productID uuid.UUID) (*PurchaseResult, error) {
	result, err := s.repo.Purchase(ctx, userID, productID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("product_id", productID.String()).
		Str("order_id", result.OrderID.String()).
		Int("new_balance", result.NewBalance).
		Msg("purchase completed")

	s.emails.SendOrderConfirmation(result.UserEmail, result.Username, result.ProductName, result.OrderID.String(), result.Amount)

	return result, nil
}

// Grant adds credits to a user. Called from the admin console.
func (s *Service) Grant(ctx context.Context, userID uuid.UUID, amount int, reason string) (*GrantResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	result, err := s.repo.Grant(ctx, userID, amount, reason)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Int("amount", amount).
		Int("new_balance", result.NewBalance).
		Str("reason", reason).
		Msg("credits granted")

	s.emails.SendCreditAdded(result.UserEmail, result.Username, amount, result.NewBalance, reason)

	return result, nil
}

func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]CreditTransaction, error) {
	return s.repo.ListTransactions(ctx, userID, limit)
}
