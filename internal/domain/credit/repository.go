package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 5 * time.Second

type Repository interface {
	Purchase(ctx context.Context, userID, productID uuid.UUID) (*PurchaseResult, error)
	Grant(ctx context.Context, userID uuid.UUID, amount int, reason string) (*GrantResult, error)
	GetBalance(ctx context.Context, userID uuid.UUID) (int, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]CreditTransaction, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type lockedUser struct {
	Credits  int    `db:"credits"`
	Email    string `db:"email"`
	Username string `db:"username"`
}

type purchasedProduct struct {
	Name   string `db:"name"`
	Price  int    `db:"price"`
	Active bool   `db:"active"`
}

// Purchase deducts the product price from the user's balance, records a
// ledger entry and creates a pending order, all in one transaction. The user
// row is locked FOR UPDATE so concurrent purchases serialize on the balance.
func (r *repository) Purchase(ctx context.Context, userID, productID uuid.UUID) (*PurchaseResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin purchase tx: %w", err)
	}
	defer tx.Rollback()

	var product purchasedProduct
	err = tx.GetContext(ctx, &product, `
		SELECT name, price, active FROM products WHERE id = $1
	`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if !product.Active {
		return nil, ErrProductInactive
	}

	var user lockedUser
	err = tx.GetContext(ctx, &user, `
		SELECT credits, email, username FROM users WHERE id = $1 FOR UPDATE
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	if user.Credits < product.Price {
		return nil, &InsufficientFundsError{Current: user.Credits, Needed: product.Price}
	}

	newBalance := user.Credits - product.Price

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET credits = $1 WHERE id = $2
	`, newBalance, userID); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, user_id, amount, type, reason, balance, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`, uuid.New(), userID, product.Price, TxTypePurchase, "purchase: "+product.Name, newBalance, productID.String()); err != nil {
		return nil, fmt.Errorf("insert credit transaction: %w", err)
	}

	orderID := uuid.New()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, product_id, amount, status, payment_method, created_at)
		VALUES ($1, $2, $3, $4, 'pending', 'credits', now())
	`, orderID, userID, productID, product.Price); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}

	return &PurchaseResult{
		NewBalance:  newBalance,
		OrderID:     orderID,
		ProductName: product.Name,
		Amount:      product.Price,
		UserEmail:   user.Email,
		Username:    user.Username,
	}, nil
}

// Grant adds credits to a user's balance and records the addition in the
// ledger. Used by the admin console.
func (r *repository) Grant(ctx context.Context, userID uuid.UUID, amount int, reason string) (*GrantResult, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("begin grant tx: %w", err)
	}
	defer tx.Rollback()

	var user lockedUser
	err = tx.GetContext(ctx, &user, `
		SELECT credits, email, username FROM users WHERE id = $1 FOR UPDATE
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}

	newBalance := user.Credits + amount

	if _, err := tx.ExecContext(ctx, `
		UPDATE users SET credits = $1 WHERE id = $2
	`, newBalance, userID); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	reference := fmt.Sprintf("admin-add-%d", time.Now().UnixMilli())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, user_id, amount, type, reason, balance, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	`, uuid.New(), userID, amount, TxTypeAdd, reason, newBalance, reference); err != nil {
		return nil, fmt.Errorf("insert credit transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit grant: %w", err)
	}

	return &GrantResult{
		NewBalance: newBalance,
		UserEmail:  user.Email,
		Username:   user.Username,
	}, nil
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var credits int
	err := r.db.GetContext(ctx, &credits, `SELECT credits FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrUserNotFound
	}
	return credits, err
}

func (r *repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]CreditTransaction, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	txs := []CreditTransaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, user_id, amount, type, reason, balance, reference, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	return txs, err
}
