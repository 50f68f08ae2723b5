package order

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	queryTimeout = 3 * time.Second

	// pendingCap bounds a single bridge poll.
	pendingCap = 100
)

type Repository interface {
	ListPending(ctx context.Context, userID *uuid.UUID) ([]BridgeOrder, error)
	GetBridgeOrder(ctx context.Context, id uuid.UUID) (*BridgeOrder, error)
	SetStatusFromPending(ctx context.Context, id uuid.UUID, status Status) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Order, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bridgeSelect = `
	SELECT o.id, u.username,
	       COALESCE(p.name, 'Unknown') AS product_name,
	       COALESCE(p.category, 'Unknown') AS product_category,
	       COALESCE(p.description, '') AS product_description,
	       o.amount, o.status, o.created_at
	FROM orders o
	JOIN users u ON u.id = o.user_id
	LEFT JOIN products p ON p.id = o.product_id
`

// ListPending returns pending orders oldest-first, optionally restricted to
// one user, capped per poll.
func (r *repository) ListPending(ctx context.Context, userID *uuid.UUID) ([]BridgeOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	orders := []BridgeOrder{}
	if userID != nil {
		err := r.db.SelectContext(ctx, &orders, bridgeSelect+`
			WHERE o.status = 'pending' AND o.user_id = $1
			ORDER BY o.created_at ASC
			LIMIT $2
		`, *userID, pendingCap)
		return orders, err
	}

	err := r.db.SelectContext(ctx, &orders, bridgeSelect+`
		WHERE o.status = 'pending'
		ORDER BY o.created_at ASC
		LIMIT $1
	`, pendingCap)
	return orders, err
}

func (r *repository) GetBridgeOrder(ctx context.Context, id uuid.UUID) (*BridgeOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var o BridgeOrder
	err := r.db.GetContext(ctx, &o, bridgeSelect+` WHERE o.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SetStatusFromPending moves a pending order into a terminal state. Returns
// false when the order was already terminal; the guard in the WHERE clause
// keeps completed and failed orders immutable.
func (r *repository) SetStatusFromPending(ctx context.Context, id uuid.UUID, status Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2 AND status = 'pending'
	`, status, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	orders := []Order{}
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, product_id, amount, status, payment_method, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	return orders, err
}
