package admin

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a Admin
	err := r.db.GetContext(ctx, &a, `
		SELECT id, email, name, password_hash, created_at FROM admins WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a Admin
	err := r.db.GetContext(ctx, &a, `
		SELECT id, email, name, password_hash, created_at FROM admins WHERE email = $1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// LoginLogRepository is append-only; rows are never updated or deleted.
type LoginLogRepository interface {
	Append(ctx context.Context, entry *LoginLog) error
	List(ctx context.Context, page, limit int) ([]LoginLog, int, error)
}

type loginLogRepository struct {
	db *sqlx.DB
}

func NewLoginLogRepository(db *sqlx.DB) LoginLogRepository {
	return &loginLogRepository{db: db}
}

func (r *loginLogRepository) Append(ctx context.Context, entry *LoginLog) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_login_logs (id, email_attempted, success, ip, user_agent, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, entry.ID, entry.EmailAttempted, entry.Success, entry.IP, entry.UserAgent, entry.Reason, entry.CreatedAt)
	return err
}

func (r *loginLogRepository) List(ctx context.Context, page, limit int) ([]LoginLog, int, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM admin_login_logs`); err != nil {
		return nil, 0, err
	}

	logs := []LoginLog{}
	err := r.db.SelectContext(ctx, &logs, `
		SELECT id, email_attempted, success, ip, user_agent, reason, created_at
		FROM admin_login_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	return logs, total, err
}
