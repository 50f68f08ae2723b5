package news

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
	Create(ctx context.Context, n *News) error
	GetByID(ctx context.Context, id uuid.UUID) (*News, error)
	List(ctx context.Context, limit int) ([]News, error)
	Update(ctx context.Context, n *News) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *News) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO news (id, title, excerpt, content, tag, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.Title, n.Excerpt, n.Content, n.Tag, n.ImageURL, n.CreatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*News, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var n News
	err := r.db.GetContext(ctx, &n, `
		SELECT id, title, excerpt, content, tag, image_url, created_at
		FROM news WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns posts newest-first. limit <= 0 returns everything.
func (r *repository) List(ctx context.Context, limit int) ([]News, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	items := []News{}
	if limit > 0 {
		err := r.db.SelectContext(ctx, &items, `
			SELECT id, title, excerpt, content, tag, image_url, created_at
			FROM news ORDER BY created_at DESC LIMIT $1
		`, limit)
		return items, err
	}

	err := r.db.SelectContext(ctx, &items, `
		SELECT id, title, excerpt, content, tag, image_url, created_at
		FROM news ORDER BY created_at DESC
	`)
	return items, err
}

func (r *repository) Update(ctx context.Context, n *News) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE news
		SET title = $1, excerpt = $2, content = $3, tag = $4, image_url = $5
		WHERE id = $6
	`, n.Title, n.Excerpt, n.Content, n.Tag, n.ImageURL, n.ID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
