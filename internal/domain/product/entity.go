package product

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTag is applied when a product has no tag of its own.
const DefaultTag = "POPÜLER"

// DefaultCategory is the fallback category for products without one.
const DefaultCategory = "Credit"

type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int       `db:"price" json:"price"`
	Tag         string    `db:"tag" json:"tag"`
	Category    string    `db:"category" json:"category"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
