package repo

import (
	"context"
	"errors"

	"github.com/rqxKnicklicht/visynet-productivity-tool/internal/models"
)

// ErrProductNotFound is returned when no row matches the requested id.
var ErrProductNotFound = errors.New("product not found")

// ErrProductExists is returned when an insert collides with an existing id.
var ErrProductExists = errors.New("product already exists")

// FieldUpdate is one column assignment of a partial update. Column is a
// database column name that has already been checked against the patch
// whitelist; Value is the bound parameter (nil writes NULL).
type FieldUpdate struct {
	Column string
	Value  any
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, id, title string, originalNumber *string) (models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	Patch(ctx context.Context, id string, updates []FieldUpdate) (models.Product, error)
	Upsert(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id string) error
}
