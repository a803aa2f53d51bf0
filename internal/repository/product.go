package repository

import (
	"context"
	"time"

	"prelaunch/internal/model"
)

// ProductFilter narrows product listings. Nil/empty fields match everything.
type ProductFilter struct {
	Category string
	Featured *bool
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	// Create inserts a new product. Returns ErrDuplicate if the slug is taken.
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, f ProductFilter, pq PageQuery) (*PageResult[model.Product], error)
	// Update applies the non-nil fields of upd and returns the updated record.
	Update(ctx context.Context, id string, upd model.ProductUpdate, at time.Time) (*model.Product, error)
	// Delete removes a product by ID. Returns ErrNotFound if nothing was removed.
	Delete(ctx context.Context, id string) error
}
