package repository

import (
	"context"
	"time"

	"prelaunch/internal/model"
)

// BlogPostFilter narrows blog listings. Nil/empty fields match everything.
type BlogPostFilter struct {
	Published *bool
	Tag       string
}

// BlogPostRepository defines data access for blog posts.
type BlogPostRepository interface {
	// Create inserts a new post. Returns ErrDuplicate if the slug is taken.
	Create(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error)
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	List(ctx context.Context, f BlogPostFilter, pq PageQuery) (*PageResult[model.BlogPost], error)
	Update(ctx context.Context, id string, upd model.BlogPostUpdate, at time.Time) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
}
