package repository

import (
	"context"
	"time"

	"prelaunch/internal/model"
)

// ImageRepository defines data access for image metadata.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	FindByID(ctx context.Context, id string) (*model.Image, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Image], error)
	UpdateAlt(ctx context.Context, id string, alt string, at time.Time) (*model.Image, error)
	Delete(ctx context.Context, id string) error
}
