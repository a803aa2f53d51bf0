package repository

import (
	"context"
	"time"

	"prelaunch/internal/model"
)

// UserRepository defines data access for site accounts.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, pq PageQuery) (*PageResult[model.User], error)
	Update(ctx context.Context, id string, upd model.UserUpdate, at time.Time) (*model.User, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
