package repository

import (
	"context"
	"time"

	"prelaunch/internal/model"
)

// SubscriberFilter narrows subscriber listings. Empty fields match everything.
type SubscriberFilter struct {
	Status model.SubscriberStatus
	Source string
}

// SubscriberRepository defines data access for subscribers.
type SubscriberRepository interface {
	// FindByEmail returns the subscriber whose email matches exactly (no case folding).
	FindByEmail(ctx context.Context, email string) (*model.Subscriber, error)

	FindByID(ctx context.Context, id string) (*model.Subscriber, error)

	// Create inserts a new subscriber. Returns ErrDuplicate if the email already exists.
	Create(ctx context.Context, sub *model.Subscriber) (*model.Subscriber, error)

	// Reactivate flips an unsubscribed record back to active, refreshing subscribedAt and source.
	Reactivate(ctx context.Context, id string, source string, at time.Time) (*model.Subscriber, error)

	// AddProductInterest appends interest to productInterests with set semantics.
	AddProductInterest(ctx context.Context, id string, interest string, at time.Time) error

	// SetStatusByEmail changes the status of the subscriber with the given email.
	SetStatusByEmail(ctx context.Context, email string, status model.SubscriberStatus, at time.Time) (*model.Subscriber, error)

	Update(ctx context.Context, id string, upd model.SubscriberUpdate, at time.Time) (*model.Subscriber, error)

	List(ctx context.Context, f SubscriberFilter, pq PageQuery) (*PageResult[model.Subscriber], error)

	// CountByStatus returns the number of subscribers per status.
	CountByStatus(ctx context.Context) (map[model.SubscriberStatus]int64, error)

	Delete(ctx context.Context, id string) error
}
