package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) FindByID(ctx context.Context, id string) (*model.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Create(ctx context.Context, sub *model.Subscriber) (*model.Subscriber, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Reactivate(ctx context.Context, id string, source string, at time.Time) (*model.Subscriber, error) {
	args := m.Called(ctx, id, source, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) AddProductInterest(ctx context.Context, id string, interest string, at time.Time) error {
	args := m.Called(ctx, id, interest, at)
	return args.Error(0)
}

func (m *MockSubscriberRepository) SetStatusByEmail(ctx context.Context, email string, status model.SubscriberStatus, at time.Time) (*model.Subscriber, error) {
	args := m.Called(ctx, email, status, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Update(ctx context.Context, id string, upd model.SubscriberUpdate, at time.Time) (*model.Subscriber, error) {
	args := m.Called(ctx, id, upd, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) List(ctx context.Context, f repository.SubscriberFilter, pq repository.PageQuery) (*repository.PageResult[model.Subscriber], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Subscriber]), args.Error(1)
}

func (m *MockSubscriberRepository) CountByStatus(ctx context.Context) (map[model.SubscriberStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.SubscriberStatus]int64), args.Error(1)
}

func (m *MockSubscriberRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
