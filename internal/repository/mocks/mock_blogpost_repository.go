package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) Create(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) List(ctx context.Context, f repository.BlogPostFilter, pq repository.PageQuery) (*repository.PageResult[model.BlogPost], error) {
	args := m.Called(ctx, f, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.BlogPost]), args.Error(1)
}

func (m *MockBlogPostRepository) Update(ctx context.Context, id string, upd model.BlogPostUpdate, at time.Time) (*model.BlogPost, error) {
	args := m.Called(ctx, id, upd, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
