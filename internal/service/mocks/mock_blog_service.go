package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"prelaunch/internal/model"
	"prelaunch/internal/service"
)

type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) Create(ctx context.Context, in service.BlogPostInput) (*model.BlogPost, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogService) List(ctx context.Context, q service.BlogListQuery) (*service.ListResult[model.BlogPost], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.BlogPost]), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, id string, p service.BlogPostPatch) (*model.BlogPost, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogService) ListPublished(ctx context.Context, tag string, limit, skip int) (*service.ListResult[model.BlogPost], error) {
	args := m.Called(ctx, tag, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListResult[model.BlogPost]), args.Error(1)
}

func (m *MockBlogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlogPost), args.Error(1)
}
