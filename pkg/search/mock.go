package search

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/search/models"
)

// MockService is a testify mock implementation of Service, shared by
// handler tests that need a search dependency without a live cluster.
type MockService struct {
	mock.Mock
}

func (m *MockService) IndexCitations(ctx context.Context, documentID string, pairs []resolver.Pair) error {
	args := m.Called(ctx, documentID, pairs)
	return args.Error(0)
}

func (m *MockService) SearchByResource(ctx context.Context, q models.ResourceQuery) (*models.SearchResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResult), args.Error(1)
}

func (m *MockService) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockService) Stats(ctx context.Context) (*models.IndexStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IndexStats), args.Error(1)
}

func (m *MockService) IsHealthy() bool {
	args := m.Called()
	return args.Bool(0)
}
