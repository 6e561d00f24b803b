package client

import (
	"context"

	"github.com/opensearch-project/opensearch-go/v2"
)

// SearchClient is the subset of Client behavior the search Service depends
// on, so tests can substitute a mock transport.
type SearchClient interface {
	GetClient() *opensearch.Client
	GetIndex() string
	IsHealthy() bool
	Health(ctx context.Context) (*HealthStatus, error)
	IndexExists(ctx context.Context) (bool, error)
	CreateIndex(ctx context.Context, mapping map[string]interface{}) error
	DeleteIndex(ctx context.Context) error
	RefreshIndex(ctx context.Context) error
	Close() error
}
