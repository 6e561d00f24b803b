// Package search indexes resolved citations in OpenSearch so a caller can
// answer "every citation to this resource across stored documents"
// (spec §B).
package search

import (
	"context"

	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/search/models"
)

// Service indexes citation occurrences and answers resource lookups
// against them.
type Service interface {
	// IndexCitations upserts one CitationDocument per resolved pair found
	// in documentID. Pairs whose Resource is nil are skipped.
	IndexCitations(ctx context.Context, documentID string, pairs []resolver.Pair) error

	// SearchByResource returns every indexed occurrence of q.ResourceKey.
	SearchByResource(ctx context.Context, q models.ResourceQuery) (*models.SearchResult, error)

	// DeleteDocument removes every citation occurrence indexed under
	// documentID, used when a document is re-processed or retracted.
	DeleteDocument(ctx context.Context, documentID string) error

	// Stats reports index-level counts for health/diagnostic endpoints.
	Stats(ctx context.Context) (*models.IndexStats, error)

	// IsHealthy reports whether the backing cluster is reachable.
	IsHealthy() bool
}
