package search

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/search/client"
	"lexcite/pkg/search/models"
)

type service struct {
	client client.SearchClient
}

// NewService builds a Service backed by searchClient.
func NewService(searchClient client.SearchClient) Service {
	return &service{client: searchClient}
}

func (s *service) IndexCitations(ctx context.Context, documentID string, pairs []resolver.Pair) error {
	var bulkBody strings.Builder
	count := 0

	for _, pair := range pairs {
		if pair.Resource == nil {
			continue
		}
		doc := citationDocument(documentID, pair)
		id := citationDocID(doc)

		action, _ := json.Marshal(map[string]interface{}{
			"index": map[string]interface{}{
				"_index": s.client.GetIndex(),
				"_id":    id,
			},
		})
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal citation document: %w", err)
		}
		bulkBody.Write(action)
		bulkBody.WriteByte('\n')
		bulkBody.Write(docJSON)
		bulkBody.WriteByte('\n')
		count++
	}

	if count == 0 {
		return nil
	}

	req := opensearchapi.BulkRequest{Body: strings.NewReader(bulkBody.String())}
	res, err := req.Do(ctx, s.client.GetClient())
	if err != nil {
		return fmt.Errorf("bulk index request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk indexing failed with status: %s", res.Status())
	}

	var bulkResponse struct {
		Errors bool `json:"errors"`
	}
	if err := parseResponse(res, &bulkResponse); err != nil {
		return fmt.Errorf("failed to parse bulk response: %w", err)
	}
	if bulkResponse.Errors {
		return fmt.Errorf("bulk indexing reported partial failures")
	}
	return nil
}

func (s *service) SearchByResource(ctx context.Context, q models.ResourceQuery) (*models.SearchResult, error) {
	size := q.Size
	if size <= 0 {
		size = models.DefaultSearchSize
	}
	if size > models.MaxSearchSize {
		size = models.MaxSearchSize
	}

	must := []map[string]interface{}{
		{"term": map[string]interface{}{"resource_key": q.ResourceKey}},
	}
	if q.Court != "" {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"court": q.Court}})
	}
	if q.Year != 0 {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{"year": q.Year}})
	}

	query := map[string]interface{}{
		"size": size,
		"from": q.From,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"must": must},
		},
	}

	searchReq := opensearchapi.SearchRequest{
		Index: []string{s.client.GetIndex()},
		Body:  buildRequestBody(query),
	}
	res, err := searchReq.Do(ctx, s.client.GetClient())
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search failed with status: %s", res.Status())
	}

	var parsed struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.CitationDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := parseResponse(res, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	result := &models.SearchResult{
		TotalHits: parsed.Hits.Total.Value,
		Took:      parsed.Took,
		Documents: make([]*models.CitationDocument, 0, len(parsed.Hits.Hits)),
	}
	for _, hit := range parsed.Hits.Hits {
		src := hit.Source
		result.Documents = append(result.Documents, &src)
	}
	return result, nil
}

func (s *service) DeleteDocument(ctx context.Context, documentID string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"document_id": documentID},
		},
	}
	req := opensearchapi.DeleteByQueryRequest{
		Index: []string{s.client.GetIndex()},
		Body:  buildRequestBody(query),
	}
	res, err := req.Do(ctx, s.client.GetClient())
	if err != nil {
		return fmt.Errorf("delete by query request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete by query failed with status: %s", res.Status())
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*models.IndexStats, error) {
	health, err := s.client.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cluster health: %w", err)
	}

	countReq := opensearchapi.CountRequest{Index: []string{s.client.GetIndex()}}
	res, err := countReq.Do(ctx, s.client.GetClient())
	if err != nil {
		return nil, fmt.Errorf("count request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("count failed with status: %s", res.Status())
	}

	var counted struct {
		Count int64 `json:"count"`
	}
	if err := parseResponse(res, &counted); err != nil {
		return nil, fmt.Errorf("failed to parse count response: %w", err)
	}

	return &models.IndexStats{
		TotalCitations: counted.Count,
		IndexHealth:    health.Status,
	}, nil
}

func (s *service) IsHealthy() bool { return s.client.IsHealthy() }

// citationDocument builds the indexable document for one resolved pair.
func citationDocument(documentID string, pair resolver.Pair) models.CitationDocument {
	c, res := pair.Citation, pair.Resource
	meta := c.Metadata()
	spanStart, spanEnd := c.Span()

	return models.CitationDocument{
		DocumentID:  documentID,
		ResourceKey: res.Key,
		Variant:     c.Variant().String(),
		CaseName:    res.CaseName,
		Volume:      meta.Volume,
		Reporter:    meta.Reporter,
		Page:        meta.Page,
		Court:       meta.Court,
		Year:        meta.Year,
		PinCite:     meta.PinCite,
		MatchedText: c.MatchedText(),
		SpanStart:   spanStart,
		SpanEnd:     spanEnd,
	}
}

// citationDocID derives a stable per-occurrence id so re-indexing the same
// document upserts instead of duplicating.
func citationDocID(doc models.CitationDocument) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s|%s|%d|%d", doc.DocumentID, doc.ResourceKey, doc.SpanStart, doc.SpanEnd)))
	return fmt.Sprintf("%x", sum)
}
