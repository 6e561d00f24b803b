package search

import "context"

// CitationIndexMapping is the OpenSearch mapping applied when the citation
// index does not yet exist (spec §B).
var CitationIndexMapping = map[string]interface{}{
	"mappings": map[string]interface{}{
		"properties": map[string]interface{}{
			"document_id":  map[string]interface{}{"type": "keyword"},
			"resource_key": map[string]interface{}{"type": "keyword"},
			"variant":      map[string]interface{}{"type": "keyword"},
			"case_name":    map[string]interface{}{"type": "text"},
			"volume":       map[string]interface{}{"type": "keyword"},
			"reporter":     map[string]interface{}{"type": "keyword"},
			"page":         map[string]interface{}{"type": "keyword"},
			"court":        map[string]interface{}{"type": "keyword"},
			"year":         map[string]interface{}{"type": "integer"},
			"pin_cite":     map[string]interface{}{"type": "keyword"},
			"matched_text": map[string]interface{}{"type": "text"},
			"span_start":   map[string]interface{}{"type": "integer"},
			"span_end":     map[string]interface{}{"type": "integer"},
			"indexed_at":   map[string]interface{}{"type": "date"},
		},
	},
}

// EnsureIndex creates the citation index with CitationIndexMapping if it is
// missing. Call once at startup.
func EnsureIndex(ctx context.Context, svc Service) error {
	s, ok := svc.(*service)
	if !ok {
		return nil
	}
	return s.client.CreateIndex(ctx, CitationIndexMapping)
}
