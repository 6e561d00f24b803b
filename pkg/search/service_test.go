package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/resolver"
	searchclient "lexcite/pkg/search/client"
)

func fullCasePair(resourceKey string) resolver.Pair {
	c := &model.FullCase{
		Base: model.Base{
			SpanStart: 10,
			SpanEnd:   22,
			Meta: model.Metadata{
				Volume:   "410",
				Reporter: "U.S.",
				Page:     "113",
				Court:    "scotus",
				Year:     1973,
			},
		},
		Volume:   "410",
		Reporter: "U.S.",
		Page:     "113",
	}
	return resolver.Pair{
		Citation: c,
		Resource: &model.Resource{Key: resourceKey, CaseName: "Roe v. Wade"},
	}
}

func TestNewService(t *testing.T) {
	mockClient := &searchclient.MockSearchClient{}
	svc := NewService(mockClient)
	assert.NotNil(t, svc)
}

func TestServiceIsHealthyDelegatesToClient(t *testing.T) {
	mockClient := &searchclient.MockSearchClient{}
	mockClient.On("IsHealthy").Return(true)

	svc := NewService(mockClient)
	assert.True(t, svc.IsHealthy())
	mockClient.AssertExpectations(t)
}

func TestIndexCitationsSkipsUnresolvedPairs(t *testing.T) {
	mockClient := &searchclient.MockSearchClient{}
	svc := NewService(mockClient)

	pairs := []resolver.Pair{
		{Citation: &model.FullCase{}, Resource: nil},
	}
	err := svc.IndexCitations(context.Background(), "doc-1", pairs)
	require.NoError(t, err)
	mockClient.AssertNotCalled(t, "GetClient")
}

func TestCitationDocumentMapsMetadata(t *testing.T) {
	pair := fullCasePair("case|410|us|113")
	doc := citationDocument("doc-1", pair)

	assert.Equal(t, "doc-1", doc.DocumentID)
	assert.Equal(t, "case|410|us|113", doc.ResourceKey)
	assert.Equal(t, "Roe v. Wade", doc.CaseName)
	assert.Equal(t, "410", doc.Volume)
	assert.Equal(t, "U.S.", doc.Reporter)
	assert.Equal(t, "113", doc.Page)
	assert.Equal(t, "scotus", doc.Court)
	assert.Equal(t, 1973, doc.Year)
	assert.Equal(t, 10, doc.SpanStart)
	assert.Equal(t, 22, doc.SpanEnd)
}

func TestCitationDocIDIsStableAndDistinct(t *testing.T) {
	doc := citationDocument("doc-1", fullCasePair("case|410|us|113"))
	id1 := citationDocID(doc)
	id2 := citationDocID(doc)
	assert.Equal(t, id1, id2)

	other := citationDocument("doc-2", fullCasePair("case|410|us|113"))
	assert.NotEqual(t, id1, citationDocID(other))
}
