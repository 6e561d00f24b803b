package citation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/citation"
	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/registry"
)

func newTestEngine(t *testing.T) *citation.Engine {
	t.Helper()
	tables, err := registry.DefaultTables()
	require.NoError(t, err)
	engine, err := citation.NewEngine(tables)
	require.NoError(t, err)
	return engine
}

func TestGetCitationsFindsFullCase(t *testing.T) {
	engine := newTestEngine(t)

	cites := engine.GetCitations("Roe v. Wade, 410 U.S. 113 (1973)", citation.Options{})
	require.Len(t, cites, 1)

	c := cites[0]
	assert.Equal(t, model.VariantFullCase, c.Variant())
	meta := c.Metadata()
	assert.Equal(t, "410", meta.Volume)
	assert.Equal(t, "U.S.", meta.Reporter)
	assert.Equal(t, "113", meta.Page)
	assert.Equal(t, 1973, meta.Year)
}

func TestGetCitationsFindsShortCase(t *testing.T) {
	engine := newTestEngine(t)

	text := "Roe v. Wade, 410 U.S. 113, 120 (1973). Later, 410 U.S. at 124."
	cites := engine.GetCitations(text, citation.Options{})
	require.Len(t, cites, 2)
	assert.Equal(t, model.VariantFullCase, cites[0].Variant())
	assert.Equal(t, model.VariantShortCase, cites[1].Variant())
	short, ok := cites[1].(*model.ShortCase)
	require.True(t, ok)
	assert.Equal(t, "124", short.Page)
}

func TestGetCitationsNoMatchReturnsEmpty(t *testing.T) {
	engine := newTestEngine(t)

	cites := engine.GetCitations("there is no citation in this sentence", citation.Options{})
	assert.Empty(t, cites)
}

func TestResolveCitationsGroupsByResource(t *testing.T) {
	engine := newTestEngine(t)

	text := "Roe v. Wade, 410 U.S. 113, 120 (1973). Later, 410 U.S. at 124. Compare Brown v. Board, 347 U.S. 483 (1954)."
	cites := engine.GetCitations(text, citation.Options{})
	require.Len(t, cites, 3)

	_, byResource := citation.ResolveCitations(cites, nil)
	assert.Len(t, byResource, 2)

	total := 0
	for _, group := range byResource {
		total += len(group)
	}
	assert.Equal(t, 3, total)
}

func TestAnnotatePlainWrapsMatches(t *testing.T) {
	engine := newTestEngine(t)

	text := "See 410 U.S. 113."
	cites := engine.GetCitations(text, citation.Options{})
	require.Len(t, cites, 1)

	out, err := citation.Annotate(text, cites, func(c model.Citation, matchedText string) string {
		return "[[" + matchedText + "]]"
	})
	require.NoError(t, err)
	assert.Contains(t, out, "[[410 U.S. 113]]")
}

func TestAnnotateMarkupDetectsHTML(t *testing.T) {
	engine := newTestEngine(t)

	text := "<p>See 410 U.S. 113.</p>"
	cites := engine.GetCitations(text, citation.Options{})
	require.Len(t, cites, 1)

	out, err := citation.Annotate(text, cites, func(c model.Citation, matchedText string) string {
		return "<b>" + matchedText + "</b>"
	})
	require.NoError(t, err)
	assert.Contains(t, out, "<b>410 U.S. 113</b>")
}

func TestExtractReferenceCitationsFindsBareCaseName(t *testing.T) {
	engine := newTestEngine(t)

	text := "Roe v. Wade, 410 U.S. 113 (1973). Wade at 115 holds otherwise."
	cites := engine.GetCitations(text, citation.Options{})
	require.Len(t, cites, 1)

	refs := citation.ExtractReferenceCitations(cites[0], cites[0].(*model.FullCase).Document())
	require.NotEmpty(t, refs)
	assert.Equal(t, model.VariantReference, refs[0].Variant())
}

func TestFilterCitationsMergesReferences(t *testing.T) {
	cites := citation.FilterCitations(model.List{}, true)
	assert.Empty(t, cites)
}

func TestCleanTextStripsHTML(t *testing.T) {
	out := citation.CleanText("<p>410 U.S. 113</p>", []model.CleanStep{model.CleanHTML}, nil)
	assert.NotContains(t, out, "<p>")
	assert.Contains(t, out, "410 U.S. 113")
}
