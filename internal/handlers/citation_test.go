package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/internal/models"
	"lexcite/pkg/citation"
	"lexcite/pkg/citation/registry"
	"lexcite/pkg/pipeline"
)

func newCitationTestHandler(t *testing.T) *CitationHandler {
	t.Helper()
	tables, err := registry.DefaultTables()
	require.NoError(t, err)
	engine, err := citation.NewEngine(tables)
	require.NoError(t, err)
	pool := pipeline.New(engine, citation.Options{}, 4)
	return NewCitationHandler(engine, pool, nil, nil, nil, nil)
}

func newCitationApp(h *CitationHandler) *fiber.App {
	app := fiber.New()
	app.Post("/extract", h.Extract)
	app.Post("/extract/batch", h.ExtractBatch)
	app.Post("/annotate", h.Annotate)
	app.Post("/resolve", h.Resolve)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return nil, decoded
}

func TestExtractReturnsCitations(t *testing.T) {
	app := newCitationApp(newCitationTestHandler(t))

	_, body := doJSON(t, app, fiber.MethodPost, "/extract", models.ExtractRequest{
		Text: "Roe v. Wade, 410 U.S. 113 (1973)",
	})

	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Greater(t, data["count"], float64(0))
}

func TestExtractRejectsEmptyText(t *testing.T) {
	app := newCitationApp(newCitationTestHandler(t))

	_, body := doJSON(t, app, fiber.MethodPost, "/extract", models.ExtractRequest{Text: ""})
	assert.Equal(t, false, body["success"])
}

func TestExtractBatchRunsAllDocuments(t *testing.T) {
	app := newCitationApp(newCitationTestHandler(t))

	_, body := doJSON(t, app, fiber.MethodPost, "/extract/batch", models.BatchExtractRequest{
		Documents: []models.BatchDocument{
			{ID: "a", Text: "410 U.S. 113"},
			{ID: "b", Text: "347 U.S. 483"},
		},
	})

	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["total_count"])
}

func TestAnnotateWrapsCitations(t *testing.T) {
	app := newCitationApp(newCitationTestHandler(t))

	_, body := doJSON(t, app, fiber.MethodPost, "/annotate", models.AnnotateRequest{
		Text: "See 410 U.S. 113.",
	})

	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data["annotated_text"], "citation")
}

func TestResolveGroupsByResource(t *testing.T) {
	app := newCitationApp(newCitationTestHandler(t))

	_, body := doJSON(t, app, fiber.MethodPost, "/resolve", models.ResolveRequest{
		Text: "Roe v. Wade, 410 U.S. 113, 120 (1973). Later, 410 U.S. at 124.",
	})

	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Greater(t, data["count"], float64(0))
}
