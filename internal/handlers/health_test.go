package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/monitoring"
	"lexcite/pkg/search"
	searchModels "lexcite/pkg/search/models"
	"lexcite/pkg/storage"
)

func newHealthApp(storageSvc storage.Service, searchSvc search.Service) *fiber.App {
	app := fiber.New()
	h := NewHealthHandler(storageSvc, searchSvc, monitoring.New())
	app.Get("/", h.Root)
	app.Get("/healthz", h.Health)
	app.Get("/healthz/detail", h.DetailedStatus)
	app.Get("/readyz", h.ReadinessCheck)
	app.Get("/livez", h.LivenessCheck)
	app.Get("/metrics.json", h.Metrics)
	app.Get("/metrics", h.PrometheusMetrics)
	return app
}

func TestHealthRoot(t *testing.T) {
	app := newHealthApp(storage.NewMockService(), nil)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHealthDetailedStatusHealthy(t *testing.T) {
	mockSearch := &search.MockService{}
	mockSearch.On("IsHealthy").Return(true)

	app := newHealthApp(storage.NewMockService(), mockSearch)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz/detail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestHealthDetailedStatusDegradedWithoutDependencies(t *testing.T) {
	app := newHealthApp(nil, nil)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/healthz/detail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestReadinessCheck(t *testing.T) {
	mockSearch := &search.MockService{}
	mockSearch.On("IsHealthy").Return(true)

	app := newHealthApp(storage.NewMockService(), mockSearch)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/readyz", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLivenessCheck(t *testing.T) {
	app := newHealthApp(nil, nil)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/livez", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMetricsJSON(t *testing.T) {
	mockSearch := &search.MockService{}
	mockSearch.On("Stats", mock.Anything).Return(&searchModels.IndexStats{TotalCitations: 3, IndexHealth: "green"}, nil)

	app := newHealthApp(storage.NewMockService(), mockSearch)
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics.json", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPrometheusMetricsServesExpositionFormat(t *testing.T) {
	app := newHealthApp(storage.NewMockService(), &search.MockService{})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
