package handlers

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"lexcite/internal/models"
	"lexcite/pkg/monitoring"
	"lexcite/pkg/search"
	"lexcite/pkg/storage"
)

// HealthHandler serves /healthz, /readyz, /livez, the Prometheus scrape
// endpoint, and the JSON metrics fallback.
type HealthHandler struct {
	storage   storage.Service
	searchSvc search.Service
	metrics   *monitoring.Metrics
}

// NewHealthHandler builds a HealthHandler.
func NewHealthHandler(storageSvc storage.Service, searchSvc search.Service, m *monitoring.Metrics) *HealthHandler {
	return &HealthHandler{storage: storageSvc, searchSvc: searchSvc, metrics: m}
}

// PrometheusMetrics serves GET /metrics in the Prometheus exposition
// format, for callers that scrape rather than poll /metrics.json.
func (h *HealthHandler) PrometheusMetrics(c *fiber.Ctx) error {
	if h.metrics == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "metrics not configured")
	}
	return adaptor.HTTPHandler(h.metrics.Handler())(c)
}

// Root returns basic service identity for the root endpoint.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	resp := &models.HealthResponse{Status: "healthy", Timestamp: time.Now(), Version: "1.0.0", Service: "lexcite"}
	return c.JSON(models.NewSuccessResponse(resp, "lexcite is running"))
}

// Health returns basic health status.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := &models.HealthResponse{Status: "healthy", Timestamp: time.Now(), Version: "1.0.0", Service: "lexcite"}
	return c.JSON(models.NewSuccessResponse(resp, "service is healthy"))
}

// DetailedStatus returns comprehensive system status.
func (h *HealthHandler) DetailedStatus(c *fiber.Ctx) error {
	status := &models.SystemStatus{
		Service:   "lexcite",
		Version:   "1.0.0",
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(startTime),
		System:    getSystemInfo(),
		Storage:   h.getStorageStatus(),
		Indexer:   h.getSearchStatus(),
	}

	if status.Storage.Status != "healthy" || status.Indexer.Status != "healthy" {
		status.Status = "degraded"
	}

	httpStatus := fiber.StatusOK
	if status.Status == "degraded" {
		httpStatus = fiber.StatusServiceUnavailable
	}
	return c.Status(httpStatus).JSON(models.NewSuccessResponse(status, "system status"))
}

// ReadinessCheck reports readiness for orchestration systems.
func (h *HealthHandler) ReadinessCheck(c *fiber.Ctx) error {
	storageStatus := h.getStorageStatus()
	searchStatus := h.getSearchStatus()
	ready := storageStatus.Status == "healthy" && searchStatus.Status == "healthy"

	resp := &models.ReadinessResponse{
		Ready:     ready,
		Timestamp: time.Now(),
		Checks: map[string]bool{
			"storage": storageStatus.Status == "healthy",
			"search":  searchStatus.Status == "healthy",
		},
	}

	httpStatus := fiber.StatusOK
	if !ready {
		httpStatus = fiber.StatusServiceUnavailable
	}
	return c.Status(httpStatus).JSON(models.NewSuccessResponse(resp, "readiness status"))
}

// LivenessCheck reports liveness for orchestration systems.
func (h *HealthHandler) LivenessCheck(c *fiber.Ctx) error {
	resp := &models.LivenessResponse{Alive: true, Timestamp: time.Now(), PID: os.Getpid()}
	return c.JSON(models.NewSuccessResponse(resp, "service is alive"))
}

// Metrics returns a JSON snapshot of runtime/storage/search metrics, for
// callers that don't scrape the Prometheus /metrics exposition format.
func (h *HealthHandler) Metrics(c *fiber.Ctx) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := &models.MetricsResponse{
		Timestamp:  time.Now(),
		Memory:     &models.MemoryInfo{Alloc: m.Alloc, TotalAlloc: m.TotalAlloc, Sys: m.Sys, NumGC: m.NumGC},
		Goroutines: runtime.NumGoroutine(),
		GC: &models.GCStats{
			NumGC:      m.NumGC,
			PauseTotal: time.Duration(m.PauseTotalNs),
			LastGC:     time.Unix(0, int64(m.LastGC)),
			NextGC:     m.NextGC,
		},
		Storage: h.getStorageMetrics(),
		Indexer: h.getSearchMetrics(),
	}
	return c.JSON(models.NewSuccessResponse(resp, "application metrics"))
}

var startTime = time.Now()

func getSystemInfo() *models.SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &models.SystemInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		Goroutines:   runtime.NumGoroutine(),
		Memory:       &models.MemoryInfo{Alloc: m.Alloc, TotalAlloc: m.TotalAlloc, Sys: m.Sys, NumGC: m.NumGC},
	}
}

func (h *HealthHandler) getStorageStatus() *models.ComponentStatus {
	status := &models.ComponentStatus{Name: "storage", Status: "healthy", Timestamp: time.Now()}
	if h.storage == nil {
		status.Status = "unhealthy"
		status.Error = "storage not initialized"
		status.LastError = time.Now()
		return status
	}
	if !h.storage.IsHealthy() {
		status.Status = "unhealthy"
		status.Error = "storage service is not healthy"
		status.LastError = time.Now()
	}
	return status
}

func (h *HealthHandler) getSearchStatus() *models.ComponentStatus {
	status := &models.ComponentStatus{Name: "search", Status: "healthy", Timestamp: time.Now()}
	if h.searchSvc == nil {
		status.Status = "unhealthy"
		status.Error = "search service not initialized"
		status.LastError = time.Now()
		return status
	}
	if !h.searchSvc.IsHealthy() {
		status.Status = "unhealthy"
		status.Error = "search service is not healthy"
		status.LastError = time.Now()
	}
	return status
}

func (h *HealthHandler) getStorageMetrics() map[string]interface{} {
	if h.storage == nil {
		return map[string]interface{}{}
	}
	if metrics := h.storage.GetMetrics(); metrics != nil {
		return metrics
	}
	return map[string]interface{}{}
}

func (h *HealthHandler) getSearchMetrics() map[string]interface{} {
	if h.searchSvc == nil {
		return map[string]interface{}{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := h.searchSvc.Stats(ctx)
	if err != nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"total_citations": stats.TotalCitations,
		"index_health":    stats.IndexHealth,
	}
}
