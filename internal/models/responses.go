package models

import (
	"time"

	"lexcite/pkg/models"
)

// Re-export types from pkg/models for internal use
type APIResponse = models.APIResponse
type APIError = models.APIError

// CitationDTO is the wire representation of a resolved model.Citation
// (spec §3/§6): one flattened record per extracted citation, variant-tagged
// so a client can distinguish a FullCase from a ShortCase or Supra without
// decoding a sum type.
type CitationDTO struct {
	Variant     string   `json:"variant"`
	MatchedText string   `json:"matched_text"`
	SpanStart   int      `json:"span_start"`
	SpanEnd     int      `json:"span_end"`
	Volume      string   `json:"volume,omitempty"`
	Reporter    string   `json:"reporter,omitempty"`
	Page        string   `json:"page,omitempty"`
	Court       string   `json:"court,omitempty"`
	Year        int      `json:"year,omitempty"`
	PinCite     string   `json:"pin_cite,omitempty"`
	Plaintiff   string   `json:"plaintiff,omitempty"`
	Defendant   string   `json:"defendant,omitempty"`
	CaseName    string   `json:"case_name,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// ExtractResponse is the response body for POST /api/v1/extract.
type ExtractResponse struct {
	Citations      []*CitationDTO `json:"citations"`
	Count          int            `json:"count"`
	ProcessingTime int64          `json:"processing_time_ms"`
}

// BatchExtractResult is one document's outcome within a BatchExtractResponse.
type BatchExtractResult struct {
	ID        string         `json:"id"`
	Citations []*CitationDTO `json:"citations,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// BatchExtractResponse is the response body for POST /api/v1/extract/batch.
type BatchExtractResponse struct {
	Results        []*BatchExtractResult `json:"results"`
	TotalCount     int                   `json:"total_count"`
	SuccessCount   int                   `json:"success_count"`
	FailureCount   int                   `json:"failure_count"`
	ProcessingTime int64                 `json:"processing_time_ms"`
}

// AnnotateResponse is the response body for POST /api/v1/annotate.
type AnnotateResponse struct {
	AnnotatedText string `json:"annotated_text"`
	Count         int    `json:"count"`
}

// ResourceDTO groups the citations the resolver collapsed onto one
// resource (spec §3's Resource grouping), keyed the same way
// pkg/ledger.Store persists it.
type ResourceDTO struct {
	Key       string         `json:"key"`
	CaseName  string         `json:"case_name,omitempty"`
	Citations []*CitationDTO `json:"citations"`
}

// ResolveResponse is the response body for POST /api/v1/resolve.
type ResolveResponse struct {
	Resources []*ResourceDTO `json:"resources"`
	Count     int            `json:"count"`
}

// HealthResponse is a basic liveness/identity response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Service   string    `json:"service"`
}

// SystemStatus is comprehensive system status for /healthz's detailed view.
type SystemStatus struct {
	Service   string           `json:"service"`
	Version   string           `json:"version"`
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    time.Duration    `json:"uptime"`
	System    *SystemInfo      `json:"system"`
	Storage   *ComponentStatus `json:"storage"`
	Indexer   *ComponentStatus `json:"indexer"`
}

// ComponentStatus is the health of one dependency.
type ComponentStatus struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
	LastError time.Time `json:"last_error,omitempty"`
}

// ReadinessResponse answers an orchestrator's readiness probe.
type ReadinessResponse struct {
	Ready     bool            `json:"ready"`
	Timestamp time.Time       `json:"timestamp"`
	Checks    map[string]bool `json:"checks"`
}

// LivenessResponse answers an orchestrator's liveness probe.
type LivenessResponse struct {
	Alive     bool      `json:"alive"`
	Timestamp time.Time `json:"timestamp"`
	PID       int       `json:"pid"`
}

// MetricsResponse is the JSON fallback of /metrics for callers not scraping
// the Prometheus exposition format.
type MetricsResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Memory     *MemoryInfo            `json:"memory"`
	Goroutines int                    `json:"goroutines"`
	GC         *GCStats               `json:"gc"`
	Storage    map[string]interface{} `json:"storage"`
	Indexer    map[string]interface{} `json:"indexer"`
}

// SystemInfo is basic runtime/host information.
type SystemInfo struct {
	OS           string      `json:"os"`
	Architecture string      `json:"architecture"`
	GoVersion    string      `json:"go_version"`
	NumCPU       int         `json:"num_cpu"`
	Goroutines   int         `json:"goroutines"`
	Memory       *MemoryInfo `json:"memory"`
}

// MemoryInfo is runtime.MemStats, trimmed to the fields worth exposing.
type MemoryInfo struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	NumGC      uint32 `json:"num_gc"`
}

// GCStats is garbage-collector timing, trimmed from runtime.MemStats.
type GCStats struct {
	NumGC      uint32        `json:"num_gc"`
	PauseTotal time.Duration `json:"pause_total"`
	LastGC     time.Time     `json:"last_gc"`
	NextGC     uint64        `json:"next_gc"`
}

// Re-export helper functions from pkg/models for convenience
var (
	NewSuccessResponse         = models.NewSuccessResponse
	NewErrorResponse           = models.NewErrorResponse
	NewValidationErrorResponse = models.NewValidationErrorResponse
)
