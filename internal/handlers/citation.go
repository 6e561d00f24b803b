package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lexcite/internal/models"
	"lexcite/pkg/citation"
	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/ledger"
	"lexcite/pkg/monitoring"
	"lexcite/pkg/pipeline"
	"lexcite/pkg/search"
	"lexcite/pkg/storage"
)

// CitationHandler exposes spec §6's GetCitations/Annotate/ResolveCitations
// as JSON endpoints, backed by a shared citation.Engine.
type CitationHandler struct {
	engine  *citation.Engine
	pool    *pipeline.Pool
	storage storage.Service
	search  search.Service
	ledger  *ledger.Store
	metrics *monitoring.Metrics
}

// NewCitationHandler builds a CitationHandler. ledgerStore and m may be
// nil; a nil ledgerStore means ResolveRequest.Continue is ignored, and a
// nil m means no metrics are recorded.
func NewCitationHandler(engine *citation.Engine, pool *pipeline.Pool, storageSvc storage.Service, searchSvc search.Service, ledgerStore *ledger.Store, m *monitoring.Metrics) *CitationHandler {
	return &CitationHandler{engine: engine, pool: pool, storage: storageSvc, search: searchSvc, ledger: ledgerStore, metrics: m}
}

func (h *CitationHandler) recordExtraction(elapsed time.Duration, cites model.List) {
	if h.metrics == nil {
		return
	}
	counts := make(map[string]int)
	for _, c := range cites {
		counts[c.Variant().String()]++
	}
	h.metrics.RecordExtraction(elapsed, counts)
}

// Extract handles POST /api/v1/extract.
func (h *CitationHandler) Extract(c *fiber.Ctx) error {
	var req models.ExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("bad_request", "invalid request body", nil))
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse(err))
	}

	start := time.Now()
	cites := h.engine.GetCitations(req.Text, toOptions(req.Options))
	elapsed := time.Since(start)
	h.recordExtraction(elapsed, cites)

	resp := &models.ExtractResponse{
		Citations:      toCitationDTOs(cites),
		Count:          len(cites),
		ProcessingTime: elapsed.Milliseconds(),
	}
	return c.JSON(models.NewSuccessResponse(resp, "citations extracted"))
}

// ExtractBatch handles POST /api/v1/extract/batch (SPEC_FULL.md §C).
func (h *CitationHandler) ExtractBatch(c *fiber.Ctx) error {
	var req models.BatchExtractRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("bad_request", "invalid request body", nil))
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse(err))
	}

	reqs := make([]pipeline.Request, len(req.Documents))
	for i, d := range req.Documents {
		reqs[i] = pipeline.Request{ID: d.ID, Text: d.Text}
	}

	start := time.Now()
	results := h.pool.Run(c.Context(), reqs)
	elapsed := time.Since(start)

	out := make([]*models.BatchExtractResult, len(results))
	successCount, failureCount := 0, 0
	for i, r := range results {
		item := &models.BatchExtractResult{ID: r.ID}
		if r.Err != nil {
			item.Error = r.Err.Error()
			failureCount++
		} else {
			item.Citations = toCitationDTOs(r.Citations)
			successCount++
		}
		out[i] = item
	}

	if h.metrics != nil {
		h.metrics.RecordBatch(len(out), successCount, failureCount)
	}

	resp := &models.BatchExtractResponse{
		Results:        out,
		TotalCount:     len(out),
		SuccessCount:   successCount,
		FailureCount:   failureCount,
		ProcessingTime: elapsed.Milliseconds(),
	}
	return c.JSON(models.NewSuccessResponse(resp, "batch extraction complete"))
}

// Annotate handles POST /api/v1/annotate.
func (h *CitationHandler) Annotate(c *fiber.Ctx) error {
	var req models.AnnotateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("bad_request", "invalid request body", nil))
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse(err))
	}

	cites := h.engine.GetCitations(req.Text, toOptions(req.Options))
	annotated, err := citation.Annotate(req.Text, cites, wrapMatch)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.NewErrorResponse("annotate_failed", err.Error(), nil))
	}

	resp := &models.AnnotateResponse{AnnotatedText: annotated, Count: len(cites)}
	return c.JSON(models.NewSuccessResponse(resp, "text annotated"))
}

// wrapMatch is the default annotate.Func: it wraps every matched citation
// span in a <span> carrying the citation's variant, for a caller to style
// or hyperlink client-side.
func wrapMatch(c model.Citation, matchedText string) string {
	return `<span class="citation" data-variant="` + c.Variant().String() + `">` + matchedText + `</span>`
}

// Resolve handles POST /api/v1/resolve. When req.Continue is set and a
// ledger is configured, Supra/Short/Reference citations also resolve
// against resources recorded by prior citeql/resolve calls.
func (h *CitationHandler) Resolve(c *fiber.Ctx) error {
	var req models.ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("bad_request", "invalid request body", nil))
	}
	if err := models.ValidateStruct(&req); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationResponse(err))
	}

	cites := h.engine.GetCitations(req.Text, toOptions(req.Options))

	var r *resolver.Resolver
	if req.Continue && h.ledger != nil {
		seeds, err := h.ledger.Seed()
		if err == nil {
			if h.metrics != nil {
				h.metrics.RecordLedgerSeed(len(seeds))
			}
			r = ledger.Continue(nil, seeds)
		}
	}

	pairs, byResource := citation.ResolveCitations(cites, r)
	if h.metrics != nil {
		h.metrics.RecordResolve(len(pairs), len(byResource))
	}

	if h.ledger != nil {
		documentID := req.DocumentID
		if documentID == "" {
			documentID = "inline"
		}
		_ = h.ledger.Record(byResource, documentID)
	}

	if h.search != nil && req.DocumentID != "" {
		_ = h.search.IndexCitations(c.Context(), req.DocumentID, pairs)
	}

	resources := make([]*models.ResourceDTO, 0, len(byResource))
	for res, group := range byResource {
		resources = append(resources, &models.ResourceDTO{
			Key:       res.Key,
			CaseName:  res.CaseName,
			Citations: toCitationDTOs(group),
		})
	}

	resp := &models.ResolveResponse{Resources: resources, Count: len(resources)}
	return c.JSON(models.NewSuccessResponse(resp, "citations resolved"))
}

func validationResponse(err error) *models.APIResponse {
	formatted := models.FormatValidationErrors(err)
	if len(formatted) == 0 {
		return models.NewErrorResponse("validation_error", err.Error(), nil)
	}
	first := formatted[0]
	details := make(map[string]interface{}, len(formatted))
	var fields []string
	for _, f := range formatted {
		fields = append(fields, f.Field)
	}
	details["fields"] = strings.Join(fields, ", ")
	return models.NewValidationErrorResponse(first.Field, first.Message).WithData(details)
}
