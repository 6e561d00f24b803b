package models

// ExtractOptions mirrors citation.Options (spec §6) as a wire-friendly DTO:
// CleanSteps are named ("html", "inline_whitespace", "underscores") rather
// than passed as the package's typed model.CleanStep values.
type ExtractOptions struct {
	RemoveAmbiguous bool     `json:"remove_ambiguous"`
	CleanSteps      []string `json:"clean_steps,omitempty" validate:"omitempty,dive,oneof=html inline_whitespace underscores all_whitespace xml"`
	MergeReferences bool     `json:"merge_references"`
}

// ExtractRequest is the body of POST /api/v1/extract.
type ExtractRequest struct {
	Text    string          `json:"text" validate:"required,min=1,max=1000000"`
	Options *ExtractOptions `json:"options,omitempty"`
}

// BatchDocument is one item of a BatchExtractRequest.
type BatchDocument struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required,min=1,max=1000000"`
}

// BatchExtractRequest is the body of POST /api/v1/extract/batch.
type BatchExtractRequest struct {
	Documents []BatchDocument `json:"documents" validate:"required,min=1,max=100,dive"`
	Options   *ExtractOptions `json:"options,omitempty"`
}

// AnnotateRequest is the body of POST /api/v1/annotate.
type AnnotateRequest struct {
	Text    string          `json:"text" validate:"required,min=1,max=1000000"`
	Options *ExtractOptions `json:"options,omitempty"`
}

// ResolveRequest is the body of POST /api/v1/resolve. DocumentID, when set,
// is the key IndexCitations stores results under and the document id the
// ledger records the resolved resources under ("inline" when empty);
// Continue opts the request into cross-invocation resolution against every
// resource pkg/ledger has stored.
type ResolveRequest struct {
	Text       string          `json:"text" validate:"required,min=1,max=1000000"`
	DocumentID string          `json:"document_id,omitempty"`
	Continue   bool            `json:"continue"`
	Options    *ExtractOptions `json:"options,omitempty"`
}
