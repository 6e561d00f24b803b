package model

// OffsetMode controls tie-breaking when a SpanUpdater's offset lands exactly
// on an edit-step boundary.
type OffsetMode int

const (
	OffsetLeft OffsetMode = iota
	OffsetRight
)

// SpanUpdaterFunc translates an offset in one version of a text into the
// equivalent offset in another version, per the diff-derived edit script
// built by the clean package.
type SpanUpdaterFunc func(offset int, mode OffsetMode) int

// CleanStep names one of the built-in text-cleaning passes, or a caller
// supplied one identified elsewhere by function value.
type CleanStep string

const (
	CleanHTML             CleanStep = "html"
	CleanInlineWhitespace CleanStep = "inline_whitespace"
	CleanAllWhitespace    CleanStep = "all_whitespace"
	CleanUnderscores      CleanStep = "underscores"
	CleanXML              CleanStep = "xml"
)

// EmphasisTag is a small styling tag (em/i/b) whose plain-text contents
// often carry a case name in markup-sourced legal text.
type EmphasisTag struct {
	Text        string
	MarkupStart int
	MarkupEnd   int
	PlainStart  int
	PlainEnd    int
}

// Document is the text a citation was extracted from, carried on every
// citation so downstream reference extraction and annotation can walk it
// again without re-tokenizing.
type Document struct {
	PlainText  string
	MarkupText string
	HasMarkup  bool

	CleanSteps []CleanStep
	Tokens     TokenStream

	EmphasisTags []EmphasisTag

	// Present only when HasMarkup: offset translators between the plain
	// text the extractor ran over and the original markup.
	PlainToMarkup SpanUpdaterFunc
	MarkupToPlain SpanUpdaterFunc
}

// Slice returns the plain text between two byte offsets, clamped to bounds.
func (d *Document) Slice(start, end int) string {
	if d == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > len(d.PlainText) {
		end = len(d.PlainText)
	}
	if start >= end {
		return ""
	}
	return d.PlainText[start:end]
}
