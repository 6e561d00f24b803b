// Package citation is the top-level entry point of the engine: it wires
// the data tables, registry, tokenizer, builder, filter, resolver and
// annotator together behind the public surface of spec §6.
package citation

import (
	"regexp"
	"strings"

	"lexcite/pkg/citation/annotate"
	"lexcite/pkg/citation/builder"
	"lexcite/pkg/citation/clean"
	"lexcite/pkg/citation/filter"
	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/registry"
	"lexcite/pkg/citation/resolver"
	"lexcite/pkg/citation/tokenizer"
)

// Options controls GetCitations (spec §6).
type Options struct {
	RemoveAmbiguous  bool
	CleanSteps       []model.CleanStep
	CustomCleanSteps map[model.CleanStep]clean.StepFunc
	MergeReferences  bool
}

// Engine holds the data tables, registry and builder built from them, so
// repeated calls to GetCitations don't rebuild the extractor registry on
// every call.
type Engine struct {
	tables   *registry.Tables
	registry *registry.Registry
	builder  *builder.Builder
}

// NewEngine constructs an Engine from a data-table contract (spec §6,
// "Data-table contract"). Returns a configuration error if a table entry
// has a malformed shape.
func NewEngine(tables *registry.Tables) (*Engine, error) {
	reg, err := registry.NewRegistry(tables)
	if err != nil {
		return nil, err
	}
	return &Engine{tables: tables, registry: reg, builder: builder.New(tables)}, nil
}

// Registry exposes the underlying extractor registry so callers can add,
// remove or replace extractors at runtime (spec §4.2).
func (e *Engine) Registry() *registry.Registry { return e.registry }

// GetCitations runs the full pipeline: clean, tokenize, build, filter, and
// optionally disambiguate (spec §6). The returned Document is attached to
// every citation for downstream reference extraction and annotation.
func (e *Engine) GetCitations(rawText string, opts Options) model.List {
	doc := clean.NewDocument(rawText, opts.CleanSteps, opts.CustomCleanSteps)
	doc.Tokens, _ = tokenizer.Tokenize(doc.PlainText, e.registry)

	cites := e.builder.Build(doc)
	cites = filter.Run(cites, opts.MergeReferences)
	if opts.RemoveAmbiguous {
		cites = filter.Disambiguate(cites)
	}
	return cites
}

// referencePinCiteRe matches a bare pin cite immediately following a case
// name, the pattern extract_reference_citations looks for once it has
// located a plaintiff/defendant or resolved-case-name match (spec §6).
var referencePinCiteRe = regexp.MustCompile(`^[^a-zA-Z0-9]{0,10}at\s+(?P<pin_cite>\d+(?:-\d+)?)`)

// ExtractReferenceCitations scans doc after full's span for text matching
// full's plaintiff/defendant or resolved case-name fields, returning fresh
// Reference citations with pin_cite metadata (spec §6).
func ExtractReferenceCitations(full model.Citation, doc *model.Document) model.List {
	names := referenceNames(full)
	if len(names) == 0 {
		return nil
	}

	_, fullEnd := full.Span()
	text := doc.PlainText
	var out model.List

	for _, name := range names {
		searchFrom := fullEnd
		for {
			idx := indexAfter(text, name, searchFrom)
			if idx < 0 {
				break
			}
			nameEnd := idx + len(name)
			tail := text[nameEnd:]
			var pinCite string
			if m := referencePinCiteRe.FindStringSubmatch(tail); m != nil {
				pinCite = m[1]
			}

			ref := &model.Reference{Base: model.Base{
				SpanStart:     idx,
				SpanEnd:       nameEnd,
				FullSpanStart: idx,
				FullSpanEnd:   nameEnd,
				Doc:           doc,
			}}
			ref.Meta.Plaintiff = full.Metadata().Plaintiff
			ref.Meta.Defendant = full.Metadata().Defendant
			ref.Meta.ResolvedCaseName = full.Metadata().ResolvedCaseName
			ref.Meta.PinCite = pinCite
			out = append(out, ref)

			searchFrom = nameEnd
		}
	}
	return out
}

func indexAfter(text, sub string, from int) int {
	if from >= len(text) || sub == "" {
		return -1
	}
	rel := strings.Index(text[from:], sub)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func referenceNames(full model.Citation) []string {
	m := full.Metadata()
	var names []string
	if m.ResolvedCaseName != "" {
		names = append(names, m.ResolvedCaseName)
	}
	if m.Plaintiff != "" {
		names = append(names, m.Plaintiff)
	}
	if m.Defendant != "" {
		names = append(names, m.Defendant)
	}
	return names
}

// ResolveCitations groups citations by resource (spec §6). A nil r uses
// the default resolver.
func ResolveCitations(cites model.List, r *resolver.Resolver) ([]resolver.Pair, map[*model.Resource]model.List) {
	if r == nil {
		r = resolver.New()
	}
	return r.Resolve(cites)
}

// annotateMarkupDetectRe mirrors the clean package's markup auto-detection
// (spec §6: "Auto-detects markup by presence of <.+>").
var annotateMarkupDetectRe = regexp.MustCompile(`<[^>]+>`)

// Annotate dispatches to the plain or markup annotator based on whether
// text looks like it carries markup (spec §6).
func Annotate(text string, cites model.List, fn annotate.Func) (string, error) {
	if annotateMarkupDetectRe.MatchString(text) {
		return annotate.Markup(text, cites, fn)
	}
	return annotate.Plain(text, cites, fn), nil
}

// CleanText runs the requested clean steps over text (spec §6).
func CleanText(text string, steps []model.CleanStep, custom map[model.CleanStep]clean.StepFunc) string {
	return clean.CleanText(text, steps, custom)
}

// FilterCitations exposes the filter stage for callers that construct
// citations by other means (spec §6).
func FilterCitations(cites model.List, mergeReferences bool) model.List {
	return filter.Run(cites, mergeReferences)
}

// DisambiguateReporters exposes the disambiguator stage for callers that
// construct citations by other means (spec §6).
func DisambiguateReporters(cites model.List) model.List {
	return filter.Disambiguate(cites)
}
