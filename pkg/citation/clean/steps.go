// Package clean implements the text-cleaning steps and the diff-derived
// SpanUpdater that translates offsets between a raw and a cleaned (or
// markup and plain-text) version of the same document.
package clean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lexcite/pkg/citation/model"
)

// StepFunc is a named or caller-supplied cleaning pass (spec §6: "Clean-step
// contract: each step maps string -> string; steps compose left-to-right").
type StepFunc func(string) string

var builtinSteps = map[model.CleanStep]StepFunc{
	model.CleanHTML:             stripHTML,
	model.CleanInlineWhitespace: collapseInlineWhitespace,
	model.CleanAllWhitespace:    collapseAllWhitespace,
	model.CleanUnderscores:      stripUnderscores,
	model.CleanXML:              stripXML,
}

var (
	inlineWhitespaceRe = regexp.MustCompile(`[ \t]+`)
	allWhitespaceRe    = regexp.MustCompile(`\s+`)
	underscoresRe      = regexp.MustCompile(`_+`)
	xmlTagRe           = regexp.MustCompile(`<\?xml[^>]*\?>`)
)

// CleanText runs each named step (or caller-supplied function) over text in
// order and returns the cleaned result (spec §6 clean_text). When steps
// includes CleanHTML, it strips tags to produce plain text; callers that
// need the original markup preserved should keep it separately before
// calling CleanText (the top-level pipeline does this via Document).
func CleanText(text string, steps []model.CleanStep, custom map[model.CleanStep]StepFunc) string {
	out := text
	for _, step := range steps {
		if fn, ok := custom[step]; ok {
			out = fn(out)
			continue
		}
		if fn, ok := builtinSteps[step]; ok {
			out = fn(out)
		}
	}
	return out
}

// stripHTML converts markup to its text-node content, dropping tags and the
// contents of non-visible regions (script/style/noscript), matching the
// skip-tag set the markup annotator also honors.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style, noscript").Remove()
	return doc.Text()
}

func collapseInlineWhitespace(s string) string {
	return inlineWhitespaceRe.ReplaceAllString(s, " ")
}

func collapseAllWhitespace(s string) string {
	return strings.TrimSpace(allWhitespaceRe.ReplaceAllString(s, " "))
}

func stripUnderscores(s string) string {
	return underscoresRe.ReplaceAllString(s, "")
}

func stripXML(s string) string {
	return xmlTagRe.ReplaceAllString(s, "")
}
