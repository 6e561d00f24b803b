// Package annotate splices per-citation markup into the original text,
// either plain-text (spec §4.8 "plain-text mode") or document markup (spec
// §4.8 "markup mode").
package annotate

import "lexcite/pkg/citation/model"

// Func renders the wrapped form of one citation's matched text. The
// default wraps it in a "citation"-class span.
type Func func(c model.Citation, matchedText string) string

// DefaultFunc is the fallback Func used when the caller supplies none.
func DefaultFunc(_ model.Citation, matchedText string) string {
	return `<span class="citation">` + matchedText + `</span>`
}
