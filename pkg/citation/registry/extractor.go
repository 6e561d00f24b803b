package registry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lexcite/pkg/citation/model"
)

// Extractor is one compiled pattern the tokenizer runs against the input,
// plus the extra attributes needed to turn a match into a Token (spec §4.2).
type Extractor struct {
	Regex         *regexp.Regexp
	Kind          model.Kind
	ReporterKey   string
	Short         bool
	Exact         []model.Edition
	Variation     []model.Edition
	CaseSensitive bool
	LiteralHints  []string
	Source        string

	// Wrapped is true when Regex was built by wordBoundaryWrap, meaning
	// the citation body is capture group 1 and group 0 additionally spans
	// the boundary characters. Law and special extractors are never
	// wrapped, so their citation body is the whole match (group 0).
	Wrapped bool

	// PostFilter, when set, is consulted after a regex match to reject
	// matches a lookaround assertion would reject in an engine that
	// supported one. Go's regexp package (RE2) does not, so nominative
	// reporter extractors (spec §4.2: exclude matches inside "v."/"In re"
	// contexts) implement that exclusion here instead, over the full
	// input and the candidate match's [start,end).
	PostFilter func(full string, start, end int) bool
}

// Accepts runs PostFilter if present.
func (e *Extractor) Accepts(full string, start, end int) bool {
	if e.PostFilter == nil {
		return true
	}
	return e.PostFilter(full, start, end)
}

// wordBoundaryWrap anchors a case/journal pattern so it cannot match inside
// a larger alphanumeric run (spec §4.2). Law extractors are deliberately
// not wrapped: a law section mark can be preceded by punctuation a plain
// word boundary would reject (e.g. "(29 C.F.R. ...)").
func wordBoundaryWrap(pattern string) string {
	return `(?:^|[^A-Za-z0-9])(` + pattern + `)(?:[^A-Za-z0-9]|$)`
}

// compileExtractor compiles pattern and reports a ConfigError (spec §7:
// fatal at registration time) rather than panicking, so the caller building
// the full registry can decide whether one bad pattern is fatal or merely
// skippable (spec §7 distinguishes the two).
func compileExtractor(pattern, source string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ConfigError{Msg: fmt.Sprintf("failed to compile pattern for %s", source), Err: err}
	}
	return re, nil
}

func buildEdition(handle model.ReporterHandle, foundName string, spec EditionSpec) model.Edition {
	ed := model.Edition{Reporter: handle, FoundName: foundName}
	if y, ok := parseYear(spec.Start); ok {
		ed.Start = model.IntPtr(y)
	}
	if y, ok := parseYear(spec.End); ok {
		ed.End = model.IntPtr(y)
	}
	return ed
}

func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if len(s) >= 4 {
		s = s[:4]
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// literalHints returns short alphanumeric fragments of name (and its
// variations) usable as a fast substring pre-filter.
func literalHints(names ...string) []string {
	var hints []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		// The hint is the name's alphanumeric characters concatenated
		// (e.g. "U.S." -> "US", "F.3d" -> "F3d").
		var b strings.Builder
		for _, r := range n {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			hints = append(hints, b.String())
		}
	}
	return hints
}
