package registry

import "strings"

// Registry is the complete extractor catalog built at startup from the
// data-table contract (spec §4.2): one entry per reporter edition/
// variation, one per law pattern/variation, one per journal, plus the
// fixed special extractors. It exposes mutation operations and maintains a
// literal-hint index so the tokenizer can skip extractors that cannot
// possibly match a given input.
type Registry struct {
	extractors []*Extractor
	hinted     map[string][]*Extractor // literal hint -> extractors requiring it
	unhinted   []*Extractor            // extractors with no literal hints, always run
}

// NewRegistry builds the complete extractor set from tables (spec §4.2).
func NewRegistry(tables *Tables) (*Registry, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{}

	for key, entry := range tables.Reporters {
		exs, err := buildReporterExtractors(key, entry)
		if err != nil {
			return nil, err
		}
		r.extractors = append(r.extractors, exs...)
	}
	for key, entry := range tables.Laws {
		exs, err := buildLawExtractors(key, entry)
		if err != nil {
			return nil, err
		}
		r.extractors = append(r.extractors, exs...)
	}
	for key, entry := range tables.Journals {
		exs, err := buildJournalExtractors(key, entry)
		if err != nil {
			return nil, err
		}
		r.extractors = append(r.extractors, exs...)
	}
	specials, err := buildSpecialExtractors()
	if err != nil {
		return nil, err
	}
	r.extractors = append(r.extractors, specials...)

	r.rebuildIndex()
	return r, nil
}

// rebuildIndex recomputes the two literal-hint maps (spec §4.2: "rebuilt on
// any mutation").
func (r *Registry) rebuildIndex() {
	r.hinted = make(map[string][]*Extractor)
	r.unhinted = r.unhinted[:0]
	for _, ex := range r.extractors {
		if len(ex.LiteralHints) == 0 {
			r.unhinted = append(r.unhinted, ex)
			continue
		}
		for _, hint := range ex.LiteralHints {
			r.hinted[hint] = append(r.hinted[hint], ex)
		}
	}
}

// All returns every registered extractor, in registration order.
func (r *Registry) All() []*Extractor {
	out := make([]*Extractor, len(r.extractors))
	copy(out, r.extractors)
	return out
}

// Add registers an additional extractor and rebuilds the hint index.
func (r *Registry) Add(ex *Extractor) {
	r.extractors = append(r.extractors, ex)
	r.rebuildIndex()
}

// Remove drops every extractor whose Source equals source, returning how
// many were removed.
func (r *Registry) Remove(source string) int {
	kept := r.extractors[:0]
	removed := 0
	for _, ex := range r.extractors {
		if ex.Source == source {
			removed++
			continue
		}
		kept = append(kept, ex)
	}
	r.extractors = kept
	r.rebuildIndex()
	return removed
}

// Clear drops every extractor.
func (r *Registry) Clear() {
	r.extractors = nil
	r.rebuildIndex()
}

// Replace swaps out every extractor whose Source equals source for
// replacement, returning how many were replaced.
func (r *Registry) Replace(source string, replacement *Extractor) int {
	replaced := 0
	for i, ex := range r.extractors {
		if ex.Source == source {
			r.extractors[i] = replacement
			replaced++
		}
	}
	r.rebuildIndex()
	return replaced
}

// ModifyPatternByPredicate applies fn to every extractor matching pred,
// recompiling its regex from fn's returned pattern string. A compile
// failure for one extractor is a recoverable pattern-compile failure (spec
// §7): that extractor is dropped and the rest are modified normally.
func (r *Registry) ModifyPatternByPredicate(pred func(*Extractor) bool, fn func(pattern string) string) error {
	kept := r.extractors[:0]
	for _, ex := range r.extractors {
		if !pred(ex) {
			kept = append(kept, ex)
			continue
		}
		newPattern := fn(ex.Regex.String())
		re, err := compileExtractor(newPattern, ex.Source+" (modified)")
		if err != nil {
			continue
		}
		ex.Regex = re
		kept = append(kept, ex)
	}
	r.extractors = kept
	r.rebuildIndex()
	return nil
}

// ExtractorsFor returns the extractors the tokenizer should run against
// text: every hinted extractor whose hint is a substring of text with its
// non-alphanumeric characters removed (hints are built the same way, so
// "U.S." in text matches hint "US"), plus every extractor with no hints
// (spec §4.3: "run it against the input... whose literal hints appear in
// the input (or which has no hints)").
func (r *Registry) ExtractorsFor(text string) []*Extractor {
	alnum := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, text)

	out := make([]*Extractor, 0, len(r.unhinted))
	out = append(out, r.unhinted...)

	seen := make(map[*Extractor]bool, len(out))
	for _, ex := range out {
		seen[ex] = true
	}
	for hint, exs := range r.hinted {
		if !strings.Contains(alnum, hint) {
			continue
		}
		for _, ex := range exs {
			if seen[ex] {
				continue
			}
			seen[ex] = true
			out = append(out, ex)
		}
	}
	return out
}
