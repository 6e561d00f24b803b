package model

import "strings"

// Resource is the opaque identity object the Resolver groups citations
// under: the canonical case or statute a family of citations points to.
// Equality is by (volume, corrected-reporter, page) for cases and by
// (reporter, chapter-or-title, section) for laws, unless a caller-supplied
// resolver overrides it (spec §3).
type Resource struct {
	Key      string
	Full     Citation
	CaseName string
}

// NewCaseResource builds the default case-resource identity.
func NewCaseResource(full Citation, volume, reporter, page string) *Resource {
	return &Resource{
		Key:  "case|" + strings.ToLower(strings.TrimSpace(volume)) + "|" + normalizeReporter(reporter) + "|" + strings.ToLower(strings.TrimSpace(page)),
		Full: full,
	}
}

// NewLawResource builds the default law-resource identity.
func NewLawResource(full Citation, reporter, chapterOrTitle, section string) *Resource {
	return &Resource{
		Key:  "law|" + normalizeReporter(reporter) + "|" + strings.ToLower(strings.TrimSpace(chapterOrTitle)) + "|" + strings.ToLower(strings.TrimSpace(section)),
		Full: full,
	}
}

func normalizeReporter(r string) string {
	r = strings.ToLower(strings.TrimSpace(r))
	r = strings.ReplaceAll(r, ".", "")
	r = strings.Join(strings.Fields(r), " ")
	return r
}
