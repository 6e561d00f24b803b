package builder

import (
	"regexp"
	"strings"

	"lexcite/pkg/citation/registry"
)

var (
	courtNormalizeRe = regexp.MustCompile(`[.,]`)
	courtSpaceRe     = regexp.MustCompile(`\s+`)
	circuitRe        = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)\s+cir(?:cuit)?$`)
	districtRe       = regexp.MustCompile(`^([nsewNSEW])\s*d\s+([a-z]+)$`)
)

var circuitSpecial = map[string]string{
	"dc":  "cadc",
	"fed": "cafc",
}

// CourtLookup resolves a parenthetical court string to a canonical court id
// (spec §4.4.6). It normalizes the input, tries a short list of specific
// abbreviation patterns (circuit courts, district courts), then falls back
// to the generic court-regex table.
type CourtLookup struct {
	courts []registry.CourtEntry
}

// NewCourtLookup builds a lookup over the court table.
func NewCourtLookup(courts []registry.CourtEntry) *CourtLookup {
	return &CourtLookup{courts: courts}
}

// Resolve returns the canonical court id for raw, or "" if none matches.
func (c *CourtLookup) Resolve(raw string) string {
	norm := normalizeCourtString(raw)
	if norm == "" {
		return ""
	}

	if m := circuitRe.FindStringSubmatch(norm); m != nil {
		return "ca" + m[1]
	}
	if special, ok := circuitSpecial[norm]; ok {
		return special
	}
	if m := districtRe.FindStringSubmatch(norm); m != nil {
		return strings.ToLower(m[2]) + "d" + strings.ToLower(m[1])
	}

	for _, court := range c.courts {
		if strings.EqualFold(normalizeCourtString(court.CitationString), norm) {
			return court.ID
		}
		for _, pattern := range court.Regex {
			re, err := regexp.Compile(`(?i)^` + expandCourtOfAppealsPlaceholder(pattern) + `$`)
			if err != nil {
				continue
			}
			if re.MatchString(raw) {
				return court.ID
			}
		}
	}
	return ""
}

// normalizeCourtString lowercases, strips periods/commas, and collapses
// whitespace (spec §4.4.6).
func normalizeCourtString(s string) string {
	s = courtNormalizeRe.ReplaceAllString(s, "")
	s = courtSpaceRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// expandCourtOfAppealsPlaceholder substitutes the ${coa} placeholder the
// court table may embed (spec §6) with a generic "court of appeals" phrase
// alternation.
func expandCourtOfAppealsPlaceholder(pattern string) string {
	return strings.ReplaceAll(pattern, "${coa}", `(?:Ct\.?\s+App\.?|Court\s+of\s+Appeals?)`)
}
