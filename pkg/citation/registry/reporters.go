package registry

import (
	"regexp"

	"lexcite/pkg/citation/model"
)

const (
	volumeGroup = `(?P<volume>\d{1,5})`
	pageGroup   = `(?P<page>\d{1,5}(?:-\d{1,5})?)`
	yearVolumeGroup = `(?P<volume>(?:17|18|19|20)\d{2})`
)

func reporterGroup(name string) string {
	return `(?P<reporter>` + EscapeLiteral(name) + `)`
}

// buildReporterExtractors constructs one full-form and one short-form
// extractor per edition of a reporter, plus one pair per spelling variation,
// per spec §4.2. Reporters flagged Nominative get the narrower
// volume-required, name-excluding form instead of the default.
func buildReporterExtractors(key string, entry ReporterEntry) ([]*Extractor, error) {
	var out []*Extractor

	handle := model.ReporterHandle{
		ShortName: key,
		FullName:  entry.Name,
		CiteType:  entry.CiteType,
		IsScotus:  entry.IsScotus,
	}

	// Each edition has its own citation string ("F.", "F.2d", "F.3d", ...),
	// so the literal matched must come from editionKey, not from the
	// reporter's canonical key - otherwise every edition of a multi-series
	// reporter compiles the identical pattern and only the first edition's
	// spelling ever tokenizes.
	for editionKey, spec := range entry.Editions {
		edition := buildEdition(handle, editionKey, spec)
		full, short, err := buildCaseFormPair(editionKey, edition, key, entry.Nominative, spec.Format)
		if err != nil {
			return nil, err
		}
		out = append(out, full, short)
	}

	// Spelling variations are matched against every edition's date range
	// in turn, using the variation's own spelling as the literal.
	for _, v := range entry.Variations {
		for editionKey, spec := range entry.Editions {
			edition := buildEdition(handle, editionKey, spec)
			full, short, err := buildCaseFormPair(v.Name, edition, key, entry.Nominative, spec.Format)
			if err != nil {
				return nil, err
			}
			out = append(out, full, short)
		}
	}
	return out, nil
}

// buildCaseFormPair builds the full-form and short-form extractor for one
// (spelling, edition) pair.
func buildCaseFormPair(name string, edition model.Edition, reporterKey string, nominative bool, format string) (full, short *Extractor, err error) {
	var mainPattern string
	switch format {
	case "year_page":
		mainPattern = yearVolumeGroup + `\s+` + reporterGroup(name) + `\s+` + pageGroup
	case "hyphen_separated":
		mainPattern = volumeGroup + `-` + reporterGroup(name) + `-` + pageGroup
	default:
		mainPattern = volumeGroup + `\s+` + reporterGroup(name) + `,?\s+` + pageGroup
	}

	fullPattern := wordBoundaryWrap(mainPattern)
	fullRe, err := compileExtractor(fullPattern, "reporter "+reporterKey+" full form ("+name+")")
	if err != nil {
		return nil, nil, err
	}

	shortPattern := wordBoundaryWrap(`(?:` + volumeGroup + `\s+)?` + reporterGroup(name) + `,?\s+at\s+` + pageGroup)
	shortRe, err := compileExtractor(shortPattern, "reporter "+reporterKey+" short form ("+name+")")
	if err != nil {
		return nil, nil, err
	}

	full = &Extractor{
		Regex:        fullRe,
		Kind:         model.KindCitation,
		ReporterKey:  reporterKey,
		Short:        false,
		Exact:        []model.Edition{edition},
		LiteralHints: literalHints(name),
		Source:       "reporter:" + reporterKey + ":" + name + ":full",
		Wrapped:      true,
	}
	short = &Extractor{
		Regex:        shortRe,
		Kind:         model.KindCitation,
		ReporterKey:  reporterKey,
		Short:        true,
		Exact:        []model.Edition{edition},
		LiteralHints: literalHints(name),
		Source:       "reporter:" + reporterKey + ":" + name + ":short",
		Wrapped:      true,
	}

	if nominative {
		full.PostFilter = nominativeContextFilter
		short.PostFilter = nominativeContextFilter
	}
	return full, short, nil
}

var nominativePrecedingRe = regexp.MustCompile(`(?i)\b(v\.?|vs\.?|in\s+re|ex\s+parte)\s*$`)

// nominativeContextFilter rejects a nominative-reporter match whose
// immediately preceding text looks like a party-name marker ("v.", "In re",
// "Ex parte"), the substitute for the lookbehind exclusion spec §4.2
// describes (Go's RE2 engine has no lookaround).
func nominativeContextFilter(full string, start, end int) bool {
	precedingStart := start - 24
	if precedingStart < 0 {
		precedingStart = 0
	}
	preceding := full[precedingStart:start]
	return !nominativePrecedingRe.MatchString(preceding)
}
