package registry

import (
	"lexcite/pkg/citation/model"
)

// buildJournalExtractors constructs one full-form extractor per (canonical
// name, spelling variation) pair for a journal table entry: "volume name,
// page" with an optional pin cite and an optional trailing year
// parenthetical, the journal-citation shape from spec §4.2.
func buildJournalExtractors(key string, entry JournalEntry) ([]*Extractor, error) {
	var out []*Extractor

	names := []string{key}
	for _, v := range entry.Variations {
		names = append(names, v.Name)
	}

	for _, name := range names {
		pattern := volumeGroup + `\s+` + reporterGroup(name) + `,?\s+` + pageGroup +
			`(?:,\s*(?P<pin_cite>\d+(?:-\d+)?))?` +
			`(?:\s*\((?P<year>(?:17|18|19|20)\d{2})\))?`

		re, err := compileExtractor(wordBoundaryWrap(pattern), "journal "+key+" ("+name+")")
		if err != nil {
			return nil, err
		}
		out = append(out, &Extractor{
			Regex:        re,
			Kind:         model.KindJournal,
			ReporterKey:  key,
			LiteralHints: literalHints(name),
			Source:       "journal:" + key + ":" + name,
			Wrapped:      true,
		})
	}
	return out, nil
}
