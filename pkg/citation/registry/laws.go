package registry

import (
	"lexcite/pkg/citation/model"
)

// Section-value shapes per SectionForm (spec §8 scenarios 6-7): a "title"
// law (U.S.C.-style) captures only the bare leading digits of the section,
// leaving any trailing "(e)(2)" subsection to the builder's forward pin-cite
// scan; a "chapter" law (C.F.R.-style) captures the full comma-joined list,
// including embedded parenthetical subsections, as the section value itself;
// a "volume" law (Stat.-style) has no section marker at all, just a page.
const (
	titleSectionPattern   = `(?P<section>\d+[a-zA-Z]?)`
	chapterSectionPattern = `(?P<section>\d+(?:\.\d+)?(?:\([a-zA-Z0-9]+\))*(?:,\s*\d+(?:\.\d+)?(?:\([a-zA-Z0-9]+\))*)*)`
)

// lawTailTemplate is appended to every law main pattern (spec §4.1): an
// optional "(Pub. L. ..., year)" or bare "(year)" enactment parenthetical,
// followed by an independent optional parenthetical the builder will read
// as the explanatory parenthetical.
const lawTailTemplate = `(?:\s*\((?:(?P<publisher>[^,()]+),\s*)?(?:(?P<month>[A-Z][a-z]+)\.?\s+)?(?:(?P<day>\d{1,2}),?\s+)?(?P<year>(?:17|18|19|20)\d{2})\))?(?:\s*\((?P<parenthetical>[^()]*)\))?`

// buildLawExtractors constructs one extractor per (spelling, section form)
// pair for a law table entry (spec §4.1-4.2). Unlike reporters, a law
// entry supplies its own regex templates directly (run through Expand),
// since law citation shapes vary enough across U.S.C./C.F.R./Stat.-style
// regimes that a single generic skeleton does not fit all of them.
func buildLawExtractors(key string, entry LawEntry) ([]*Extractor, error) {
	var out []*Extractor

	names := []string{key}
	for _, v := range entry.Variations {
		names = append(names, v.Name)
	}

	for _, name := range names {
		for _, tmpl := range entry.Regexes {
			ex, err := buildLawExtractor(key, name, tmpl, entry)
			if err != nil {
				return nil, err
			}
			out = append(out, ex)
		}
	}
	return out, nil
}

func buildLawExtractor(key, name, tmpl string, entry LawEntry) (*Extractor, error) {
	vars := Variables{
		"title":          `(?P<locator>\d+)`,
		"chapter":        `(?P<locator>\d+)`,
		"volume":         `(?P<locator>\d+)`,
		"reporter":       reporterGroup(name),
		"page":           pageGroup,
		"section_marker": `§§?`,
	}
	switch entry.SectionForm {
	case "chapter":
		vars["section"] = chapterSectionPattern
	case "volume":
		vars["section"] = pageGroup
	default: // "title" and unset
		vars["section"] = titleSectionPattern
	}

	expanded, err := Expand(tmpl, vars)
	if err != nil {
		return nil, &ConfigError{Msg: "failed to expand law pattern for " + key, Err: err}
	}

	withTail, err := AppendLawTail(expanded, lawTailTemplate, vars)
	if err != nil {
		return nil, &ConfigError{Msg: "failed to append law tail for " + key, Err: err}
	}

	re, err := compileExtractor(withTail, "law "+key+" ("+name+")")
	if err != nil {
		return nil, err
	}

	return &Extractor{
		Regex:        re,
		Kind:         model.KindLaw,
		ReporterKey:  key,
		LiteralHints: literalHints(name),
		Source:       "law:" + key + ":" + name,
	}, nil
}
