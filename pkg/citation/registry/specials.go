package registry

import (
	"lexcite/pkg/citation/model"
)

// buildSpecialExtractors registers the fixed, data-table-independent
// extractors: id, supra, paragraph, stop word, placeholder, and section
// marker (spec §4.2). Unlike reporter/law/journal extractors these do not
// vary with the data tables, so they are built once per registry and never
// regenerated on table reload.
func buildSpecialExtractors() ([]*Extractor, error) {
	specs := []struct {
		pattern string
		kind    model.Kind
		source  string
	}{
		{`\bid\.?,?(?:\s+(?P<section_marker>§§?)\s*(?P<section>\d+(?:\.\d+)?(?:\([a-zA-Z0-9]+\))*)|\s+at\s+(?P<pin_cite>\d+(?:-\d+)?))?`, model.KindID, "special:id"},
		{`\b(?P<antecedent>[A-Z][A-Za-z&.'-]*(?:\s+[A-Z][A-Za-z&.'-]*){0,4}),?\s+supra,?(?:\s+at\s+(?P<pin_cite>\d+(?:-\d+)?))?`, model.KindSupra, "special:supra"},
		{`(?:¶{1,2}|\bparas?\.?\b)\s*(?P<paragraph>\d+(?:-\d+)?)`, model.KindParagraph, "special:paragraph"},
		{`\b(?:v\.?|vs\.?|supra|id\.?|In\s+re|Ex\s+parte|Matter\s+of)\b`, model.KindStopWord, "special:stopword"},
		{`___+|\[(?:citation|reporter|volume|page)\s+omitted\]`, model.KindPlaceholder, "special:placeholder"},
		{`§§?`, model.KindSection, "special:section_marker"},
	}

	out := make([]*Extractor, 0, len(specs))
	for _, s := range specs {
		re, err := compileExtractor(s.pattern, s.source)
		if err != nil {
			return nil, err
		}
		out = append(out, &Extractor{
			Regex:  re,
			Kind:   s.kind,
			Source: s.source,
		})
	}
	return out, nil
}
