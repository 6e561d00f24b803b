package builder

import "lexcite/pkg/citation/model"

// GuessEdition disambiguates among a citation token's candidate editions
// (spec §4.4.5): exact editions are preferred over variation editions; if
// more than one candidate remains and a year is known, keep only editions
// whose [start, end] contains it (an open end means "present"); if exactly
// one survives, that is the guess.
func GuessEdition(exact, variation []model.Edition, year int, hasYear bool) *model.Edition {
	candidates := exact
	if len(candidates) == 0 {
		candidates = variation
	}
	if len(candidates) == 0 {
		return nil
	}
	if len(candidates) == 1 {
		e := candidates[0]
		return &e
	}
	if !hasYear {
		return nil
	}

	var matched []model.Edition
	for _, e := range candidates {
		if e.ContainsYear(year) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 1 {
		return &matched[0]
	}
	return nil
}
