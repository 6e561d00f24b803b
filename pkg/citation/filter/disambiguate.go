package filter

import "lexcite/pkg/citation/model"

// Disambiguate drops any FullCase/ShortCase whose edition_guess is unset
// (spec §4.6). Law and journal citations are never dropped since they do
// not participate in multi-edition reporter ambiguity.
func Disambiguate(cites model.List) model.List {
	out := make(model.List, 0, len(cites))
	for _, c := range cites {
		switch v := c.(type) {
		case *model.FullCase:
			if v.EditionGuess == nil {
				continue
			}
		case *model.ShortCase:
			if v.EditionGuess == nil {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
