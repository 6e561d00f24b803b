// Package tokenizer runs the Extractor Registry over input text and
// produces the ordered token/literal-text stream the citation builder
// walks (spec §4.3).
package tokenizer

import (
	"regexp"
	"sort"

	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/registry"
)

// candidate is one regex match before overlap resolution.
type candidate struct {
	start, end int
	groups     map[string]string
	tok        *model.Token
}

// Tokenize runs every extractor in reg whose literal hints appear in text
// (or which has no hints) against text, resolves overlaps, and returns the
// resulting stream plus the indexes of its citation-bearing elements (spec
// §4.3).
func Tokenize(text string, reg *registry.Registry) (model.TokenStream, []int) {
	extractors := reg.ExtractorsFor(text)

	var candidates []candidate
	for _, ex := range extractors {
		candidates = append(candidates, matchExtractor(text, ex)...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].start != candidates[j].start {
			return candidates[i].start < candidates[j].start
		}
		return candidates[i].end > candidates[j].end
	})

	stream := assemble(text, candidates)
	return stream, stream.CitationTokenIndexes()
}

// matchExtractor runs one extractor over text and returns every accepted
// match (PostFilter-passing) as a candidate.
func matchExtractor(text string, ex *registry.Extractor) []candidate {
	locs := ex.Regex.FindAllStringSubmatchIndex(text, -1)
	if locs == nil {
		return nil
	}
	names := ex.Regex.SubexpNames()

	out := make([]candidate, 0, len(locs))
	for _, loc := range locs {
		start, end := matchSpan(loc, ex.Wrapped)
		if !ex.Accepts(text, start, end) {
			continue
		}
		groups := namedGroups(text, loc, names)
		tok := &model.Token{
			MatchedText:       text[start:end],
			Start:             start,
			End:               end,
			Groups:            groups,
			Kind:              ex.Kind,
			ExactEditions:     ex.Exact,
			VariationEditions: ex.Variation,
			Short:             ex.Short,
			ReporterKey:       ex.ReporterKey,
		}
		out = append(out, candidate{start: start, end: end, groups: groups, tok: tok})
	}
	return out
}

// matchSpan returns the span of the citation body: group 1 for a
// word-boundary-wrapped extractor (spec §4.2's wrap introduces group 1 for
// exactly this purpose), or the whole match for an unwrapped one (law and
// special extractors).
func matchSpan(loc []int, wrapped bool) (int, int) {
	if wrapped && len(loc) >= 4 && loc[2] >= 0 && loc[3] >= 0 {
		return loc[2], loc[3]
	}
	return loc[0], loc[1]
}

func namedGroups(text string, loc []int, names []string) map[string]string {
	groups := make(map[string]string)
	for i, name := range names {
		if name == "" {
			continue
		}
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 || hi < 0 {
			continue
		}
		groups[name] = text[lo:hi]
	}
	return groups
}

// assemble walks the sorted candidates, merging identical overlaps,
// dropping non-identical overlaps, and interleaving literal text (spec
// §4.3 tokenizer algorithm).
func assemble(text string, candidates []candidate) model.TokenStream {
	var stream model.TokenStream
	consumed := 0

	for _, c := range candidates {
		if last, ok := lastToken(stream); ok && last.SameSpanAndKind(c.tok) {
			last.MergeEditions(c.tok)
			continue
		}
		if c.start < consumed {
			continue
		}
		if c.start > consumed {
			stream = append(stream, splitLiteral(text[consumed:c.start], consumed)...)
		}
		stream = append(stream, c.tok)
		consumed = c.end
	}
	if consumed < len(text) {
		stream = append(stream, splitLiteral(text[consumed:], consumed)...)
	}
	return stream
}

func lastToken(stream model.TokenStream) (*model.Token, bool) {
	if len(stream) == 0 {
		return nil, false
	}
	tok, ok := stream[len(stream)-1].(*model.Token)
	return tok, ok
}

var wordOrSpaceRe = regexp.MustCompile(`\S+|\s+`)

// splitLiteral splits a literal text fragment so each run of whitespace and
// each run of non-whitespace becomes its own stream element (spec §4.3:
// "split on spaces such that each space and each word becomes its own
// element"), each carrying its absolute span.
func splitLiteral(s string, offset int) model.TokenStream {
	if s == "" {
		return nil
	}
	locs := wordOrSpaceRe.FindAllStringIndex(s, -1)
	out := make(model.TokenStream, 0, len(locs))
	for _, loc := range locs {
		out = append(out, model.LiteralText{
			Content: s[loc[0]:loc[1]],
			Start:   offset + loc[0],
			End:     offset + loc[1],
		})
	}
	return out
}
