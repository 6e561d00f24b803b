// Package filter reduces a raw citation list down to the set consistent
// with the priority and overlap rules of spec §4.5, and implements the
// reporter-ambiguity disambiguator of spec §4.6.
package filter

import (
	"regexp"
	"sort"
	"strings"

	"lexcite/pkg/citation/model"
)

// gapRe matches a run of whitespace, commas and semicolons only; a parallel
// citation's gap must consist entirely of these characters (spec §4.5 step
// 3, "gap < 20 chars over only [\s,;]*").
var gapRe = regexp.MustCompile(`^[\s,;]*$`)

const maxParallelGap = 20

// Run applies the full filter pipeline: dedup, sort, overlap resolution,
// and the optional reference-merge pass, returning the result sorted by
// span.start ascending (spec §4.5).
func Run(cites model.List, mergeReferences bool) model.List {
	deduped := dedup(cites)
	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		af, _ := a.FullSpan()
		bf, _ := b.FullSpan()
		if af != bf {
			return af < bf
		}
		as, _ := a.Span()
		bs, _ := b.Span()
		if as != bs {
			return as < bs
		}
		return a.Variant().Priority() > b.Variant().Priority()
	})

	accepted := resolveOverlaps(deduped)

	if mergeReferences {
		accepted = mergeAdjacentReferences(accepted)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		ai, _ := accepted[i].Span()
		bj, _ := accepted[j].Span()
		return ai < bj
	})
	return accepted
}

type dedupKey struct {
	variant    model.Variant
	start, end int
}

func dedup(cites model.List) model.List {
	seen := make(map[dedupKey]bool, len(cites))
	out := make(model.List, 0, len(cites))
	for _, c := range cites {
		s, e := c.Span()
		k := dedupKey{c.Variant(), s, e}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// resolveOverlaps walks candidates in sorted order, comparing each against
// the tail of the accepted list while their full_spans overlap (spec §4.5
// step 3).
func resolveOverlaps(sorted model.List) model.List {
	var accepted model.List
	for _, cand := range sorted {
		keep := true
		for i := len(accepted) - 1; i >= 0; i-- {
			other := accepted[i]
			if !fullSpansOverlap(other, cand) {
				break
			}
			if isParallel(other, cand) || isMultiSectionLaw(other, cand) || isParentheticalContainment(other, cand) {
				continue
			}
			if overlapRatio(other, cand) > 0.5 {
				if higherPriority(other, cand) {
					keep = false
				} else {
					accepted = append(accepted[:i], accepted[i+1:]...)
				}
				break
			}
		}
		if keep {
			accepted = append(accepted, cand)
		}
	}
	return accepted
}

func fullSpansOverlap(a, b model.Citation) bool {
	as, ae := a.FullSpan()
	bs, be := b.FullSpan()
	return as < be && bs < ae
}

func spansOverlap(a, b model.Citation) bool {
	as, ae := a.Span()
	bs, be := b.Span()
	return as < be && bs < ae
}

func higherPriority(a, b model.Citation) bool {
	pa, pb := a.Variant().Priority(), b.Variant().Priority()
	if pa != pb {
		return pa > pb
	}
	return populatedFields(a.Metadata()) >= populatedFields(b.Metadata())
}

func overlapRatio(a, b model.Citation) float64 {
	as, ae := a.Span()
	bs, be := b.Span()
	lo := as
	if bs > lo {
		lo = bs
	}
	hi := ae
	if be < hi {
		hi = be
	}
	if hi <= lo {
		return 0
	}
	overlap := float64(hi - lo)
	shorter := ae - as
	if be-bs < shorter {
		shorter = be - bs
	}
	if shorter <= 0 {
		return 0
	}
	return overlap / float64(shorter)
}

// isParallel implements the "keep both" parallel-citation rule (spec §4.5
// step 3, first bullet): same starting point, overlapping spans naming
// different reporters, matching party names naming different reporters, or
// a small gap consisting only of separator punctuation.
func isParallel(a, b model.Citation) bool {
	as, _ := a.FullSpan()
	bs, _ := b.FullSpan()
	if as == bs {
		return true
	}
	ra, rb := reporterOf(a), reporterOf(b)
	if ra != "" && rb != "" && ra != rb {
		if spansOverlap(a, b) {
			return true
		}
		if samePartyNames(a, b) {
			return true
		}
	}
	return gapIsSeparatorOnly(a, b)
}

func gapIsSeparatorOnly(a, b model.Citation) bool {
	doc := a.Document()
	if doc == nil {
		return false
	}
	as, ae := a.Span()
	bs, be := b.Span()
	if bs < as {
		as, ae, bs, be = bs, be, as, ae
	}
	if bs < ae {
		return false
	}
	gap := doc.Slice(ae, bs)
	if len(gap) > maxParallelGap {
		return false
	}
	return gapRe.MatchString(gap)
}

func samePartyNames(a, b model.Citation) bool {
	ma, mb := a.Metadata(), b.Metadata()
	if ma.Plaintiff == "" && ma.Defendant == "" {
		return false
	}
	return ma.Plaintiff == mb.Plaintiff && ma.Defendant == mb.Defendant
}

// isMultiSectionLaw implements the "keep both" multi-section rule: two law
// citations to the same reporter and chapter/title but different, adjacent
// or overlapping sections (spec §4.5 step 3, second bullet).
func isMultiSectionLaw(a, b model.Citation) bool {
	la, aok := a.(*model.FullLaw)
	lb, bok := b.(*model.FullLaw)
	if !aok || !bok {
		return false
	}
	if la.Reporter != lb.Reporter {
		return false
	}
	if la.Meta.Chapter != lb.Meta.Chapter || la.Meta.Title != lb.Meta.Title {
		return false
	}
	return la.Section != lb.Section && fullSpansOverlapOrAdjacent(a, b)
}

func fullSpansOverlapOrAdjacent(a, b model.Citation) bool {
	as, ae := a.FullSpan()
	bs, be := b.FullSpan()
	if as < be && bs < ae {
		return true
	}
	gap := bs - ae
	if gap < 0 {
		gap = as - be
	}
	return gap >= 0 && gap <= maxParallelGap
}

// isParentheticalContainment implements the "keep both" containment rule:
// one citation's text is inside the other's parenthetical, or its span
// falls strictly after the outer citation and within its full_span (spec
// §4.5 step 3, third bullet).
func isParentheticalContainment(outer, inner model.Citation) bool {
	return isContainedInParenthetical(outer, inner) || isContainedInParenthetical(inner, outer)
}

func isContainedInParenthetical(outer, inner model.Citation) bool {
	paren := outer.Metadata().Parenthetical
	if paren == "" {
		return false
	}
	innerText := inner.MatchedText()
	if innerText != "" && strings.Contains(paren, innerText) {
		return true
	}
	_, oe := outer.Span()
	ofs, ofe := outer.FullSpan()
	is, ie := inner.Span()
	return is >= oe && ie <= ofe && is >= ofs
}

func reporterOf(c model.Citation) string {
	switch v := c.(type) {
	case *model.FullCase:
		return v.Reporter
	case *model.ShortCase:
		return v.Reporter
	case *model.FullLaw:
		return v.Reporter
	case *model.FullJournal:
		return v.Journal
	default:
		return ""
	}
}

func populatedFields(m *model.Metadata) int {
	n := 0
	fields := []string{
		m.Plaintiff, m.Defendant, m.Subject, m.Court, m.Month, m.Day,
		m.PinCite, m.Parenthetical, m.Extra, m.Publisher, m.AntecedentGuess,
		m.ResolvedCaseName, m.ResolvedCaseNameShort, m.Volume, m.Journal,
		m.Reporter, m.Chapter, m.Section, m.Title, m.Page, m.YearRange,
	}
	for _, f := range fields {
		if f != "" {
			n++
		}
	}
	if m.HasYear {
		n++
	}
	if m.HasEndYear {
		n++
	}
	return n
}

// mergeAdjacentReferences folds a Reference immediately preceding a
// FullCase (gap <= 2 chars) into that FullCase, copying any missing
// plaintiff/defendant and extending full_span leftward (spec §4.5 step 4).
func mergeAdjacentReferences(cites model.List) model.List {
	out := make(model.List, 0, len(cites))
	for i := 0; i < len(cites); i++ {
		ref, ok := cites[i].(*model.Reference)
		if !ok || i+1 >= len(cites) {
			out = append(out, cites[i])
			continue
		}
		next, ok := cites[i+1].(*model.FullCase)
		if !ok {
			out = append(out, cites[i])
			continue
		}
		_, refEnd := ref.Span()
		nextStart, _ := next.Span()
		doc := ref.Document()
		if doc == nil || nextStart-refEnd > 2 || nextStart < refEnd {
			out = append(out, cites[i])
			continue
		}
		if strings.TrimSpace(doc.Slice(refEnd, nextStart)) != "" {
			out = append(out, cites[i])
			continue
		}
		if next.Meta.Plaintiff == "" {
			next.Meta.Plaintiff = ref.Meta.Plaintiff
		}
		if next.Meta.Defendant == "" {
			next.Meta.Defendant = ref.Meta.Defendant
		}
		refFullStart, _ := ref.FullSpan()
		_, nextFullEnd := next.FullSpan()
		if refFullStart < next.FullSpanStart {
			next.SetFullSpan(refFullStart, nextFullEnd)
		}
		out = append(out, next)
		i++
	}
	return out
}
