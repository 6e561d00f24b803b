package builder

import (
	"strings"

	"lexcite/pkg/citation/model"
)

// emphasisProximity bounds how close an emphasis tag must be, in plain-text
// characters, to the citation it might name (spec §4.4.2: "within fifty
// characters").
const emphasisProximity = 50

// maxMergedEmphasisTags bounds how many consecutive emphasis tags the scan
// will glue together into one candidate case name (spec §4.4.2: "merge up
// to N consecutive emphasis tags").
const maxMergedEmphasisTags = 3

// ScanCaseNameHTML inspects the document's emphasis-tag list for a case
// name immediately preceding citationStart (spec §4.4.2). It returns
// ok=false when no suitable tag configuration is found, signaling the
// caller to fall back to the plain-text scan.
func ScanCaseNameHTML(doc *model.Document, citationStart int) (res CaseNameResult, ok bool) {
	if doc == nil || !doc.HasMarkup {
		return res, false
	}

	var candidates []model.EmphasisTag
	for _, tag := range doc.EmphasisTags {
		if tag.PlainEnd <= citationStart && citationStart-tag.PlainEnd <= emphasisProximity {
			candidates = append(candidates, tag)
		}
	}
	if len(candidates) == 0 {
		return res, false
	}

	last := candidates[len(candidates)-1]
	if plaintiff, defendant, found := SplitParties(last.Text); found {
		res.Plaintiff = StripStopWords(plaintiff)
		res.Defendant = StripStopWords(defendant)
		res.FullSpanStart = last.PlainStart
		res.Found = true
		return res, true
	}

	if glued, start, ok := gluedCorporateSuffix(doc, candidates, citationStart); ok {
		plaintiff, defendant, found := SplitParties(glued)
		if found {
			res.Plaintiff = StripStopWords(plaintiff)
			res.Defendant = StripStopWords(defendant)
			res.FullSpanStart = start
			res.Found = true
			return res, true
		}
	}

	if merged, start, ok := mergeConsecutiveTags(doc, candidates); ok {
		plaintiff, defendant, found := SplitParties(merged)
		if found {
			res.Plaintiff = StripStopWords(plaintiff)
			res.Defendant = StripStopWords(defendant)
			res.FullSpanStart = start
			res.Found = true
			return res, true
		}
	}

	return res, false
}

// gluedCorporateSuffix handles a single emphasis tag immediately followed
// in the plain text by a corporate suffix and then " v. " and a defendant
// name (spec §4.4.2).
func gluedCorporateSuffix(doc *model.Document, candidates []model.EmphasisTag, citationStart int) (string, int, bool) {
	last := candidates[len(candidates)-1]
	between := doc.Slice(last.PlainEnd, citationStart)
	trimmed := strings.TrimLeft(between, " ")
	for suffix := range corporateSuffixes {
		candidate := ", " + suffix
		if strings.HasPrefix(trimmed, candidate) || strings.HasPrefix(trimmed, suffix) {
			rest := strings.TrimPrefix(strings.TrimPrefix(trimmed, candidate), suffix)
			return last.Text + ", " + suffix + rest, last.PlainStart, true
		}
	}
	return "", 0, false
}

// mergeConsecutiveTags glues consecutive emphasis tags separated only by
// whitespace or a bare " v. " into one candidate (spec §4.4.2).
func mergeConsecutiveTags(doc *model.Document, candidates []model.EmphasisTag) (string, int, bool) {
	n := len(candidates)
	if n > maxMergedEmphasisTags {
		candidates = candidates[n-maxMergedEmphasisTags:]
		n = maxMergedEmphasisTags
	}
	if n < 2 {
		return "", 0, false
	}
	var b strings.Builder
	b.WriteString(candidates[0].Text)
	for i := 1; i < n; i++ {
		gap := doc.Slice(candidates[i-1].PlainEnd, candidates[i].PlainStart)
		trimmedGap := strings.TrimSpace(gap)
		if trimmedGap != "" && trimmedGap != "v." && trimmedGap != "vs." {
			return "", 0, false
		}
		if trimmedGap == "" {
			b.WriteString(" ")
		} else {
			b.WriteString(" " + trimmedGap + " ")
		}
		b.WriteString(candidates[i].Text)
	}
	return b.String(), candidates[0].PlainStart, true
}
