package builder

import (
	"regexp"
	"strings"

	"lexcite/pkg/citation/model"
)

// preCiteAntecedentRe captures a single capitalized word or phrase
// immediately preceding a citation, used only when the full backward
// case-name scan yields nothing (spec §4.4.4).
var preCiteAntecedentRe = regexp.MustCompile(`(?P<antecedent>[A-Z][A-Za-z&.'-]*(?:\s+[A-Z][A-Za-z&.'-]*){0,3}),?\s*$`)

// ScanPreCitation is the fallback antecedent scan (spec §4.4.4): walk
// backward from citationStart over a simple capitalized-word pattern and
// set antecedent_guess, extending full_span leftward on a match.
func ScanPreCitation(fullText string, citationStart, fullSpanStart int, meta *model.Metadata) (newFullSpanStart int) {
	windowStart := citationStart - 120
	if windowStart < 0 {
		windowStart = 0
	}
	preceding := fullText[windowStart:citationStart]

	m := preCiteAntecedentRe.FindStringSubmatchIndex(preceding)
	if m == nil {
		return fullSpanStart
	}
	names := preCiteAntecedentRe.SubexpNames()
	groups := submatchMap(matchStrings(preceding, m), names)
	antecedent := strings.TrimSpace(groups["antecedent"])
	if antecedent == "" {
		return fullSpanStart
	}
	meta.AntecedentGuess = antecedent

	absoluteStart := windowStart + m[0]
	if absoluteStart < fullSpanStart {
		return absoluteStart
	}
	return fullSpanStart
}

func matchStrings(s string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 || hi < 0 {
			continue
		}
		out[i] = s[lo:hi]
	}
	return out
}
