// Package builder implements the Citation Builder and its metadata
// scanners (spec §4.4): it walks the token stream, constructs a typed
// Citation per citation-bearing token, and scans backward/forward for case
// names, pin cites, courts, years, and parentheticals.
package builder

import (
	"regexp"
	"strings"
)

// leadingStopWords are stripped from the front of a recovered case-name
// candidate. Configurable set per spec §9 open question: "the exact list
// of common legal abbreviations... treat it as a configurable set."
var leadingStopWords = []string{
	"the", "of", "and", "an", "a",
}

// connectives may appear mid-candidate without ending the backward scan
// (spec §4.4.1).
var connectives = map[string]bool{
	"of": true, "the": true, "an": true, "and": true, "ex": true,
	"rel.": true, "in": true, "re": true, "on": true, "to": true,
	"at": true, "by": true,
}

// corporateSuffixes are preserved with a preceding comma and never treated
// as a standalone party name (spec §4.4.1).
var corporateSuffixes = map[string]bool{
	"Inc.": true, "Inc": true, "Corp.": true, "Corp": true,
	"LLC": true, "L.L.C.": true, "Ltd.": true, "Ltd": true,
	"Co.": true, "Co": true, "L.P.": true, "LP": true,
	"N.A.": true, "P.C.": true,
}

var corporateSuffixCommaRe = regexp.MustCompile(`\s+,\s*(Inc|Corp|LLC|Ltd|Co|L\.P\.|LP|N\.A\.|P\.C\.)\b`)

// StripStopWords cleans a recovered case-name candidate (spec §4.4.1's
// "Stop-Word Stripper"): removes leading stop-words, preserves the comma
// before a corporate suffix, preserves trailing dots belonging to
// abbreviations, and collapses whitespace.
func StripStopWords(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = corporateSuffixCommaRe.ReplaceAllString(s, ", $1")

	words := strings.Fields(s)
	i := 0
	for i < len(words)-1 { // never strip down to nothing
		lw := strings.ToLower(strings.Trim(words[i], ".,"))
		if !isLeadingStopWord(lw) {
			break
		}
		i++
	}
	return strings.Join(words[i:], " ")
}

func isLeadingStopWord(w string) bool {
	for _, sw := range leadingStopWords {
		if w == sw {
			return true
		}
	}
	return false
}

// IsBareCorporateSuffix reports whether s, once trimmed, is exactly a
// corporate suffix with nothing else (spec §4.4.1: reject such a
// plaintiff).
func IsBareCorporateSuffix(s string) bool {
	return corporateSuffixes[strings.TrimSpace(s)]
}

// SplitParties splits a cleaned case-name candidate on the first " v. " or
// " vs. " boundary into plaintiff/defendant (spec §4.4.1).
func SplitParties(s string) (plaintiff, defendant string, ok bool) {
	lower := strings.ToLower(s)
	for _, sep := range []string{" v. ", " vs. ", " v ", " vs "} {
		if idx := strings.Index(lower, sep); idx >= 0 {
			return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx+len(sep):]), true
		}
	}
	return "", "", false
}

var onePartyPrefixes = []string{"In re ", "Matter of ", "Ex parte "}

// OnePartyPrefix returns the recognized one-party prefix at the start of s,
// if any (spec §4.4.1: "In re X", "Matter of X", "Ex parte X").
func OnePartyPrefix(s string) (prefix string, ok bool) {
	for _, p := range onePartyPrefixes {
		if strings.HasPrefix(s, p) {
			return p, true
		}
	}
	return "", false
}
