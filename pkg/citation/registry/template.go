// Package registry builds the extractor catalog the tokenizer runs: pattern
// template expansion (spec §4.1) plus the Extractor Registry itself
// (spec §4.2), assembled from the data-table contract (spec §6).
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Variables is the immutable environment pattern expansion substitutes
// from. A fresh copy is never mutated by Expand; callers build one per
// reporter/law/journal pattern they expand.
type Variables map[string]string

// DefaultMaxPasses bounds the variable-substitution recursion (spec §4.1).
const DefaultMaxPasses = 10

var bracketSectionRe = regexp.MustCompile(`\[§\|([^\]]*)\]`)
var bareSectionRe = regexp.MustCompile(`§`)
var doubledSectionRe = regexp.MustCompile(`§§\??`)
var variableRe = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
var namedGroupOpenRe = regexp.MustCompile(`\(\?P<([A-Za-z_][A-Za-z0-9_]*)>`)

// Expand turns a symbolic template into a concrete regex string: bracket
// section-sign alternation, bare section-sign substitution, bounded
// recursive $variable substitution, named-group dialect translation, and
// duplicate-group-name resolution, in that order (spec §4.1).
func Expand(pattern string, vars Variables) (string, error) {
	pattern = expandSectionBrackets(pattern)
	pattern = expandBareSection(pattern, vars)

	expanded, err := substituteVariables(pattern, vars, DefaultMaxPasses)
	if err != nil {
		return "", err
	}

	expanded = translateGroupDialect(expanded)
	expanded = dedupeNamedGroups(expanded)
	return expanded, nil
}

// expandSectionBrackets turns `[§|x]` into `((§§?)|x)`.
func expandSectionBrackets(pattern string) string {
	return bracketSectionRe.ReplaceAllString(pattern, `((§§?)|$1)`)
}

// expandBareSection replaces a lone `§` with the section-marker variable so
// plural ("§§") forms also match, unless the pattern already spells out
// `§§?` explicitly somewhere (in which case the author already handled
// plurality and bare `§` is left alone).
func expandBareSection(pattern string, vars Variables) string {
	if doubledSectionRe.MatchString(pattern) {
		return pattern
	}
	if !strings.Contains(pattern, "§") {
		return pattern
	}
	return bareSectionRe.ReplaceAllString(pattern, "$section_marker")
}

// substituteVariables repeatedly replaces $name tokens with their value
// from vars until a pass makes no change or maxPasses is reached.
func substituteVariables(pattern string, vars Variables, maxPasses int) (string, error) {
	current := pattern
	for pass := 0; pass < maxPasses; pass++ {
		var missing string
		next := variableRe.ReplaceAllStringFunc(current, func(m string) string {
			name := variableRe.FindStringSubmatch(m)[1]
			val, ok := vars[name]
			if !ok {
				missing = name
				return m
			}
			return val
		})
		if missing != "" && next == current {
			return "", fmt.Errorf("registry: undefined template variable %q", missing)
		}
		if next == current {
			return current, nil
		}
		current = next
	}
	return current, nil
}

// translateGroupDialect rewrites `(?<name>...)` groups into `(?P<name>...)`
// without touching lookbehind assertions `(?<=...)` / `(?<!...)`, which
// also begin with `(?<` but are not named groups.
func translateGroupDialect(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		if strings.HasPrefix(pattern[i:], "(?<") && i+3 < len(pattern) {
			next := pattern[i+3]
			if next != '=' && next != '!' {
				b.WriteString("(?P<")
				i += 2
				continue
			}
		}
		b.WriteByte(pattern[i])
	}
	return b.String()
}

// dedupeNamedGroups rewrites every occurrence of a named group past its
// first to a non-capturing group, so a pattern assembled from fragments
// that each declare e.g. "year" can still compile.
func dedupeNamedGroups(pattern string) string {
	matches := namedGroupOpenRe.FindAllStringSubmatchIndex(pattern, -1)
	if len(matches) == 0 {
		return pattern
	}

	type span struct {
		openStart, openEnd int
		closeEnd           int
		name               string
		keep                bool
	}
	seen := make(map[string]bool, len(matches))
	spans := make([]span, 0, len(matches))
	for _, m := range matches {
		openStart, openEnd := m[0], m[1]
		name := pattern[m[2]:m[3]]
		closeEnd := findMatchingParen(pattern, openStart)
		if closeEnd < 0 {
			continue
		}
		keep := !seen[name]
		seen[name] = true
		spans = append(spans, span{openStart, openEnd, closeEnd, name, keep})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].openStart < spans[j].openStart })

	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		b.WriteString(pattern[cursor:s.openStart])
		if s.keep {
			b.WriteString(pattern[s.openStart:s.openEnd])
		} else {
			b.WriteString("(?:")
		}
		cursor = s.openEnd
	}
	b.WriteString(pattern[cursor:])
	return b.String()
}

// findMatchingParen returns the index just past the ')' that closes the
// '(' at openStart, respecting character classes (where parens are
// literal) and backslash escapes.
func findMatchingParen(pattern string, openStart int) int {
	depth := 0
	inClass := false
	for i := openStart; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			i++ // skip escaped char
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// AppendLawTail appends the optional publisher/year/parenthetical tail
// pattern after a law citation's main pattern (spec §4.1), deduping any
// year/month/day groups the tail shares with the already-expanded pattern.
func AppendLawTail(expandedMain, tailTemplate string, vars Variables) (string, error) {
	tail, err := substituteVariables(tailTemplate, vars, DefaultMaxPasses)
	if err != nil {
		return "", err
	}
	tail = translateGroupDialect(tail)
	combined := expandedMain + tail
	return dedupeNamedGroups(combined), nil
}

// EscapeLiteral regex-escapes a literal string for embedding as a reporter
// or journal body inside a template.
func EscapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}
