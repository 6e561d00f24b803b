package builder

import (
	"regexp"
	"strconv"
	"strings"

	"lexcite/pkg/citation/model"
)

// PostCiteWindow bounds how much trailing text the forward scan inspects
// (spec §4.4.3: "capped at 300 characters").
const PostCiteWindow = 300

var yearRe = `(?:17|18|19|20)\d{2}`

// postCiteRe is the primary forward-scan pattern (spec §4.4.3 alternative
// a): optional pin cite, optional free "extra" text, a court+date
// parenthetical, and an optional second parenthetical.
var postCiteRe = regexp.MustCompile(
	`^(?:,?\s*(?:at\s+)?(?P<pin_cite>\d+(?:-\d+)?(?:\s*n\.\s*\d+)?))?` +
		`(?P<extra>[^()]{0,80}?)` +
		`\(\s*(?:(?P<court>[0-9A-Za-z.&'/ ]+?)\s+)?(?P<yearspec>` + yearRe + `(?:-\d{2,4})?)\s*\)` +
		`(?:\s*\((?P<parenthetical>[^()]*)\))?`,
)

// barePinCiteRe is the fallback pattern (spec §4.4.3 alternative b): a
// bare pin cite with no date parenthetical. "at" is optional so the
// comma-form pin cite ("1 U.S. 12, 347-348") is recognized too.
var barePinCiteRe = regexp.MustCompile(`^,?\s*(?:at\s+)?(?P<pin_cite>\d+(?:-\d+)?)`)

// ScanPostCitation runs the forward scan over the 300-character tail
// starting after a citation's match, populates meta's pin_cite, extra,
// parenthetical, year/month/day, and court fields (spec §4.4.3), and
// returns how many bytes of the tail were consumed so the caller can
// extend the citation's full_span to include them.
func ScanPostCitation(fullText string, citationEnd int, courts *CourtLookup, meta *model.Metadata) (consumed int) {
	end := citationEnd + PostCiteWindow
	if end > len(fullText) {
		end = len(fullText)
	}
	if citationEnd >= len(fullText) {
		return 0
	}
	tail := fullText[citationEnd:end]

	if loc := postCiteRe.FindStringSubmatchIndex(tail); loc != nil {
		m := matchStrings(tail, loc)
		names := postCiteRe.SubexpNames()
		groups := submatchMap(m, names)
		if pinCite := strings.TrimSpace(groups["pin_cite"]); pinCite != "" {
			meta.PinCite = pinCite
		}
		if extra := strings.TrimSpace(strings.Trim(groups["extra"], ", ")); extra != "" {
			meta.Extra = extra
		}
		meta.Parenthetical = strings.TrimSpace(groups["parenthetical"])
		applyYearSpec(groups["yearspec"], meta)
		if court := strings.TrimSpace(groups["court"]); court != "" && courts != nil {
			meta.Court = courts.Resolve(court)
		}
		return loc[1]
	}

	if loc := barePinCiteRe.FindStringSubmatchIndex(tail); loc != nil {
		m := matchStrings(tail, loc)
		meta.PinCite = strings.TrimSpace(m[1])
		return loc[1]
	}

	return scanBalancedParenFallback(tail, courts, meta)
}

func submatchMap(m []string, names []string) map[string]string {
	out := make(map[string]string, len(names))
	for i, name := range names {
		if name == "" || i >= len(m) {
			continue
		}
		out[name] = m[i]
	}
	return out
}

// applyYearSpec parses a bare year or a year range (YYYY-YY or YYYY-YYYY)
// and populates meta's year fields (spec §4.4.3: "Year-range handling is
// centralized").
func applyYearSpec(spec string, meta *model.Metadata) {
	if spec == "" {
		return
	}
	if !strings.Contains(spec, "-") {
		if y, err := strconv.Atoi(spec); err == nil {
			meta.SetYear(y)
		}
		return
	}
	ApplyYearRange(spec, meta)
}

// ApplyYearRange parses a literal "YYYY-YY" or "YYYY-YYYY" range, validates
// its width (<= 10 years), and sets year/year_range/end_year; an invalid
// range produces a warning instead of failing the scan (spec §4.4.3).
func ApplyYearRange(spec string, meta *model.Metadata) {
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		meta.AddWarning("malformed year range: " + spec)
		return
	}
	startYear, err := strconv.Atoi(parts[0])
	if err != nil {
		meta.AddWarning("malformed year range: " + spec)
		return
	}
	endPart := parts[1]
	var endYear int
	switch len(endPart) {
	case 2:
		endYear = (startYear/100)*100 + mustAtoi(endPart)
		if endYear < startYear {
			endYear += 100
		}
	case 4:
		endYear, err = strconv.Atoi(endPart)
		if err != nil {
			meta.AddWarning("malformed year range: " + spec)
			return
		}
	default:
		meta.AddWarning("malformed year range: " + spec)
		return
	}

	if endYear < startYear || endYear-startYear > 10 {
		meta.AddWarning("implausible year range: " + spec)
		return
	}

	meta.SetYear(startYear)
	meta.YearRange = spec
	meta.SetEndYear(endYear)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// scanBalancedParenFallback handles a tail whose date parenthetical
// contains nested parens the primary regex's non-nesting `[^()]*` body
// cannot match (spec §4.4.3: "simpler balanced-paren fallback").
func scanBalancedParenFallback(tail string, courts *CourtLookup, meta *model.Metadata) int {
	start := strings.IndexByte(tail, '(')
	if start < 0 {
		return 0
	}
	depth := 0
	end := -1
	for i := start; i < len(tail); i++ {
		switch tail[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return 0
	}
	body := tail[start+1 : end]

	pin := barePinCiteRe.FindStringSubmatch(tail[:start])
	if pin != nil {
		meta.PinCite = strings.TrimSpace(pin[1])
	}

	yearPattern := regexp.MustCompile(`(?P<court>[0-9A-Za-z.&'/ ]*?)\s*(?P<yearspec>` + yearRe + `(?:-\d{2,4})?)\s*$`)
	if m := yearPattern.FindStringSubmatch(body); m != nil {
		names := yearPattern.SubexpNames()
		groups := submatchMap(m, names)
		applyYearSpec(groups["yearspec"], meta)
		if court := strings.TrimSpace(groups["court"]); court != "" && courts != nil {
			meta.Court = courts.Resolve(court)
		}
	} else {
		meta.Parenthetical = strings.TrimSpace(body)
	}
	return end + 1
}
