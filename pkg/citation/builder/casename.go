package builder

import (
	"regexp"
	"strings"

	"lexcite/pkg/citation/model"
)

// caseNameWindow bounds the backward scan (spec §4.4.1: "median case-name
// length ~= 28 tokens").
const caseNameWindow = 28

var (
	parenYearRe       = regexp.MustCompile(`^\((?P<year>(?:17|18|19|20)\d{2})\)$`)
	terminalPunctRe   = regexp.MustCompile(`[;\x{2018}\x{2019}\x{201C}\x{201D}"]$`)
	capAbbrevAfterVRe = regexp.MustCompile(`^[A-Z][A-Za-z]*\.$`)
)

// stopWords beyond v/vs that end the backward scan immediately (spec
// §4.4.1 "any other stop-word"); configurable per spec §9.
var hardStopWords = map[string]bool{
	"held": true, "citing": true, "quoting": true, "accord": true,
}

// CaseNameResult is what the backward scan recovered.
type CaseNameResult struct {
	Plaintiff       string
	Defendant       string
	AntecedentGuess string
	PreCiteYear     int
	HasPreCiteYear  bool
	FullSpanStart   int
	Found           bool
}

// ScanCaseName walks the token stream backward from citationIndex (spec
// §4.4.1). short indicates a ShortCase (recovered text becomes
// AntecedentGuess rather than Plaintiff/Defendant).
func ScanCaseName(stream model.TokenStream, citationIndex int, short bool) CaseNameResult {
	res := CaseNameResult{FullSpanStart: elementStart(stream, citationIndex)}

	sawV := false
	wordsCollected := 0
	var words []string
	var wordStartOffsets []int

	i := citationIndex - 1
	steps := 0
	for i >= 0 && steps < caseNameWindow {
		steps++
		el := stream[i]

		// A stop-word token ("v", "vs", "In re", ...) is part of the name.
		if tok, ok := el.(*model.Token); ok && tok.Kind == model.KindStopWord {
			el = model.LiteralText{Content: tok.MatchedText, Start: tok.Start, End: tok.End}
		}

		if lit, ok := el.(model.LiteralText); ok {
			content := strings.TrimSuffix(lit.Content, ",")
			if strings.TrimSpace(content) == "" {
				i--
				continue
			}
			// The period the stop-word match leaves behind after "v".
			if content == "." {
				i--
				continue
			}
			if m := parenYearRe.FindStringSubmatch(content); m != nil {
				if y, ok := parseYearLiteral(m[1]); ok {
					res.PreCiteYear, res.HasPreCiteYear = y, true
				}
				i--
				continue
			}
			if terminalPunctRe.MatchString(content) {
				break
			}
			if strings.HasPrefix(content, "(") && wordsCollected > 2 {
				break
			}
			lower := strings.ToLower(content)
			isLower := content == lower && content != strings.ToUpper(content)

			if isLower && sawV {
				break
			}
			if lower == "v." || lower == "v" || lower == "vs." || lower == "vs" {
				sawV = true
				words = append([]string{content}, words...)
				wordStartOffsets = append([]int{lit.Start}, wordStartOffsets...)
				wordsCollected++
				i--
				continue
			}
			if sawV && capAbbrevAfterVRe.MatchString(content) && wordsCollected > 1 {
				break
			}
			if hardStopWords[lower] {
				break
			}
			if isLower && !sawV && !connectives[lower] {
				break
			}

			words = append([]string{content}, words...)
			wordStartOffsets = append([]int{lit.Start}, wordStartOffsets...)
			wordsCollected++
			i--
			continue
		}

		// A citation-bearing token is a hard separator (spec: "treat as a
		// separator (reset title-start-index to just before it)").
		words = nil
		wordStartOffsets = nil
		wordsCollected = 0
		i--
	}

	if len(words) == 0 {
		return res
	}

	candidate := strings.Join(words, " ")
	res.FullSpanStart = wordStartOffsets[0]

	if sawV {
		plaintiff, defendant, ok := SplitParties(candidate)
		if ok {
			plaintiff = StripStopWords(plaintiff)
			defendant = StripStopWords(defendant)
			if IsBareCorporateSuffix(plaintiff) {
				plaintiff = ""
			}
			if short {
				res.AntecedentGuess = strings.TrimSpace(plaintiff + " v. " + defendant)
			} else {
				res.Plaintiff = plaintiff
				res.Defendant = defendant
			}
			res.Found = true
			return res
		}
	}

	cleaned := StripStopWords(candidate)
	if _, ok := OnePartyPrefix(cleaned); ok {
		if short {
			res.AntecedentGuess = cleaned
		} else {
			res.Plaintiff = cleaned
			res.Defendant = ""
		}
		res.Found = true
		return res
	}

	if cleaned == "" {
		return res
	}
	if short {
		res.AntecedentGuess = cleaned
	} else {
		res.Defendant = cleaned
	}
	res.Found = true
	return res
}

func elementStart(stream model.TokenStream, idx int) int {
	if idx < 0 || idx >= len(stream) {
		return 0
	}
	start, _ := stream[idx].Span()
	return start
}

func parseYearLiteral(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// RecoverInRePrefix re-scans the raw input immediately before citationStart
// for an "In re " prefix the Stop-Word Stripper removed (spec §4.4.1
// post-processing).
func RecoverInRePrefix(fullText string, nameStart int, name string) string {
	if strings.HasPrefix(name, "In re ") || strings.HasPrefix(name, "Matter of ") || strings.HasPrefix(name, "Ex parte ") {
		return name
	}
	windowStart := nameStart - 10
	if windowStart < 0 {
		windowStart = 0
	}
	preceding := fullText[windowStart:nameStart]
	for _, p := range onePartyPrefixes {
		if strings.HasSuffix(preceding, p) {
			return p + name
		}
	}
	return name
}
