// Package model holds the shared data model of the citation engine: tokens,
// the token stream, editions, metadata, the citation sum type, resources and
// documents. It has no dependency on the tokenizer, registry, builder,
// filter, resolver or annotator packages, which all depend on it instead.
package model

import "strings"

// Kind identifies what an extractor produced a Token for.
type Kind int

const (
	KindCitation Kind = iota
	KindSection
	KindParagraph
	KindStopWord
	KindID
	KindSupra
	KindPlaceholder
	KindLaw
	KindJournal
	KindCaseReference
)

func (k Kind) String() string {
	switch k {
	case KindCitation:
		return "citation"
	case KindSection:
		return "section"
	case KindParagraph:
		return "paragraph"
	case KindStopWord:
		return "stop_word"
	case KindID:
		return "id"
	case KindSupra:
		return "supra"
	case KindPlaceholder:
		return "placeholder"
	case KindLaw:
		return "law"
	case KindJournal:
		return "journal"
	case KindCaseReference:
		return "case_reference"
	default:
		return "unknown"
	}
}

// StreamElement is either a Token or a LiteralText fragment. Concatenating
// the Text() of every element of a TokenStream must reproduce the original
// input byte-for-byte.
type StreamElement interface {
	Text() string
	Span() (start, end int)
}

// Token is a recognized span of input produced by an extractor.
type Token struct {
	MatchedText string
	Start       int
	End         int
	Groups      map[string]string
	Kind        Kind

	// Citation-token only: candidate editions and short/long polarity.
	ExactEditions     []Edition
	VariationEditions []Edition
	Short             bool

	// Law/Journal-token only: canonical reporter/journal key.
	ReporterKey string
}

func (t *Token) Text() string          { return t.MatchedText }
func (t *Token) Span() (int, int)      { return t.Start, t.End }
func (t *Token) Len() int              { return t.End - t.Start }
func (t *Token) Group(name string) string {
	if t.Groups == nil {
		return ""
	}
	return t.Groups[name]
}

// SameSpanAndKind reports whether two tokens occupy the same (start, end)
// with the same kind and an identical capture-group map, the merge
// precondition from spec §3.
func (t *Token) SameSpanAndKind(other *Token) bool {
	if t == nil || other == nil {
		return false
	}
	if t.Start != other.Start || t.End != other.End || t.Kind != other.Kind {
		return false
	}
	if len(t.Groups) != len(other.Groups) {
		return false
	}
	for k, v := range t.Groups {
		if ov, ok := other.Groups[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MergeEditions unions this token's candidate editions with another's, for
// two citation tokens of matching short/long polarity that occupy the same
// span (spec §3's merge rule).
func (t *Token) MergeEditions(other *Token) {
	if t.Kind != KindCitation || other.Kind != KindCitation || t.Short != other.Short {
		return
	}
	t.ExactEditions = unionEditions(t.ExactEditions, other.ExactEditions)
	t.VariationEditions = unionEditions(t.VariationEditions, other.VariationEditions)
}

func unionEditions(a, b []Edition) []Edition {
	seen := make(map[string]bool, len(a))
	out := make([]Edition, 0, len(a)+len(b))
	for _, e := range append(append([]Edition{}, a...), b...) {
		key := e.Reporter.ShortName + "|" + e.FoundName
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// LiteralText is a residual fragment of input between or around tokens.
type LiteralText struct {
	Content string
	Start   int
	End     int
}

func (l LiteralText) Text() string     { return l.Content }
func (l LiteralText) Span() (int, int) { return l.Start, l.End }

// TokenStream is the ordered Token/LiteralText sequence produced by the
// tokenizer.
type TokenStream []StreamElement

// String reconstructs the original input by concatenating every element.
func (ts TokenStream) String() string {
	var b strings.Builder
	for _, e := range ts {
		b.WriteString(e.Text())
	}
	return b.String()
}

// CitationTokenIndexes returns, in stream order, the indexes of every
// element that is a citation-bearing token (Citation, Law, Journal, Supra,
// Id kinds), the index set the builder walks to construct
// citation records and the metadata scanners walk backward/forward from.
func (ts TokenStream) CitationTokenIndexes() []int {
	var out []int
	for i, e := range ts {
		if tok, ok := e.(*Token); ok && isCitationBearing(tok.Kind) {
			out = append(out, i)
		}
	}
	return out
}

func isCitationBearing(k Kind) bool {
	switch k {
	case KindCitation, KindLaw, KindJournal, KindSupra, KindID:
		return true
	default:
		return false
	}
}
