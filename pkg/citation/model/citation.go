package model

import (
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
)

// Variant is the tag of the citation sum type described in spec §3.
type Variant int

const (
	VariantFullCase Variant = iota
	VariantShortCase
	VariantFullLaw
	VariantFullJournal
	VariantSupra
	VariantID
	VariantIDLaw
	VariantReference
	VariantUnknown
)

func (v Variant) String() string {
	switch v {
	case VariantFullCase:
		return "full_case"
	case VariantShortCase:
		return "short_case"
	case VariantFullLaw:
		return "full_law"
	case VariantFullJournal:
		return "full_journal"
	case VariantSupra:
		return "supra"
	case VariantID:
		return "id"
	case VariantIDLaw:
		return "id_law"
	case VariantReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Priority implements the Filter's priority ordering (spec §4.5 step 2).
func (v Variant) Priority() int {
	switch v {
	case VariantFullCase, VariantFullLaw, VariantFullJournal:
		return 5
	case VariantShortCase:
		return 4
	case VariantSupra, VariantID, VariantIDLaw:
		return 3
	case VariantReference:
		return 2
	default:
		return 1
	}
}

// Citation is the sum type over every citation variant. Every variant
// embeds Base, which supplies the common span/metadata/document accessors;
// each variant additionally implements Variant() and Hash().
type Citation interface {
	Variant() Variant
	Span() (start, end int)
	FullSpan() (start, end int)
	SetFullSpan(start, end int)
	Metadata() *Metadata
	Index() int
	Token() *Token
	Document() *Document
	SetDocument(d *Document)
	MatchedText() string
	Hash() string
}

// Base carries the fields and accessors common to every citation variant.
type Base struct {
	TokenIndex                 int
	Tok                        *Token
	SpanStart, SpanEnd         int
	FullSpanStart, FullSpanEnd int
	Meta                       Metadata
	Groups                     map[string]string
	Doc                        *Document
}

func (b *Base) Span() (int, int)     { return b.SpanStart, b.SpanEnd }
func (b *Base) FullSpan() (int, int) { return b.FullSpanStart, b.FullSpanEnd }
func (b *Base) SetFullSpan(s, e int) { b.FullSpanStart, b.FullSpanEnd = s, e }
func (b *Base) Metadata() *Metadata  { return &b.Meta }
func (b *Base) Index() int           { return b.TokenIndex }
func (b *Base) Token() *Token        { return b.Tok }
func (b *Base) Document() *Document  { return b.Doc }
func (b *Base) SetDocument(d *Document) {
	b.Doc = d
}
func (b *Base) MatchedText() string {
	if b.Doc == nil {
		return ""
	}
	return b.Doc.Slice(b.SpanStart, b.SpanEnd)
}

// FullCase is a citation that fully identifies a case: volume, reporter,
// page, plus whatever the case-name and post-citation scans recovered.
type FullCase struct {
	Base
	Volume            string
	Reporter          string
	Page              string
	EditionGuess      *Edition
	ExactEditions     []Edition
	VariationEditions []Edition
}

func (c *FullCase) Variant() Variant { return VariantFullCase }
func (c *FullCase) Hash() string {
	if c.Page == "" {
		return uniqueHash(c)
	}
	return fmt.Sprintf("full_case|%s|%s|%s|%s", c.Volume, c.Reporter, c.Page, editionKey(c.ExactEditions, c.VariationEditions))
}

// ShortCase is a later reference giving volume/reporter/page (volume
// optional) relying on an antecedent case name.
type ShortCase struct {
	Base
	Volume       string
	Reporter     string
	Page         string
	EditionGuess *Edition
}

func (c *ShortCase) Variant() Variant { return VariantShortCase }
func (c *ShortCase) Hash() string {
	if c.Page == "" {
		return uniqueHash(c)
	}
	return fmt.Sprintf("short_case|%s|%s|%s", c.Volume, c.Reporter, c.Page)
}

// FullLaw is a citation to a statute or regulation. Section holds the raw
// (possibly multi-section) locator; Chapter/Title/Volume in Metadata carry
// the reporter-specific normalization from spec §9.
type FullLaw struct {
	Base
	Reporter string
	Section  string
}

func (c *FullLaw) Variant() Variant { return VariantFullLaw }
func (c *FullLaw) Hash() string {
	return fmt.Sprintf("full_law|%s|%s|%s", c.Reporter, c.Meta.Chapter+"/"+c.Meta.Title+"/"+c.Meta.Volume, c.Section)
}

// FullJournal is a citation to a law-review-style journal article.
type FullJournal struct {
	Base
	Volume  string
	Journal string
	Page    string
}

func (c *FullJournal) Variant() Variant { return VariantFullJournal }
func (c *FullJournal) Hash() string {
	return fmt.Sprintf("full_journal|%s|%s|%s", c.Volume, c.Journal, c.Page)
}

// Supra is a back-reference by name to an earlier full citation.
type Supra struct{ Base }

func (c *Supra) Variant() Variant { return VariantSupra }
func (c *Supra) Hash() string {
	return fmt.Sprintf("supra|%s|%s", c.Meta.AntecedentGuess, c.Meta.PinCite)
}

// ID means "the same source as the most recently resolved citation."
type ID struct{ Base }

func (c *ID) Variant() Variant { return VariantID }
func (c *ID) Hash() string     { return uniqueHash(c) }

// IDLaw is an Id citation to a law/regulation section, e.g. "Id. § 778.114".
type IDLaw struct {
	Base
	Section       string
	SectionMarker string
}

func (c *IDLaw) Variant() Variant { return VariantIDLaw }
func (c *IDLaw) Hash() string     { return uniqueHash(c) }

// Reference is a back-reference matched by party name or resolved case-name
// field rather than by citation form.
type Reference struct{ Base }

func (c *Reference) Variant() Variant { return VariantReference }
func (c *Reference) Hash() string {
	return fmt.Sprintf("reference|%s|%s", c.Meta.Plaintiff, c.Meta.Defendant)
}

// Unknown is a citation-shaped token the builder could not classify more
// specifically.
type Unknown struct{ Base }

func (c *Unknown) Variant() Variant { return VariantUnknown }
func (c *Unknown) Hash() string     { return uniqueHash(c) }

var hashCounter uint64

// uniqueHash is used by variants whose spec-mandated hash is "unique per
// instance": Id, Unknown, and pageless case citations.
func uniqueHash(c Citation) string {
	return fmt.Sprintf("unique|%s|%d|%p", c.Variant(), atomic.AddUint64(&hashCounter, 1), c)
}

func editionKey(exact, variation []Edition) string {
	names := make([]string, 0, len(exact)+len(variation))
	for _, e := range exact {
		names = append(names, e.Reporter.ShortName)
	}
	for _, e := range variation {
		names = append(names, e.Reporter.ShortName)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// List is a convenience alias for a citation slice, ordered by Span().Start
// once it has passed through the filter.
type List []Citation

func (l List) Len() int      { return len(l) }
func (l List) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
