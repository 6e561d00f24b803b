package builder

import (
	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/registry"
)

// Builder constructs typed citations from a tokenized Document (spec §4.4).
type Builder struct {
	tables *registry.Tables
	courts *CourtLookup
}

// New builds a Builder over the data-table contract.
func New(tables *registry.Tables) *Builder {
	return &Builder{tables: tables, courts: NewCourtLookup(tables.Courts)}
}

// Build iterates every citation-bearing token in doc.Tokens and constructs
// the corresponding typed Citation (spec §2 component 4).
func (b *Builder) Build(doc *model.Document) model.List {
	stream := doc.Tokens
	var out model.List
	for _, idx := range stream.CitationTokenIndexes() {
		tok, ok := stream[idx].(*model.Token)
		if !ok {
			continue
		}
		if c := b.buildOne(doc, stream, idx, tok); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (b *Builder) buildOne(doc *model.Document, stream model.TokenStream, idx int, tok *model.Token) model.Citation {
	base := model.Base{
		TokenIndex: idx,
		Tok:        tok,
		SpanStart:  tok.Start,
		SpanEnd:    tok.End,
		Groups:     tok.Groups,
		Doc:        doc,
	}
	base.FullSpanStart, base.FullSpanEnd = tok.Start, tok.End

	switch tok.Kind {
	case model.KindCitation:
		if tok.Short {
			return b.buildShortCase(doc, stream, idx, base)
		}
		return b.buildFullCase(doc, stream, idx, base)
	case model.KindLaw:
		return b.buildFullLaw(doc, base)
	case model.KindJournal:
		return b.buildFullJournal(doc, base)
	case model.KindSupra:
		return b.buildSupra(base)
	case model.KindID:
		return b.buildID(base)
	default:
		return nil
	}
}

func (b *Builder) buildFullCase(doc *model.Document, stream model.TokenStream, idx int, base model.Base) model.Citation {
	cit := &model.FullCase{Base: base}
	cit.Volume = base.Groups["volume"]
	cit.Reporter = base.Groups["reporter"]
	cit.Page = base.Groups["page"]
	cit.Meta.Volume, cit.Meta.Reporter, cit.Meta.Page = cit.Volume, cit.Reporter, cit.Page
	cit.ExactEditions = base.Tok.ExactEditions
	cit.VariationEditions = base.Tok.VariationEditions

	consumed := ScanPostCitation(doc.PlainText, base.SpanEnd, b.courts, &cit.Meta)
	cit.SetFullSpan(base.SpanStart, base.SpanEnd+consumed)

	nameResult, found := b.scanCaseName(doc, stream, idx, false)
	if found {
		cit.Meta.Plaintiff = nameResult.Plaintiff
		cit.Meta.Defendant = RecoverInRePrefix(doc.PlainText, nameResult.FullSpanStart, nameResult.Defendant)
		if nameResult.HasPreCiteYear && !cit.Meta.HasYear {
			cit.Meta.SetYear(nameResult.PreCiteYear)
		}
		if nameResult.FullSpanStart < cit.FullSpanStart {
			cit.FullSpanStart = nameResult.FullSpanStart
		}
	} else {
		newStart := ScanPreCitation(doc.PlainText, base.SpanStart, cit.FullSpanStart, &cit.Meta)
		cit.FullSpanStart = newStart
	}

	cit.EditionGuess = GuessEdition(cit.ExactEditions, cit.VariationEditions, cit.Meta.Year, cit.Meta.HasYear)
	return cit
}

func (b *Builder) buildShortCase(doc *model.Document, stream model.TokenStream, idx int, base model.Base) model.Citation {
	cit := &model.ShortCase{Base: base}
	cit.Volume = base.Groups["volume"]
	cit.Reporter = base.Groups["reporter"]
	cit.Page = base.Groups["page"]
	// The short form's own "at <page>" already is the pin cite; seed it
	// before the forward scan so it survives even when nothing follows.
	cit.Meta.PinCite = cit.Page

	consumed := ScanPostCitation(doc.PlainText, base.SpanEnd, b.courts, &cit.Meta)
	cit.SetFullSpan(base.SpanStart, base.SpanEnd+consumed)

	nameResult, found := b.scanCaseName(doc, stream, idx, true)
	if found {
		cit.Meta.AntecedentGuess = nameResult.AntecedentGuess
		if nameResult.FullSpanStart < cit.FullSpanStart {
			cit.FullSpanStart = nameResult.FullSpanStart
		}
	} else {
		cit.FullSpanStart = ScanPreCitation(doc.PlainText, base.SpanStart, cit.FullSpanStart, &cit.Meta)
	}

	cit.EditionGuess = GuessEdition(base.Tok.ExactEditions, base.Tok.VariationEditions, cit.Meta.Year, cit.Meta.HasYear)
	return cit
}

// scanCaseName tries the HTML-assisted scan first when the document carries
// markup, falling back to the plain-text scan (spec §4.4.2: "Fall back to
// the plain-text scan if no suitable configuration is found").
func (b *Builder) scanCaseName(doc *model.Document, stream model.TokenStream, idx int, short bool) (CaseNameResult, bool) {
	spanStart, _ := stream[idx].Span()
	if doc.HasMarkup {
		if res, ok := ScanCaseNameHTML(doc, spanStart); ok {
			return res, true
		}
	}
	res := ScanCaseName(stream, idx, short)
	return res, res.Found
}

func (b *Builder) buildFullLaw(doc *model.Document, base model.Base) model.Citation {
	cit := &model.FullLaw{Base: base}
	cit.Reporter = base.Groups["reporter"]

	sectionForm := b.sectionFormFor(base.Tok.ReporterKey)
	rawSection := base.Groups["section"]
	part, sectionOnly := NormalizeLawSection(sectionForm, rawSection)
	cit.Section = sectionOnly
	cit.Meta.Section = sectionOnly
	if part != "" {
		cit.Meta.Chapter = part
	}
	ApplyLawLocatorFields(sectionForm, base.Groups["locator"], &cit.Meta)

	if y := base.Groups["year"]; y != "" {
		if n, ok := parseYearLiteral(y); ok {
			cit.Meta.SetYear(n)
		}
	}
	cit.Meta.Month = base.Groups["month"]
	cit.Meta.Day = base.Groups["day"]
	cit.Meta.Publisher = base.Groups["publisher"]
	cit.Meta.Parenthetical = base.Groups["parenthetical"]

	consumed := ScanPostCitation(doc.PlainText, base.SpanEnd, b.courts, &cit.Meta)
	cit.SetFullSpan(base.SpanStart, base.SpanEnd+consumed)
	return cit
}

func (b *Builder) sectionFormFor(reporterKey string) string {
	if b.tables == nil {
		return ""
	}
	entry, ok := b.tables.Laws[reporterKey]
	if !ok {
		return ""
	}
	return entry.SectionForm
}

func (b *Builder) buildFullJournal(doc *model.Document, base model.Base) model.Citation {
	cit := &model.FullJournal{Base: base}
	cit.Volume = base.Groups["volume"]
	cit.Journal = base.Groups["reporter"]
	cit.Page = base.Groups["page"]
	cit.Meta.PinCite = base.Groups["pin_cite"]
	if y := base.Groups["year"]; y != "" {
		if n, ok := parseYearLiteral(y); ok {
			cit.Meta.SetYear(n)
		}
	}

	consumed := ScanPostCitation(doc.PlainText, base.SpanEnd, b.courts, &cit.Meta)
	cit.SetFullSpan(base.SpanStart, base.SpanEnd+consumed)
	return cit
}

func (b *Builder) buildSupra(base model.Base) model.Citation {
	cit := &model.Supra{Base: base}
	cit.Meta.AntecedentGuess = base.Groups["antecedent"]
	cit.Meta.PinCite = base.Groups["pin_cite"]
	return cit
}

func (b *Builder) buildID(base model.Base) model.Citation {
	if section := base.Groups["section"]; section != "" {
		cit := &model.IDLaw{Base: base}
		cit.Section = section
		cit.SectionMarker = base.Groups["section_marker"]
		cit.Meta.Section = section
		return cit
	}
	cit := &model.ID{Base: base}
	cit.Meta.PinCite = base.Groups["pin_cite"]
	return cit
}

