package clean

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"lexcite/pkg/citation/model"
)

var markupDetectRe = regexp.MustCompile(`<[^>]+>`)

var emphasisTagNames = map[string]bool{
	"em": true, "i": true, "b": true, "strong": true,
}

// NewDocument runs the requested clean steps over rawText and returns the
// Document the tokenizer and builder operate on (spec §6 clean-step
// contract: "when html is included, the raw input is first converted to
// plain text by stripping tags while the original markup is preserved as
// markup_text on the document"). Auto-detects markup when steps is empty
// and rawText looks like it contains tags, matching the auto-detect rule
// `annotate` uses (spec §6).
func NewDocument(rawText string, steps []model.CleanStep, custom map[model.CleanStep]StepFunc) *model.Document {
	hasMarkup := containsStep(steps, model.CleanHTML) || (len(steps) == 0 && markupDetectRe.MatchString(rawText))

	doc := &model.Document{CleanSteps: steps, HasMarkup: hasMarkup}

	if hasMarkup {
		doc.MarkupText = rawText
		plain := stripHTML(rawText)
		doc.PlainText = CleanText(plain, stripStep(steps, model.CleanHTML), custom)
		doc.PlainToMarkup, doc.MarkupToPlain = BuildSpanUpdaters(doc.PlainText, doc.MarkupText)
		doc.EmphasisTags = extractEmphasisTags(rawText, doc.MarkupToPlain)
		return doc
	}

	doc.PlainText = CleanText(rawText, steps, custom)
	return doc
}

func containsStep(steps []model.CleanStep, target model.CleanStep) bool {
	for _, s := range steps {
		if s == target {
			return true
		}
	}
	return false
}

func stripStep(steps []model.CleanStep, target model.CleanStep) []model.CleanStep {
	out := make([]model.CleanStep, 0, len(steps))
	for _, s := range steps {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// extractEmphasisTags walks the markup tag tree collecting the text
// contents and markup-relative spans of em/i/b/strong nodes (spec §4.4.2
// "the ordered emphasis-tag list"), then translates each markup span into
// the plain-text coordinate space via markupToPlain so the case-name scan
// can compare them against citation token spans directly.
func extractEmphasisTags(markup string, markupToPlain model.SpanUpdaterFunc) []model.EmphasisTag {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var tags []model.EmphasisTag
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		node := sel.Get(0)
		if node == nil || node.Type != html.ElementNode || !emphasisTagNames[node.Data] {
			return
		}
		text := sel.Text()
		if strings.TrimSpace(text) == "" {
			return
		}
		start := tagSourceOffset(markup, text, 0)
		if start < 0 {
			return
		}
		end := start + len(text)
		tags = append(tags, model.EmphasisTag{
			Text:        text,
			MarkupStart: start,
			MarkupEnd:   end,
			PlainStart:  markupToPlain(start, model.OffsetRight),
			PlainEnd:    markupToPlain(end, model.OffsetLeft),
		})
	})
	return tags
}

// tagSourceOffset finds text's first occurrence in markup at or after from,
// a best-effort way to recover a parsed node's source span since the HTML
// tokenizer golang.org/x/net/html does not expose byte offsets directly.
func tagSourceOffset(markup, text string, from int) int {
	idx := strings.Index(markup[from:], text)
	if idx < 0 {
		return -1
	}
	return idx + from
}
