package annotate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lexcite/pkg/citation/model"
)

// skipTags never contribute to the virtual plain text a citation's spans
// are offset against (spec §4.8: "script, style, noscript").
var skipTags = map[string]bool{"script": true, "style": true, "noscript": true}

// Markup implements the markup-mode annotator (spec §4.8): parse the
// document into a tag tree, build a virtual plain text from every text
// node outside a skip region, then splice each citation's annotated text
// into the node(s) it overlaps, splitting across tag boundaries so every
// fragment wraps independently.
func Markup(markupText string, cites model.List, fn Func) (string, error) {
	if fn == nil {
		fn = DefaultFunc
	}
	doc, err := html.Parse(strings.NewReader(markupText))
	if err != nil {
		return "", err
	}

	spans := collectTextSpans(doc)

	byNode := make(map[*html.Node][]overlap)
	for _, c := range cites {
		s, e := c.Span()
		for _, ts := range spans {
			lo, hi := max(s, ts.start), min(e, ts.end)
			if lo < hi {
				byNode[ts.node] = append(byNode[ts.node], overlap{lo - ts.start, hi - ts.start, c})
			}
		}
	}

	for n, ovs := range byNode {
		sortOverlaps(ovs)
		wrapTextNode(n, ovs, fn)
	}

	var out strings.Builder
	if err := html.Render(&out, doc); err != nil {
		return "", err
	}
	return out.String(), nil
}

type textSpan struct {
	node  *html.Node
	start int
	end   int
}

type overlap struct {
	start int
	end   int
	cite  model.Citation
}

// collectTextSpans walks the tag tree depth-first, skipping script/style/
// noscript subtrees, and records each text node's offset range in the
// virtual concatenated plain text.
func collectTextSpans(doc *html.Node) []textSpan {
	var spans []textSpan
	var pos int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipTags[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			start := pos
			pos += len(n.Data)
			spans = append(spans, textSpan{node: n, start: start, end: pos})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return spans
}

func sortOverlaps(ovs []overlap) {
	for i := 1; i < len(ovs); i++ {
		for j := i; j > 0 && ovs[j-1].start > ovs[j].start; j-- {
			ovs[j-1], ovs[j] = ovs[j], ovs[j-1]
		}
	}
}

// wrapTextNode splits n's text at every overlap boundary and replaces n in
// the tree with the resulting sequence of plain-text and wrapped-fragment
// siblings, in a single pass so multiple citations within one text node
// never invalidate each other's node references (spec §4.8: "each fragment
// is wrapped independently").
func wrapTextNode(n *html.Node, ovs []overlap, fn Func) {
	parent := n.Parent
	if parent == nil {
		return
	}
	text := n.Data
	var newNodes []*html.Node
	cursor := 0
	for _, ov := range ovs {
		if ov.start < cursor || ov.end > len(text) || ov.start >= ov.end {
			continue
		}
		if ov.start > cursor {
			newNodes = append(newNodes, &html.Node{Type: html.TextNode, Data: text[cursor:ov.start]})
		}
		wrapped := fn(ov.cite, text[ov.start:ov.end])
		newNodes = append(newNodes, parseFragment(wrapped)...)
		cursor = ov.end
	}
	if cursor < len(text) {
		newNodes = append(newNodes, &html.Node{Type: html.TextNode, Data: text[cursor:]})
	}
	for _, nn := range newNodes {
		parent.InsertBefore(nn, n)
	}
	parent.RemoveChild(n)
}

// parseFragment parses a caller-supplied annotation string (typically a
// wrapping element plus the original text) as an HTML fragment in a body
// context, falling back to a plain text node if it doesn't parse.
func parseFragment(s string) []*html.Node {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(s), ctx)
	if err != nil {
		return []*html.Node{{Type: html.TextNode, Data: s}}
	}
	return nodes
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
