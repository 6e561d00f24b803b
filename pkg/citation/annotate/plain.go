package annotate

import (
	"sort"
	"strings"

	"lexcite/pkg/citation/model"
)

// node is one entry of the containment tree built over citation spans.
type node struct {
	cite     model.Citation
	start    int
	end      int
	children []*node
}

// Plain implements the plain-text annotator (spec §4.8): build a
// containment tree over citation spans, then serialize depth-first,
// innermost-first, splicing each node's annotated text into its parent at
// the node's relative offset.
func Plain(text string, cites model.List, fn Func) string {
	if fn == nil {
		fn = DefaultFunc
	}
	roots := buildTree(cites)
	sort.Slice(roots, func(i, j int) bool { return roots[i].start < roots[j].start })

	var b strings.Builder
	cursor := 0
	for _, r := range roots {
		if r.start > cursor {
			b.WriteString(text[cursor:r.start])
		}
		b.WriteString(renderNode(text, r, fn))
		cursor = r.end
	}
	if cursor < len(text) {
		b.WriteString(text[cursor:])
	}
	return b.String()
}

// buildTree sorts citations by (start asc, end desc) and places each under
// the smallest existing ancestor that contains it (spec §4.8).
func buildTree(cites model.List) []*node {
	sorted := make(model.List, len(cites))
	copy(sorted, cites)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, ei := sorted[i].Span()
		sj, ej := sorted[j].Span()
		if si != sj {
			return si < sj
		}
		return ei > ej
	})

	var roots []*node
	for _, c := range sorted {
		s, e := c.Span()
		n := &node{cite: c, start: s, end: e}
		if !insertInto(roots, n) {
			roots = append(roots, n)
		}
	}
	return roots
}

func insertInto(siblings []*node, n *node) bool {
	for _, sib := range siblings {
		if sib.start <= n.start && n.end <= sib.end && (sib.start != n.start || sib.end != n.end) {
			if !insertInto(sib.children, n) {
				sib.children = append(sib.children, n)
			}
			return true
		}
	}
	return false
}

func renderNode(text string, n *node, fn Func) string {
	sort.Slice(n.children, func(i, j int) bool { return n.children[i].start < n.children[j].start })

	var b strings.Builder
	cursor := n.start
	for _, child := range n.children {
		if child.start > cursor {
			b.WriteString(text[cursor:child.start])
		}
		b.WriteString(renderNode(text, child, fn))
		cursor = child.end
	}
	if cursor < n.end {
		b.WriteString(text[cursor:n.end])
	}
	return fn(n.cite, b.String())
}
