package clean

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"lexcite/pkg/citation/model"
)

// BuildSpanUpdaters computes a character-level diff between a and b and
// returns the two offset-translation functions (spec §4.9): aToB maps an
// offset in a to the equivalent offset in b, bToA the reverse. mode
// resolves ties at edit-step boundaries, notably around inserted runs that
// have no corresponding position in the other string.
func BuildSpanUpdaters(a, b string) (aToB model.SpanUpdaterFunc, bToA model.SpanUpdaterFunc) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, true)
	return buildUpdater(diffs, true), buildUpdater(diffs, false)
}

// buildUpdater builds one direction of the translator from the shared diff
// script. forward=true maps A-offsets to B-offsets; forward=false maps
// B-offsets to A-offsets (insert/delete swap roles).
func buildUpdater(diffs []diffmatchpatch.Diff, forward bool) model.SpanUpdaterFunc {
	type step struct {
		kind diffmatchpatch.Operation
		n    int
	}
	steps := make([]step, 0, len(diffs))
	for _, d := range diffs {
		steps = append(steps, step{kind: d.Type, n: len(d.Text)})
	}

	// From the B-offset perspective, an Insert behaves exactly like a
	// Delete does from the A-offset perspective (it advances the "other"
	// side's length while consuming none of the running side), and vice
	// versa. growKind is the op that advances the running position being
	// queried; shrinkKind is the op that advances the other position
	// without moving the running one.
	growKind, shrinkKind := diffmatchpatch.DiffEqual, diffmatchpatch.DiffEqual
	if forward {
		growKind, shrinkKind = diffmatchpatch.DiffDelete, diffmatchpatch.DiffInsert
	} else {
		growKind, shrinkKind = diffmatchpatch.DiffInsert, diffmatchpatch.DiffDelete
	}

	return func(offset int, mode model.OffsetMode) int {
		runningPos, otherPos := 0, 0
		for _, s := range steps {
			switch {
			case s.kind == diffmatchpatch.DiffEqual:
				if offset < runningPos+s.n {
					return otherPos + (offset - runningPos)
				}
				runningPos += s.n
				otherPos += s.n
			case s.kind == growKind:
				if offset < runningPos+s.n {
					return otherPos
				}
				runningPos += s.n
			case s.kind == shrinkKind:
				if offset == runningPos {
					if mode == model.OffsetLeft {
						return otherPos
					}
					otherPos += s.n
					continue
				}
				otherPos += s.n
			}
		}
		return otherPos
	}
}
