// Package resolver groups resolved citations under a shared
// model.Resource via a single forward pass (spec §4.7).
package resolver

import (
	"strings"

	"lexcite/pkg/citation/model"
)

// Pair is one resolved citation paired with the resource it was matched to.
// Resource is nil when the citation could not be resolved but still
// participates in the byResource bucket for unresolved citations (spec
// §4.7: "bucket under a null resource but remain reachable through the
// map").
type Pair struct {
	Citation model.Citation
	Resource *model.Resource
}

// FullFunc resolves a FullCase/FullLaw/FullJournal citation, by default
// minting a new Resource identified by (volume, reporter, page) or
// (reporter, chapter-or-title, section).
type FullFunc func(c model.Citation) *model.Resource

// ShortFunc resolves a ShortCase against the pairs accumulated so far.
type ShortFunc func(c model.Citation, pairs []Pair) *model.Resource

// SupraFunc resolves a Supra citation against the pairs accumulated so far.
type SupraFunc func(c model.Citation, pairs []Pair) *model.Resource

// ReferenceFunc resolves a Reference citation against the pairs
// accumulated so far.
type ReferenceFunc func(c model.Citation, pairs []Pair) *model.Resource

// IDFunc resolves an Id/IdLaw citation given the last resolved resource.
type IDFunc func(c model.Citation, last *model.Resource) *model.Resource

// Resolver holds the five pluggable resolution functions (spec §4.7).
type Resolver struct {
	ResolveFull      FullFunc
	ResolveShort     ShortFunc
	ResolveSupra     SupraFunc
	ResolveReference ReferenceFunc
	ResolveID        IDFunc
}

// New builds a Resolver with the default matching strategy for every
// citation variant.
func New() *Resolver {
	return &Resolver{
		ResolveFull:      defaultResolveFull,
		ResolveShort:     defaultResolveShort,
		ResolveSupra:     defaultResolveSupra,
		ResolveReference: defaultResolveReference,
		ResolveID:        defaultResolveID,
	}
}

// Resolve runs the single forward pass over cites (spec §4.7), returning
// the ordered pairs and the resource -> citations map. Id/IdLaw citations
// with no prior resolved resource are dropped entirely. Two full citations
// whose resolver produces the same Resource.Key are canonicalized onto the
// same *model.Resource, so resource-grouping is by identity, not just key
// equality.
func (r *Resolver) Resolve(cites model.List) ([]Pair, map[*model.Resource]model.List) {
	resourcesByKey := make(map[string]*model.Resource)
	canon := func(res *model.Resource) *model.Resource {
		if res == nil {
			return nil
		}
		if existing, ok := resourcesByKey[res.Key]; ok {
			return existing
		}
		resourcesByKey[res.Key] = res
		return res
	}

	var pairs []Pair
	byResource := make(map[*model.Resource]model.List)
	var last *model.Resource

	for _, c := range cites {
		var res *model.Resource
		switch c.Variant() {
		case model.VariantFullCase, model.VariantFullLaw, model.VariantFullJournal:
			res = canon(r.ResolveFull(c))
			last = res
		case model.VariantShortCase:
			res = r.ResolveShort(c, pairs)
			if res != nil {
				last = res
			}
		case model.VariantSupra:
			res = r.ResolveSupra(c, pairs)
			if res != nil {
				last = res
			}
		case model.VariantReference:
			res = r.ResolveReference(c, pairs)
			if res != nil {
				last = res
			}
		case model.VariantID, model.VariantIDLaw:
			if last == nil {
				continue
			}
			res = r.ResolveID(c, last)
		default:
			res = nil
		}

		pairs = append(pairs, Pair{Citation: c, Resource: res})
		byResource[res] = append(byResource[res], c)
	}

	return pairs, byResource
}

func defaultResolveFull(c model.Citation) *model.Resource {
	switch v := c.(type) {
	case *model.FullCase:
		return model.NewCaseResource(c, v.Volume, v.Reporter, v.Page)
	case *model.FullLaw:
		chapterOrTitle := v.Meta.Chapter
		if chapterOrTitle == "" {
			chapterOrTitle = v.Meta.Title
		}
		if chapterOrTitle == "" {
			chapterOrTitle = v.Meta.Volume
		}
		return model.NewLawResource(c, v.Reporter, chapterOrTitle, v.Section)
	case *model.FullJournal:
		return &model.Resource{Key: "journal|" + v.Volume + "|" + v.Journal + "|" + v.Page, Full: c}
	default:
		return &model.Resource{Key: c.Hash(), Full: c}
	}
}

func defaultResolveShort(c model.Citation, pairs []Pair) *model.Resource {
	sc, ok := c.(*model.ShortCase)
	if !ok {
		return nil
	}
	for i := len(pairs) - 1; i >= 0; i-- {
		fc, ok := pairs[i].Citation.(*model.FullCase)
		if !ok || pairs[i].Resource == nil {
			continue
		}
		if fc.Reporter != sc.Reporter || fc.Page != sc.Page {
			continue
		}
		if sc.Volume != "" && fc.Volume != sc.Volume {
			continue
		}
		return pairs[i].Resource
	}
	return nil
}

func defaultResolveSupra(c model.Citation, pairs []Pair) *model.Resource {
	antecedent := strings.ToLower(strings.TrimSpace(c.Metadata().AntecedentGuess))
	if antecedent == "" {
		return nil
	}
	for i := len(pairs) - 1; i >= 0; i-- {
		if pairs[i].Resource == nil {
			continue
		}
		m := pairs[i].Citation.Metadata()
		plaintiff := strings.ToLower(m.Plaintiff)
		defendant := strings.ToLower(m.Defendant)
		if plaintiff != "" && strings.Contains(antecedent, plaintiff) {
			return pairs[i].Resource
		}
		if defendant != "" && strings.Contains(antecedent, defendant) {
			return pairs[i].Resource
		}
	}
	return nil
}

func defaultResolveReference(c model.Citation, pairs []Pair) *model.Resource {
	m := c.Metadata()
	for i := len(pairs) - 1; i >= 0; i-- {
		if pairs[i].Resource == nil {
			continue
		}
		om := pairs[i].Citation.Metadata()
		if m.Plaintiff != "" && m.Defendant != "" && m.Plaintiff == om.Plaintiff && m.Defendant == om.Defendant {
			return pairs[i].Resource
		}
		if m.ResolvedCaseName != "" && m.ResolvedCaseName == om.ResolvedCaseName {
			return pairs[i].Resource
		}
	}
	return nil
}

func defaultResolveID(_ model.Citation, last *model.Resource) *model.Resource {
	return last
}
