package ledger

import (
	"strings"

	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/resolver"
)

// Continue wraps r so that Short/Supra/Reference lookups falling through
// the current run's citations fall back to resources recorded by an
// earlier `citeql extract --continue` run, the cross-invocation resolution
// spec_full §B describes for the ledger.
func Continue(r *resolver.Resolver, seeds []SeedResource) *resolver.Resolver {
	if r == nil {
		r = resolver.New()
	}
	if len(seeds) == 0 {
		return r
	}

	wrapped := *r
	short, supra, ref := r.ResolveShort, r.ResolveSupra, r.ResolveReference

	wrapped.ResolveShort = func(c model.Citation, pairs []resolver.Pair) *model.Resource {
		if res := short(c, pairs); res != nil {
			return res
		}
		sc, ok := c.(*model.ShortCase)
		if !ok {
			return nil
		}
		return matchCaseSeed(seeds, sc.Reporter, sc.Page)
	}

	wrapped.ResolveSupra = func(c model.Citation, pairs []resolver.Pair) *model.Resource {
		if res := supra(c, pairs); res != nil {
			return res
		}
		return matchNameSeed(seeds, c.Metadata().AntecedentGuess)
	}

	wrapped.ResolveReference = func(c model.Citation, pairs []resolver.Pair) *model.Resource {
		if res := ref(c, pairs); res != nil {
			return res
		}
		m := c.Metadata()
		if res := matchNameSeed(seeds, m.ResolvedCaseName); res != nil {
			return res
		}
		if res := matchNameSeed(seeds, m.Plaintiff); res != nil {
			return res
		}
		return matchNameSeed(seeds, m.Defendant)
	}

	return &wrapped
}

// matchCaseSeed looks a short-case citation's (reporter, page) up against
// the `case|volume|reporter|page` keys NewCaseResource mints.
func matchCaseSeed(seeds []SeedResource, reporter, page string) *model.Resource {
	reporter, page = strings.Join(strings.Fields(strings.ReplaceAll(normalize(reporter), ".", "")), " "), normalize(page)
	if reporter == "" || page == "" {
		return nil
	}
	for _, s := range seeds {
		if s.Variant != model.VariantFullCase.String() {
			continue
		}
		parts := strings.Split(s.Key, "|")
		if len(parts) != 4 {
			continue
		}
		if normalize(parts[2]) == reporter && normalize(parts[3]) == page {
			return s.resource()
		}
	}
	return nil
}

func matchNameSeed(seeds []SeedResource, name string) *model.Resource {
	name = normalize(name)
	if name == "" {
		return nil
	}
	for _, s := range seeds {
		if s.CaseName != "" && strings.Contains(name, normalize(s.CaseName)) {
			return s.resource()
		}
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
