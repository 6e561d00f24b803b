package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/citation/model"
	"lexcite/pkg/citation/resolver"
)

func TestContinueResolvesShortAgainstSeed(t *testing.T) {
	seeds := []SeedResource{
		{Key: "case|410|us|113", CaseName: "Roe v. Wade", Variant: "full_case"},
	}

	r := Continue(resolver.New(), seeds)

	sc := &model.ShortCase{Volume: "410", Reporter: "U.S.", Page: "113"}
	res := r.ResolveShort(sc, nil)
	require.NotNil(t, res)
	assert.Equal(t, "case|410|us|113", res.Key)
}

func TestContinueResolvesSupraAgainstSeed(t *testing.T) {
	seeds := []SeedResource{
		{Key: "case|410|us|113", CaseName: "Roe", Variant: "full_case"},
	}

	r := Continue(resolver.New(), seeds)

	supra := &model.Supra{}
	supra.Meta.AntecedentGuess = "Roe"
	res := r.ResolveSupra(supra, nil)
	require.NotNil(t, res)
	assert.Equal(t, "case|410|us|113", res.Key)
}

func TestContinueFallsThroughToBaseResolverFirst(t *testing.T) {
	seeds := []SeedResource{
		{Key: "case|1|wrong|1", CaseName: "Wrong Case", Variant: "full_case"},
	}

	fc := &model.FullCase{Volume: "410", Reporter: "U.S.", Page: "113"}
	inMemory := model.NewCaseResource(fc, fc.Volume, fc.Reporter, fc.Page)
	pairs := []resolver.Pair{{Citation: fc, Resource: inMemory}}

	r := Continue(resolver.New(), seeds)
	sc := &model.ShortCase{Volume: "410", Reporter: "U.S.", Page: "113"}
	res := r.ResolveShort(sc, pairs)

	require.NotNil(t, res)
	assert.Same(t, inMemory, res)
}

func TestContinueWithNoSeedsReturnsSameResolver(t *testing.T) {
	base := resolver.New()
	assert.Same(t, base, Continue(base, nil))
}
