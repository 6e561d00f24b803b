package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/citation/model"
)

func newFullCase(reporter, volume, page, plaintiff, defendant string) *model.FullCase {
	fc := &model.FullCase{Volume: volume, Reporter: reporter, Page: page}
	fc.Meta.Plaintiff = plaintiff
	fc.Meta.Defendant = defendant
	return fc
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRecordAndSeed(t *testing.T) {
	s := openTestStore(t)

	fc := newFullCase("U.S.", "410", "113", "Roe", "Wade")
	res := model.NewCaseResource(fc, fc.Volume, fc.Reporter, fc.Page)
	byResource := map[*model.Resource]model.List{res: {fc}}

	require.NoError(t, s.Record(byResource, "a.txt"))

	seeds, err := s.Seed()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, res.Key, seeds[0].Key)
	assert.Equal(t, "Roe v. Wade", seeds[0].CaseName)
	assert.Equal(t, "full_case", seeds[0].Variant)
	assert.Equal(t, "a.txt", seeds[0].SeenIn)
}

func TestStoreRecordUpserts(t *testing.T) {
	s := openTestStore(t)

	fc := newFullCase("U.S.", "410", "113", "Roe", "Wade")
	res := model.NewCaseResource(fc, fc.Volume, fc.Reporter, fc.Page)
	byResource := map[*model.Resource]model.List{res: {fc}}

	require.NoError(t, s.Record(byResource, "a.txt"))
	require.NoError(t, s.Record(byResource, "b.txt"))

	seeds, err := s.Seed()
	require.NoError(t, err)
	require.Len(t, seeds, 1)
	assert.Equal(t, "b.txt", seeds[0].SeenIn)
}

func TestStorePrune(t *testing.T) {
	s := openTestStore(t)

	fc := newFullCase("U.S.", "410", "113", "Roe", "Wade")
	res := model.NewCaseResource(fc, fc.Volume, fc.Reporter, fc.Page)
	require.NoError(t, s.Record(map[*model.Resource]model.List{res: {fc}}, "a.txt"))

	n, err := s.Prune(time.Hour)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.Prune(-time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	seeds, err := s.Seed()
	require.NoError(t, err)
	assert.Empty(t, seeds)
}
