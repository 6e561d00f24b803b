package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexcite/pkg/ledger"
)

func openTestLedger(t *testing.T) *ledger.Store {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "citeql.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestResolverForReturnsNilWithoutContinueFlag(t *testing.T) {
	continueFlag = false
	res, err := resolverFor(openTestLedger(t))
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestResolverForSeedsFromLedgerWhenContinuing(t *testing.T) {
	continueFlag = true
	defer func() { continueFlag = false }()

	res, err := resolverFor(openTestLedger(t))
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestPrintResourcesTextFormatDoesNotError(t *testing.T) {
	format = "text"
	err := printResources("doc-1", nil, nil)
	assert.NoError(t, err)
}

func TestPrintResourcesJSONFormatDoesNotError(t *testing.T) {
	format = "json"
	defer func() { format = "text" }()

	err := printResources("doc-1", nil, nil)
	assert.NoError(t, err)
}
