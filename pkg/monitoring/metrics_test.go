package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordExtractionIncrementsCounters(t *testing.T) {
	m := New()

	m.RecordExtraction(10*time.Millisecond, map[string]int{"full_case": 2, "short_case": 1})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DocumentsProcessed.WithLabelValues("ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CitationsExtracted.WithLabelValues("full_case")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CitationsExtracted.WithLabelValues("short_case")))
}

func TestRecordExtractionErrorIncrementsErrorCounter(t *testing.T) {
	m := New()

	m.RecordExtractionError()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.DocumentsProcessed.WithLabelValues("error")))
}

func TestRecordFilterDropIncrementsByReason(t *testing.T) {
	m := New()

	m.RecordFilterDrop("overlap")
	m.RecordFilterDrop("overlap")
	m.RecordFilterDrop("ambiguous")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.FilterDropped.WithLabelValues("overlap")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FilterDropped.WithLabelValues("ambiguous")))
}

func TestRecordResolveAccumulatesPairsAndResources(t *testing.T) {
	m := New()

	m.RecordResolve(5, 2)
	m.RecordResolve(3, 1)

	assert.Equal(t, float64(8), testutil.ToFloat64(m.ResolverPairsTotal))
}

func TestRecordBatchSplitsSuccessAndFailure(t *testing.T) {
	m := New()

	m.RecordBatch(10, 8, 2)

	assert.Equal(t, float64(8), testutil.ToFloat64(m.BatchDocumentsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BatchDocumentsTotal.WithLabelValues("error")))
}

func TestRecordLedgerSeedAndPrune(t *testing.T) {
	m := New()

	m.RecordLedgerSeed(42)
	m.RecordLedgerPrune()
	m.RecordLedgerPrune()

	assert.Equal(t, float64(42), testutil.ToFloat64(m.LedgerSeedSize))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LedgerPruneTotal))
}
