package main

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/sortio/kvdb"
	"github.com/rlaau/sortio/sorter"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Modes = allModes
	cfg.Patterns = []string{patternRandom, patternDistinct}
	cfg.Sizes = []int{0, 50, 300}
	cfg.Runs = 2
	cfg.FileModeMinSize = 300
	cfg.QuadraticMaxSize = 100
	cfg.Threshold = 8
	cfg.Workers = 4
	return cfg
}

func TestBenchRun(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	store, err := kvdb.Open(kvdb.Bbolt, t.TempDir(), logr.Discard())
	require.NoError(t, err)
	defer store.Close()

	tel := newTelemetry()
	b, err := newBench(cfg, "run-1", logr.Discard(), store, tel)
	require.NoError(t, err)

	records, err := b.run(context.Background())
	require.NoError(t, err)

	// sizes x patterns x algorithms x modes x runs
	require.Len(t, records, 3*2*5*3*2)

	unsupported := lo.Filter(records, func(r kvdb.Record, _ int) bool { return r.Skipped == skipUnsupported })
	tooLarge := lo.Filter(records, func(r kvdb.Record, _ int) bool { return r.Skipped == skipTooLarge })
	assert.Len(t, unsupported, 3*1*2*2*2)
	assert.Len(t, tooLarge, 3*3*2*2)
	for _, r := range unsupported {
		assert.True(t, sorter.IsQuadratic(r.Algorithm))
		assert.Equal(t, modeParallel, r.Mode)
	}
	for _, r := range tooLarge {
		assert.Equal(t, 300, r.DataSize)
	}

	for _, r := range records {
		assert.Equal(t, "run-1", r.RunID)
		if r.DataSize == 300 {
			assert.Equal(t, storageFile, r.StorageType)
		} else {
			assert.Equal(t, storageMemory, r.StorageType)
		}
		if r.Skipped == "" && r.DataSize > 1 {
			assert.Positive(t, r.Comparisons, "%s/%s size %d", r.Algorithm, r.Mode, r.DataSize)
		}
		if r.DataSize == 0 {
			assert.Zero(t, r.Comparisons)
		}
	}

	stored, err := kvdb.List(store, "run-1")
	require.NoError(t, err)
	require.Len(t, stored, len(records))
	for i, r := range stored {
		assert.Equal(t, uint64(i), r.Seq)
		assert.Equal(t, records[i].Seq, r.Seq)
		assert.Equal(t, records[i].Algorithm, r.Algorithm)
		assert.Equal(t, records[i].Mode, r.Mode)
		assert.Equal(t, records[i].Comparisons, r.Comparisons)
		assert.Equal(t, records[i].Skipped, r.Skipped)
	}

	assert.Equal(t, float64(2*2*2), testutil.ToFloat64(tel.skipped.WithLabelValues(sorter.Bubble, modeParallel, skipUnsupported)))
	assert.Equal(t, float64(2*2), testutil.ToFloat64(tel.skipped.WithLabelValues(sorter.Bubble, modeSort, skipTooLarge)))
	assert.Positive(t, testutil.ToFloat64(tel.comparisons.WithLabelValues(sorter.Merge, modeParallel, patternRandom, storageFile)))
	assert.Positive(t, testutil.CollectAndCount(tel.duration))
}

func TestBenchDeterministicMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Algorithms = []string{sorter.Merge, sorter.Insertion}
	cfg.Modes = []string{modeSort, modeRange}
	cfg.Sizes = []int{64}

	b, err := newBench(cfg, "run-2", logr.Discard(), nil, nil)
	require.NoError(t, err)
	records, err := b.run(context.Background())
	require.NoError(t, err)

	for _, group := range lo.GroupBy(records, func(r kvdb.Record) string { return r.Algorithm + r.Mode + r.Pattern }) {
		require.Len(t, group, cfg.Runs)
		assert.Equal(t, group[0].Comparisons, group[1].Comparisons, "same input, same comparisons")
		assert.Equal(t, group[0].Swaps, group[1].Swaps)
	}
}

func TestBenchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b, err := newBench(testConfig(), "run-3", logr.Discard(), nil, nil)
	require.NoError(t, err)
	records, err := b.run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
}

func TestNewBenchUnknownAlgorithm(t *testing.T) {
	cfg := testConfig()
	cfg.Algorithms = []string{"bogo"}
	_, err := newBench(cfg, "run-4", logr.Discard(), nil, nil)
	assert.ErrorIs(t, err, sorter.ErrInvalidArgument)
}

func TestVerify(t *testing.T) {
	input := []int{5, 3, 9, 1, 7, 2, 8, 6}

	sorted := []int{1, 2, 3, 5, 6, 7, 8, 9}
	assert.NoError(t, verify(input, sorted, modeSort))
	assert.NoError(t, verify(input, sorted, modeParallel))

	assert.ErrorContains(t, verify(input, []int{1, 2, 3, 5, 6, 7, 9, 8}, modeSort), "not sorted")
	assert.ErrorContains(t, verify(input, []int{1, 2, 3, 4, 6, 7, 8, 9}, modeSort), "element 3")
	assert.ErrorContains(t, verify(input, sorted[:7], modeSort), "length")

	// middle half is [2, 6), the rest stays put
	assert.NoError(t, verify(input, []int{5, 3, 1, 2, 7, 9, 8, 6}, modeRange))
	assert.Error(t, verify(input, []int{3, 5, 1, 2, 7, 9, 8, 6}, modeRange))
}
