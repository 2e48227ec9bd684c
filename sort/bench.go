package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"

	"github.com/rlaau/sortio/internal/logging"
	"github.com/rlaau/sortio/kvdb"
	"github.com/rlaau/sortio/sorter"
)

const (
	storageMemory = "memory"
	storageFile   = "file"
)

// Skip reasons recorded on unmeasured cells.
const (
	skipUnsupported = "unsupported"
	skipTooLarge    = "size above quadratic cap"
)

// bench runs one benchmark matrix. store and tel may be nil.
type bench struct {
	cfg    Config
	logger logr.Logger
	store  kvdb.Store
	tel    *telemetry
	runID  string
	tmpDir string

	strategy *sorter.Strategy[int]
	sorters  map[string]sorter.Sorter[int]
	seq      uint64
}

func newBench(cfg Config, runID string, logger logr.Logger, store kvdb.Store, tel *telemetry) (*bench, error) {
	b := &bench{
		cfg:      cfg,
		logger:   logger.WithValues("run", runID),
		store:    store,
		tel:      tel,
		runID:    runID,
		strategy: sorter.NewStrategy[int](nil),
		sorters:  make(map[string]sorter.Sorter[int], len(cfg.Algorithms)),
	}
	for _, name := range cfg.Algorithms {
		s, err := sorter.ByName[int](name)
		if err != nil {
			return nil, err
		}
		b.sorters[name] = s
	}
	return b, nil
}

// run measures every cell of the matrix and returns the records in order.
func (b *bench) run(ctx context.Context) ([]kvdb.Record, error) {
	tmpDir, err := os.MkdirTemp("", "sortbench-")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)
	b.tmpDir = tmpDir

	var records []kvdb.Record
	for _, size := range b.cfg.Sizes {
		for _, pattern := range b.cfg.Patterns {
			recs, err := b.runInput(ctx, size, pattern)
			records = append(records, recs...)
			if err != nil {
				return records, err
			}
		}
	}
	return records, nil
}

func (b *bench) runInput(ctx context.Context, size int, pattern string) ([]kvdb.Record, error) {
	data, err := generateData(pattern, size, b.cfg.Seed)
	if err != nil {
		return nil, err
	}

	storage := storageMemory
	filename := ""
	if size >= b.cfg.FileModeMinSize {
		storage = storageFile
		filename = filepath.Join(b.tmpDir, fmt.Sprintf("data_%s_%d.txt", pattern, size))
		if err := writeDataToFile(data, filename); err != nil {
			return nil, err
		}
		defer os.Remove(filename)
	}
	b.logger.Info("benchmarking input", "size", size, "pattern", pattern, "storage", storage)

	var records []kvdb.Record
	for _, algo := range b.cfg.Algorithms {
		for _, mode := range b.cfg.Modes {
			for run := 1; run <= b.cfg.Runs; run++ {
				if err := ctx.Err(); err != nil {
					return records, errors.Wrap(err, "benchmark interrupted")
				}

				input := data
				if filename != "" {
					// every run pays for the read, like the measured workload would
					if input, err = readDataFromFile(filename); err != nil {
						return records, err
					}
				}

				rec, err := b.measure(algo, mode, pattern, storage, input, run)
				if err != nil {
					return records, errors.Wrapf(err, "%s/%s size=%d pattern=%s run=%d", algo, mode, size, pattern, run)
				}
				if err := b.record(&rec); err != nil {
					return records, err
				}
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// measure sorts a copy of data with one algorithm and mode and verifies it.
func (b *bench) measure(algo, mode, pattern, storage string, data []int, run int) (kvdb.Record, error) {
	rec := kvdb.Record{
		RunID:       b.runID,
		Algorithm:   algo,
		Mode:        mode,
		Pattern:     pattern,
		DataSize:    len(data),
		StorageType: storage,
		TestRun:     run,
		Timestamp:   time.Now(),
	}

	if sorter.IsQuadratic(algo) && len(data) > b.cfg.QuadraticMaxSize {
		rec.Skipped = skipTooLarge
		return rec, nil
	}

	b.strategy.SetSorter(b.sorters[algo])
	testData := slices.Clone(data)
	start, count := rangeOf(len(data))

	var m sorter.Metrics
	opts := []sorter.Option{
		sorter.WithMetrics(&m),
		sorter.WithWorkers(b.cfg.Workers),
		sorter.WithThreshold(b.cfg.threshold(len(data))),
		sorter.WithLogger(b.logger),
	}

	rec.GoroutineNum = runtime.NumGoroutine()
	stats := startStats()

	var err error
	switch mode {
	case modeSort:
		err = b.strategy.Sort(testData, nil, opts...)
	case modeRange:
		err = b.strategy.SortRange(testData, start, count, nil, opts...)
	case modeParallel:
		err = b.strategy.ParallelSort(testData, nil, opts...)
	default:
		err = errors.Newf("unknown mode %q", mode)
	}

	duration, memUsage := stats.endStats()

	if errors.Is(err, sorter.ErrUnsupported) {
		b.logger.V(logging.VERBOSE).Info("skipping unsupported mode", "algorithm", algo, "mode", mode)
		rec.Skipped = skipUnsupported
		return rec, nil
	}
	if err != nil {
		return rec, err
	}
	if err := verify(data, testData, mode); err != nil {
		return rec, err
	}

	rec.Duration = m.Elapsed
	if rec.Duration == 0 {
		rec.Duration = duration
	}
	rec.Comparisons = m.Comparisons
	rec.Swaps = m.Swaps
	rec.MemoryUsage = memUsage

	b.logger.V(logging.VERBOSE).Info("measured",
		"algorithm", algo, "mode", mode, "size", len(data), "run", run,
		"duration", rec.Duration, "comparisons", rec.Comparisons, "swaps", rec.Swaps)
	return rec, nil
}

func (b *bench) record(rec *kvdb.Record) error {
	if b.tel != nil {
		b.tel.observe(*rec)
	}
	if b.store == nil {
		return nil
	}
	rec.Seq = b.seq
	b.seq++
	return errors.Wrap(b.store.Put(*rec), "store record")
}

// rangeOf is the middle half of an input, the region range mode sorts.
func rangeOf(n int) (start, count int) {
	return n / 4, n / 2
}

// verify checks that got is the sorted permutation of input expected for mode.
// Outside the sorted region of range mode the input must be untouched.
func verify(input, got []int, mode string) error {
	want := slices.Clone(input)
	lo, hi := 0, len(want)
	if mode == modeRange {
		start, count := rangeOf(len(want))
		lo, hi = start, start+count
	}
	slices.Sort(want[lo:hi])

	if len(got) != len(want) {
		return errors.Newf("verify %s: length %d, want %d", mode, len(got), len(want))
	}
	if !slices.IsSorted(got[lo:hi]) {
		return errors.Newf("verify %s: output not sorted", mode)
	}
	if i := mismatch(got, want); i >= 0 {
		return errors.Newf("verify %s: element %d is %d, want %d", mode, i, got[i], want[i])
	}
	return nil
}

func mismatch(a, b []int) int {
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	return -1
}
