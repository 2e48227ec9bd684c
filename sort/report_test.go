package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/sortio/kvdb"
	"github.com/rlaau/sortio/sorter"
)

func sampleRecords() []kvdb.Record {
	rec := func(algo, mode string, size, run int, d time.Duration, cmps int64) kvdb.Record {
		return kvdb.Record{
			RunID: "run-r", Algorithm: algo, Mode: mode, Pattern: patternRandom,
			DataSize: size, StorageType: storageMemory, TestRun: run,
			Duration: d, Comparisons: cmps, Swaps: cmps / 2, MemoryUsage: 100,
			Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	return []kvdb.Record{
		rec(sorter.Quick, modeSort, 1000, 1, 2*time.Millisecond, 100),
		rec(sorter.Quick, modeSort, 1000, 2, 4*time.Millisecond, 300),
		rec(sorter.Merge, modeSort, 1000, 1, 3*time.Millisecond, 200),
		{RunID: "run-r", Algorithm: sorter.Bubble, Mode: modeParallel, Pattern: patternRandom,
			DataSize: 1000, StorageType: storageMemory, TestRun: 1, Skipped: skipUnsupported},
		rec(sorter.Merge, modeSort, 10, 1, time.Microsecond, 20),
	}
}

func TestSummarize(t *testing.T) {
	sums := summarize(sampleRecords())
	require.Len(t, sums, 3)

	assert.Equal(t, summary{
		Algorithm: sorter.Quick, Mode: modeSort, Runs: 2,
		AvgDuration: 3 * time.Millisecond, AvgMemory: 100, AvgCompares: 200, AvgSwaps: 100,
	}, sums[0])
	assert.Equal(t, sorter.Merge, sums[1].Algorithm)
	assert.Equal(t, 2, sums[1].Runs)
	assert.Equal(t, summary{Algorithm: sorter.Bubble, Mode: modeParallel, Skipped: 1}, sums[2])
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeMarkdown(&buf, "run-r", sampleRecords()))
	out := buf.String()

	assert.Contains(t, out, "Run: run-r")
	assert.Contains(t, out, "skipped: unsupported")
	assert.Contains(t, out, "| quick | sort | 2 | 3ms | 200 | 100 | 100 bytes |")

	small := strings.Index(out, "## memory - 10 elements")
	large := strings.Index(out, "## memory - 1000 elements")
	require.NotEqual(t, -1, small)
	require.NotEqual(t, -1, large)
	assert.Less(t, small, large, "sections ordered by size")
}

func TestSaveResults(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	mdPath := filepath.Join(dir, "results.md")
	require.NoError(t, saveResultsToMarkdown(mdPath, "run-r", records))
	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Summary")

	jsonPath := filepath.Join(dir, "results.json")
	require.NoError(t, saveResultsToJSON(jsonPath, records))
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var got []kvdb.Record
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, len(records))
	assert.Equal(t, records[3].Skipped, got[3].Skipped)
	assert.Equal(t, records[1].Duration, got[1].Duration)

	assert.Error(t, saveResultsToJSON(filepath.Join(dir, "missing", "results.json"), records))
}

func TestWriteHistory(t *testing.T) {
	other := sampleRecords()[:1]
	other[0].RunID = "run-s"

	var buf bytes.Buffer
	require.NoError(t, writeHistory(&buf, append(sampleRecords(), other...)))
	out := buf.String()

	assert.Contains(t, out, "run run-r")
	assert.Contains(t, out, "5 records")
	assert.Contains(t, out, "run run-s")
	assert.Contains(t, out, "2024-05-01 12:00:00")
	assert.Less(t, strings.Index(out, "run-r"), strings.Index(out, "run-s"))
}

func TestTelemetryTextfile(t *testing.T) {
	tel := newTelemetry()
	for _, r := range sampleRecords() {
		tel.observe(r)
	}

	path := filepath.Join(t.TempDir(), "sortbench.prom")
	require.NoError(t, tel.writeTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "sortio_bench_comparisons_total")
	assert.Contains(t, out, `sortio_bench_skipped_total{algorithm="bubble",mode="parallel",reason="unsupported"} 1`)
	assert.Contains(t, out, "sortio_bench_sort_duration_seconds_bucket")
}
