package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateData(t *testing.T) {
	const size = 5000
	for _, pattern := range allPatterns {
		t.Run(pattern, func(t *testing.T) {
			data, err := generateData(pattern, size, 42)
			require.NoError(t, err)
			require.Len(t, data, size)

			again, err := generateData(pattern, size, 42)
			require.NoError(t, err)
			assert.Equal(t, data, again, "same seed, same data")

			switch pattern {
			case patternSorted:
				assert.True(t, slices.IsSorted(data))
			case patternReversed:
				assert.True(t, slices.IsSortedFunc(data, func(a, b int) int { return b - a }))
			case patternFewUnique:
				assert.LessOrEqual(t, len(lo.Uniq(data)), fewUniqueBound)
			case patternDistinct:
				assert.Len(t, lo.Uniq(data), size)
			}
		})
	}

	_, err := generateData("zigzag", 10, 42)
	assert.Error(t, err)

	empty, err := generateData(patternDistinct, 0, 42)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDataFileRoundTrip(t *testing.T) {
	data, err := generateData(patternRandom, 25000, 7)
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, writeDataToFile(data, filename))

	got, err := readDataFromFile(filename)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadDataFromFileErrors(t *testing.T) {
	_, err := readDataFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	filename := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(filename, []byte("1\n2\nthree\n"), 0o644))
	_, err = readDataFromFile(filename)
	assert.ErrorContains(t, err, ":3")
}

var sink []byte

func TestEndStats(t *testing.T) {
	stats := startStats()
	sink = make([]byte, 1<<20)
	duration, mem := stats.endStats()
	assert.Positive(t, duration)
	assert.GreaterOrEqual(t, mem, uint64(len(sink)))
}
