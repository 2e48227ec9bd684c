package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlaau/sortio/kvdb"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunAndHistoryCommands(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "store")
	md := filepath.Join(dir, "results.md")
	js := filepath.Join(dir, "results.json")
	prom := filepath.Join(dir, "results.prom")

	_, err := execute(t, "run",
		"--store", kvdb.Pebble, "--store-path", storePath,
		"--sizes", "64,128", "--runs", "1", "--patterns", "random,sorted",
		"--markdown", md, "--json", js, "--metrics", prom)
	require.NoError(t, err)

	for _, path := range []string{md, js, prom} {
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size())
	}

	raw, err := os.ReadFile(js)
	require.NoError(t, err)
	var records []kvdb.Record
	require.NoError(t, json.Unmarshal(raw, &records))
	// sizes x patterns x algorithms x default modes
	require.Len(t, records, 2*2*5*2)
	runID := records[0].RunID

	out, err := execute(t, "history", "--store", kvdb.Pebble, "--store-path", storePath, runID)
	require.NoError(t, err)
	assert.Contains(t, out, "run "+runID)
	assert.Contains(t, out, "40 records")
	assert.Contains(t, out, "merge")

	_, err = execute(t, "history", "--store", kvdb.Pebble, "--store-path", storePath, "no-such-run")
	assert.ErrorContains(t, err, "no records")
}

func TestRunCommandRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "run", "--no-store", "--algorithms", "bogo")
	assert.ErrorContains(t, err, "unknown algorithms")

	_, err = execute(t, "run", "--no-store", "--threshold=-5")
	assert.ErrorContains(t, err, "threshold")

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
