package main

import (
	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/rlaau/sortio/internal/logging"
	"github.com/rlaau/sortio/kvdb"
	"github.com/rlaau/sortio/sorter"
)

// Benchmark modes map onto the three Sorter operations.
const (
	modeSort     = "sort"
	modeRange    = "range"
	modeParallel = "parallel"
)

// Input patterns.
const (
	patternRandom    = "random"
	patternSorted    = "sorted"
	patternReversed  = "reversed"
	patternFewUnique = "fewunique"
	patternDistinct  = "distinct"
)

// autoThreshold picks the quicksort threshold from the input size.
const autoThreshold = -1

var (
	allModes    = []string{modeSort, modeRange, modeParallel}
	allPatterns = []string{patternRandom, patternSorted, patternReversed, patternFewUnique, patternDistinct}
)

type Config struct {
	Algorithms []string `toml:"algorithms"`
	Modes      []string `toml:"modes"`
	Patterns   []string `toml:"patterns"`
	Sizes      []int    `toml:"sizes"`
	Runs       int      `toml:"runs"`
	Seed       int64    `toml:"seed"`

	// Inputs of at least FileModeMinSize elements are written to a file and
	// read back before every run.
	FileModeMinSize int `toml:"file_mode_min_size"`
	// Quadratic algorithms skip inputs larger than QuadraticMaxSize.
	QuadraticMaxSize int `toml:"quadratic_max_size"`
	Threshold        int `toml:"threshold"`
	Workers          int `toml:"workers"`

	Store  StoreConfig  `toml:"store"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

type StoreConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

type OutputConfig struct {
	Markdown string `toml:"markdown"`
	JSON     string `toml:"json"`
	Metrics  string `toml:"metrics"`
}

type LogConfig struct {
	Verbosity   int  `toml:"verbosity"`
	Development bool `toml:"development"`
}

func DefaultConfig() Config {
	return Config{
		Algorithms:       sorter.Algorithms(),
		Modes:            []string{modeSort, modeParallel},
		Patterns:         []string{patternRandom},
		Sizes:            []int{1000, 10000, 100000},
		Runs:             3,
		Seed:             42,
		FileModeMinSize:  100000,
		QuadraticMaxSize: 10000,
		Threshold:        sorter.DefaultParallelThreshold,
		Store: StoreConfig{
			Backend: kvdb.Bbolt,
			Path:    ".sortbench",
		},
		Output: OutputConfig{
			Markdown: "benchmark_results.md",
			JSON:     "benchmark_results.json",
		},
		Log: LogConfig{Verbosity: logging.DEFAULT},
	}
}

// LoadConfig reads path over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Newf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if unknown, _ := lo.Difference(c.Algorithms, sorter.Algorithms()); len(unknown) > 0 {
		return errors.Newf("unknown algorithms %v (known: %v)", unknown, sorter.Algorithms())
	}
	if unknown, _ := lo.Difference(c.Modes, allModes); len(unknown) > 0 {
		return errors.Newf("unknown modes %v (known: %v)", unknown, allModes)
	}
	if unknown, _ := lo.Difference(c.Patterns, allPatterns); len(unknown) > 0 {
		return errors.Newf("unknown patterns %v (known: %v)", unknown, allPatterns)
	}
	if !lo.Contains(kvdb.Backends(), c.Store.Backend) {
		return errors.Newf("unknown store backend %q (known: %v)", c.Store.Backend, kvdb.Backends())
	}
	if len(c.Algorithms) == 0 || len(c.Modes) == 0 || len(c.Patterns) == 0 || len(c.Sizes) == 0 {
		return errors.New("algorithms, modes, patterns and sizes must not be empty")
	}
	if lo.SomeBy(c.Sizes, func(n int) bool { return n < 0 }) {
		return errors.Newf("sizes must not be negative: %v", c.Sizes)
	}
	if c.Runs < 1 {
		return errors.Newf("runs must be at least 1, got %d", c.Runs)
	}
	if c.Threshold < autoThreshold {
		return errors.Newf("threshold must be -1 (auto) or non-negative, got %d", c.Threshold)
	}
	return nil
}

// threshold resolves the quicksort threshold for one input size.
func (c Config) threshold(size int) int {
	if c.Threshold == autoThreshold {
		return optimalThreshold(size)
	}
	return c.Threshold
}
