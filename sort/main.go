// Command sortbench measures the sorter package's algorithms over generated
// inputs and keeps the results in an embedded store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rlaau/sortio/internal/logging"
	"github.com/rlaau/sortio/kvdb"
)

type rootOptions struct {
	configPath  string
	verbosity   int
	development bool
	backend     string
	storePath   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "sortbench",
		Short:        "Benchmark in-memory sorting algorithms",
		SilenceUsage: true,
	}

	opts.addFlags(root.PersistentFlags())
	root.AddCommand(newRunCmd(opts), newHistoryCmd(opts))
	return root
}

func (o *rootOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "TOML config file")
	flags.IntVarP(&o.verbosity, "verbosity", "v", logging.DEFAULT, "log verbosity (2 default, 3 verbose, 4 debug, 5 trace)")
	flags.BoolVar(&o.development, "dev", false, "human readable development logs")
	flags.StringVar(&o.backend, "store", "", "result store backend: bbolt, badger or pebble")
	flags.StringVar(&o.storePath, "store-path", "", "result store directory")
}

// load reads the config file and applies the persistent flags set on cmd.
func (o *rootOptions) load(cmd *cobra.Command) (Config, logr.Logger, error) {
	cfg, err := LoadConfig(o.configPath)
	if err != nil {
		return cfg, logr.Discard(), err
	}
	flags := cmd.Flags()
	if flags.Changed("verbosity") {
		cfg.Log.Verbosity = o.verbosity
	}
	if flags.Changed("dev") {
		cfg.Log.Development = o.development
	}
	if flags.Changed("store") {
		cfg.Store.Backend = o.backend
	}
	if flags.Changed("store-path") {
		cfg.Store.Path = o.storePath
	}

	logger, err := logging.New(cfg.Log.Verbosity, cfg.Log.Development)
	if err != nil {
		return cfg, logr.Discard(), err
	}
	return cfg, logger, nil
}

type runOptions struct {
	algorithms []string
	modes      []string
	patterns   []string
	sizes      []int
	runs       int
	seed       int64
	threshold  int
	workers    int
	noStore    bool
	markdown   string
	jsonPath   string
	metrics    string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			opts.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid config")
			}
			return runBenchmarks(cmd.Context(), cfg, logger, opts.noStore)
		},
	}

	opts.addFlags(cmd.Flags())
	return cmd
}

func (o *runOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringSliceVarP(&o.algorithms, "algorithms", "a", nil, "algorithms to run")
	flags.StringSliceVarP(&o.modes, "modes", "m", nil, "modes to run: sort, range, parallel")
	flags.StringSliceVarP(&o.patterns, "patterns", "p", nil, "input patterns: random, sorted, reversed, fewunique, distinct")
	flags.IntSliceVarP(&o.sizes, "sizes", "s", nil, "input sizes")
	flags.IntVarP(&o.runs, "runs", "r", 0, "runs per cell")
	flags.Int64Var(&o.seed, "seed", 0, "data generator seed")
	flags.IntVar(&o.threshold, "threshold", 0, "parallel quicksort threshold, -1 picks one by input size")
	flags.IntVar(&o.workers, "workers", 0, "parallel workers, 0 uses GOMAXPROCS")
	flags.BoolVar(&o.noStore, "no-store", false, "do not persist records")
	flags.StringVar(&o.markdown, "markdown", "", "markdown report path, empty to skip")
	flags.StringVar(&o.jsonPath, "json", "", "JSON report path, empty to skip")
	flags.StringVar(&o.metrics, "metrics", "", "prometheus textfile path, empty to skip")
}

func (o *runOptions) apply(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("algorithms") {
		cfg.Algorithms = o.algorithms
	}
	if flags.Changed("modes") {
		cfg.Modes = o.modes
	}
	if flags.Changed("patterns") {
		cfg.Patterns = o.patterns
	}
	if flags.Changed("sizes") {
		cfg.Sizes = o.sizes
	}
	if flags.Changed("runs") {
		cfg.Runs = o.runs
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("threshold") {
		cfg.Threshold = o.threshold
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("markdown") {
		cfg.Output.Markdown = o.markdown
	}
	if flags.Changed("json") {
		cfg.Output.JSON = o.jsonPath
	}
	if flags.Changed("metrics") {
		cfg.Output.Metrics = o.metrics
	}
}

func runBenchmarks(ctx context.Context, cfg Config, logger logr.Logger, noStore bool) error {
	runID := uuid.NewString()
	logger.Info("starting benchmark", "run", runID, "algorithms", cfg.Algorithms,
		"modes", cfg.Modes, "sizes", cfg.Sizes, "patterns", cfg.Patterns, "runs", cfg.Runs)

	var store kvdb.Store
	if !noStore {
		s, err := kvdb.Open(cfg.Store.Backend, cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Error(err, "closing store")
			}
		}()
		store = s
	}

	tel := newTelemetry()
	b, err := newBench(cfg, runID, logger, store, tel)
	if err != nil {
		return err
	}

	records, runErr := b.run(ctx)
	if runErr != nil {
		logger.Error(runErr, "benchmark stopped", "records", len(records))
	}

	// partial results are still written
	var errs error
	if cfg.Output.Markdown != "" {
		errs = errors.CombineErrors(errs, saveResultsToMarkdown(cfg.Output.Markdown, runID, records))
	}
	if cfg.Output.JSON != "" {
		errs = errors.CombineErrors(errs, saveResultsToJSON(cfg.Output.JSON, records))
	}
	if cfg.Output.Metrics != "" {
		errs = errors.CombineErrors(errs, tel.writeTextfile(cfg.Output.Metrics))
	}
	if errs != nil {
		logger.Error(errs, "saving results")
	}

	logger.Info("benchmark finished", "run", runID, "records", len(records),
		"markdown", cfg.Output.Markdown, "json", cfg.Output.JSON)
	return errors.CombineErrors(runErr, errs)
}
