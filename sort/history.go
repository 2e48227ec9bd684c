package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/rlaau/sortio/kvdb"
)

func newHistoryCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history [run-id]",
		Short: "Summarize stored benchmark runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load(cmd)
			if err != nil {
				return err
			}
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}

			store, err := kvdb.Open(cfg.Store.Backend, cfg.Store.Path, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := kvdb.List(store, runID)
			if err != nil {
				return err
			}
			if runID != "" && len(records) == 0 {
				return errors.Newf("no records for run %s", runID)
			}
			if size, err := kvdb.DirSize(cfg.Store.Path); err == nil {
				logger.Info("store", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "bytes", size)
			}
			return writeHistory(cmd.OutOrStdout(), records)
		},
	}
}

// writeHistory prints one summary table per run, runs in key order.
func writeHistory(w io.Writer, records []kvdb.Record) error {
	runs := lo.Uniq(lo.Map(records, func(r kvdb.Record, _ int) string { return r.RunID }))
	byRun := lo.GroupBy(records, func(r kvdb.Record) string { return r.RunID })

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, id := range runs {
		recs := byRun[id]
		fmt.Fprintf(tw, "run %s\t%d records\tstarted %s\n", id, len(recs),
			recs[0].Timestamp.Format("2006-01-02 15:04:05"))
		fmt.Fprintln(tw, "ALGORITHM\tMODE\tRUNS\tSKIPPED\tAVG DURATION\tAVG COMPARISONS\tAVG SWAPS")
		for _, s := range summarize(recs) {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%v\t%d\t%d\n",
				s.Algorithm, s.Mode, s.Runs, s.Skipped, s.AvgDuration, s.AvgCompares, s.AvgSwaps)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
