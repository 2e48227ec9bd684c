package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"github.com/rlaau/sortio/kvdb"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// section is one table of the report: every record of a size and storage type.
type section struct {
	Size    int
	Storage string
}

// summary aggregates the measured runs of one algorithm and mode.
type summary struct {
	Algorithm   string
	Mode        string
	Runs        int
	Skipped     int
	AvgDuration time.Duration
	AvgMemory   uint64
	AvgCompares int64
	AvgSwaps    int64
}

func sectionsOf(records []kvdb.Record) ([]section, map[section][]kvdb.Record) {
	groups := lo.GroupBy(records, func(r kvdb.Record) section {
		return section{Size: r.DataSize, Storage: r.StorageType}
	})
	keys := lo.Keys(groups)
	slices.SortFunc(keys, func(a, b section) int {
		return cmp.Or(cmp.Compare(a.Size, b.Size), strings.Compare(a.Storage, b.Storage))
	})
	return keys, groups
}

// summarize averages records per algorithm and mode, in first-seen order.
func summarize(records []kvdb.Record) []summary {
	type key struct{ algo, mode string }
	order := lo.Uniq(lo.Map(records, func(r kvdb.Record, _ int) key { return key{r.Algorithm, r.Mode} }))
	groups := lo.GroupBy(records, func(r kvdb.Record) key { return key{r.Algorithm, r.Mode} })

	return lo.Map(order, func(k key, _ int) summary {
		measured, skipped := lo.FilterReject(groups[k], func(r kvdb.Record, _ int) bool { return r.Skipped == "" })
		s := summary{Algorithm: k.algo, Mode: k.mode, Runs: len(measured), Skipped: len(skipped)}
		if n := len(measured); n > 0 {
			s.AvgDuration = lo.SumBy(measured, func(r kvdb.Record) time.Duration { return r.Duration }) / time.Duration(n)
			s.AvgMemory = lo.SumBy(measured, func(r kvdb.Record) uint64 { return r.MemoryUsage }) / uint64(n)
			s.AvgCompares = lo.SumBy(measured, func(r kvdb.Record) int64 { return r.Comparisons }) / int64(n)
			s.AvgSwaps = lo.SumBy(measured, func(r kvdb.Record) int64 { return r.Swaps }) / int64(n)
		}
		return s
	})
}

func writeMarkdown(w io.Writer, runID string, records []kvdb.Record) error {
	var builder strings.Builder

	builder.WriteString("# Sort benchmark results\n\n")
	fmt.Fprintf(&builder, "Run: %s\n", runID)
	fmt.Fprintf(&builder, "Time: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&builder, "CPUs: %d\n", runtime.NumCPU())
	fmt.Fprintf(&builder, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	keys, groups := sectionsOf(records)

	for _, k := range keys {
		fmt.Fprintf(&builder, "## %s - %d elements\n\n", k.Storage, k.Size)
		builder.WriteString("| Algorithm | Mode | Pattern | Run | Duration | Comparisons | Swaps | Memory | Goroutines |\n")
		builder.WriteString("|-----------|------|---------|-----|----------|-------------|-------|--------|------------|\n")
		for _, r := range groups[k] {
			if r.Skipped != "" {
				fmt.Fprintf(&builder, "| %s | %s | %s | %d | skipped: %s | | | | |\n",
					r.Algorithm, r.Mode, r.Pattern, r.TestRun, r.Skipped)
				continue
			}
			fmt.Fprintf(&builder, "| %s | %s | %s | %d | %v | %d | %d | %d bytes | %d |\n",
				r.Algorithm, r.Mode, r.Pattern, r.TestRun, r.Duration,
				r.Comparisons, r.Swaps, r.MemoryUsage, r.GoroutineNum)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Summary\n\n")
	for _, k := range keys {
		fmt.Fprintf(&builder, "### %s - %d elements, averages\n\n", k.Storage, k.Size)
		writeSummaryTable(&builder, summarize(groups[k]))
		builder.WriteString("\n")
	}

	_, err := io.WriteString(w, builder.String())
	return err
}

func writeSummaryTable(builder *strings.Builder, sums []summary) {
	builder.WriteString("| Algorithm | Mode | Runs | Avg duration | Avg comparisons | Avg swaps | Avg memory |\n")
	builder.WriteString("|-----------|------|------|--------------|-----------------|-----------|------------|\n")
	for _, s := range sums {
		if s.Runs == 0 {
			fmt.Fprintf(builder, "| %s | %s | 0 | skipped | | | |\n", s.Algorithm, s.Mode)
			continue
		}
		fmt.Fprintf(builder, "| %s | %s | %d | %v | %d | %d | %d bytes |\n",
			s.Algorithm, s.Mode, s.Runs, s.AvgDuration, s.AvgCompares, s.AvgSwaps, s.AvgMemory)
	}
}

func saveResultsToMarkdown(path, runID string, records []kvdb.Record) error {
	return writeFile(path, func(w io.Writer) error { return writeMarkdown(w, runID, records) })
}

func saveResultsToJSON(path string, records []kvdb.Record) error {
	return writeFile(path, func(w io.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	if err := write(writer); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return file.Close()
}
