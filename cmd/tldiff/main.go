// Command tldiff compares two ASCII transmission-loss tables and
// reports whether they agree to a degree appropriate for scientific
// validation. It is a thin collaborator over internal/compare: flag
// parsing, file I/O, and output rendering live here so the core stays
// free of CLI and terminal concerns (spec.md §1).
package main

import (
	"bufio"
	"fmt"
	"iter"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonlighthall/tldiff/domain/classify"
	"github.com/jonlighthall/tldiff/internal"
	"github.com/jonlighthall/tldiff/internal/compare"
	"github.com/jonlighthall/tldiff/internal/config"
	"github.com/jonlighthall/tldiff/internal/errors"
	"github.com/jonlighthall/tldiff/internal/report"
)

func main() {
	if err := godotenv.Load(); err != nil {
		internal.DefaultLogger.Debug("no .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "tldiff",
		Short: "Precision-aware comparison of transmission-loss data files",
	}

	rootCmd.AddCommand(newCompareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompareCmd() *cobra.Command {
	var significant, critical, print, percent float64
	var rowCap, verbosity int

	cmd := &cobra.Command{
		Use:   "compare <file1> <file2>",
		Short: "Compare two TL data files and print a verdict",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			th := classify.Thresholds{
				Significant: cfg.Thresholds.Significant,
				Critical:    cfg.Thresholds.Critical,
				Print:       cfg.Thresholds.Print,
			}
			if cmd.Flags().Changed("significant") {
				th.Significant = significant
			}
			if cmd.Flags().Changed("critical") {
				th.Critical = critical
			}
			if cmd.Flags().Changed("print") {
				th.Print = print
			}
			if cmd.Flags().Changed("percent") {
				th.SignificantIsPct = true
				th.SignificantPercent = percent
			}

			effectiveRowCap := cfg.Driver.RowCap
			if cmd.Flags().Changed("row-cap") {
				effectiveRowCap = rowCap
			}

			logLevel := internal.ParseLogLevel(cfg.Driver.LogLevel)
			effectiveVerbosity := cfg.Driver.Verbosity
			if cmd.Flags().Changed("verbosity") {
				effectiveVerbosity = verbosity
			}
			for i := 0; i < effectiveVerbosity && logLevel < internal.LogLevelTrace; i++ {
				logLevel++
			}

			lines1, close1, err := openLines(args[0])
			if err != nil {
				return errors.FileAccessError(args[0], err)
			}
			defer close1()

			lines2, close2, err := openLines(args[1])
			if err != nil {
				return errors.FileAccessError(args[1], err)
			}
			defer close2()

			driver := compare.NewDriver(th, effectiveRowCap)
			driver.File1, driver.File2 = args[0], args[1]
			driver.Logger = internal.NewLogger(logLevel)
			result, err := driver.Compare(cmd.Context(), lines1, lines2)
			if err != nil {
				return err
			}

			reporter := report.NewText(os.Stdout)
			for _, row := range result.Rows {
				if row.IsCritical {
					reporter.Critical(row)
					continue
				}
				reporter.Row(row)
			}
			reporter.Summary(result)

			if !result.Verdict.Passed() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&significant, "significant", 0.05, "minimum absolute difference classed as significant")
	cmd.Flags().Float64Var(&critical, "critical", 10.0, "absolute difference above which comparison fails fatally")
	cmd.Flags().Float64Var(&print, "print", 1.0, "minimum difference for emission into the difference table")
	cmd.Flags().Float64Var(&percent, "percent", 0.01, "significant threshold as a fraction; sets significant-is-percent mode")
	cmd.Flags().IntVar(&rowCap, "row-cap", compare.DefaultRowCap, "maximum number of difference rows printed")
	cmd.Flags().IntVar(&verbosity, "verbosity", 0, "logging verbosity")

	return cmd
}

// openLines opens path and returns a line iterator plus a close
// function the caller must defer. The iterator reads lazily so a
// multi-gigabyte input (spec.md §5) is never materialized in memory.
func openLines(path string) (iter.Seq[string], func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	seq := func(yield func(string) bool) {
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}

	return seq, f.Close, nil
}
