package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"

	"github.com/oleg578/plaincsv/internal/bench"
)

func benchCommand() *cobra.Command {
	cfg := bench.DefaultConfig()
	keep := false

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare plaincsv with encoding/csv on generated rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("dir") {
				dir, err := os.MkdirTemp("", "plaincsv-bench-")
				if err != nil {
					return xerrors.Errorf("unable to create work dir: %w", err)
				}
				if !keep {
					defer os.RemoveAll(dir)
				}
				cfg.Dir = dir
			}
			cfg.Logger = logger

			report, err := bench.Run(cmd.Context(), cfg)
			if err != nil {
				return xerrors.Errorf("benchmark failed: %w", err)
			}
			renderReport(cmd.OutOrStdout(), report)
			if keep {
				logger.Sugar().Infof("output files kept in %s", cfg.Dir)
			}
			return nil
		},
	}
	addBenchFlags(cmd.Flags(), &cfg)
	cmd.Flags().BoolVar(&keep, "keep", false, "Keep generated files when --dir is not set")
	return cmd
}

func addBenchFlags(fs *pflag.FlagSet, cfg *bench.Config) {
	fs.IntVar(&cfg.Rows, "rows", cfg.Rows, "Number of generated rows")
	fs.IntVar(&cfg.Cols, "cols", cfg.Cols, "Number of generated columns")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Seed for the row generator")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "Directory for output files (a temporary one by default)")
}

func renderReport(out io.Writer, report bench.Report) {
	fmt.Fprintf(out, "%s rows x %d columns\n", humanize.Comma(int64(report.Rows)), report.Cols)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Phase", "Duration", "Rows", "Size", "Throughput"})
	table.SetAutoFormatHeaders(false)
	for _, phase := range report.Phases {
		throughput := "-"
		if secs := phase.Duration.Seconds(); secs > 0 {
			throughput = humanize.Bytes(uint64(float64(phase.Bytes)/secs)) + "/s"
		}
		table.Append([]string{
			phase.Name,
			strconv.FormatFloat(phase.Duration.Seconds(), 'f', 4, 64) + " s",
			humanize.Comma(int64(phase.Rows)),
			humanize.Bytes(uint64(phase.Bytes)),
			throughput,
		})
	}
	table.Render()
}
