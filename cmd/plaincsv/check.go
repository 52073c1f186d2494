package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/oleg578/plaincsv/internal/roundtrip"
)

func checkCommand() *cobra.Command {
	strict := false

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Verify that files read, rewrite and reread to the same rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				res, err := checkFile(path, strict)
				if err != nil {
					logger.Error("check failed", zap.String("file", path), zap.Error(err))
					failed++
					continue
				}
				if !res.OK() {
					logger.Error("round trip mismatch",
						zap.String("file", path),
						zap.Int("row", res.Mismatch.Row),
						zap.String("diff", res.Mismatch.Diff))
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %s rows, %s fields, %s\n", path,
					humanize.Comma(int64(res.Rows)), humanize.Comma(int64(res.Fields)), humanize.Bytes(uint64(res.Bytes)))
			}
			if failed > 0 {
				return xerrors.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject malformed quoting instead of reading it permissively")
	return cmd
}

func checkFile(path string, strict bool) (roundtrip.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return roundtrip.Result{}, xerrors.Errorf("unable to open: %w", err)
	}
	defer f.Close()
	return roundtrip.Check(f, strict)
}
