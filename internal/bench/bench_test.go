package bench

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oleg578/plaincsv"
)

func TestRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := Config{Rows: 300, Cols: 4, Seed: 42, Dir: t.TempDir(), Logger: zap.New(core)}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, 300, report.Rows)
	require.Len(t, report.Phases, 4)

	for _, phase := range report.Phases {
		require.Equal(t, 300, phase.Rows, phase.Name)
		require.Positive(t, phase.Bytes, phase.Name)
	}
	require.Equal(t, 4, logs.FilterMessage("phase done").Len())
	require.Equal(t, 1, logs.FilterMessage("generating rows").Len())

	f, err := os.Open(filepath.Join(cfg.Dir, PlainOutput))
	require.NoError(t, err)
	defer f.Close()
	records, err := plaincsv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 300)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Rows: 10, Cols: 2, Dir: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunInvalidSize(t *testing.T) {
	_, err := Run(context.Background(), Config{Rows: 10, Cols: 0, Dir: t.TempDir()})
	require.Error(t, err)
}

func TestRunMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	_, err := Run(context.Background(), Config{Rows: 1, Cols: 1, Dir: dir})
	require.ErrorIs(t, err, os.ErrNotExist)
}
