// Package bench times plaincsv against encoding/csv on a generated document.
package bench

import (
	"bufio"
	"context"
	stdcsv "encoding/csv"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/oleg578/plaincsv"
	"github.com/oleg578/plaincsv/internal/fakerows"
)

const (
	// PlainOutput is the file written by the plaincsv phase.
	PlainOutput = "plaincsv_output.csv"
	// StdOutput is the file written by the encoding/csv phase.
	StdOutput = "std_output.csv"
)

// Config controls a benchmark run.
type Config struct {
	Rows int
	Cols int
	Seed int64
	// Dir receives the output files. It must exist.
	Dir    string
	Logger *zap.Logger
}

// DefaultConfig mirrors the sizes used by the original benchmark script.
func DefaultConfig() Config {
	return Config{
		Rows: 10000,
		Cols: 5,
		Seed: 42,
		Dir:  os.TempDir(),
	}
}

// Phase is the measurement of one timed step.
type Phase struct {
	Name     string
	Duration time.Duration
	Rows     int
	Bytes    int64
}

// Report is the outcome of Run.
type Report struct {
	Rows   int
	Cols   int
	Phases []Phase
}

// Run generates the document, writes it with both writers and reads the
// plaincsv output back with both readers. ctx is checked between phases.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Rows < 0 || cfg.Cols <= 0 {
		return Report{}, xerrors.Errorf("invalid document size %dx%d", cfg.Rows, cfg.Cols)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("generating rows", zap.Int("rows", cfg.Rows), zap.Int("cols", cfg.Cols), zap.Int64("seed", cfg.Seed))
	doc := fakerows.New(cfg.Seed).Generate(cfg.Rows, cfg.Cols)

	plainPath := filepath.Join(cfg.Dir, PlainOutput)
	stdPath := filepath.Join(cfg.Dir, StdOutput)

	steps := []struct {
		name string
		run  func() (rows int, bytes int64, err error)
	}{
		{"write encoding/csv", func() (int, int64, error) { return writeFile(stdPath, doc, writeStd) }},
		{"write plaincsv", func() (int, int64, error) { return writeFile(plainPath, doc, writePlain) }},
		{"read encoding/csv", func() (int, int64, error) { return readFile(plainPath, readStd) }},
		{"read plaincsv", func() (int, int64, error) { return readFile(plainPath, readPlain) }},
	}

	report := Report{Rows: cfg.Rows, Cols: cfg.Cols}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, xerrors.Errorf("benchmark interrupted before %q: %w", step.name, err)
		}
		start := time.Now()
		rows, size, err := step.run()
		if err != nil {
			return report, xerrors.Errorf("%s: %w", step.name, err)
		}
		phase := Phase{Name: step.name, Duration: time.Since(start), Rows: rows, Bytes: size}
		logger.Debug("phase done",
			zap.String("phase", phase.Name),
			zap.Duration("duration", phase.Duration),
			zap.Int("rows", phase.Rows),
			zap.Int64("bytes", phase.Bytes))
		report.Phases = append(report.Phases, phase)
	}
	return report, nil
}

func writeFile(path string, doc [][]string, write func(io.Writer, [][]string) error) (int, int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, 0, xerrors.Errorf("unable to create %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f, doc); err != nil {
		return 0, 0, xerrors.Errorf("unable to write %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		return 0, 0, xerrors.Errorf("unable to stat %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return 0, 0, xerrors.Errorf("unable to close %s: %w", path, err)
	}
	return len(doc), info.Size(), nil
}

func readFile(path string, read func(io.Reader) (int, error)) (int, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, xerrors.Errorf("unable to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, xerrors.Errorf("unable to stat %s: %w", path, err)
	}
	rows, err := read(bufio.NewReader(f))
	if err != nil {
		return rows, info.Size(), xerrors.Errorf("unable to read %s: %w", path, err)
	}
	return rows, info.Size(), nil
}

func writePlain(w io.Writer, doc [][]string) error {
	return plaincsv.NewWriter(w).WriteAll(doc)
}

func writeStd(w io.Writer, doc [][]string) error {
	return stdcsv.NewWriter(w).WriteAll(doc)
}

func readPlain(r io.Reader) (int, error) {
	reader := plaincsv.NewReader(r)
	reader.ReuseRecord = true
	count := 0
	for _, err := range reader.Rows() {
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func readStd(r io.Reader) (int, error) {
	reader := stdcsv.NewReader(r)
	reader.ReuseRecord = true
	count := 0
	for {
		_, err := reader.Read()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, err
		}
		count++
	}
}
