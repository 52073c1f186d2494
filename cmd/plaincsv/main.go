package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/xerrors"
)

var (
	defaultLogLevel  = "info"
	defaultLogConfig = "console"
)

// logger is replaced by the root command before any subcommand runs.
var logger = zap.NewNop()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	logLevel := defaultLogLevel
	logConfig := defaultLogConfig

	rootCommand := &cobra.Command{
		Use:          "plaincsv",
		Short:        "Benchmark and verify the plaincsv codec",
		Example:      "plaincsv bench --rows 10000 --cols 5",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logConfig, logLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCommand.AddCommand(benchCommand())
	rootCommand.AddCommand(checkCommand())
	rootCommand.AddCommand(versionCommand())

	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Specifies logging level for output logs (\"error\", \"warning\", \"info\", \"debug\")")
	rootCommand.PersistentFlags().StringVar(&logConfig, "log-config", defaultLogConfig, "Specifies logging config for output logs (\"console\", \"json\", \"minimal\")")
	return rootCommand
}

func newLogger(logConfig, logLevel string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	switch strings.ToLower(logConfig) {
	case "console":
	case "json":
		cfg = zap.NewProductionConfig()
	case "minimal":
		cfg.EncoderConfig = zapcore.EncoderConfig{
			MessageKey:  "message",
			LevelKey:    "level",
			LineEnding:  zapcore.DefaultLineEnding,
			EncodeLevel: zapcore.CapitalLevelEncoder,
		}
	default:
		return nil, xerrors.Errorf("unsupported value \"%s\" for --log-config", logConfig)
	}

	switch strings.ToLower(logLevel) {
	case "error":
		cfg.Level.SetLevel(zapcore.ErrorLevel)
	case "warning":
		cfg.Level.SetLevel(zapcore.WarnLevel)
	case "info":
		cfg.Level.SetLevel(zapcore.InfoLevel)
	case "debug":
		cfg.Level.SetLevel(zapcore.DebugLevel)
	default:
		return nil, xerrors.Errorf("unsupported value \"%s\" for --log-level", logLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, xerrors.Errorf("unable to build logger: %w", err)
	}
	return logger, nil
}
