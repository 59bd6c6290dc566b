package main

import (
	"fmt"
	"os"

	"github.com/420247jake/void-browser/internal/card"
	"github.com/420247jake/void-browser/pkg/htmlpatch"
	"github.com/go-errors/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	recipe, err := card.Recipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载内置配方失败: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd(afero.NewOsFs(), recipe).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	verbose bool
	dryRun  bool
}

func newRootCmd(fs afero.Fs, recipe htmlpatch.Recipe) *cobra.Command {
	var (
		opts   options
		logger *zap.Logger
	)

	cmd := &cobra.Command{
		Use:           "patch-html",
		Short:         "Insert the " + recipe.Marker + " project card into " + recipe.Path,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("初始化日志失败: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			return run(cmd, fs, recipe, opts, logger)
		},
	}

	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report the outcome without writing the file")
	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, recipe htmlpatch.Recipe, opts options, logger *zap.Logger) error {
	out := cmd.OutOrStdout()
	patcher := htmlpatch.NewPatcher(fs, htmlpatch.WithLogger(logger), htmlpatch.WithDryRun(opts.dryRun))

	result, err := patcher.Apply(recipe)
	if err != nil {
		var stackErr *errors.Error
		if errors.As(err, &stackErr) {
			logger.Debug("错误堆栈", zap.String("stack", stackErr.ErrorStack()))
		}
		fmt.Fprintf(out, "ERROR: %v\n", err)
		return err
	}

	if result.Status != htmlpatch.StatusWritten {
		fmt.Fprintln(out, "ERROR: Could not find insertion point")
		return htmlpatch.ErrAnchorNotFound
	}

	if opts.dryRun {
		fmt.Fprintf(out, "DRY-RUN: %s card would be added at offset %d\n", recipe.Marker, result.Offset)
		return nil
	}
	fmt.Fprintf(out, "SUCCESS: %s card added\n", recipe.Marker)
	return nil
}

// newLogger 日志输出到 stderr，stdout 只保留结果信息
func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
