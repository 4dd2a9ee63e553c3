package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/mkr1/internal/domain"
	"github.com/aalvaropc/mkr1/internal/infra/fileio"
	"github.com/aalvaropc/mkr1/internal/infra/logger"
	"github.com/aalvaropc/mkr1/internal/infra/projectfinder"
	"github.com/aalvaropc/mkr1/internal/infra/runstore"
	"github.com/aalvaropc/mkr1/internal/usecase"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "mkr1",
		Short:        "mkr1 — count derangements of mkr1/INPUT.txt into mkr1/OUTPUT.txt",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			// Failures are reported on stdout and the process still exits 0.
			if err := runPipeline(cmd.Context(), out, cmd.ErrOrStderr(), debug); err != nil {
				fmt.Fprintf(out, "An error occurred: %v\n", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .mkr1/logs/mkr1.log")

	cmd.AddCommand(versionCmd())
	cmd.AddCommand(initCmd())
	return cmd
}

// runPipeline writes run messages to out and logging diagnostics to diag.
func runPipeline(ctx context.Context, out, diag io.Writer, debug bool) error {
	wd, err := os.Getwd()
	if err != nil {
		return &domain.OpError{
			Op:   "cli.getwd",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
		}
	}

	root, err := projectfinder.NewFinder().FindRoot(wd)
	if err != nil {
		return err
	}

	cfg, err := projectfinder.LoadConfig(root)
	if err != nil {
		return err
	}

	if debug || cfg.Logging.Enabled {
		cleanup, lerr := logger.Setup(logger.Config{
			Root:  root,
			Debug: debug,
		})
		switch {
		case lerr != nil:
			fmt.Fprintf(diag, "warning: logging disabled: %v\n", lerr)
		case debug:
			fmt.Fprintf(diag, "debug log: %s\n", logger.Path())
		}
		if cleanup != nil {
			defer func() { _ = cleanup() }()
		}
	}

	log := logger.L()
	log.Info("run.started", "root", root, "wd", wd)

	files := fileio.NewHandler(root, fileio.WithConsole(out))

	opts := []usecase.Option{usecase.WithLogger(log)}
	if cfg.History.Enabled {
		opts = append(opts, usecase.WithRunStore(runstore.NewJSONStore(root, cfg, runstore.WithIndex(true))))
	}

	run, err := usecase.NewComputeDerangement(files, files, domain.NewCalculator(), opts...).Execute(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Calculation complete. Result: %d\n", run.Result)
	return nil
}
