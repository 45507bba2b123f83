package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"NewsClassifier/internal/app"
	"NewsClassifier/internal/config"
	"NewsClassifier/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newsclassifier",
		Short:         "RSS ingestion and keyword classification service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newWorkerCmd(), newBeatCmd(), newTriggerCmd(), newExportCmd())
	return root
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume the task queue and run fetch/classify passes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(func(ctx context.Context, application *app.Application) error {
				err := application.RunWorker(ctx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}

func newBeatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beat",
		Short: "Enqueue fetch and classify tasks on their cron schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(func(ctx context.Context, application *app.Application) error {
				return application.RunBeat(ctx)
			})
		},
	}
}

func newTriggerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trigger",
		Short: "Enqueue one fetch task and one classify task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(func(ctx context.Context, application *app.Application) error {
				return application.Trigger(ctx)
			})
		},
	}
}

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the article table as pretty-printed JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(func(ctx context.Context, application *app.Application) error {
				return application.Export(ctx, out)
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "articles.json", "output file path")
	return cmd
}

func withApplication(run func(context.Context, *app.Application) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application init failed", "error", err)
		return err
	}
	defer application.Close()

	if err := run(ctx, application); err != nil {
		logger.Error("application stopped", "error", err)
		return err
	}
	return nil
}
