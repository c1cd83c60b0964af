package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/battlebots/internal/api"
	"github.com/mcoot/battlebots/internal/config"
	"github.com/mcoot/battlebots/internal/factory"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:          "worker",
		Short:        "Evaluate queued battleship bots and serve the submission API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("BATTLEBOTS_CONFIG"), "Path to YAML config (env: BATTLEBOTS_CONFIG)")

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		return err
	}

	// Validate has already checked the level
	level, _ := cfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Start server in goroutine
	var server *api.Server
	serverErr := make(chan error, 1)
	if cfg.HTTP.Port != 0 {
		router := api.NewRouter(api.RouterConfig{
			Logger:            logger,
			SubmissionService: app.SubmissionService,
		})
		server = api.NewServer(router, api.ServerConfigFrom(cfg.HTTP), logger)
		go func() {
			serverErr <- server.Start()
		}()
	}

	workerErr := make(chan error, 1)
	go func() {
		workerErr <- app.Worker.Run(ctx)
	}()

	// Wait for shutdown or error
	var runErr error
	select {
	case runErr = <-workerErr:
		if runErr != nil {
			logger.Error("worker error", slog.String("error", runErr.Error()))
		}
	case err := <-serverErr:
		logger.Error("server error", slog.String("error", errString(err)))
		runErr = err
		cancel()
		// Let the worker requeue its job before storage is closed
		runErr = errors.Join(runErr, <-workerErr)
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		runErr = <-workerErr
	}
	cancel()

	if server != nil {
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			runErr = errors.Join(runErr, err)
		}
	}

	logger.Info("worker stopped")
	return runErr
}

func errString(err error) string {
	if err == nil {
		return "server exited"
	}
	return err.Error()
}
