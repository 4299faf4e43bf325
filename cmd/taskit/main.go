// @title			TaskIt API
// @version		1.0
// @description	Task tracking service with assignment notifications and a per-user dashboard.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskit-app/taskit/internal/config"
	"github.com/taskit-app/taskit/internal/database"
	"github.com/taskit-app/taskit/internal/handler"
	"github.com/taskit-app/taskit/internal/logger"
	"github.com/taskit-app/taskit/internal/repository"
	"github.com/taskit-app/taskit/internal/service"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "taskit",
		Usage: "Task tracking service with notifications and a dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				EnvVars: []string{"TASKIT_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Log level override (debug, info, warn, error)",
				EnvVars: []string{"TASKIT_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run migrations and start the HTTP server",
				Action: runServe,
			},
			{
				Name:   "scan-due-dates",
				Usage:  "Notify assignees about due-soon and overdue tasks, then exit",
				Action: runScanDueDates,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration and configures logging for a command.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Server.LogLevel
	if override := c.String("log-level"); override != "" {
		level = override
	}
	logger.Setup(level)

	return cfg, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	h := handler.New(db.Pool(), cfg)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runScanDueDates(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	taskRepo := repository.NewTaskRepository(db.Pool())
	userRepo := repository.NewUserRepository(db.Pool())
	notificationRepo := repository.NewNotificationRepository(db.Pool())

	notifier := service.NewNotificationService(notificationRepo)
	taskService := service.NewTaskService(
		taskRepo,
		notifier,
		service.NewValidator(userRepo),
		cfg.Tasks,
		nil,
	)

	dueSoon, overdue, err := taskService.ScanDueDates(ctx)
	if err != nil {
		return fmt.Errorf("due date scan failed: %w", err)
	}

	slog.Info("due date scan completed", "due_soon", dueSoon, "overdue", overdue)
	return nil
}
