package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vibe-todo/vibetodo/broker"
	"vibe-todo/vibetodo/config"
	"vibe-todo/vibetodo/database"
	"vibe-todo/vibetodo/routes"
	"vibe-todo/vibetodo/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Opens the store, seeds the system lists and serves the HTTP API and live event feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		closer, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		db, err := database.Setup(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := seedSystemLists(cmd.Context(), db); err != nil {
			return err
		}

		hub := broker.NewHub()
		go hub.Run()
		defer hub.Stop()

		publishers := broker.MultiPublisher{hub}
		if cfg.NatsURL != "" {
			natsPublisher, err := broker.NewNatsPublisher(cfg.NatsURL, cfg.EventSubjectPrefix)
			if err != nil {
				slog.Warn("nats unavailable, events stay local", "url", cfg.NatsURL, "error", err)
			} else {
				defer natsPublisher.Close()
				publishers = append(publishers, natsPublisher)
			}
		}
		db.SetPublisher(publishers)

		authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours, cfg.AppPasswordHash)
		services.AuthServiceInstance = authService
		if authService.Enabled() && cfg.AppPasswordHash == "" {
			slog.Warn("JWT_SECRET is set but APP_PASSWORD_HASH is empty, no token can be issued")
		}

		if cfg.AppEnv != "development" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := routes.NewRouter(routes.Dependencies{
			DB:             db,
			Lists:          services.ListServiceInstance,
			Tasks:          services.TaskServiceInstance,
			Subtasks:       services.SubtaskServiceInstance,
			MyDay:          services.MyDayServiceInstance,
			Auth:           authService,
			Hub:            hub,
			AllowedOrigins: cfg.AppOrigins,
		})

		srv := &http.Server{
			Addr:              ":" + cfg.AppPort,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			slog.Info("API server listening", "addr", srv.Addr, "auth", authService.Enabled())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
		case <-ctx.Done():
		}

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

// seedSystemLists prepares the store for serving. Only schema and transaction
// failures stop the server; a system list that could not be seeded is logged
// and the remaining lists keep working.
func seedSystemLists(ctx context.Context, db *database.Database) error {
	report, err := services.Bootstrap(ctx, db, services.ListServiceInstance)
	if err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	for _, o := range report.Failed() {
		slog.Error("system list not seeded", "name", o.Name, "error", o.Err)
	}
	if len(report.Failed()) > 0 {
		slog.Error("serving with a partial set of system lists", "outcomes", report.Outcomes())
	}
	return nil
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "how long to wait for in-flight requests on shutdown")
	rootCmd.AddCommand(serveCmd)
}
