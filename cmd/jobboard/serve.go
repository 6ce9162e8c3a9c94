package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/server"
	"github.com/amishk599/jobboard/internal/store"
	"github.com/amishk599/jobboard/internal/telemetry"
	"github.com/amishk599/jobboard/internal/webhook"
)

var dryRun bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  "Serve the health check and the identity webhook; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().BoolVar(&dryRun, "dry-run", false, "verify and log webhooks without touching the database")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Webhook.Secret == "" {
		logger.Error("webhook secret is not set (webhook.secret or CLERK_WEBHOOK_SECRET)")
		os.Exit(1)
	}

	logger.Info("config loaded",
		"port", cfg.Server.Port,
		"webhook_rate", cfg.Server.WebhookRate,
		"notification", cfg.Notification.Type,
		"tracing", cfg.Tracing.Endpoint != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg.Tracing, version)
	if err != nil {
		logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", "error", err)
		}
	}()

	var users model.UserStore
	if dryRun {
		logger.Info("dry-run mode enabled, users will not be persisted")
		users = store.NewNopStore()
	} else {
		users, err = store.Open(cfg.Database.URL, logger)
		if err != nil {
			logger.Error("failed to open store", "error", err)
			os.Exit(1)
		}
	}
	defer users.Close()

	verifier, err := webhook.NewSignatureVerifier(cfg.Webhook.Secret)
	if err != nil {
		logger.Error("invalid webhook secret", "error", err)
		os.Exit(1)
	}

	n := setupNotifier(cfg, newHTTPClient(), logger)
	handler := webhook.NewHandler(verifier, users, n, logger)

	srv := server.New(server.Config{
		Addr:        cfg.Server.Addr(),
		Version:     version,
		WebhookRate: cfg.Server.WebhookRate,
	}, handler, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("goodbye")
	return nil
}
