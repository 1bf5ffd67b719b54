package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/web-debit/navigate-relay/app/internal/config"
	"github.com/web-debit/navigate-relay/app/internal/logger"
	"github.com/web-debit/navigate-relay/app/internal/server"
	"github.com/web-debit/navigate-relay/app/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "relay-server",
		Short: "Web-debit navigate relay server",
		Long: `relay-server renders the web-debit registration page: it validates the billing
fields posted by the shop and returns a hidden form that carries the merchant
credentials to the payment gateway.

Configuration is read from environment variables (SHOP_PWD and FS_TOKEN are required).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewServerConfig()
	if err != nil {
		log.Printf("failed to load configuration: %v", err.Error())
		os.Exit(1)
	}

	appLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	// credentials log as *_set flags only
	appLogger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("RELAY_MODE", cfg.RelayMode),
		slog.String("TEMPLATE_PATH", cfg.TemplatePath),
		slog.String("STATIC_DIR", cfg.StaticDir),
		slog.Bool("ENABLE_AUTH", cfg.EnableAuth),
		slog.String("GATEWAY_URL", cfg.GatewayURL),
		slog.Int64("MAX_REQUEST_SIZE", cfg.MaxRequestSize),
		slog.Any("credentials", cfg.Credentials()),
	)

	appLogger.Info("Starting server", slog.String("version", version.Get().Version))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(ctx); err != nil {
		appLogger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	appLogger.Info("server shutdown complete")
	return nil
}
