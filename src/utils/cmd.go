package utils

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/longport-trade/src/config"
	"github.com/jiaming2012/longport-trade/src/telemetry"
	"github.com/jiaming2012/longport-trade/src/trade"
)

// AddConfigFlags registers the flags read by SetupTradeContext.
func AddConfigFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	cmd.PersistentFlags().String("env-dir", ".", "Directory containing the .env files.")
	cmd.PersistentFlags().String("config", "", "Optional YAML config file. Environment variables take precedence.")
}

// SetupTradeContext loads the .env file and configuration, applies the log
// level, starts telemetry and opens a trade context.
func SetupTradeContext(ctx context.Context, cmd *cobra.Command, serviceName string) (*trade.TradeContext, telemetry.ShutdownFunc, error) {
	goEnv, err := cmd.Flags().GetString("go-env")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting go-env: %w", err)
	}

	envDir, err := cmd.Flags().GetString("env-dir")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting env-dir: %w", err)
	}

	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("error getting config: %w", err)
	}

	if err := InitEnvironmentVariables(envDir, goEnv); err != nil {
		return nil, nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var cfg *config.Config
	if configFile != "" {
		cfg, err = config.FromFile(configFile)
	} else {
		cfg, err = config.FromEnv()
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log.SetLevel(cfg.LogLevel)

	shutdown, err := telemetry.Setup(ctx, cfg.OtelEndpoint, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	tradeCtx, err := trade.NewTradeContext(cfg)
	if err != nil {
		ShutdownTelemetry(ctx, shutdown)
		return nil, nil, fmt.Errorf("failed to create trade context: %w", err)
	}

	return tradeCtx, shutdown, nil
}

// ShutdownTelemetry flushes pending spans. A failure is logged, not returned,
// so it never masks the command's own result.
func ShutdownTelemetry(ctx context.Context, shutdown telemetry.ShutdownFunc) {
	if err := shutdown(ctx); err != nil {
		log.Warnf("failed to shutdown telemetry: %v", err)
	}
}
