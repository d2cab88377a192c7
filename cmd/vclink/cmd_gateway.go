// VCLink - companion threads for Discord voice channels
// License: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vclink-bot/vclink/pkg/bridge"
	"github.com/vclink-bot/vclink/pkg/config"
	"github.com/vclink-bot/vclink/pkg/logger"
)

func newGatewayCommand() *cobra.Command {
	var debug bool
	var configPath string

	cmd := &cobra.Command{
		Use:     "gateway",
		Aliases: []string{"g"},
		Short:   "Run the bot in the foreground",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runGateway(configPath, debug)
		},
	}

	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: resolved runtime path)")

	return cmd
}

func runGateway(configPath string, debug bool) error {
	if configPath == "" {
		configPath = config.ResolveRuntimePaths().ConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if debug {
		logger.SetLevel(logger.DEBUG)
	} else {
		logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	}
	if cfg.Log.File != "" {
		if err := logger.EnableFileLogging(cfg.Log.File); err != nil {
			logger.WarnCF("gateway", "Failed to enable file logging", map[string]any{
				"error": err.Error(),
			})
		}
	}

	b, err := bridge.New(cfg.Discord)
	if err != nil {
		return err
	}

	if err := b.Start(); err != nil {
		return err
	}

	logger.InfoC("gateway", "VCLink running. Press Ctrl+C to stop.")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	return b.Stop()
}
