package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mantonx/curator/internal/config"
	"github.com/mantonx/curator/internal/database"
	"github.com/mantonx/curator/internal/events"
	"github.com/mantonx/curator/internal/logger"
	"github.com/mantonx/curator/internal/server"
	"github.com/spf13/cobra"
)

const configPathEnv = "CURATOR_CONFIG_PATH"

func newServeCmd() *cobra.Command {
	var configPath string
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog HTTP API",
		Long: `Run the catalog HTTP API.

The configuration file is taken from --config, then $CURATOR_CONFIG_PATH,
then ./curator.yaml. A missing or invalid file falls back to defaults.
CURATOR_* environment variables override file values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, resolveConfigPath(configPath), watch)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to curator.yaml")
	cmd.Flags().BoolVar(&watch, "watch", true, "reload the configuration file when it changes")
	return cmd
}

func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(configPathEnv); env != "" {
		return env
	}
	if _, err := os.Stat("curator.yaml"); err == nil {
		return "curator.yaml"
	}
	return ""
}

func runServe(ctx context.Context, configPath string, watch bool) error {
	cm := config.GetConfigManager()
	if err := cm.LoadConfig(configPath); err != nil {
		logger.Warn("Failed to load configuration, using defaults", "path", configPath, "error", err)
		if err := cm.LoadConfig(""); err != nil {
			return fmt.Errorf("default configuration invalid: %w", err)
		}
	}
	cfg := cm.GetConfig()

	logger.Configure(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger.Info("Starting curator", "config", configPath, "addr", cfg.Server.Addr(), "database", cfg.Database.Type)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	bus := events.NewBus(cfg.Events.SubscriberBuffer, logger.Named("events"))
	events.SetGlobalEventBus(bus)

	cm.AddWatcher(func(oldConfig, newConfig *config.Config) {
		if oldConfig.Logging.Level != newConfig.Logging.Level {
			logger.SetLevel(newConfig.Logging.Level)
		}
		bus.Publish(events.NewEvent(events.EventConfigReloaded, "config", "", map[string]interface{}{
			"path": cm.Path(),
		}))
	})

	if watch && cm.Path() != "" {
		go func() {
			if err := cm.Watch(ctx); err != nil {
				logger.Warn("Config watcher stopped", "error", err)
			}
		}()
	}

	srv, err := server.New(cfg, db, bus)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
