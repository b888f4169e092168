package main

import (
	"fmt"
	"os"

	"github.com/de-tools/plan-analytics/pkg/logging"
	"github.com/de-tools/plan-analytics/pkg/server"
	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/de-tools/plan-analytics/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the analytics web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a YAML config file (defaults and ANALYTICS_* env vars apply without it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	defer closer.Close()

	registry, err := calculator.NewDefaultRegistry(cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to create calculator registry: %w", err)
	}

	logger.Info().Strs("calculators", registry.List()).Msg("calculators registered")

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Dependencies: server.Dependencies{
			Registry: registry,
		},
	})

	return api.Start()
}
