package main

import (
	"fmt"
	"os"

	"github.com/de-tools/plan-analytics/pkg/runtime/terminal"
	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/de-tools/plan-analytics/pkg/services/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("ANALYTICS_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry, err := calculator.NewDefaultRegistry(cfg.Engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Registry: registry,
		Output:   os.Stdout,
		Input:    os.Stdin,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
