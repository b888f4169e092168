package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/de-tools/plan-analytics/pkg/adapters"
	"github.com/de-tools/plan-analytics/pkg/models/domain"
	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/spf13/cobra"
)

const (
	FormatTable = "table"
	FormatText  = "text"
	FormatJSON  = "json"

	stdinPath = "-"
)

// ReportHandler renders a finished report.
type ReportHandler interface {
	Handle(report *domain.Report) error
}

type RunCmd struct {
	input     string
	format    string
	timeout   time.Duration
	registry  calculator.Registry
	stdin     io.Reader
	reporters map[string]ReportHandler
}

func NewRunCmd(registry calculator.Registry, stdin io.Reader, reporters map[string]ReportHandler) *cobra.Command {
	rc := &RunCmd{registry: registry, stdin: stdin, reporters: reporters}
	cmd := &cobra.Command{
		Use:   "run <calculator>",
		Short: "Run a calculator against a JSON request",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVarP(&rc.input, "input", "i", stdinPath, "Path to the JSON request, - reads stdin")
	cmd.Flags().StringVarP(&rc.format, "format", "f", FormatTable, "Output format: table, text or json")
	cmd.Flags().DurationVar(&rc.timeout, "timeout", 60*time.Second, "Maximum time for the calculation")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, args []string) error {
	name := args[0]

	calc, err := rc.registry.Get(name)
	if err != nil {
		return fmt.Errorf("unknown calculator %q, available: %v", name, rc.registry.List())
	}

	reporter, ok := rc.reporters[rc.format]
	if rc.format != FormatJSON && !ok {
		return fmt.Errorf("unsupported format %q", rc.format)
	}

	payload, err := rc.readInput()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, rc.timeout)
	defer cancel()

	response, err := calc.Calculate(ctx, payload)
	if err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}

	if rc.format == FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	report, err := adapters.MapResponseToReport(name, response, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	return reporter.Handle(report)
}

func (rc *RunCmd) readInput() ([]byte, error) {
	if rc.input == stdinPath {
		if rc.stdin == nil {
			return nil, fmt.Errorf("no stdin available, pass --input")
		}
		data, err := io.ReadAll(rc.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(rc.input)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}
