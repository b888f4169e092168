package terminal

import (
	"io"
	"os"

	"github.com/de-tools/plan-analytics/pkg/runtime/terminal/commands"
	"github.com/de-tools/plan-analytics/pkg/runtime/terminal/export"

	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	registry calculator.Registry
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Registry calculator.Registry
	Output   io.Writer
	Input    io.Reader
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{registry: opts.Registry}
	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, used by tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "analytics",
		Short:         "Marketing investment analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Output)
	cmd.SetIn(opts.Input)

	reporters := map[string]commands.ReportHandler{
		commands.FormatTable: export.NewReporter(opts.Output),
		commands.FormatText:  NewReporter(opts.Output),
	}

	cmd.AddCommand(commands.NewListCmd(cli.registry))
	cmd.AddCommand(commands.NewRunCmd(cli.registry, opts.Input, reporters))

	return cmd
}
