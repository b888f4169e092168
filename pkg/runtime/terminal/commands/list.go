package commands

import (
	"fmt"
	"strings"

	"github.com/de-tools/plan-analytics/pkg/services/calculator"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	registry calculator.Registry
}

func NewListCmd(registry calculator.Registry) *cobra.Command {
	lc := &ListCmd{registry: registry}
	return &cobra.Command{
		Use:   "list",
		Short: "List available calculators",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	names := lc.registry.List()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No calculators registered")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Available calculators:\n%s\n", strings.Join(names, "\n"))
	return nil
}
