package cli

import (
	"fmt"

	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var (
		contractName string
		jsonOutput   bool
		yamlOutput   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List deployments from the ledger",
		Long: `List every deployment recorded in the ledger, grouped by contract.

The list can be filtered by contract name or network.`,
		Example: `  # List all deployments
  safecoin list

  # List SafeCoin deployments on sepolia as JSON
  safecoin list --contract SafeCoin --network eth_sepolia --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			format, err := outputFormat(jsonOutput, yamlOutput)
			if err != nil {
				return err
			}

			filter := domain.LedgerFilter{Contract: contractName}
			if app.Config.Network != nil {
				filter.Network = app.Config.Network.Name
			}

			result, err := app.ListDeployments.Run(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).Render(result)
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")

	return cmd
}

func outputFormat(jsonOutput, yamlOutput bool) (render.Format, error) {
	switch {
	case jsonOutput && yamlOutput:
		return "", fmt.Errorf("--json and --yaml are mutually exclusive")
	case jsonOutput:
		return render.FormatJSON, nil
	case yamlOutput:
		return render.FormatYAML, nil
	default:
		return render.FormatTable, nil
	}
}
