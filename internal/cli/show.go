package cli

import (
	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var (
		jsonOutput bool
		yamlOutput bool
	)

	cmd := &cobra.Command{
		Use:   "show <contract>",
		Short: "Show a recorded deployment",
		Example: `  safecoin show SafeCoin --network eth_sepolia
  safecoin show SafeCoin -n eth_sepolia --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			network, err := requireNetwork(app)
			if err != nil {
				return err
			}
			format, err := outputFormat(jsonOutput, yamlOutput)
			if err != nil {
				return err
			}

			record, err := app.ShowDeployment.Run(cmd.Context(), args[0], network.Name)
			if err != nil {
				return err
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout(), format).Render(record)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")

	return cmd
}
