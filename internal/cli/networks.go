package cli

import (
	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List available networks from safecoin.toml",
		Long: `List all networks configured in the [networks] section of safecoin.toml.

Networks without a chain_id are resolved by asking their RPC endpoint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result := app.ListNetworks.Run(cmd.Context())
			return render.NewNetworksRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	return cmd
}
