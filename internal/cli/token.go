package cli

import (
	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/spf13/cobra"
)

// NewTokenCmd creates the token command
func NewTokenCmd() *cobra.Command {
	var (
		holder     string
		spender    string
		jsonOutput bool
		yamlOutput bool
	)

	cmd := &cobra.Command{
		Use:   "token [contract]",
		Short: "Read ERC20 state of a recorded token",
		Long: `Read name, symbol, decimals, total supply and the balance of a holder from a
token recorded in the ledger. The holder defaults to the deployer.`,
		Example: `  safecoin token --network eth_sepolia
  safecoin token -n eth_sepolia --holder 0xabc... --spender 0xdef...`,
		Args: cobra.MaximumNArgs(1),
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

			info, err := app.TokenInfo.Run(cmd.Context(), contractArg(args), network, holder, spender)
			if err != nil {
				return err
			}

			return render.NewTokenRenderer(cmd.OutOrStdout(), format).Render(info)
		},
	}

	cmd.Flags().StringVar(&holder, "holder", "", "Account whose balance is shown (defaults to the deployer)")
	cmd.Flags().StringVar(&spender, "spender", "", "Show the holder's allowance to this account")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")

	return cmd
}
