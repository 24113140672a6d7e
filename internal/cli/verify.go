package cli

import (
	"fmt"

	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		all    bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "verify [contract]",
		Short: "Verify recorded deployments on block explorers",
		Long: `Publish contract source for a recorded deployment using forge verify-contract.

The address and constructor arguments are read from the ledger, so a contract
must have been deployed with 'safecoin deploy' first. Etherscan is tried first,
then Sourcify when the network enables it.`,
		Example: `  # Verify SafeCoin on sepolia
  safecoin verify --network eth_sepolia

  # Verify every contract recorded on sepolia
  safecoin verify --all --network eth_sepolia

  # Show the forge commands without running them
  safecoin verify Vault --network eth_sepolia --dry-run`,
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
			if all && len(args) > 0 {
				return fmt.Errorf("cannot use --all with a contract name")
			}

			renderer := render.NewVerifyRenderer(cmd.OutOrStdout())

			if dryRun {
				contractName := contractArg(args)
				entry, ok := app.Ledger.Read(cmd.Context(), contractName, network.Name)
				if !ok {
					return fmt.Errorf("%s is not recorded on %s: %w", contractName, network.Name, domain.ErrNotFound)
				}
				commands, err := app.Verifier.DumpCommands(cmd.Context(), usecase.VerificationRequest{
					ContractName:    contractName,
					Address:         entry.Address,
					ConstructorArgs: entry.Args,
					Network:         network,
				})
				if err != nil {
					return err
				}
				renderer.RenderCommands(commands)
				return nil
			}

			if all {
				result, err := app.VerifyDeployment.VerifyAll(cmd.Context(), network)
				if err != nil {
					return err
				}
				if err := renderer.Render(result); err != nil {
					return err
				}
				if result.FailedCount > 0 {
					return fmt.Errorf("%d contract(s): %w", result.FailedCount, domain.ErrVerificationFailed)
				}
				return nil
			}

			outcome := app.VerifyDeployment.VerifyRecorded(cmd.Context(), contractArg(args), network)
			renderer.RenderOutcome(outcome)
			if outcome.Status == domain.VerificationFailed {
				return fmt.Errorf("%s: %w", outcome.Contract, domain.ErrVerificationFailed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Verify every contract recorded on the network")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the verification commands without running them")

	return cmd
}
