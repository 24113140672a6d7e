package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/cli/render"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	domainconfig "github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		gasLimit  uint64
		libraries []string
		ctorArgs  []string
	)

	cmd := &cobra.Command{
		Use:   "deploy [contract]",
		Short: "Deploy a contract and record it in the ledger",
		Long: `Deploy a compiled contract to the selected network and record its address,
deployer, time and constructor arguments in the ledger.

Without a contract name SafeCoin is deployed. Constructor arguments come from
[deploy.<Contract>] in safecoin.toml unless --arg is given.`,
		Example: `  # Deploy SafeCoin with the configured arguments
  safecoin deploy --network eth_sepolia

  # Deploy a contract that links MathLib
  safecoin deploy Vault --network eth_sepolia --lib MathLib=0x1234...

  # Override constructor arguments
  safecoin deploy SafeCoin -n hardhat --arg "Test Coin" --arg TST --arg 1000`,
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

			contractName := contractArg(args)
			spec := app.Config.Project.Deploy[contractName]

			opts, err := deployOptions(spec, network, libraries, gasLimit)
			if err != nil {
				return err
			}
			if len(ctorArgs) == 0 {
				ctorArgs = spec.Args
			}

			entry, err := app.DeployContract.DeployAndRecord(cmd.Context(), contractName, usecase.ParseArgs(ctorArgs), opts)
			if err != nil {
				render.NewDeployRenderer(cmd.ErrOrStderr()).RenderError(err)
				return err
			}

			render.NewDeployRenderer(cmd.OutOrStdout()).RenderRecorded(contractName, network.Name, entry)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&gasLimit, "gas-limit", 0, "Gas limit for the creation transaction (0 estimates)")
	cmd.Flags().StringArrayVar(&libraries, "lib", nil, "Library address as Name=0x... (repeatable)")
	cmd.Flags().StringArrayVar(&ctorArgs, "arg", nil, "Constructor argument (repeatable, overrides safecoin.toml)")
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// deployOptions merges configured libraries and gas limit with flags; flags win
func deployOptions(spec domainconfig.DeploymentSpec, network *domainconfig.Network, libFlags []string, gasLimit uint64) (usecase.DeployOptions, error) {
	libs := make(map[string]string, len(spec.Libraries)+len(libFlags))
	for name, addr := range spec.Libraries {
		libs[name] = addr
	}
	for _, raw := range libFlags {
		name, addr, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return usecase.DeployOptions{}, fmt.Errorf("invalid --lib %q, expected Name=0x...", raw)
		}
		if !common.IsHexAddress(addr) {
			return usecase.DeployOptions{}, fmt.Errorf("%w: library %s address %q", domain.ErrInvalidAddress, name, addr)
		}
		libs[name] = addr
	}

	if gasLimit == 0 {
		gasLimit = spec.GasLimit
	}

	return usecase.DeployOptions{
		Network:   network,
		Libraries: libs,
		GasLimit:  gasLimit,
	}, nil
}
