package cli

import (
	"context"
	"fmt"

	"github.com/safecoin-labs/safecoin-deploy/internal/app"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	domainconfig "github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safecoin",
		Short: "Deployment ledger and verification orchestrator for SafeCoin",
		Long: `safecoin deploys the SafeCoin ERC20 token (and supporting contracts) from
compiled Hardhat or Foundry artifacts, records every deployment in a JSON
ledger and publishes contract source to block explorers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, _ := cmd.Flags().GetString("project-root")
			if projectRoot == "" {
				var err error
				projectRoot, err = config.FindProjectRoot(".")
				if err != nil {
					return err
				}
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (from safecoin.toml [networks])")
	rootCmd.PersistentFlags().String("project-root", "", "Project root (defaults to the nearest directory with safecoin.toml)")
	rootCmd.PersistentFlags().String("ledger", "", "Ledger file (defaults to deployed-contracts.json)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{NewDeployCmd(), NewVerifyCmd(), NewListCmd(), NewShowCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{NewNetworksCmd(), NewTokenCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// requireNetwork returns the network selected with --network
func requireNetwork(app *app.App) (*domainconfig.Network, error) {
	if app.Config.Network == nil {
		return nil, fmt.Errorf("%w: use --network (see 'safecoin networks')", domain.ErrNetworkNotConfigured)
	}
	return app.Config.Network, nil
}

// contractArg returns the contract named on the command line or SafeCoin
func contractArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultContract
}
