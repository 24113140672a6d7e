package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfirmationTimeout bounds the wait for a creation receipt
const DefaultConfirmationTimeout = 5 * time.Minute

// RuntimeConfig is an alias so adapters only import this package
type RuntimeConfig = config.RuntimeConfig

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot(".")
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	LoadEnv(projectRoot)

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	// Allow override from the ledger flag / SAFECOIN_LEDGER
	ledgerPath := v.GetString("ledger")
	if ledgerPath == "" {
		ledgerPath = project.Ledger
	}
	if !filepath.IsAbs(ledgerPath) {
		ledgerPath = filepath.Join(projectRoot, ledgerPath)
	}

	timeout := v.GetDuration("timeout")
	if timeout == 0 {
		timeout = project.ConfirmationTimeout.Duration
	}
	if timeout == 0 {
		timeout = DefaultConfirmationTimeout
	}

	cfg := &RuntimeConfig{
		ProjectRoot:     projectRoot,
		LedgerPath:      ledgerPath,
		Debug:           v.GetBool("debug"),
		NonInteractive:  v.GetBool("non_interactive"),
		AssumeYes:       v.GetBool("yes"),
		Timeout:         timeout,
		PrivateKey:      v.GetString("private_key"),
		EtherscanAPIKey: v.GetString("etherscan_api_key"),
		Project:         project,
	}

	// Resolve network if specified
	if networkName := v.GetString("network"); networkName != "" {
		network, err := NewNetworkResolver(project).Resolve(context.Background(), networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("SAFECOIN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Unprefixed keys shared with the Hardhat project .env
	_ = v.BindEnv("private_key", "SAFECOIN_PRIVATE_KEY", "PRIVATE_KEY")
	_ = v.BindEnv("etherscan_api_key", "SAFECOIN_ETHERSCAN_API_KEY", "ETHERSCAN_API_KEY")

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.Project)
}
