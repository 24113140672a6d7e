package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
)

const (
	// ProjectFile is the per-project configuration file
	ProjectFile = "safecoin.toml"

	// DefaultLedgerFile is the ledger location relative to the project root
	DefaultLedgerFile = "deployed-contracts.json"

	// DefaultContract is deployed when no contract name is given
	DefaultContract = "SafeCoin"
)

// Token constants carried over from the project's deployment scripts
const (
	DefaultTokenName     = "Safe Coin"
	DefaultTokenSymbol   = "SAFE"
	DefaultInitialSupply = "100000000"
	DefaultTreasury      = "0x2205183B44ec598dAc52589D0336FD1E332c9f07"
)

var projectMarkers = []string{ProjectFile, "hardhat.config.ts", "hardhat.config.js", "foundry.toml"}

// FindProjectRoot walks up from dir until it finds a project marker file
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a SafeCoin project (none of %v found)", projectMarkers)
		}
		dir = parent
	}
}

// LoadEnv loads .env files from the project root. Existing environment
// variables win over file values.
func LoadEnv(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// LoadProjectConfig parses safecoin.toml, expands ${VARS} and fills in defaults.
// A missing file yields the defaults.
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	cfg := &config.ProjectConfig{}

	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyDefaults(cfg)
	expandEnv(cfg)

	if err := validateProjectConfig(cfg); err != nil {
		return nil, err
	}
	if err := mergeDefaultNetworks(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *config.ProjectConfig) {
	if cfg.Ledger == "" {
		cfg.Ledger = DefaultLedgerFile
	}
	if len(cfg.Artifacts) == 0 {
		cfg.Artifacts = []string{"out", "artifacts"}
	}
	if cfg.Treasury == "" {
		cfg.Treasury = DefaultTreasury
	}
	if cfg.Deploy == nil {
		cfg.Deploy = make(map[string]config.DeploymentSpec)
	}
	if _, ok := cfg.Deploy[DefaultContract]; !ok {
		cfg.Deploy[DefaultContract] = config.DeploymentSpec{
			Args: []string{DefaultTokenName, DefaultTokenSymbol, DefaultInitialSupply},
		}
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
	if cfg.Tokens == nil {
		cfg.Tokens = map[string]map[string]string{
			"USDT": {"ethereum": "0xdac17f958d2ee523a2206206994597c13d831ec7"},
			"USDC": {"ethereum": "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"},
		}
	}
}

// defaultRPCEnv names the variable holding the rpc url of each public default network
var defaultRPCEnv = map[string]string{
	"eth_sepolia": "SEPOLIA_RPC_URL",
	"eth_main":    "MAINNET_RPC_URL",
}

func defaultNetworks() map[string]config.NetworkConfig {
	return map[string]config.NetworkConfig{
		"hardhat":     {RPCURL: "http://127.0.0.1:8545", ChainID: config.LocalChainID},
		"local":       {RPCURL: "http://127.0.0.1:8545", ChainID: config.LocalChainID},
		"eth_sepolia": {RPCURL: "${" + defaultRPCEnv["eth_sepolia"] + "}", ChainID: 11155111},
		"eth_main":    {RPCURL: "${" + defaultRPCEnv["eth_main"] + "}", ChainID: 1},
	}
}

// mergeDefaultNetworks adds the built-in networks the project does not define.
// A default whose rpc url variable is unset stays listed with an empty url;
// resolving it reports which variable to set.
func mergeDefaultNetworks(cfg *config.ProjectConfig) error {
	validate := validator.New()
	for name, network := range defaultNetworks() {
		if _, ok := cfg.Networks[name]; ok {
			continue
		}
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		if err := validate.Var(network.RPCURL, "omitempty,url"); err != nil {
			return fmt.Errorf("invalid rpc url for default network %s: %w", name, err)
		}
		cfg.Networks[name] = network
	}
	return nil
}

func expandEnv(cfg *config.ProjectConfig) {
	cfg.Ledger = os.ExpandEnv(cfg.Ledger)
	cfg.Treasury = os.ExpandEnv(cfg.Treasury)
	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		cfg.Networks[name] = network
	}
	for name, spec := range cfg.Deploy {
		for lib, addr := range spec.Libraries {
			spec.Libraries[lib] = os.ExpandEnv(addr)
		}
		cfg.Deploy[name] = spec
	}
}

func validateProjectConfig(cfg *config.ProjectConfig) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid %s: %w", ProjectFile, err)
	}
	return nil
}
