package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	LedgerPath  string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool
	Timeout        time.Duration

	// Deployer key (hex, from PRIVATE_KEY)
	PrivateKey string
	// Etherscan API key (from ETHERSCAN_API_KEY)
	EtherscanAPIKey string

	// Resolved project file
	Project *ProjectConfig
}

// Network represents network configuration
type Network struct {
	Name        string `json:"name"`
	ChainID     uint64 `json:"chainId"`
	RPCURL      string `json:"rpcUrl"`
	ExplorerURL string `json:"explorerUrl,omitempty"`
	Sourcify    bool   `json:"sourcify"`
}

// LocalChainID is the default chain id of hardhat and anvil nodes
const LocalChainID = 31337

// IsLocal reports whether the network is a development node. Verification is
// skipped for these.
func (n *Network) IsLocal() bool {
	if n == nil {
		return false
	}
	return n.ChainID == LocalChainID || n.Name == "hardhat" || n.Name == "local"
}
