package config

import "time"

// ProjectConfig is the parsed safecoin.toml
type ProjectConfig struct {
	Ledger              string                       `toml:"ledger"`
	Artifacts           []string                     `toml:"artifacts"`
	ConfirmationTimeout Duration                     `toml:"confirmation_timeout"`
	Treasury            string                       `toml:"treasury" validate:"omitempty,eth_addr"`
	Deploy              map[string]DeploymentSpec    `toml:"deploy" validate:"dive"`
	Networks            map[string]NetworkConfig     `toml:"networks" validate:"dive"`
	Tokens              map[string]map[string]string `toml:"tokens"`
}

// DeploymentSpec holds the fixed constructor arguments for a contract
type DeploymentSpec struct {
	Args      []string          `toml:"args"`
	Libraries map[string]string `toml:"libraries" validate:"dive,eth_addr"`
	GasLimit  uint64            `toml:"gas_limit"`
}

// NetworkConfig is one [networks.<name>] table
type NetworkConfig struct {
	RPCURL      string `toml:"rpc_url" validate:"required,url"`
	ChainID     uint64 `toml:"chain_id"`
	ExplorerURL string `toml:"explorer_url" validate:"omitempty,url"`
	Sourcify    *bool  `toml:"sourcify"`
}

// Duration decodes TOML strings such as "5m"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
