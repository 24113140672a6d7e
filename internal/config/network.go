package config

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
)

// ChainIDFetcher asks an RPC endpoint for its chain id
type ChainIDFetcher func(ctx context.Context, rpcURL string) (uint64, error)

// NetworkResolver resolves network names to configurations
type NetworkResolver struct {
	project      *config.ProjectConfig
	fetchChainID ChainIDFetcher
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	return &NetworkResolver{
		project:      project,
		fetchChainID: fetchChainID,
	}
}

// Names returns the configured network names, sorted
func (r *NetworkResolver) Names() []string {
	names := make([]string, 0, len(r.project.Networks))
	for name := range r.project.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(ctx context.Context, networkName string) (*config.Network, error) {
	nc, ok := r.project.Networks[networkName]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' not found in %s [networks]", domain.ErrNetworkNotConfigured, networkName, ProjectFile)
	}
	if nc.RPCURL == "" {
		if env, ok := defaultRPCEnv[networkName]; ok {
			return nil, fmt.Errorf("%w: rpc url for '%s' is empty, set %s or add it to %s [networks]", domain.ErrNetworkNotConfigured, networkName, env, ProjectFile)
		}
		return nil, fmt.Errorf("%w: rpc url for '%s' is empty", domain.ErrNetworkNotConfigured, networkName)
	}

	chainID := nc.ChainID
	if chainID == 0 {
		fetched, err := r.fetchChainID(ctx, nc.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chain ID for network %s: %w", networkName, err)
		}
		chainID = fetched
	}

	explorer := nc.ExplorerURL
	if explorer == "" {
		explorer = defaultExplorerURL(chainID)
	}

	sourcify := true
	if nc.Sourcify != nil {
		sourcify = *nc.Sourcify
	}

	return &config.Network{
		Name:        networkName,
		ChainID:     chainID,
		RPCURL:      nc.RPCURL,
		ExplorerURL: explorer,
		Sourcify:    sourcify,
	}, nil
}

// fetchChainID fetches the chain ID from an RPC endpoint
func fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	id, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id.Uint64(), nil
}

// defaultExplorerURL returns a well-known explorer for a chain
func defaultExplorerURL(chainID uint64) string {
	switch chainID {
	case 1:
		return "https://etherscan.io"
	case 11155111:
		return "https://sepolia.etherscan.io"
	case 10:
		return "https://optimistic.etherscan.io"
	case 137:
		return "https://polygonscan.com"
	case 8453:
		return "https://basescan.org"
	case 42161:
		return "https://arbiscan.io"
	case 43114:
		return "https://snowtrace.io"
	case 56:
		return "https://bscscan.com"
	default:
		return ""
	}
}
