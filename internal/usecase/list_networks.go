package usecase

import (
	"context"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
)

// ListNetworks resolves every configured network
type ListNetworks struct {
	resolver NetworkResolver
}

// NewListNetworks creates a new list networks use case
func NewListNetworks(resolver NetworkResolver) *ListNetworks {
	return &ListNetworks{resolver: resolver}
}

// NetworkInfo is a configured network and any resolution error
type NetworkInfo struct {
	Name    string
	Network *config.Network
	Error   error
}

// NetworkListResult contains the result of listing networks
type NetworkListResult struct {
	Networks []NetworkInfo
}

// Run resolves all networks; a network that cannot be resolved is reported, not fatal
func (uc *ListNetworks) Run(ctx context.Context) *NetworkListResult {
	result := &NetworkListResult{}
	for _, name := range uc.resolver.GetNetworks(ctx) {
		network, err := uc.resolver.ResolveNetwork(ctx, name)
		result.Networks = append(result.Networks, NetworkInfo{Name: name, Network: network, Error: err})
	}
	return result
}
