package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
)

// Backend is the RPC surface needed to deploy and confirm a contract.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// Dialer opens a Backend for an RPC endpoint. The returned func releases it.
type Dialer func(ctx context.Context, rpcURL string) (Backend, func(), error)

// DialRPC connects with ethclient
func DialRPC(ctx context.Context, rpcURL string) (Backend, func(), error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, client.Close, nil
}

// checkChainID returns the chain id to sign for. A configured chain id must
// match what the endpoint reports.
func checkChainID(ctx context.Context, backend Backend, network *config.Network, contractName string) (*big.Int, error) {
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	if network.ChainID != 0 && networkChainID.Uint64() != network.ChainID {
		return nil, &domain.ConfigurationError{
			Contract: contractName,
			Reason: fmt.Sprintf("network %s expects chain ID %d but the RPC reports %d",
				network.Name, network.ChainID, networkChainID.Uint64()),
		}
	}
	return networkChainID, nil
}
