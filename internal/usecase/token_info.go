package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// TokenInfo reads on-chain ERC20 state of a recorded token
type TokenInfo struct {
	ledger LedgerStore
	reader TokenReader
}

// NewTokenInfo creates a new token info use case
func NewTokenInfo(ledger LedgerStore, reader TokenReader) *TokenInfo {
	return &TokenInfo{ledger: ledger, reader: reader}
}

// Run looks up contractName on network and reads its state for holder and spender
func (uc *TokenInfo) Run(ctx context.Context, contractName string, network *config.Network, holder, spender string) (*models.TokenInfo, error) {
	entry, ok := uc.ledger.Read(ctx, contractName, network.Name)
	if !ok {
		return nil, fmt.Errorf("%s is not recorded on %s: %w", contractName, network.Name, domain.ErrNotFound)
	}

	for _, addr := range []string{holder, spender} {
		if addr != "" && !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, addr)
		}
	}

	holderAddr := common.HexToAddress(entry.Deployer)
	if holder != "" {
		holderAddr = common.HexToAddress(holder)
	}

	return uc.reader.ReadToken(ctx, network, common.HexToAddress(entry.Address), holderAddr, common.HexToAddress(spender))
}
