package usecase

import (
	"context"
	"fmt"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// ShowDeployment returns a single ledger entry
type ShowDeployment struct {
	ledger LedgerStore
}

// NewShowDeployment creates a new show deployment use case
func NewShowDeployment(ledger LedgerStore) *ShowDeployment {
	return &ShowDeployment{ledger: ledger}
}

// Run returns the record for (contractName, networkName)
func (uc *ShowDeployment) Run(ctx context.Context, contractName, networkName string) (*models.LedgerRecord, error) {
	entry, ok := uc.ledger.Read(ctx, contractName, networkName)
	if !ok {
		return nil, fmt.Errorf("%s on %s: %w", contractName, networkName, domain.ErrNotFound)
	}
	return &models.LedgerRecord{Contract: contractName, Network: networkName, Entry: *entry}, nil
}
