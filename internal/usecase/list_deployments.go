package usecase

import (
	"context"
	"fmt"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/samber/lo"
)

// ListDeployments lists ledger entries
type ListDeployments struct {
	ledger LedgerStore
}

// NewListDeployments creates a new list deployments use case
func NewListDeployments(ledger LedgerStore) *ListDeployments {
	return &ListDeployments{ledger: ledger}
}

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Records    []models.LedgerRecord
	LedgerPath string
	Summary    DeploymentSummary
}

// DeploymentSummary provides summary statistics
type DeploymentSummary struct {
	Total     int
	ByNetwork map[string]int
	Contracts []string
}

// Run lists the ledger, filtered and sorted by contract then network
func (uc *ListDeployments) Run(ctx context.Context, filter domain.LedgerFilter) (*DeploymentListResult, error) {
	ledger, err := uc.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	records := lo.Filter(ledger.Records(), func(r models.LedgerRecord, _ int) bool {
		if filter.Contract != "" && r.Contract != filter.Contract {
			return false
		}
		return filter.Network == "" || r.Network == filter.Network
	})

	return &DeploymentListResult{
		Records:    records,
		LedgerPath: uc.ledger.Path(),
		Summary: DeploymentSummary{
			Total: len(records),
			ByNetwork: lo.CountValuesBy(records, func(r models.LedgerRecord) string {
				return r.Network
			}),
			Contracts: lo.Uniq(lo.Map(records, func(r models.LedgerRecord, _ int) string {
				return r.Contract
			})),
		},
	}, nil
}
