package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
)

// VerifyDeployment handles contract verification on block explorers
type VerifyDeployment struct {
	ledger   LedgerStore
	verifier SourceVerifier
	progress ProgressSink
	log      *slog.Logger
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	ledger LedgerStore,
	verifier SourceVerifier,
	progress ProgressSink,
	log *slog.Logger,
) *VerifyDeployment {
	return &VerifyDeployment{
		ledger:   ledger,
		verifier: verifier,
		progress: progress,
		log:      log,
	}
}

// VerifyRecorded verifies the ledger entry for (contractName, network).
// It never returns an error: a missing entry is Skipped and a verifier
// failure is Failed.
func (v *VerifyDeployment) VerifyRecorded(ctx context.Context, contractName string, network *config.Network) domain.VerificationOutcome {
	outcome := domain.VerificationOutcome{
		Contract: contractName,
		Network:  network.Name,
	}

	entry, ok := v.ledger.Read(ctx, contractName, network.Name)
	if !ok {
		outcome.Status = domain.VerificationSkipped
		outcome.Reason = "no ledger entry"
		outcome.Kind = domain.VerificationKindNotRecorded
		v.log.Info("nothing to verify", slog.String("contract", contractName), slog.String("network", network.Name))
		return outcome
	}
	outcome.Address = entry.Address

	if network.IsLocal() {
		outcome.Status = domain.VerificationSkipped
		outcome.Reason = "local network"
		outcome.Kind = domain.VerificationKindLocalNetwork
		return outcome
	}

	v.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "verifying",
		Message: fmt.Sprintf("Verifying %s at %s...", contractName, entry.Address),
		Spinner: true,
	})

	err := v.verifier.Verify(ctx, VerificationRequest{
		ContractName:    contractName,
		Address:         entry.Address,
		ConstructorArgs: entry.Args,
		Network:         network,
	})
	v.progress.OnProgress(ctx, ProgressEvent{Stage: "verified"})

	if err != nil {
		outcome.Status = domain.VerificationFailed
		outcome.Reason = err.Error()
		outcome.Kind = domain.VerificationKindUnknown

		var verr *domain.VerificationError
		if errors.As(err, &verr) {
			outcome.Kind = verr.Kind
			outcome.Reason = verr.Message
		}

		v.log.Warn("verification failed",
			slog.String("contract", contractName),
			slog.String("network", network.Name),
			slog.String("address", entry.Address),
			slog.String("kind", string(outcome.Kind)),
			slog.String("error", outcome.Reason),
		)
		return outcome
	}

	outcome.Status = domain.VerificationVerified
	v.log.Info("verification succeeded",
		slog.String("contract", contractName),
		slog.String("network", network.Name),
		slog.String("address", entry.Address),
	)
	return outcome
}

// VerifyAllResult contains the result of verifying every recorded contract
type VerifyAllResult struct {
	Outcomes      []domain.VerificationOutcome
	VerifiedCount int
	SkippedCount  int
	FailedCount   int
}

// VerifyAll verifies every contract recorded on network. One failure never
// stops the batch.
func (v *VerifyDeployment) VerifyAll(ctx context.Context, network *config.Network) (*VerifyAllResult, error) {
	ledger, err := v.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var contracts []string
	for contract, networks := range ledger {
		if _, ok := networks[network.Name]; ok {
			contracts = append(contracts, contract)
		}
	}
	sort.Strings(contracts)

	result := &VerifyAllResult{}
	for _, contract := range contracts {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome := v.VerifyRecorded(ctx, contract, network)
		result.Outcomes = append(result.Outcomes, outcome)
		switch outcome.Status {
		case domain.VerificationVerified:
			result.VerifiedCount++
		case domain.VerificationSkipped:
			result.SkippedCount++
		default:
			result.FailedCount++
		}
	}

	return result, nil
}
