package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// ErrDeploymentCancelled is returned when the operator declines the confirmation prompt
var ErrDeploymentCancelled = errors.New("deployment cancelled")

// DeployContract deploys a contract and records it in the ledger
type DeployContract struct {
	factory   ContractFactory
	ledger    LedgerStore
	confirmer DeploymentConfirmer
	progress  ProgressSink
	log       *slog.Logger

	// Clock returns the deployment completion time
	Clock func() time.Time
}

// NewDeployContract creates a new deploy contract use case
func NewDeployContract(
	factory ContractFactory,
	ledger LedgerStore,
	confirmer DeploymentConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		factory:   factory,
		ledger:    ledger,
		confirmer: confirmer,
		progress:  progress,
		log:       log,
		Clock:     time.Now,
	}
}

// DeployOptions contains options for a deployment
type DeployOptions struct {
	Network   *config.Network
	Libraries map[string]string
	GasLimit  uint64
}

// DeployAndRecord deploys contractName with args and writes a ledger entry.
// The ledger is only written after the creation transaction is confirmed.
func (d *DeployContract) DeployAndRecord(ctx context.Context, contractName string, args []any, opts DeployOptions) (*models.LedgerEntry, error) {
	if opts.Network == nil {
		return nil, &domain.ConfigurationError{
			Contract: contractName,
			Reason:   "no network selected (use --network)",
			Err:      domain.ErrNetworkNotConfigured,
		}
	}
	network := opts.Network
	stringArgs := models.StringifyArgs(args)

	if d.confirmer != nil {
		ok, err := d.confirmer.ConfirmDeployment(ctx, contractName, network, stringArgs)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrDeploymentCancelled
		}
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s to %s...", contractName, network.Name),
		Spinner: true,
	})

	deployed, err := d.factory.Deploy(ctx, network, models.DeploymentRequest{
		ContractName: contractName,
		Args:         args,
		Libraries:    opts.Libraries,
		GasLimit:     opts.GasLimit,
	})
	if err != nil {
		d.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, err
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "confirmed",
		Message: fmt.Sprintf("%s deployed at %s", contractName, deployed.Address.Hex()),
	})
	d.log.Info("deployment completed",
		slog.String("contract", contractName),
		slog.String("network", network.Name),
		slog.String("address", deployed.Address.Hex()),
		slog.String("tx", deployed.TxHash.Hex()),
	)

	entry := models.LedgerEntry{
		Address:  deployed.Address.Hex(),
		Deployer: deployed.Deployer.Hex(),
		Datetime: models.FormatLedgerTime(d.Clock()),
		Args:     stringArgs,
	}

	if err := d.ledger.Write(ctx, contractName, network.Name, entry); err != nil {
		d.log.Error("contract deployed but NOT recorded, record it manually before redeploying",
			slog.String("contract", contractName),
			slog.String("network", network.Name),
			slog.String("address", entry.Address),
			slog.String("ledger", d.ledger.Path()),
			slog.String("error", err.Error()),
		)
		return &entry, &domain.UnrecordedDeploymentError{
			Contract: contractName,
			Network:  network.Name,
			Address:  entry.Address,
			Deployer: entry.Deployer,
			Err:      err,
		}
	}

	d.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "recorded",
		Message: fmt.Sprintf("Recorded in %s", d.ledger.Path()),
	})

	return &entry, nil
}

// ParseArgs turns configured string arguments into constructor arguments.
// They stay strings; the factory coerces them to ABI types.
func ParseArgs(args []string) []any {
	return models.StringArgs(args)
}
