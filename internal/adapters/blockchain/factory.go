package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	appconfig "github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

// DevAccountKey is account #0 of the default Hardhat/Anvil mnemonic. It is
// only used on local networks when no key is configured.
const DevAccountKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

// Factory deploys compiled artifacts with a single private key
type Factory struct {
	artifacts  usecase.ArtifactRepository
	privateKey string
	timeout    time.Duration
	dial       Dialer
	log        *slog.Logger
}

// NewFactory creates a contract factory
func NewFactory(cfg *appconfig.RuntimeConfig, artifacts usecase.ArtifactRepository, log *slog.Logger) *Factory {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = appconfig.DefaultConfirmationTimeout
	}
	return &Factory{
		artifacts:  artifacts,
		privateKey: cfg.PrivateKey,
		timeout:    timeout,
		dial:       DialRPC,
		log:        log,
	}
}

// Deployer returns the account that signs deployments on network
func (f *Factory) Deployer(network *config.Network) (common.Address, error) {
	key, err := f.signerKey(network)
	if err != nil {
		return common.Address{}, err
	}
	return crypto.PubkeyToAddress(key.PublicKey), nil
}

// Deploy links, encodes, submits and confirms a contract creation
func (f *Factory) Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeployedContract, error) {
	log := f.log.With(slog.String("contract", req.ContractName), slog.String("network", network.Name))

	artifact, err := f.artifacts.GetArtifact(ctx, req.ContractName)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved artifact", slog.String("path", artifact.Path), slog.String("source", artifact.SourceName))

	bytecode, err := LinkBytecode(artifact, req.Libraries)
	if err != nil {
		return nil, err
	}

	parsed, err := ParseABI(artifact.ABI)
	if err != nil {
		return nil, &domain.ConfigurationError{Contract: req.ContractName, Reason: "invalid artifact abi", Err: err}
	}

	args, err := CoerceArgs(parsed.Constructor.Inputs, req.Args)
	if err != nil {
		return nil, &domain.ConfigurationError{Contract: req.ContractName, Reason: err.Error()}
	}

	key, err := f.signerKey(network)
	if err != nil {
		return nil, &domain.ConfigurationError{Contract: req.ContractName, Reason: err.Error()}
	}

	backend, release, err := f.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, &domain.OnChainError{Contract: req.ContractName, Stage: domain.StageSubmit, Err: err}
	}
	defer release()

	chainID, err := checkChainID(ctx, backend, network, req.ContractName)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &domain.OnChainError{Contract: req.ContractName, Stage: domain.StageSubmit, Err: err}
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = req.GasLimit

	log.Debug("submitting creation transaction",
		slog.String("from", opts.From.Hex()),
		slog.Int("code_size", len(bytecode)),
		slog.Uint64("gas_limit", req.GasLimit),
	)

	address, tx, _, err := bind.DeployContract(opts, parsed, bytecode, backend, args...)
	if err != nil {
		return nil, &domain.OnChainError{
			Contract: req.ContractName,
			Stage:    domain.StageSubmit,
			Reason:   revertReason(err),
			Err:      err,
		}
	}

	log.Info("creation transaction submitted, waiting for confirmation",
		slog.String("tx_hash", tx.Hash().Hex()),
		slog.String("address", address.Hex()),
	)

	waitCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, backend, tx)
	if err != nil {
		reason := "receipt not available"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = fmt.Sprintf("not confirmed within %s", f.timeout)
		}
		return nil, &domain.OnChainError{
			Contract: req.ContractName,
			Stage:    domain.StageConfirm,
			TxHash:   tx.Hash().Hex(),
			Reason:   reason,
			Err:      err,
		}
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.OnChainError{
			Contract: req.ContractName,
			Stage:    domain.StageExecute,
			TxHash:   tx.Hash().Hex(),
			Reason:   replayRevert(ctx, backend, opts.From, tx, receipt.BlockNumber),
		}
	}

	code, err := backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, &domain.OnChainError{Contract: req.ContractName, Stage: domain.StageConfirm, TxHash: tx.Hash().Hex(), Err: err}
	}
	if len(code) == 0 {
		return nil, &domain.OnChainError{
			Contract: req.ContractName,
			Stage:    domain.StageExecute,
			TxHash:   tx.Hash().Hex(),
			Reason:   "no code at deployed address",
		}
	}

	log.Info("transaction confirmed",
		slog.Uint64("block_number", receipt.BlockNumber.Uint64()),
		slog.Uint64("gas_used", receipt.GasUsed),
	)

	return &models.DeployedContract{
		ContractName: req.ContractName,
		Address:      address,
		Deployer:     opts.From,
		TxHash:       tx.Hash(),
		BlockNumber:  receipt.BlockNumber.Uint64(),
		GasUsed:      receipt.GasUsed,
	}, nil
}

func (f *Factory) signerKey(network *config.Network) (*ecdsa.PrivateKey, error) {
	hexKey := f.privateKey
	if hexKey == "" {
		if network == nil || !network.IsLocal() {
			return nil, fmt.Errorf("no deployer key configured (set PRIVATE_KEY)")
		}
		hexKey = DevAccountKey
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hexKey), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid deployer key: %w", err)
	}
	return key, nil
}

// replayRevert re-executes a failed creation against the parent block to
// recover the revert reason
func replayRevert(ctx context.Context, backend Backend, from common.Address, tx *types.Transaction, block *big.Int) string {
	msg := ethereum.CallMsg{
		From:  from,
		Gas:   tx.Gas(),
		Value: tx.Value(),
		Data:  tx.Data(),
	}
	var at *big.Int
	if block != nil && block.Sign() > 0 {
		at = new(big.Int).Sub(block, big.NewInt(1))
	}

	if _, err := backend.CallContract(ctx, msg, at); err != nil {
		return revertReason(err)
	}
	return "execution reverted"
}

func revertReason(err error) string {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(data); decErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return reason
				}
			}
		}
	}
	return err.Error()
}

var _ usecase.ContractFactory = (*Factory)(nil)
