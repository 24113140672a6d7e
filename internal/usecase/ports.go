package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// LedgerStore persists the deployment ledger
type LedgerStore interface {
	// Read never fails: a missing store, missing key or broken file all
	// resolve to (nil, false).
	Read(ctx context.Context, contractName, networkName string) (*models.LedgerEntry, bool)
	Write(ctx context.Context, contractName, networkName string, entry models.LedgerEntry) error
	Load(ctx context.Context) (models.Ledger, error)
	Path() string
}

// ContractFactory submits contract-creation transactions and waits for them
type ContractFactory interface {
	Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeployedContract, error)
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, contractName string) (*models.Artifact, error)
	ListContracts(ctx context.Context) ([]string, error)
}

// VerificationRequest is what a verification service needs from a ledger entry
type VerificationRequest struct {
	ContractName    string
	Address         string
	ConstructorArgs []string
	Network         *config.Network
}

// SourceVerifier publishes contract source to a block explorer
type SourceVerifier interface {
	Verify(ctx context.Context, req VerificationRequest) error
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// TokenReader queries ERC20 state over RPC
type TokenReader interface {
	ReadToken(ctx context.Context, network *config.Network, token, holder, spender common.Address) (*models.TokenInfo, error)
}

// DeploymentConfirmer asks the operator before broadcasting to a live network
type DeploymentConfirmer interface {
	ConfirmDeployment(ctx context.Context, contractName string, network *config.Network, args []string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
