package adapters

import (
	"github.com/google/wire"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/blockchain"
	internalconfig "github.com/safecoin-labs/safecoin-deploy/internal/adapters/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/interactive"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/ledger"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/progress"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/repository/contracts"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/token"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/verification"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

// LedgerSet provides the file-backed deployment ledger
var LedgerSet = wire.NewSet(
	ledger.NewFileStore,
	wire.Bind(new(usecase.LedgerStore), new(*ledger.FileStore)),
)

// RepositorySet provides compiled artifact lookup
var RepositorySet = wire.NewSet(
	contracts.NewRepositoryFromConfig,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewFactory,
	wire.Bind(new(usecase.ContractFactory), new(*blockchain.Factory)),
	wire.Bind(new(interactive.DeployerLookup), new(*blockchain.Factory)),

	token.NewReader,
	wire.Bind(new(usecase.TokenReader), new(*token.Reader)),
)

// VerificationSet provides forge-based source verification
var VerificationSet = wire.NewSet(
	verification.NewForgeVerifier,
	wire.Bind(new(usecase.SourceVerifier), new(*verification.ForgeVerifier)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewConfirmerAdapter,
	wire.Bind(new(usecase.DeploymentConfirmer), new(*interactive.ConfirmerAdapter)),

	progress.NewStderrSink,
	wire.Bind(new(usecase.ProgressSink), new(*progress.SpinnerSink)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	LedgerSet,
	RepositorySet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
