package app

import (
	"log/slog"

	"github.com/safecoin-labs/safecoin-deploy/internal/adapters/verification"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployContract   *usecase.DeployContract
	VerifyDeployment *usecase.VerifyDeployment
	ListDeployments  *usecase.ListDeployments
	ShowDeployment   *usecase.ShowDeployment
	ListNetworks     *usecase.ListNetworks
	TokenInfo        *usecase.TokenInfo

	// Adapters needed directly by commands
	Ledger   usecase.LedgerStore
	Networks usecase.NetworkResolver
	Verifier *verification.ForgeVerifier
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployContract *usecase.DeployContract,
	verifyDeployment *usecase.VerifyDeployment,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	tokenInfo *usecase.TokenInfo,
	ledger usecase.LedgerStore,
	networks usecase.NetworkResolver,
	verifier *verification.ForgeVerifier,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		DeployContract:   deployContract,
		VerifyDeployment: verifyDeployment,
		ListDeployments:  listDeployments,
		ShowDeployment:   showDeployment,
		ListNetworks:     listNetworks,
		TokenInfo:        tokenInfo,
		Ledger:           ledger,
		Networks:         networks,
		Verifier:         verifier,
	}, nil
}
