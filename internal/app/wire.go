//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/safecoin-labs/safecoin-deploy/internal/adapters"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/logging"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewVerifyDeployment,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewTokenInfo,

		// App
		NewApp,
	)
	return nil, nil
}
