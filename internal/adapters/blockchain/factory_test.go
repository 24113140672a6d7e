package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// init code that returns the single byte 0x00 as runtime code
	minimalInitCode = "0x6001600c60003960016000f300"
	// init code that always reverts
	revertingInitCode = "0x60006000fd"
	simChainID        = 1337
)

type stubArtifacts map[string]*models.Artifact

func (s stubArtifacts) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if a, ok := s[name]; ok {
		return a, nil
	}
	return nil, &domain.ConfigurationError{Contract: name, Reason: "no compiled artifact found", Err: domain.ErrArtifactNotFound}
}

func (s stubArtifacts) ListContracts(ctx context.Context) ([]string, error) {
	var names []string
	for name := range s {
		names = append(names, name)
	}
	return names, nil
}

func testArtifacts() stubArtifacts {
	return stubArtifacts{
		"SafeCoin": {
			ContractName: "SafeCoin",
			SourceName:   "contracts/SafeCoin.sol",
			ABI:          json.RawMessage(tokenABI),
			Bytecode:     minimalInitCode,
		},
		"Reverter": {
			ContractName: "Reverter",
			ABI:          json.RawMessage(`[]`),
			Bytecode:     revertingInitCode,
		},
		"Vault": linkedArtifact(),
	}
}

type simEnv struct {
	factory *Factory
	network *config.Network
	sim     *simulated.Backend
}

// newSimEnv starts a simulated chain funding the dev account. When mine is
// true blocks are committed in the background so receipts become available.
func newSimEnv(t *testing.T, mine bool) *simEnv {
	t.Helper()

	key, err := crypto.HexToECDSA(DevAccountKey)
	require.NoError(t, err)
	funds := new(big.Int).Mul(big.NewInt(1e18), big.NewInt(100))

	sim := simulated.NewBackend(types.GenesisAlloc{
		crypto.PubkeyToAddress(key.PublicKey): {Balance: funds},
	})
	t.Cleanup(func() { sim.Close() })

	if mine {
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(50 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					sim.Commit()
				}
			}
		}()
		t.Cleanup(func() { close(done) })
	}

	factory := &Factory{
		artifacts:  testArtifacts(),
		privateKey: "0x" + DevAccountKey,
		timeout:    10 * time.Second,
		dial: func(ctx context.Context, rpcURL string) (Backend, func(), error) {
			return sim.Client(), func() {}, nil
		},
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return &simEnv{
		factory: factory,
		network: &config.Network{Name: "simnet", ChainID: simChainID, RPCURL: "simulated"},
		sim:     sim,
	}
}

func TestFactoryDeploy(t *testing.T) {
	ctx := context.Background()

	t.Run("deploys and confirms", func(t *testing.T) {
		env := newSimEnv(t, true)

		deployed, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin", "SAFE", "100000000"},
		})
		require.NoError(t, err)

		deployer, err := env.factory.Deployer(env.network)
		require.NoError(t, err)
		assert.Equal(t, deployer, deployed.Deployer)
		assert.NotZero(t, deployed.BlockNumber)
		assert.NotZero(t, deployed.GasUsed)

		code, err := env.sim.Client().CodeAt(ctx, deployed.Address, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00}, code)
	})

	t.Run("explicit gas limit", func(t *testing.T) {
		env := newSimEnv(t, true)

		deployed, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin", "SAFE", "1"},
			GasLimit:     300000,
		})
		require.NoError(t, err)

		tx, _, err := env.sim.Client().TransactionByHash(ctx, deployed.TxHash)
		require.NoError(t, err)
		assert.Equal(t, uint64(300000), tx.Gas())
	})

	t.Run("revert during estimation fails at submit", func(t *testing.T) {
		env := newSimEnv(t, true)

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{ContractName: "Reverter"})

		var onChain *domain.OnChainError
		require.ErrorAs(t, err, &onChain)
		assert.Equal(t, domain.StageSubmit, onChain.Stage)
	})

	t.Run("reverted receipt fails at execute", func(t *testing.T) {
		env := newSimEnv(t, true)

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "Reverter",
			GasLimit:     100000,
		})

		var onChain *domain.OnChainError
		require.ErrorAs(t, err, &onChain)
		assert.Equal(t, domain.StageExecute, onChain.Stage)
		assert.NotEmpty(t, onChain.TxHash)
		assert.NotEmpty(t, onChain.Reason)
	})

	t.Run("unconfirmed transaction times out", func(t *testing.T) {
		env := newSimEnv(t, false)
		env.factory.timeout = 200 * time.Millisecond

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin", "SAFE", "1"},
		})

		var onChain *domain.OnChainError
		require.ErrorAs(t, err, &onChain)
		assert.Equal(t, domain.StageConfirm, onChain.Stage)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("unresolved library never reaches the chain", func(t *testing.T) {
		env := newSimEnv(t, false)
		dialed := false
		env.factory.dial = func(ctx context.Context, rpcURL string) (Backend, func(), error) {
			dialed = true
			return env.sim.Client(), func() {}, nil
		}

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{ContractName: "Vault"})

		assert.ErrorIs(t, err, domain.ErrUnresolvedLibrary)
		assert.False(t, dialed)
	})

	t.Run("wrong argument count is a configuration error", func(t *testing.T) {
		env := newSimEnv(t, false)

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin"},
		})

		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Reason, "expects 3 arguments")
	})

	t.Run("unknown artifact", func(t *testing.T) {
		env := newSimEnv(t, false)

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{ContractName: "Nope"})
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		env := newSimEnv(t, false)
		env.network.ChainID = 11155111

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin", "SAFE", "1"},
		})

		var cfgErr *domain.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, cfgErr.Reason, "chain ID")
	})

	t.Run("dial failure is a submit error", func(t *testing.T) {
		env := newSimEnv(t, false)
		env.factory.dial = func(ctx context.Context, rpcURL string) (Backend, func(), error) {
			return nil, nil, errors.New("connection refused")
		}

		_, err := env.factory.Deploy(ctx, env.network, models.DeploymentRequest{
			ContractName: "SafeCoin",
			Args:         []any{"Safe Coin", "SAFE", "1"},
		})

		var onChain *domain.OnChainError
		require.ErrorAs(t, err, &onChain)
		assert.Equal(t, domain.StageSubmit, onChain.Stage)
	})
}

func TestFactorySignerKey(t *testing.T) {
	f := &Factory{}

	t.Run("local network falls back to dev account", func(t *testing.T) {
		addr, err := f.Deployer(&config.Network{Name: "hardhat", ChainID: config.LocalChainID})
		require.NoError(t, err)
		assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addr.Hex())
	})

	t.Run("live network requires a key", func(t *testing.T) {
		_, err := f.Deployer(&config.Network{Name: "eth_sepolia", ChainID: 11155111})
		assert.ErrorContains(t, err, "PRIVATE_KEY")
	})

	t.Run("invalid key", func(t *testing.T) {
		bad := &Factory{privateKey: "0x1234"}
		_, err := bad.Deployer(&config.Network{Name: "eth_sepolia", ChainID: 11155111})
		assert.ErrorContains(t, err, "invalid deployer key")
	})
}
