package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/stretchr/testify/mock"
)

// MockLedgerStore is a mock implementation of LedgerStore
type MockLedgerStore struct {
	mock.Mock
}

func (m *MockLedgerStore) Read(ctx context.Context, contractName, networkName string) (*models.LedgerEntry, bool) {
	args := m.Called(ctx, contractName, networkName)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Bool(1)
}

func (m *MockLedgerStore) Write(ctx context.Context, contractName, networkName string, entry models.LedgerEntry) error {
	args := m.Called(ctx, contractName, networkName, entry)
	return args.Error(0)
}

func (m *MockLedgerStore) Load(ctx context.Context) (models.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Ledger), args.Error(1)
}

func (m *MockLedgerStore) Path() string {
	return "deployed-contracts.json"
}

// MockContractFactory is a mock implementation of ContractFactory
type MockContractFactory struct {
	mock.Mock
}

func (m *MockContractFactory) Deploy(ctx context.Context, network *config.Network, req models.DeploymentRequest) (*models.DeployedContract, error) {
	args := m.Called(ctx, network, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeployedContract), args.Error(1)
}

// MockSourceVerifier is a mock implementation of SourceVerifier
type MockSourceVerifier struct {
	mock.Mock
}

func (m *MockSourceVerifier) Verify(ctx context.Context, req usecase.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockTokenReader is a mock implementation of TokenReader
type MockTokenReader struct {
	mock.Mock
}

func (m *MockTokenReader) ReadToken(ctx context.Context, network *config.Network, token, holder, spender common.Address) (*models.TokenInfo, error) {
	args := m.Called(ctx, network, token, holder, spender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenInfo), args.Error(1)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}
func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) stages() []string {
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

type staticConfirmer struct {
	answer bool
	calls  int
}

func (c *staticConfirmer) ConfirmDeployment(context.Context, string, *config.Network, []string) (bool, error) {
	c.calls++
	return c.answer, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var sepolia = &config.Network{
	Name:        "eth_sepolia",
	ChainID:     11155111,
	RPCURL:      "https://sepolia.example.org",
	ExplorerURL: "https://sepolia.etherscan.io",
}
