package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func listResult() *usecase.DeploymentListResult {
	return &usecase.DeploymentListResult{
		LedgerPath: "deployed-contracts.json",
		Records: []models.LedgerRecord{
			{Contract: "SafeCoin", Network: "eth_sepolia", Entry: models.LedgerEntry{
				Address:  "0x00000000000000000000000000000000000000aa",
				Deployer: "0x0000000000000000000000000000000000000011",
				Datetime: "2024/01/02 03:04:05",
				Args:     []string{"Safe Coin", "SAFE", "100000000"},
			}},
			{Contract: "Vault", Network: "eth_sepolia", Entry: models.LedgerEntry{Address: "0x00000000000000000000000000000000000000bb"}},
		},
		Summary: usecase.DeploymentSummary{Total: 2, ByNetwork: map[string]int{"eth_sepolia": 2}},
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		amount   *big.Int
		decimals uint8
		want     string
	}{
		{big.NewInt(0), 18, "0"},
		{big.NewInt(100000000), 0, "100000000"},
		{new(big.Int).Mul(big.NewInt(100000000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)), 18, "100000000"},
		{big.NewInt(1500000), 6, "1.5"},
		{big.NewInt(1), 6, "0.000001"},
		{big.NewInt(-2500), 3, "-2.5"},
		{nil, 18, "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUnits(tt.amount, tt.decimals))
	}
}

func TestDeploymentsRenderer(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatTable).Render(listResult()))

		out := buf.String()
		assert.Contains(t, out, "SafeCoin")
		assert.Contains(t, out, "0x00000000000000000000000000000000000000aa")
		assert.Contains(t, out, "Safe Coin, SAFE, 100000000")
		assert.Contains(t, out, "2 deployment(s) across 1 network(s)")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatJSON).Render(listResult()))

		assert.Contains(t, buf.String(), `"contract": "SafeCoin"`)
		assert.Contains(t, buf.String(), `"address": "0x00000000000000000000000000000000000000bb"`)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatYAML).Render(listResult()))

		assert.Contains(t, buf.String(), "- contract: SafeCoin\n")
		assert.Contains(t, buf.String(), "network: eth_sepolia")
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf, FormatTable).Render(&usecase.DeploymentListResult{LedgerPath: "ledger.json"}))
		assert.Equal(t, "No deployments found in ledger.json\n", buf.String())
	})
}

func TestDeployRendererErrors(t *testing.T) {
	t.Run("unrecorded deployment shows the address", func(t *testing.T) {
		var buf bytes.Buffer
		NewDeployRenderer(&buf).RenderError(&domain.UnrecordedDeploymentError{
			Contract: "SafeCoin",
			Network:  "eth_sepolia",
			Address:  "0x00000000000000000000000000000000000000aa",
			Deployer: "0x11",
			Err:      errors.New("disk full"),
		})

		out := buf.String()
		assert.Contains(t, out, "NOT recorded")
		assert.Contains(t, out, "0x00000000000000000000000000000000000000aa")
		assert.Contains(t, out, "disk full")
	})

	t.Run("on-chain failure shows stage", func(t *testing.T) {
		var buf bytes.Buffer
		NewDeployRenderer(&buf).RenderError(&domain.OnChainError{
			Contract: "SafeCoin",
			Stage:    domain.StageExecute,
			TxHash:   "0xdead",
			Reason:   "execution reverted",
		})

		assert.Contains(t, buf.String(), "failed at execute stage: execution reverted")
		assert.Contains(t, buf.String(), "Tx: 0xdead")
	})
}

func TestVerifyRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewVerifyRenderer(&buf).Render(&usecase.VerifyAllResult{
		Outcomes: []domain.VerificationOutcome{
			{Contract: "SafeCoin", Network: "eth_sepolia", Status: domain.VerificationFailed, Kind: domain.VerificationKindBytecodeMismatch, Reason: "bytecode does not match"},
			{Contract: "Vault", Network: "eth_sepolia", Address: "0xbb", Status: domain.VerificationVerified},
		},
		VerifiedCount: 1,
		FailedCount:   1,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "✗ SafeCoin on eth_sepolia failed [")
	assert.Contains(t, out, "]: bytecode does not match")
	assert.Contains(t, out, "✓ Vault on eth_sepolia verified (0xbb)")
	assert.Contains(t, out, "1 verified, 0 skipped, 1 failed")
}

func TestTokenRenderer(t *testing.T) {
	info := &models.TokenInfo{
		Address:     common.HexToAddress("0xaa"),
		Name:        "Safe Coin",
		Symbol:      "SAFE",
		Decimals:    18,
		TotalSupply: new(big.Int).Mul(big.NewInt(100000000), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)),
		Holder:      common.HexToAddress("0x11"),
		Balance:     new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil),
	}

	var buf bytes.Buffer
	require.NoError(t, NewTokenRenderer(&buf, FormatTable).Render(info))
	assert.Contains(t, buf.String(), "Total supply: 100000000 SAFE")
	assert.Contains(t, buf.String(), ": 1 SAFE")
	assert.NotContains(t, buf.String(), "Allowance")

	buf.Reset()
	require.NoError(t, NewTokenRenderer(&buf, FormatJSON).Render(info))
	assert.Contains(t, buf.String(), `"totalSupply": "100000000000000000000000000"`)
	assert.NotContains(t, buf.String(), "allowance")
}
