package token

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
	"github.com/lmittmann/w3/module/eth"
	"github.com/lmittmann/w3/w3types"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

var (
	funcName        = w3.MustNewFunc("name()", "string")
	funcSymbol      = w3.MustNewFunc("symbol()", "string")
	funcDecimals    = w3.MustNewFunc("decimals()", "uint8")
	funcTotalSupply = w3.MustNewFunc("totalSupply()", "uint256")
	funcBalanceOf   = w3.MustNewFunc("balanceOf(address)", "uint256")
	funcAllowance   = w3.MustNewFunc("allowance(address,address)", "uint256")
)

// Dialer opens a w3 client for an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (*w3.Client, error)

func dialW3(ctx context.Context, rpcURL string) (*w3.Client, error) {
	return w3.Dial(rpcURL)
}

// Reader reads ERC20 state with a single batched RPC request
type Reader struct {
	dial Dialer
	log  *slog.Logger
}

// NewReader creates a new ERC20 reader
func NewReader(log *slog.Logger) *Reader {
	return &Reader{dial: dialW3, log: log}
}

// ReadToken queries name, symbol, decimals, total supply and the holder's
// balance. The allowance is only queried for a non-zero spender.
func (r *Reader) ReadToken(ctx context.Context, network *config.Network, token, holder, spender common.Address) (*models.TokenInfo, error) {
	client, err := r.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	defer client.Close()

	info := &models.TokenInfo{
		Address: token,
		Holder:  holder,
		Spender: spender,
	}

	var totalSupply, balance, allowance *big.Int
	calls := []w3types.RPCCaller{
		eth.CallFunc(token, funcName).Returns(&info.Name),
		eth.CallFunc(token, funcSymbol).Returns(&info.Symbol),
		eth.CallFunc(token, funcDecimals).Returns(&info.Decimals),
		eth.CallFunc(token, funcTotalSupply).Returns(&totalSupply),
		eth.CallFunc(token, funcBalanceOf, holder).Returns(&balance),
	}
	if spender != (common.Address{}) {
		calls = append(calls, eth.CallFunc(token, funcAllowance, holder, spender).Returns(&allowance))
	}

	r.log.Debug("reading token state",
		slog.String("network", network.Name),
		slog.String("token", token.Hex()),
		slog.Int("calls", len(calls)),
	)

	if err := client.CallCtx(ctx, calls...); err != nil {
		return nil, fmt.Errorf("read token %s on %s: %w", token.Hex(), network.Name, err)
	}

	info.TotalSupply = totalSupply
	info.Balance = balance
	info.Allowance = allowance
	return info, nil
}

var _ usecase.TokenReader = (*Reader)(nil)
