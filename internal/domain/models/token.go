package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TokenInfo is a snapshot of ERC20 state read from the chain
type TokenInfo struct {
	Address     common.Address
	Name        string
	Symbol      string
	Decimals    uint8
	TotalSupply *big.Int
	Holder      common.Address
	Balance     *big.Int
	Spender     common.Address
	Allowance   *big.Int
}
