package models

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentRequest describes a single contract creation. It is never persisted.
type DeploymentRequest struct {
	ContractName string
	Args         []any
	// Libraries maps a library name (or "source.sol:Name") to its deployed address
	Libraries map[string]string
	// GasLimit overrides gas estimation when non-zero
	GasLimit uint64
}

// DeployedContract is the handle returned once a creation transaction is confirmed
type DeployedContract struct {
	ContractName string
	Address      common.Address
	Deployer     common.Address
	TxHash       common.Hash
	BlockNumber  uint64
	GasUsed      uint64
}

// StringifyArgs renders constructor arguments in order, the way they are
// stored in the ledger.
func StringifyArgs(args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = StringifyArg(arg)
	}
	return out
}

// StringifyArg renders a single constructor argument
func StringifyArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return ""
	case string:
		return v
	case *big.Int:
		if v == nil {
			return "0"
		}
		return v.String()
	case common.Address:
		return v.Hex()
	case []byte:
		return "0x" + common.Bytes2Hex(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// StringArgs lifts ledger-form arguments back into constructor arguments
func StringArgs(args []string) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}
