package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// TokenRenderer renders ERC20 state
type TokenRenderer struct {
	out    io.Writer
	format Format
}

// NewTokenRenderer creates a new token renderer
func NewTokenRenderer(out io.Writer, format Format) *TokenRenderer {
	return &TokenRenderer{out: out, format: format}
}

type tokenView struct {
	Address     string `json:"address" yaml:"address"`
	Name        string `json:"name" yaml:"name"`
	Symbol      string `json:"symbol" yaml:"symbol"`
	Decimals    uint8  `json:"decimals" yaml:"decimals"`
	TotalSupply string `json:"totalSupply" yaml:"totalSupply"`
	Holder      string `json:"holder" yaml:"holder"`
	Balance     string `json:"balance" yaml:"balance"`
	Spender     string `json:"spender,omitempty" yaml:"spender,omitempty"`
	Allowance   string `json:"allowance,omitempty" yaml:"allowance,omitempty"`
}

// Render renders token info
func (r *TokenRenderer) Render(info *models.TokenInfo) error {
	hasSpender := info.Spender != (common.Address{}) && info.Allowance != nil

	if r.format != FormatTable {
		view := tokenView{
			Address:     info.Address.Hex(),
			Name:        info.Name,
			Symbol:      info.Symbol,
			Decimals:    info.Decimals,
			TotalSupply: info.TotalSupply.String(),
			Holder:      info.Holder.Hex(),
			Balance:     info.Balance.String(),
		}
		if hasSpender {
			view.Spender = info.Spender.Hex()
			view.Allowance = info.Allowance.String()
		}
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintln(r.out, contractHeader.Sprintf(" %s (%s) ", info.Name, info.Symbol))
	fmt.Fprintf(r.out, "  Address:      %s\n", addressStyle.Sprint(info.Address.Hex()))
	fmt.Fprintf(r.out, "  Decimals:     %d\n", info.Decimals)
	fmt.Fprintf(r.out, "  Total supply: %s %s\n", FormatUnits(info.TotalSupply, info.Decimals), info.Symbol)
	fmt.Fprintf(r.out, "  Balance of %s: %s %s\n", info.Holder.Hex(), FormatUnits(info.Balance, info.Decimals), info.Symbol)
	if hasSpender {
		fmt.Fprintf(r.out, "  Allowance to %s: %s %s\n", info.Spender.Hex(), FormatUnits(info.Allowance, info.Decimals), info.Symbol)
	}
	return nil
}
