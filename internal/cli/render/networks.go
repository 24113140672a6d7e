package render

import (
	"fmt"
	"io"

	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.NetworkListResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in safecoin.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		if network.Error != nil {
			fmt.Fprintf(r.out, "  ❌ %s - Error: %v\n", network.Name, network.Error)
			continue
		}
		line := fmt.Sprintf("  ✅ %s - Chain ID: %d", network.Name, network.Network.ChainID)
		if network.Network.IsLocal() {
			line += " (local)"
		} else if network.Network.ExplorerURL != "" {
			line += " - " + network.Network.ExplorerURL
		}
		fmt.Fprintln(r.out, line)
	}

	return nil
}
