package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/safecoin-labs/safecoin-deploy/internal/config"
	domainconfig "github.com/safecoin-labs/safecoin-deploy/internal/domain/config"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
)

// PromptFunc asks a yes/no question; promptui.ErrAbort means no
type PromptFunc func(label string) error

// ConfirmerAdapter asks the operator before a live-network deployment
type ConfirmerAdapter struct {
	config   *config.RuntimeConfig
	deployer DeployerLookup
	prompt   PromptFunc
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig, deployer DeployerLookup) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config:   cfg,
		deployer: deployer,
		prompt:   promptConfirm,
	}
}

// DeployerLookup resolves the account that will sign a deployment
type DeployerLookup interface {
	Deployer(network *domainconfig.Network) (common.Address, error)
}

// ConfirmDeployment shows what is about to be broadcast and waits for y/N.
// Local networks, --yes and non-interactive runs are not prompted.
func (c *ConfirmerAdapter) ConfirmDeployment(ctx context.Context, contractName string, network *domainconfig.Network, args []string) (bool, error) {
	if network.IsLocal() || c.config.AssumeYes || c.config.NonInteractive {
		return true, nil
	}

	deployer, err := c.deployer.Deployer(network)
	if err != nil {
		return false, err
	}
	fmt.Println(summary(contractName, network, args, deployer.Hex()))

	err = c.prompt(fmt.Sprintf("Deploy %s to %s", contractName, network.Name))
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return true, nil
}

func summary(contractName string, network *domainconfig.Network, args []string, deployer string) string {
	label := color.New(color.Faint).Sprint
	value := color.New(color.FgWhite, color.Bold).Sprint

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", label("Contract:"), value(contractName))
	fmt.Fprintf(&b, "%s %s (chain %d)\n", label("Network: "), value(network.Name), network.ChainID)
	fmt.Fprintf(&b, "%s %s\n", label("Deployer:"), value(deployer))
	if len(args) > 0 {
		fmt.Fprintf(&b, "%s %s", label("Args:    "), color.New(color.FgCyan).Sprint(strings.Join(args, ", ")))
	} else {
		fmt.Fprintf(&b, "%s %s", label("Args:    "), label("(none)"))
	}
	return b.String()
}

func promptConfirm(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err
}

var _ usecase.DeploymentConfirmer = (*ConfirmerAdapter)(nil)
