package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// DeployRenderer renders the outcome of a deploy command
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderRecorded prints a recorded deployment
func (r *DeployRenderer) RenderRecorded(contract, network string, entry *models.LedgerEntry) {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed to %s", contract, network)))
	fmt.Fprintf(r.out, "   Address:  %s\n", addressStyle.Sprint(entry.Address))
	fmt.Fprintf(r.out, "   Deployer: %s\n", entry.Deployer)
	fmt.Fprintf(r.out, "   Time:     %s\n", timestampStyle.Sprint(entry.Datetime))
}

// RenderError prints deployment failures. A deployment that reached the chain
// but not the ledger is shown with the address that has to be recorded by hand.
func (r *DeployRenderer) RenderError(err error) {
	var unrecorded *domain.UnrecordedDeploymentError
	if errors.As(err, &unrecorded) {
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(r.out, "❌ %s was deployed to %s but NOT recorded in the ledger\n", unrecorded.Contract, unrecorded.Network)
		red.Fprintf(r.out, "   Address:  %s\n", unrecorded.Address)
		red.Fprintf(r.out, "   Deployer: %s\n", unrecorded.Deployer)
		color.New(color.FgRed).Fprintf(r.out, "   Cause:    %v\n", unrecorded.Err)
		fmt.Fprintln(r.out, FormatWarning("Record this address manually before deploying again."))
		return
	}

	var onChain *domain.OnChainError
	if errors.As(err, &onChain) {
		fmt.Fprintln(r.out, FormatError(fmt.Sprintf("%s deployment failed at %s stage: %s", onChain.Contract, onChain.Stage, onChain.Reason)))
		if onChain.TxHash != "" {
			fmt.Fprintf(r.out, "   Tx: %s\n", onChain.TxHash)
		}
		return
	}

	fmt.Fprintln(r.out, FormatError(err.Error()))
}
