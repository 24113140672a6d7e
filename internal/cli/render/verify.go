package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// RenderOutcome renders the result of verifying one deployment
func (r *VerifyRenderer) RenderOutcome(outcome domain.VerificationOutcome) {
	switch outcome.Status {
	case domain.VerificationVerified:
		color.New(color.FgGreen).Fprintf(r.out, "✓ %s on %s verified (%s)\n", outcome.Contract, outcome.Network, outcome.Address)
	case domain.VerificationSkipped:
		color.New(color.FgYellow).Fprintf(r.out, "⏭️  %s on %s skipped: %s\n", outcome.Contract, outcome.Network, outcome.Reason)
	default:
		kind := ""
		if outcome.Kind != "" {
			kind = fmt.Sprintf(" [%s]", cases.Title(language.English).String(string(outcome.Kind)))
		}
		color.New(color.FgRed).Fprintf(r.out, "✗ %s on %s failed%s: %s\n", outcome.Contract, outcome.Network, kind, outcome.Reason)
	}
}

// Render renders a batch verification
func (r *VerifyRenderer) Render(result *usecase.VerifyAllResult) error {
	if len(result.Outcomes) == 0 {
		color.New(color.FgYellow).Fprintln(r.out, "No recorded deployments found to verify.")
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Verifying %d recorded deployment(s):\n", len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		fmt.Fprint(r.out, "  ")
		r.RenderOutcome(outcome)
	}

	fmt.Fprintf(r.out, "\nVerification complete: %d verified, %d skipped, %d failed\n",
		result.VerifiedCount, result.SkippedCount, result.FailedCount)
	return nil
}

// RenderCommands prints the verifier commands of a dry run
func (r *VerifyRenderer) RenderCommands(commands []string) {
	color.New(color.FgYellow).Fprintln(r.out, "Dry run, commands that would be executed:")
	for _, c := range commands {
		fmt.Fprintf(r.out, "  %s\n", c)
	}
}
