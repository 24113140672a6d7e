package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
	"github.com/safecoin-labs/safecoin-deploy/internal/usecase"
	"github.com/samber/lo"
)

// Color styles for table format
var (
	contractHeader = color.New(color.BgYellow, color.FgBlack, color.Bold)
	networkStyle   = color.New(color.FgCyan)
	addressStyle   = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
	argsStyle      = color.New(color.Faint)
)

// deploymentView is the machine readable shape of one ledger record
type deploymentView struct {
	Contract string   `json:"contract" yaml:"contract"`
	Network  string   `json:"network" yaml:"network"`
	Address  string   `json:"address" yaml:"address"`
	Deployer string   `json:"deployer" yaml:"deployer"`
	Datetime string   `json:"datetime" yaml:"datetime"`
	Args     []string `json:"args" yaml:"args"`
}

func toView(r models.LedgerRecord) deploymentView {
	return deploymentView{
		Contract: r.Contract,
		Network:  r.Network,
		Address:  r.Entry.Address,
		Deployer: r.Entry.Deployer,
		Datetime: r.Entry.Datetime,
		Args:     r.Entry.Args,
	}
}

// DeploymentsRenderer renders the ledger grouped by contract
type DeploymentsRenderer struct {
	out    io.Writer
	format Format
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer, format Format) *DeploymentsRenderer {
	return &DeploymentsRenderer{
		out:    out,
		format: format,
	}
}

// Render renders a deployment list
func (r *DeploymentsRenderer) Render(result *usecase.DeploymentListResult) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, lo.Map(result.Records, func(rec models.LedgerRecord, _ int) deploymentView {
			return toView(rec)
		}))
	}

	if len(result.Records) == 0 {
		fmt.Fprintf(r.out, "No deployments found in %s\n", result.LedgerPath)
		return nil
	}

	grouped := lo.GroupBy(result.Records, func(rec models.LedgerRecord) string { return rec.Contract })
	contracts := lo.Keys(grouped)
	sort.Strings(contracts)

	for i, contract := range contracts {
		fmt.Fprintln(r.out, contractHeader.Sprintf(" %s ", contract))

		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Options.SeparateColumns = false
		t.Style().Options.SeparateHeader = false
		t.Style().Box = table.BoxStyle{PaddingLeft: "  ", PaddingRight: " "}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignLeft},
			{Number: 2, Align: text.AlignLeft},
			{Number: 3, Align: text.AlignLeft},
			{Number: 4, Align: text.AlignLeft},
		})

		for _, rec := range grouped[contract] {
			t.AppendRow(table.Row{
				networkStyle.Sprint(rec.Network),
				addressStyle.Sprint(rec.Entry.Address),
				timestampStyle.Sprint(rec.Entry.Datetime),
				argsStyle.Sprint(strings.Join(rec.Entry.Args, ", ")),
			})
		}
		fmt.Fprintln(r.out, t.Render())

		if i < len(contracts)-1 {
			fmt.Fprintln(r.out)
		}
	}

	fmt.Fprintf(r.out, "\n%d deployment(s) across %d network(s)\n", result.Summary.Total, len(result.Summary.ByNetwork))
	return nil
}

// DeploymentRenderer renders a single ledger record
type DeploymentRenderer struct {
	out    io.Writer
	format Format
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format Format) *DeploymentRenderer {
	return &DeploymentRenderer{out: out, format: format}
}

// Render renders one ledger record
func (r *DeploymentRenderer) Render(record *models.LedgerRecord) error {
	if r.format != FormatTable {
		return writeStructured(r.out, r.format, toView(*record))
	}

	fmt.Fprintln(r.out, contractHeader.Sprintf(" %s ", record.Contract))
	fmt.Fprintf(r.out, "  Network:  %s\n", networkStyle.Sprint(record.Network))
	fmt.Fprintf(r.out, "  Address:  %s\n", addressStyle.Sprint(record.Entry.Address))
	fmt.Fprintf(r.out, "  Deployer: %s\n", record.Entry.Deployer)
	fmt.Fprintf(r.out, "  Deployed: %s\n", timestampStyle.Sprint(record.Entry.Datetime))
	if len(record.Entry.Args) > 0 {
		fmt.Fprintln(r.out, "  Args:")
		for i, arg := range record.Entry.Args {
			fmt.Fprintf(r.out, "    [%d] %s\n", i, arg)
		}
	}
	return nil
}
