package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
	"gopkg.in/yaml.v3"
)

var (
	chainHeader     = color.New(color.BgCyan, color.FgBlack)
	chainHeaderBold = color.New(color.BgCyan, color.FgBlack, color.Bold)
	timestampStyle  = color.New(color.Faint)
)

// DeploymentsRenderer renders deployment lists as tables grouped by chain
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders one table per chain followed by a summary
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := lo.GroupBy(result.Deployments, func(d *models.Deployment) uint64 { return d.ChainID })
	chains := lo.Keys(byChain)
	sort.Slice(chains, func(i, j int) bool { return chains[i] < chains[j] })

	for _, chainID := range chains {
		deployments := byChain[chainID]
		network := deployments[0].Network
		fmt.Fprintf(r.out, "%s%s\n",
			chainHeader.Sprint(" ⛓ chain "),
			chainHeaderBold.Sprintf(" %d (%s) ", chainID, network))
		fmt.Fprintln(r.out, renderDeploymentTable(deployments))
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

// RenderYAML dumps the records as YAML
func (r *DeploymentsRenderer) RenderYAML(result *usecase.DeploymentListResult) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(result.Deployments); err != nil {
		return fmt.Errorf("failed to encode deployments: %w", err)
	}
	return enc.Close()
}

// RenderJSON dumps the records as JSON
func (r *DeploymentsRenderer) RenderJSON(result *usecase.DeploymentListResult) error {
	return RenderJSON(r.out, result.Deployments)
}

func renderDeploymentTable(deployments []*models.Deployment) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingLeft:      "  ",
		PaddingRight:     " ",
		MiddleHorizontal: "─",
	}
	t.AppendHeader(table.Row{"Contract", "Address", "Block", "Created"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})

	for _, d := range deployments {
		t.AppendRow(table.Row{
			color.New(color.FgGreen, color.Bold).Sprint(d.GetShortID()),
			addressStyle.Sprint(d.Address),
			d.BlockNumber,
			timestampStyle.Sprint(d.CreatedAt.Format("2006-01-02 15:04:05")),
		})
	}
	return t.Render()
}
