package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// ContractRenderer renders generic deploy, call and send results
type ContractRenderer struct {
	out io.Writer
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(out io.Writer) *ContractRenderer {
	return &ContractRenderer{out: out}
}

// RenderDeploy prints the deployed address and the recorded entry
func (r *ContractRenderer) RenderDeploy(result *usecase.DeployContractResult) error {
	networkHeader(r.out, result.Network)

	name := result.Instance.Contract.Name
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s deployed", name)))
	fmt.Fprintf(r.out, "Address: %s\n", addr(result.Instance.Address))
	if receipt := result.Instance.Receipt; receipt != nil {
		fmt.Fprintf(r.out, "Block:   %d\n", receipt.BlockNumber)
		fmt.Fprintf(r.out, "Tx:      %s\n", receipt.TxHash.Hex())
		fmt.Fprintf(r.out, "Gas:     %d (%s ETH)\n", receipt.GasUsed, ether(receipt.GasCost()))
	}
	if len(result.Args) > 0 {
		fmt.Fprintf(r.out, "Args:    %s\n", strings.Join(usecase.FormatValues(result.Args), ", "))
	}
	if result.Deployment != nil {
		fmt.Fprintf(r.out, "Recorded as %s\n", faintStyle.Sprint(result.Deployment.GetShortID()))
	}
	return nil
}

// RenderCall prints the decoded outputs as a table
func (r *ContractRenderer) RenderCall(result *usecase.CallContractResult) error {
	networkHeader(r.out, result.Network)
	fmt.Fprintf(r.out, "%s.%s at %s\n\n", result.Instance.Contract.Name, result.Result.Method, addr(result.Instance.Address))

	if len(result.Result.Values) == 0 {
		fmt.Fprintln(r.out, faintStyle.Sprint("(no return values)"))
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Name", "Type", "Value"})
	values := usecase.FormatValues(result.Result.Values)
	for i, value := range values {
		var name, typ string
		if i < len(result.Result.Names) {
			name = result.Result.Names[i]
		}
		if i < len(result.Result.Types) {
			typ = result.Result.Types[i]
		}
		t.AppendRow(table.Row{name, typ, value})
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

// RenderSend prints the mined transaction
func (r *ContractRenderer) RenderSend(result *usecase.SendTransactionResult) error {
	networkHeader(r.out, result.Network)

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s.%s mined", result.Instance.Contract.Name, result.Method)))
	fmt.Fprintf(r.out, "Tx:    %s\n", result.Receipt.TxHash.Hex())
	fmt.Fprintf(r.out, "Block: %d\n", result.Receipt.BlockNumber)
	fmt.Fprintf(r.out, "Gas:   %d (%s ETH)\n", result.Receipt.GasUsed, ether(result.Receipt.GasCost()))
	return nil
}
