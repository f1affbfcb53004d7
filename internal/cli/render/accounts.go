package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// AccountsRenderer renders the signers of a network
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// Render prints one row per signer; the balance column appears when balances were fetched
func (r *AccountsRenderer) Render(result *usecase.ListAccountsResult) error {
	networkHeader(r.out, result.Network)
	if len(result.Accounts) == 0 {
		fmt.Fprintln(r.out, "No accounts configured")
		return nil
	}

	withBalances := result.Accounts[0].Balance != nil

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	header := table.Row{"#", "Address"}
	if withBalances {
		header = append(header, "Balance (ETH)")
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	}
	t.AppendHeader(header)

	for _, acc := range result.Accounts {
		row := table.Row{acc.Index, addr(acc.Address)}
		if withBalances {
			row = append(row, ether(acc.Balance))
		}
		t.AppendRow(row)
	}
	fmt.Fprintln(r.out, t.Render())
	return nil
}

var _ Renderer[*usecase.ListAccountsResult] = (*AccountsRenderer)(nil)
