package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewAccountsCmd creates the accounts command
func NewAccountsCmd() *cobra.Command {
	var balances bool

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List the signers configured for the network",
		Long: `List the signers derived from the network's private keys or mnemonic.
With --balances the node is queried for each account's ETH balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListAccounts.Run(cmd.Context(), usecase.ListAccountsParams{Balances: balances})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewAccountsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().BoolVar(&balances, "balances", false, "Fetch ETH balances")

	return cmd
}
