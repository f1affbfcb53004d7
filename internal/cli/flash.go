package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewFlashSwapCmd creates the flash-swap command
func NewFlashSwapCmd() *cobra.Command {
	var (
		fee    uint64
		amount string
	)

	cmd := &cobra.Command{
		Use:   "flash-swap",
		Short: "Deploy the flash minter, swap and faucet, then flash borrow",
		Long: `Deploy MyFlashMinter, MyFlashSwap and MagicSwapFaucet, fund the faucet
and run a flash borrow, reporting balances before and after along with
gas and lending fees.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.FlashSwap.Run(cmd.Context(), usecase.FlashSwapParams{
				Fee:    fee,
				Amount: amount,
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewFlashRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().Uint64Var(&fee, "fee", usecase.DefaultFlashFee, "Lending fee in basis points")
	cmd.Flags().StringVar(&amount, "amount", usecase.DefaultFlashAmount, "Tokens to borrow")

	return cmd
}
