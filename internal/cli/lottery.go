package cli

import (
	"fmt"
	"math/big"
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewLotteryCmd creates the lottery command group
func NewLotteryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lottery",
		Short: "Deploy and operate the Lottery contract",
		Long: `Deploy and operate the Lottery contract.

Available subcommands:
  lottery deploy-token   Deploy a standalone LotteryToken
  lottery deploy         Deploy Lottery (creates its own payment token)
  lottery open           Open bets for a duration
  lottery close          Close the lottery
  lottery status         Show whether bets are open and when they close`,
	}

	cmd.AddCommand(newLotteryDeployTokenCmd())
	cmd.AddCommand(newLotteryDeployCmd())
	cmd.AddCommand(newLotteryOpenCmd())
	cmd.AddCommand(newLotteryCloseCmd())
	cmd.AddCommand(newLotteryStatusCmd())

	return cmd
}

func newLotteryDeployTokenCmd() *cobra.Command {
	var name, symbol, label string

	cmd := &cobra.Command{
		Use:   "deploy-token",
		Short: "Deploy LotteryToken(name, symbol)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployLotteryToken.Run(cmd.Context(), usecase.DeployLotteryTokenParams{
				Name:   name,
				Symbol: symbol,
				Label:  label,
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", usecase.DefaultLotteryTokenName, "Token name")
	cmd.Flags().StringVar(&symbol, "symbol", usecase.DefaultLotteryTokenSymbol, "Token symbol")
	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployment")

	return cmd
}

func newLotteryDeployCmd() *cobra.Command {
	var name, symbol, ratio, betPrice, betFee, label string

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Lottery(name, symbol, ratio, betPrice, betFee)",
		Long: `Deploy the Lottery contract. Bet price and fee accept plain base units
or unit suffixes such as "1ether" or "0.2 ether".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployLotteryParams{
				Name:   name,
				Symbol: symbol,
				Label:  label,
			}
			if params.Ratio, err = parseOptionalAmount("ratio", ratio); err != nil {
				return err
			}
			if params.BetPrice, err = parseOptionalAmount("bet price", betPrice); err != nil {
				return err
			}
			if params.BetFee, err = parseOptionalAmount("bet fee", betFee); err != nil {
				return err
			}

			result, err := app.DeployLottery.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", usecase.DefaultLotteryTokenName, "Payment token name")
	cmd.Flags().StringVar(&symbol, "symbol", usecase.DefaultLotteryTokenSymbol, "Payment token symbol")
	cmd.Flags().StringVar(&ratio, "ratio", "", "Tokens per wei of ETH (default 1)")
	cmd.Flags().StringVar(&betPrice, "bet-price", "", "Price of a bet (default 1ether)")
	cmd.Flags().StringVar(&betFee, "bet-fee", "", "Fee charged per bet (default 0.2ether)")
	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployment")

	return cmd
}

func newLotteryOpenCmd() *cobra.Command {
	var (
		address  string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open bets until now + duration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageLottery.Open(cmd.Context(), usecase.OpenLotteryParams{
				LotteryParams: usecase.LotteryParams{Address: address},
				Duration:      duration,
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderOpen(result)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Lottery address or registry reference (default: latest Lottery)")
	cmd.Flags().DurationVar(&duration, "duration", usecase.DefaultLotteryDuration, "How long bets stay open")

	return cmd
}

func newLotteryCloseCmd() *cobra.Command {
	var (
		address string
		advance bool
	)

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close the lottery and pick a winner",
		Long: `Close the lottery. On a dev network --advance first moves the chain
clock past the closing time and mines a block.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageLottery.Close(cmd.Context(), usecase.CloseLotteryParams{
				LotteryParams: usecase.LotteryParams{Address: address},
				Advance:       advance,
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderClose(result)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Lottery address or registry reference (default: latest Lottery)")
	cmd.Flags().BoolVar(&advance, "advance", false, "Advance dev chain time past the closing time first")

	return cmd
}

func newLotteryStatusCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the lottery state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ManageLottery.Status(cmd.Context(), usecase.LotteryParams{Address: address})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewLotteryRenderer(cmd.OutOrStdout()).RenderStatus(result)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Lottery address or registry reference (default: latest Lottery)")

	return cmd
}

// parseOptionalAmount returns nil for an empty value so the use case applies its default
func parseOptionalAmount(name, value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}
	amount, err := domain.ParseAmount(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return amount, nil
}
