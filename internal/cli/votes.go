package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewERC20VotesCmd creates the erc20-votes command
func NewERC20VotesCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "erc20-votes",
		Short: "Deploy MyERC20Votes and walk through minting and delegation",
		Long: `Deploy MyERC20Votes with the first signer and mint 10 tokens to the
second signer, then show how voting power changes after self delegation,
a transfer to the fourth signer and a second mint. Requires four signers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ERC20Votes.Run(cmd.Context(), usecase.ERC20VotesParams{Label: label})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewVotesRenderer(cmd.OutOrStdout()).RenderERC20Votes(result)
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployment")

	return cmd
}

// NewTokenizedBallotCmd creates the tokenized-ballot command
func NewTokenizedBallotCmd() *cobra.Command {
	var (
		label    string
		token    string
		proposal string
		amount   string
	)

	cmd := &cobra.Command{
		Use:   "tokenized-ballot [proposals...]",
		Short: "Deploy a TokenizedBallot for the given proposals and cast a vote",
		Long: `Deploy (or reuse with --token) a MyERC20Votes token, mint and self
delegate, then deploy TokenizedBallot with the proposal names encoded as
bytes32 and the current block as reference block.

Examples:
  solscripts tokenized-ballot Chocolate Vanilla Lemon
  solscripts tokenized-ballot --token MyERC20Votes Alpha Beta --proposal 0 --amount 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.TokenizedBallotParams{
				Proposals: args,
				Token:     token,
				Label:     label,
			}
			if proposal != "" {
				index, ok := new(big.Int).SetString(proposal, 10)
				if !ok || index.Sign() < 0 {
					return fmt.Errorf("invalid proposal index %q", proposal)
				}
				params.Proposal = index
			}
			if amount != "" {
				if params.Amount, err = domain.ParseAmount(amount); err != nil {
					return fmt.Errorf("invalid amount: %w", err)
				}
			}

			result, err := app.TokenizedBallot.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewVotesRenderer(cmd.OutOrStdout()).RenderTokenizedBallot(result)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Reuse a deployed MyERC20Votes (address or registry reference)")
	cmd.Flags().StringVar(&proposal, "proposal", "", "Proposal index to vote for (default 1)")
	cmd.Flags().StringVar(&amount, "amount", "", "Votes to cast in base units (default 1)")
	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployments")

	return cmd
}

// NewDeployVotesTokenCmd creates the deploy-votes-token command
func NewDeployVotesTokenCmd() *cobra.Command {
	var (
		to    string
		label string
	)

	cmd := &cobra.Command{
		Use:   "deploy-votes-token",
		Short: "Deploy MyERC20Votes and mint to a recipient",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployVotesToken.Run(cmd.Context(), usecase.DeployVotesTokenParams{
				To:    to,
				Label: label,
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewVotesRenderer(cmd.OutOrStdout()).RenderDeployVotesToken(result)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Mint recipient (defaults to the second signer)")
	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployment")

	return cmd
}
