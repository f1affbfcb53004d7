package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewDeployCmd creates the generic deploy command
func NewDeployCmd() *cobra.Command {
	var value, label string

	cmd := &cobra.Command{
		Use:   "deploy <contract> [args...]",
		Short: "Deploy any compiled contract",
		Long: `Deploy a contract from the artifacts directory with the first signer.
Constructor arguments are parsed against the artifact ABI. The contract may
be given by name or as path:Name when several artifacts share a name.

Examples:
  solscripts deploy TokenSale 10 0x5FbDB2315678afecb367f032d93F642f64180aa3
  solscripts deploy contracts/Ballot.sol:Ballot --label v2 0x4368...`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployContractParams{
				Contract: args[0],
				Args:     args[1:],
				Label:    label,
			}
			if params.Value, err = parseValue(value); err != nil {
				return err
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewContractRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "ETH sent with the deployment (e.g. 1ether, 1000gwei)")
	cmd.Flags().StringVar(&label, "label", "", "Label recorded with the deployment")

	return cmd
}

// NewCallCmd creates the read-only call command
func NewCallCmd() *cobra.Command {
	var contract string

	cmd := &cobra.Command{
		Use:   "call <target> <method> [args...]",
		Short: "Call a view method on a deployed contract",
		Long: `Call a method with eth_call and print the decoded outputs. The target is
an address or a registry reference such as Ballot or Ballot:v2. Overloaded
methods must be given as a signature, e.g. "balanceOf(address)".`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CallContract.Call(cmd.Context(), usecase.CallContractParams{
				Target:   args[0],
				Contract: contract,
				Method:   args[1],
				Args:     args[2:],
			})
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewContractRenderer(cmd.OutOrStdout()).RenderCall(result)
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Artifact to use when the target is not in the registry")

	return cmd
}

// NewSendCmd creates the transaction command
func NewSendCmd() *cobra.Command {
	var contract, value string

	cmd := &cobra.Command{
		Use:   "send <target> <method> [args...]",
		Short: "Send a transaction to a deployed contract",
		Long: `Sign a transaction with the first signer, wait for the receipt and
report the gas used. Reverts are decoded from the contract's custom errors.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.CallContractParams{
				Target:   args[0],
				Contract: contract,
				Method:   args[1],
				Args:     args[2:],
			}
			if params.Value, err = parseValue(value); err != nil {
				return err
			}

			result, err := app.CallContract.Send(cmd.Context(), params)
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewContractRenderer(cmd.OutOrStdout()).RenderSend(result)
		},
	}

	cmd.Flags().StringVar(&contract, "contract", "", "Artifact to use when the target is not in the registry")
	cmd.Flags().StringVar(&value, "value", "", "ETH sent with the transaction (e.g. 1ether, 1000gwei)")

	return cmd
}

func parseValue(value string) (*big.Int, error) {
	if value == "" {
		return nil, nil
	}
	v, err := domain.ParseAmount(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --value: %w", err)
	}
	return v, nil
}
