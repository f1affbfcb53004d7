package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/app"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solscripts",
		Short: "Deploy and drive the course Solidity contracts",
		Long: `solscripts deploys compiled Solidity artifacts and walks through the
ERC20Votes, TokenizedBallot, Lottery and FlashSwap scenarios against a
JSON-RPC node. Every deployment is recorded in .solscripts/deployments.json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Log streaming runs until interrupted
			if appInstance.Config.Timeout > 0 && !isStreaming(cmd) {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip the confirmation before broadcasting to a live network")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., hardhat, sepolia)")
	rootCmd.PersistentFlags().String("rpc-url", "", "Override the network's RPC URL")
	rootCmd.PersistentFlags().String("artifacts", "", "Directory holding compiled artifacts")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "scenarios",
		Title: "Scenario Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "contracts",
		Title: "Contract Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewERC20VotesCmd(),
		NewTokenizedBallotCmd(),
		NewDeployVotesTokenCmd(),
		NewLotteryCmd(),
		NewFlashSwapCmd(),
	} {
		cmd.GroupID = "scenarios"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewDeployCmd(),
		NewCallCmd(),
		NewSendCmd(),
		NewDeploymentsCmd(),
	} {
		cmd.GroupID = "contracts"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewAccountsCmd(),
		NewNetworksCmd(),
		NewNodeCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func isStreaming(cmd *cobra.Command) bool {
	return cmd.Name() == "logs" && cmd.Parent() != nil && cmd.Parent().Name() == "node"
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// renderJSON writes result as JSON when --json is set and reports whether it did
func renderJSON(cmd *cobra.Command, app *app.App, result any) (bool, error) {
	if !app.Config.JSON {
		return false, nil
	}
	return true, render.RenderJSON(cmd.OutOrStdout(), result)
}
