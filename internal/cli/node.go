package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewNodeCmd creates the node command group
func NewNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage local anvil nodes",
		Long: `Manage local anvil nodes for development. Each node is tracked by name
with a PID file and a log file in the temp directory.`,
	}

	var (
		name    string
		port    string
		chainID string
		forkURL string
	)

	cmd.PersistentFlags().StringVar(&name, "name", "anvil", "Node name")
	cmd.PersistentFlags().StringVar(&port, "port", "8545", "Port to listen on")

	run := func(operation string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ManageNodeParams{
				Operation: operation,
				Name:      name,
				Port:      port,
				ChainID:   chainID,
				ForkURL:   forkURL,
			}
			if operation == usecase.NodeLogs {
				params.Logs = cmd.OutOrStdout()
			}

			result, err := app.ManageNode.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			if done, err := renderJSON(cmd, app, result); done {
				return err
			}
			return render.NewNodeRenderer(cmd.OutOrStdout()).Render(result)
		}
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start an anvil node",
		Args:  cobra.NoArgs,
		RunE:  run(usecase.NodeStart),
	}
	restartCmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart an anvil node",
		Args:  cobra.NoArgs,
		RunE:  run(usecase.NodeRestart),
	}
	for _, c := range []*cobra.Command{startCmd, restartCmd} {
		c.Flags().StringVar(&chainID, "chain-id", "", "Chain ID to report (anvil default 31337)")
		c.Flags().StringVar(&forkURL, "fork-url", "", "Fork state from this RPC URL")
	}

	cmd.AddCommand(startCmd, restartCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "stop",
		Short: "Stop an anvil node",
		Args:  cobra.NoArgs,
		RunE:  run(usecase.NodeStop),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether an anvil node is running",
		Args:  cobra.NoArgs,
		RunE:  run(usecase.NodeStatus),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "logs",
		Short: "Follow an anvil node's log output",
		Args:  cobra.NoArgs,
		RunE:  run(usecase.NodeLogs),
	})

	return cmd
}
