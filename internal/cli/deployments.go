package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/solscripts/internal/cli/render"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NewDeploymentsCmd creates the deployments command
func NewDeploymentsCmd() *cobra.Command {
	var (
		contractName string
		label        string
		allChains    bool
		asYAML       bool
	)

	cmd := &cobra.Command{
		Use:     "deployments",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List deployments recorded in .solscripts/deployments.json for the
selected network, or for every chain with --all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), usecase.ListDeploymentsParams{
				ContractName: contractName,
				Label:        label,
				AllChains:    allChains,
			})
			if err != nil {
				return err
			}

			renderer := render.NewDeploymentsRenderer(cmd.OutOrStdout())
			switch {
			case app.Config.JSON:
				return renderer.RenderJSON(result)
			case asYAML:
				return renderer.RenderYAML(result)
			default:
				return renderer.RenderDeploymentList(result)
			}
		},
	}

	cmd.Flags().StringVar(&contractName, "contract", "", "Filter by contract name")
	cmd.Flags().StringVar(&label, "label", "", "Filter by label")
	cmd.Flags().BoolVar(&allChains, "all", false, "List deployments on every chain")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Output as YAML")

	return cmd
}
