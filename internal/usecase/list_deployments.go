package usecase

import (
	"context"
	"sort"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	ContractName string
	Label        string
	// AllChains lists every chain instead of the selected network's
	AllChains bool
}

// DeploymentListResult contains the listed deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// DeploymentSummary counts deployments per chain and contract
type DeploymentSummary struct {
	Total      int
	ByChain    map[uint64]int
	ByContract map[string]int
}

// ListDeployments is the use case for listing recorded deployments
type ListDeployments struct {
	config   *config.RuntimeConfig
	repo     DeploymentRepository
	networks NetworkResolver
	sink     ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, repo DeploymentRepository, networks NetworkResolver, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config:   cfg,
		repo:     repo,
		networks: networks,
		sink:     sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	filter := domain.DeploymentFilter{
		ContractName: params.ContractName,
		Label:        params.Label,
	}

	if !params.AllChains && uc.config.Network != nil {
		chainID, err := uc.networks.ChainID(ctx, uc.config.Network)
		if err != nil {
			uc.sink.Error("Could not reach " + uc.config.Network.Name + ", listing all chains")
		} else {
			filter.ChainID = chainID
		}
	}

	deployments, err := uc.repo.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts deployments by chain, contract name, and creation time
func sortDeployments(deployments []*models.Deployment) {
	sort.SliceStable(deployments, func(i, j int) bool {
		if deployments[i].ChainID != deployments[j].ChainID {
			return deployments[i].ChainID < deployments[j].ChainID
		}
		if deployments[i].ContractName != deployments[j].ContractName {
			return deployments[i].ContractName < deployments[j].ContractName
		}
		return deployments[i].CreatedAt.Before(deployments[j].CreatedAt)
	})
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:      len(deployments),
		ByChain:    make(map[uint64]int),
		ByContract: make(map[string]int),
	}

	for _, dep := range deployments {
		summary.ByChain[dep.ChainID]++
		summary.ByContract[dep.ContractName]++
	}

	return summary
}
