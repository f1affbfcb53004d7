package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	network := devNetwork()
	cfg := &config.RuntimeConfig{Network: network}

	t.Run("lists the selected chain", func(t *testing.T) {
		deployments := []*models.Deployment{
			{ID: "31337/Lottery:default", ChainID: 31337, ContractName: "Lottery", Label: "default", CreatedAt: now},
			{ID: "31337/Ballot:0xabcdef01", ChainID: 31337, ContractName: "Ballot", Label: "0xabcdef01", CreatedAt: now.Add(time.Minute)},
			{ID: "31337/Ballot:default", ChainID: 31337, ContractName: "Ballot", Label: "default", CreatedAt: now},
		}

		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{ChainID: 31337}).Return(deployments, nil)
		networks := new(MockNetworkResolver)
		networks.On("ChainID", ctx, network).Return(uint64(31337), nil)

		uc := usecase.NewListDeployments(cfg, repo, networks, &recordingSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})

		require.NoError(t, err)
		assert.Len(t, result.Deployments, 3)
		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 3, result.Summary.ByChain[31337])
		assert.Equal(t, 2, result.Summary.ByContract["Ballot"])

		// Sorted by contract, then creation time
		assert.Equal(t, "31337/Ballot:default", result.Deployments[0].ID)
		assert.Equal(t, "31337/Ballot:0xabcdef01", result.Deployments[1].ID)
		assert.Equal(t, "31337/Lottery:default", result.Deployments[2].ID)

		repo.AssertExpectations(t)
	})

	t.Run("all chains with filters", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		expectedFilter := domain.DeploymentFilter{ContractName: "Ballot", Label: "default"}
		repo.On("ListDeployments", ctx, expectedFilter).Return([]*models.Deployment{
			{ID: "5/Ballot:default", ChainID: 5, ContractName: "Ballot", Label: "default"},
			{ID: "31337/Ballot:default", ChainID: 31337, ContractName: "Ballot", Label: "default"},
		}, nil)

		uc := usecase.NewListDeployments(cfg, repo, new(MockNetworkResolver), &recordingSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{ContractName: "Ballot", Label: "default", AllChains: true})

		require.NoError(t, err)
		assert.Equal(t, uint64(5), result.Deployments[0].ChainID)
		assert.Equal(t, 1, result.Summary.ByChain[5])
		repo.AssertExpectations(t)
	})

	t.Run("unreachable network lists everything", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", ctx, domain.DeploymentFilter{}).Return([]*models.Deployment{}, nil)
		networks := new(MockNetworkResolver)
		networks.On("ChainID", ctx, network).Return(uint64(0), errors.New("connection refused"))
		sink := &recordingSink{}

		uc := usecase.NewListDeployments(cfg, repo, networks, sink)
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{})

		require.NoError(t, err)
		assert.Empty(t, result.Deployments)
		assert.Empty(t, result.Summary.ByChain)
		assert.Len(t, sink.errors, 1)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		expectedErr := errors.New("corrupt registry")
		repo.On("ListDeployments", ctx, mock.Anything).Return(nil, expectedErr)

		uc := usecase.NewListDeployments(cfg, repo, new(MockNetworkResolver), &recordingSink{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{AllChains: true})

		assert.Equal(t, expectedErr, err)
		assert.Nil(t, result)
	})
}
