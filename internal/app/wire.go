//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/solscripts/internal/adapters"
	"github.com/trebuchet-org/solscripts/internal/config"
	"github.com/trebuchet-org/solscripts/internal/logging"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		config.ProvideNetworkResolver,
		logging.LoggingSet,

		adapters.AllAdapters,

		// Shared plumbing
		usecase.NewConnector,
		usecase.NewDeploymentRecorder,
		usecase.NewContractAttacher,

		// Use cases
		usecase.NewERC20Votes,
		usecase.NewTokenizedBallot,
		usecase.NewDeployVotesToken,
		usecase.NewDeployLotteryToken,
		usecase.NewDeployLottery,
		usecase.NewManageLottery,
		usecase.NewFlashSwap,
		usecase.NewDeployContract,
		usecase.NewCallContract,
		usecase.NewListAccounts,
		usecase.NewListNetworks,
		usecase.NewListDeployments,
		usecase.NewManageNode,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		NewApp,
	)
	return nil, nil
}
