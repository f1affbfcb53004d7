package app

import (
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	Config *config.RuntimeConfig

	// Scenarios
	ERC20Votes         *usecase.ERC20Votes
	TokenizedBallot    *usecase.TokenizedBallot
	DeployVotesToken   *usecase.DeployVotesToken
	DeployLotteryToken *usecase.DeployLotteryToken
	DeployLottery      *usecase.DeployLottery
	ManageLottery      *usecase.ManageLottery
	FlashSwap          *usecase.FlashSwap

	// Generic contract access
	DeployContract *usecase.DeployContract
	CallContract   *usecase.CallContract

	// Management
	ListAccounts    *usecase.ListAccounts
	ListNetworks    *usecase.ListNetworks
	ListDeployments *usecase.ListDeployments
	ManageNode      *usecase.ManageNode
	ShowConfig      *usecase.ShowConfig
	SetConfig       *usecase.SetConfig
	RemoveConfig    *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	erc20Votes *usecase.ERC20Votes,
	tokenizedBallot *usecase.TokenizedBallot,
	deployVotesToken *usecase.DeployVotesToken,
	deployLotteryToken *usecase.DeployLotteryToken,
	deployLottery *usecase.DeployLottery,
	manageLottery *usecase.ManageLottery,
	flashSwap *usecase.FlashSwap,
	deployContract *usecase.DeployContract,
	callContract *usecase.CallContract,
	listAccounts *usecase.ListAccounts,
	listNetworks *usecase.ListNetworks,
	listDeployments *usecase.ListDeployments,
	manageNode *usecase.ManageNode,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) *App {
	return &App{
		Config:             cfg,
		ERC20Votes:         erc20Votes,
		TokenizedBallot:    tokenizedBallot,
		DeployVotesToken:   deployVotesToken,
		DeployLotteryToken: deployLotteryToken,
		DeployLottery:      deployLottery,
		ManageLottery:      manageLottery,
		FlashSwap:          flashSwap,
		DeployContract:     deployContract,
		CallContract:       callContract,
		ListAccounts:       listAccounts,
		ListNetworks:       listNetworks,
		ListDeployments:    listDeployments,
		ManageNode:         manageNode,
		ShowConfig:         showConfig,
		SetConfig:          setConfig,
		RemoveConfig:       removeConfig,
	}
}
