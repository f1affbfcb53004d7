package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// Flash loan contract names and defaults
const (
	FlashMinterContract = "MyFlashMinter"
	FlashSwapContract   = "MyFlashSwap"
	FaucetContract      = "MagicSwapFaucet"

	FlashTokenName   = "Stonks Token"
	FlashTokenSymbol = "Stt"

	DefaultFlashFee    uint64 = 1000
	DefaultFlashAmount        = "10"
)

// FlashSwapParams contains parameters for the flash swap walkthrough
type FlashSwapParams struct {
	// Fee in basis points
	Fee uint64
	// Amount borrowed in whole tokens
	Amount string
}

// FlashBalances is a snapshot of the token distribution
type FlashBalances struct {
	TotalSupply *big.Int
	Swap        *big.Int
	Faucet      *big.Int
}

// FlashSwapResult holds the deployments, balances and swap cost
type FlashSwapResult struct {
	Network string
	Minter  *models.ContractInstance
	Swap    *models.ContractInstance
	Faucet  *models.ContractInstance

	Fee    uint64
	Amount *big.Int
	Profit *big.Int

	Before FlashBalances
	After  FlashBalances

	SwapReceipt *models.Receipt
	GasUsed     uint64
	GasCost     *big.Int
	LendingFee  *big.Int
}

// FeePercent renders the fee as a percentage
func (r *FlashSwapResult) FeePercent() string {
	return domain.FormatPercentBasisPoints(r.Fee)
}

// FlashSwap deploys the flash minter, swap and faucet contracts, funds the faucet
// and performs a flash borrow
type FlashSwap struct {
	connector *Connector
	scenario
}

// NewFlashSwap creates a new FlashSwap use case
func NewFlashSwap(
	connector *Connector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *FlashSwap {
	return &FlashSwap{
		connector: connector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the flash swap walkthrough
func (uc *FlashSwap) Run(ctx context.Context, params FlashSwapParams) (*FlashSwapResult, error) {
	fee := params.Fee
	if fee == 0 {
		fee = DefaultFlashFee
	}
	if fee > 10000 {
		return nil, fmt.Errorf("fee of %d basis points exceeds 100%%", fee)
	}

	amount, err := domain.ParseEther(withDefault(params.Amount, DefaultFlashAmount))
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.Sign() <= 0 {
		return nil, errors.New("amount must be positive")
	}

	session, err := uc.connector.Open(ctx, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	signers, err := session.Signers(1)
	if err != nil {
		return nil, err
	}
	signer := signers[0]

	result := &FlashSwapResult{
		Network: session.Network.Name,
		Fee:     fee,
		Amount:  amount,
		Profit:  new(big.Int).Div(amount, big.NewInt(2)),
	}

	minterContract, err := uc.artifacts.Load(ctx, FlashMinterContract)
	if err != nil {
		return nil, err
	}
	minterArgs, err := ParseArgs(minterContract.ConstructorInputs(), []string{
		FlashTokenName, FlashTokenSymbol, fmt.Sprint(fee),
	})
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", minterContract.Name, err)
	}
	if result.Minter, _, err = uc.deployContract(ctx, session, signer, minterContract, "", nil, minterArgs...); err != nil {
		return nil, err
	}
	if result.Swap, _, err = uc.deploy(ctx, session, signer, FlashSwapContract, "", nil, result.Minter.Address); err != nil {
		return nil, err
	}
	if result.Faucet, _, err = uc.deploy(ctx, session, signer, FaucetContract, "", nil); err != nil {
		return nil, err
	}

	funding := new(big.Int).Mul(amount, big.NewInt(100))
	if _, err := uc.transact(ctx, session, signer, result.Minter, nil, "mint", result.Faucet.Address, funding); err != nil {
		return nil, err
	}

	if err := uc.balances(ctx, session, result, &result.Before); err != nil {
		return nil, err
	}

	uc.progress.Info(fmt.Sprintf("Initiating flash swap to borrow %s tokens trying to profit %s",
		domain.FormatEther(amount), domain.FormatEther(result.Profit)))

	result.SwapReceipt, err = uc.transact(ctx, session, signer, result.Swap, nil, "flashBorrow",
		result.Minter.Address, amount, result.Faucet.Address, result.Profit)
	if err != nil {
		return nil, err
	}
	result.GasUsed = result.SwapReceipt.GasUsed
	result.GasCost = result.SwapReceipt.GasCost()

	result.LendingFee = new(big.Int).Mul(amount, new(big.Int).SetUint64(fee))
	result.LendingFee.Div(result.LendingFee, big.NewInt(10000))

	if err := uc.balances(ctx, session, result, &result.After); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *FlashSwap) balances(ctx context.Context, session *Session, result *FlashSwapResult, into *FlashBalances) error {
	var err error
	if into.TotalSupply, err = uc.callBig(ctx, session, result.Minter, "totalSupply"); err != nil {
		return err
	}
	if into.Swap, err = uc.callBig(ctx, session, result.Minter, "balanceOf", result.Swap.Address); err != nil {
		return err
	}
	if into.Faucet, err = uc.callBig(ctx, session, result.Minter, "balanceOf", result.Faucet.Address); err != nil {
		return err
	}
	return nil
}
