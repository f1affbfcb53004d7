package usecase

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// Lottery contract names and deployment defaults
const (
	LotteryContract      = "Lottery"
	LotteryTokenContract = "LotteryToken"

	DefaultLotteryTokenName   = "Lottery Token"
	DefaultLotteryTokenSymbol = "LTK10"
	DefaultLotteryDuration    = time.Hour
)

var (
	DefaultLotteryRatio    = big.NewInt(1)
	DefaultLotteryBetPrice = domain.MustParseEther("1")
	DefaultLotteryBetFee   = domain.MustParseEther("0.2")
)

// DeployLotteryTokenParams contains parameters for deploying a standalone LotteryToken
type DeployLotteryTokenParams struct {
	Name   string
	Symbol string
	Label  string
}

// LotteryDeployResult contains a deployed lottery contract
type LotteryDeployResult struct {
	Network      string
	Instance     *models.ContractInstance
	Deployment   *models.Deployment
	Args         []any
	PaymentToken common.Address
}

// DeployLotteryToken deploys LotteryToken(name, symbol)
type DeployLotteryToken struct {
	connector *Connector
	scenario
}

// NewDeployLotteryToken creates a new DeployLotteryToken use case
func NewDeployLotteryToken(
	connector *Connector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *DeployLotteryToken {
	return &DeployLotteryToken{
		connector: connector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the use case
func (uc *DeployLotteryToken) Run(ctx context.Context, params DeployLotteryTokenParams) (*LotteryDeployResult, error) {
	name := withDefault(params.Name, DefaultLotteryTokenName)
	symbol := withDefault(params.Symbol, DefaultLotteryTokenSymbol)

	return deployWithStringArgs(ctx, uc.connector, &uc.scenario, LotteryTokenContract, params.Label, []string{name, symbol})
}

// DeployLotteryParams contains the Lottery constructor parameters; nil values take the defaults
type DeployLotteryParams struct {
	Name     string
	Symbol   string
	Ratio    *big.Int
	BetPrice *big.Int
	BetFee   *big.Int
	Label    string
}

// DeployLottery deploys Lottery(name, symbol, ratio, betPrice, betFee). The lottery
// creates its own payment token, whose address is reported.
type DeployLottery struct {
	connector *Connector
	scenario
}

// NewDeployLottery creates a new DeployLottery use case
func NewDeployLottery(
	connector *Connector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *DeployLottery {
	return &DeployLottery{
		connector: connector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the use case
func (uc *DeployLottery) Run(ctx context.Context, params DeployLotteryParams) (*LotteryDeployResult, error) {
	raw := []string{
		withDefault(params.Name, DefaultLotteryTokenName),
		withDefault(params.Symbol, DefaultLotteryTokenSymbol),
		bigOrDefault(params.Ratio, DefaultLotteryRatio).String(),
		bigOrDefault(params.BetPrice, DefaultLotteryBetPrice).String(),
		bigOrDefault(params.BetFee, DefaultLotteryBetFee).String(),
	}

	return deployWithStringArgs(ctx, uc.connector, &uc.scenario, LotteryContract, params.Label, raw)
}

// deployWithStringArgs parses constructor arguments against the artifact ABI so
// integer widths follow whatever the compiled contract declares
func deployWithStringArgs(
	ctx context.Context,
	connector *Connector,
	s *scenario,
	contractName string,
	label string,
	raw []string,
) (*LotteryDeployResult, error) {
	contract, err := s.artifacts.Load(ctx, contractName)
	if err != nil {
		return nil, err
	}
	args, err := ParseArgs(contract.ConstructorInputs(), raw)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", contract.Name, err)
	}

	session, err := connector.Open(ctx, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	signers, err := session.Signers(1)
	if err != nil {
		return nil, err
	}

	instance, deployment, err := s.deployContract(ctx, session, signers[0], contract, label, nil, args...)
	if err != nil {
		return nil, err
	}

	result := &LotteryDeployResult{
		Network:    session.Network.Name,
		Instance:   instance,
		Deployment: deployment,
		Args:       args,
	}

	if contractName == LotteryContract {
		token, err := s.callOne(ctx, session, instance, "paymentToken")
		if err != nil {
			return nil, err
		}
		if addr, ok := token.(common.Address); ok {
			result.PaymentToken = addr
		}
	}

	return result, nil
}

// LotteryParams selects a deployed lottery; an empty Address means the latest recorded Lottery
type LotteryParams struct {
	Address string
}

// OpenLotteryParams contains parameters for opening bets
type OpenLotteryParams struct {
	LotteryParams
	Duration time.Duration
}

// CloseLotteryParams contains parameters for closing a lottery
type CloseLotteryParams struct {
	LotteryParams
	// Advance moves dev chain time past the closing time first
	Advance bool
}

// LotteryActionResult contains the outcome of opening or closing a lottery
type LotteryActionResult struct {
	Network     string
	Lottery     *models.ContractInstance
	Receipt     *models.Receipt
	ClosingTime *big.Int
	Advanced    uint64
}

// LotteryStatusResult contains the lottery state
type LotteryStatusResult struct {
	Network      string
	Lottery      *models.ContractInstance
	BetsOpen     bool
	ClosingTime  *big.Int
	PaymentToken common.Address
	Now          uint64
}

// ManageLottery opens, closes and inspects a deployed lottery
type ManageLottery struct {
	connector *Connector
	attacher  *ContractAttacher
	scenario
}

// NewManageLottery creates a new ManageLottery use case
func NewManageLottery(
	connector *Connector,
	attacher *ContractAttacher,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *ManageLottery {
	return &ManageLottery{
		connector: connector,
		attacher:  attacher,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

func (uc *ManageLottery) open(ctx context.Context, params LotteryParams, broadcast bool) (*Session, *models.ContractInstance, error) {
	session, err := uc.connector.Open(ctx, broadcast)
	if err != nil {
		return nil, nil, err
	}
	lottery, err := uc.attacher.Attach(ctx, session.ChainID(), params.Address, LotteryContract)
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	return session, lottery, nil
}

// Open calls openBets(now + duration) where now is the latest block timestamp
func (uc *ManageLottery) Open(ctx context.Context, params OpenLotteryParams) (*LotteryActionResult, error) {
	duration := params.Duration
	if duration == 0 {
		duration = DefaultLotteryDuration
	}
	if duration < time.Second {
		return nil, fmt.Errorf("duration must be at least one second, got %s", duration)
	}

	session, lottery, err := uc.open(ctx, params.LotteryParams, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	signers, err := session.Signers(1)
	if err != nil {
		return nil, err
	}

	now, err := session.Client.LatestTimestamp(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest block: %w", err)
	}
	closing := new(big.Int).SetUint64(now + uint64(duration/time.Second))

	receipt, err := uc.transact(ctx, session, signers[0], lottery, nil, "openBets", closing)
	if err != nil {
		return nil, err
	}

	return &LotteryActionResult{
		Network:     session.Network.Name,
		Lottery:     lottery,
		Receipt:     receipt,
		ClosingTime: closing,
	}, nil
}

// Close calls closeLottery. With Advance set on a dev network the chain clock is
// moved past betsClosingTime first.
func (uc *ManageLottery) Close(ctx context.Context, params CloseLotteryParams) (*LotteryActionResult, error) {
	session, lottery, err := uc.open(ctx, params.LotteryParams, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	signers, err := session.Signers(1)
	if err != nil {
		return nil, err
	}

	result := &LotteryActionResult{
		Network: session.Network.Name,
		Lottery: lottery,
	}

	if params.Advance {
		if !session.Network.Dev {
			return nil, fmt.Errorf("--advance on %s: %w", session.Network.Name, domain.ErrDevNetworkOnly)
		}
		if result.Advanced, err = uc.advancePast(ctx, session, lottery); err != nil {
			return nil, err
		}
	}

	uc.progress.Info("Closing lottery")
	if result.Receipt, err = uc.transact(ctx, session, signers[0], lottery, nil, "closeLottery"); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *ManageLottery) advancePast(ctx context.Context, session *Session, lottery *models.ContractInstance) (uint64, error) {
	closing, err := uc.callBig(ctx, session, lottery, "betsClosingTime")
	if err != nil {
		return 0, err
	}
	now, err := session.Client.LatestTimestamp(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch latest block: %w", err)
	}

	deadline := closing.Uint64()
	if deadline < now {
		return 0, nil
	}
	seconds := deadline - now + 1

	if err := session.Client.IncreaseTime(ctx, seconds); err != nil {
		return 0, err
	}
	if err := session.Client.Mine(ctx); err != nil {
		return 0, err
	}
	return seconds, nil
}

// Status reads betsOpen, betsClosingTime and paymentToken
func (uc *ManageLottery) Status(ctx context.Context, params LotteryParams) (*LotteryStatusResult, error) {
	session, lottery, err := uc.open(ctx, params, false)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result := &LotteryStatusResult{
		Network: session.Network.Name,
		Lottery: lottery,
	}

	open, err := uc.callOne(ctx, session, lottery, "betsOpen")
	if err != nil {
		return nil, err
	}
	result.BetsOpen, _ = open.(bool)

	if result.ClosingTime, err = uc.callBig(ctx, session, lottery, "betsClosingTime"); err != nil {
		return nil, err
	}

	token, err := uc.callOne(ctx, session, lottery, "paymentToken")
	if err != nil {
		return nil, err
	}
	result.PaymentToken, _ = token.(common.Address)

	if result.Now, err = session.Client.LatestTimestamp(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch latest block: %w", err)
	}

	return result, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func bigOrDefault(value, fallback *big.Int) *big.Int {
	if value == nil {
		return fallback
	}
	return value
}
