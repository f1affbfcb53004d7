package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// TokenizedBallotParams contains parameters for the tokenized ballot walkthrough
type TokenizedBallotParams struct {
	Proposals []string
	// Proposal and Amount are passed to vote; nil means 1
	Proposal *big.Int
	Amount   *big.Int
	// Token reuses a deployed MyERC20Votes (address or registry reference)
	Token string
	Label string
}

// TokenizedBallotResult holds the values observed during the walkthrough
type TokenizedBallotResult struct {
	Network         string
	Token           *models.ContractInstance
	TokenDeployment *models.Deployment
	TokenReused     bool

	Ballot           *models.ContractInstance
	BallotDeployment *models.Deployment

	Proposals   []string
	Voter       common.Address
	MintReceipt *models.Receipt
	VoteReceipt *models.Receipt

	VoterBalance *big.Int
	VoterVotes   *big.Int
	TargetBlock  uint64
	Proposal     *big.Int
	Amount       *big.Int
	VotingPower  *big.Int
}

// TokenizedBallot deploys a votes token and a TokenizedBallot snapshotting
// voting power at the current block, then casts a vote
type TokenizedBallot struct {
	connector *Connector
	attacher  *ContractAttacher
	scenario
}

// NewTokenizedBallot creates a new TokenizedBallot use case
func NewTokenizedBallot(
	connector *Connector,
	attacher *ContractAttacher,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *TokenizedBallot {
	return &TokenizedBallot{
		connector: connector,
		attacher:  attacher,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the tokenized ballot walkthrough
func (uc *TokenizedBallot) Run(ctx context.Context, params TokenizedBallotParams) (*TokenizedBallotResult, error) {
	if len(params.Proposals) == 0 {
		return nil, errors.New("at least one proposal is required")
	}
	proposals, err := domain.FormatBytes32Strings(params.Proposals)
	if err != nil {
		return nil, err
	}

	proposal := params.Proposal
	if proposal == nil {
		proposal = big.NewInt(1)
	}
	amount := params.Amount
	if amount == nil {
		amount = big.NewInt(1)
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
	deployer, voter := signers[0], signers[0]
	if len(session.Accounts) > 1 {
		voter = session.Accounts[1]
	}

	result := &TokenizedBallotResult{
		Network:   session.Network.Name,
		Proposals: params.Proposals,
		Voter:     voter.Address,
		Proposal:  proposal,
		Amount:    amount,
	}

	if params.Token != "" {
		result.Token, err = uc.attacher.Attach(ctx, session.ChainID(), params.Token, VotesTokenContract)
		if err != nil {
			return nil, err
		}
		result.TokenReused = true
	} else {
		result.Token, result.TokenDeployment, err = uc.deploy(ctx, session, deployer, VotesTokenContract, "", nil)
		if err != nil {
			return nil, err
		}
	}
	token := result.Token

	if result.MintReceipt, err = uc.transact(ctx, session, deployer, token, nil, "mint", voter.Address, VotesMintValue); err != nil {
		return nil, err
	}
	if result.VoterBalance, err = uc.callBig(ctx, session, token, "balanceOf", voter.Address); err != nil {
		return nil, err
	}
	if _, err := uc.transact(ctx, session, voter, token, nil, "delegate", voter.Address); err != nil {
		return nil, err
	}
	if result.VoterVotes, err = uc.callBig(ctx, session, token, "getVotes", voter.Address); err != nil {
		return nil, err
	}

	result.TargetBlock, err = session.Client.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch block number: %w", err)
	}

	result.Ballot, result.BallotDeployment, err = uc.deploy(ctx, session, deployer, TokenizedBallotContract, params.Label, nil,
		proposals, token.Address, new(big.Int).SetUint64(result.TargetBlock))
	if err != nil {
		return nil, err
	}

	if result.VoteReceipt, err = uc.transact(ctx, session, voter, result.Ballot, nil, "vote", proposal, amount); err != nil {
		return nil, err
	}
	if result.VotingPower, err = uc.callBig(ctx, session, result.Ballot, "votingPower", voter.Address); err != nil {
		return nil, err
	}

	return result, nil
}
