package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// Contract names of the votes token scenarios
const (
	VotesTokenContract      = "MyERC20Votes"
	TokenizedBallotContract = "TokenizedBallot"
)

var (
	// VotesMintValue is minted to the token holder in every votes scenario
	VotesMintValue = domain.MustParseEther("10")
	// VotesTransferValue is moved from the holder to the recipient
	VotesTransferValue = domain.MustParseEther("2")
)

// ERC20VotesParams contains parameters for the votes walkthrough
type ERC20VotesParams struct {
	Label string
}

// ERC20VotesResult holds every value observed while walking through delegation
type ERC20VotesResult struct {
	Network    string
	Token      *models.ContractInstance
	Deployment *models.Deployment

	Holder    common.Address
	Recipient common.Address

	MintValue     *big.Int
	TransferValue *big.Int
	MintReceipts  []*models.Receipt

	HolderBalance               *big.Int
	HolderVotesBeforeDelegation *big.Int
	HolderVotesAfterDelegation  *big.Int
	RecipientVotesBefore        *big.Int
	RecipientVotesAfter         *big.Int
	HolderVotesAfterTransfer    *big.Int
	HolderVotesAfterSecondMint  *big.Int
}

// ERC20Votes deploys MyERC20Votes and shows how minting, delegation and
// transfers move voting power between accounts
type ERC20Votes struct {
	connector *Connector
	scenario
}

// NewERC20Votes creates a new ERC20Votes use case
func NewERC20Votes(
	connector *Connector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *ERC20Votes {
	return &ERC20Votes{
		connector: connector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the votes walkthrough with signers [deployer, acc1, acc2, acc3]
func (uc *ERC20Votes) Run(ctx context.Context, params ERC20VotesParams) (*ERC20VotesResult, error) {
	session, err := uc.connector.Open(ctx, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	signers, err := session.Signers(4)
	if err != nil {
		return nil, err
	}
	deployer, holder, recipient := signers[0], signers[1], signers[3]

	token, deployment, err := uc.deploy(ctx, session, deployer, VotesTokenContract, params.Label, nil)
	if err != nil {
		return nil, err
	}

	result := &ERC20VotesResult{
		Network:       session.Network.Name,
		Token:         token,
		Deployment:    deployment,
		Holder:        holder.Address,
		Recipient:     recipient.Address,
		MintValue:     VotesMintValue,
		TransferValue: VotesTransferValue,
	}

	receipt, err := uc.transact(ctx, session, deployer, token, nil, "mint", holder.Address, VotesMintValue)
	if err != nil {
		return nil, err
	}
	result.MintReceipts = append(result.MintReceipts, receipt)

	if result.HolderBalance, err = uc.callBig(ctx, session, token, "balanceOf", holder.Address); err != nil {
		return nil, err
	}
	if result.HolderVotesBeforeDelegation, err = uc.callBig(ctx, session, token, "getVotes", holder.Address); err != nil {
		return nil, err
	}

	if _, err := uc.transact(ctx, session, holder, token, nil, "delegate", holder.Address); err != nil {
		return nil, err
	}
	if result.HolderVotesAfterDelegation, err = uc.callBig(ctx, session, token, "getVotes", holder.Address); err != nil {
		return nil, err
	}

	if _, err := uc.transact(ctx, session, holder, token, nil, "transfer", recipient.Address, VotesTransferValue); err != nil {
		return nil, err
	}
	if result.RecipientVotesBefore, err = uc.callBig(ctx, session, token, "getVotes", recipient.Address); err != nil {
		return nil, err
	}

	if _, err := uc.transact(ctx, session, recipient, token, nil, "delegate", recipient.Address); err != nil {
		return nil, err
	}
	if result.RecipientVotesAfter, err = uc.callBig(ctx, session, token, "getVotes", recipient.Address); err != nil {
		return nil, err
	}
	if result.HolderVotesAfterTransfer, err = uc.callBig(ctx, session, token, "getVotes", holder.Address); err != nil {
		return nil, err
	}

	receipt, err = uc.transact(ctx, session, deployer, token, nil, "mint", holder.Address, VotesMintValue)
	if err != nil {
		return nil, err
	}
	result.MintReceipts = append(result.MintReceipts, receipt)

	if result.HolderVotesAfterSecondMint, err = uc.callBig(ctx, session, token, "getVotes", holder.Address); err != nil {
		return nil, err
	}

	return result, nil
}
