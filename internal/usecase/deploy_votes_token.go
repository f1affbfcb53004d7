package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// DeployVotesTokenParams contains parameters for deploying the votes token
type DeployVotesTokenParams struct {
	// To receives the minted tokens; defaults to the second signer
	To    string
	Label string
}

// DeployVotesTokenResult contains the deployed token and the mint receipt
type DeployVotesTokenResult struct {
	Network     string
	Token       *models.ContractInstance
	Deployment  *models.Deployment
	MintTo      common.Address
	MintValue   string
	MintReceipt *models.Receipt
}

// DeployVotesToken deploys MyERC20Votes on the selected network and mints to a holder
type DeployVotesToken struct {
	connector *Connector
	scenario
}

// NewDeployVotesToken creates a new DeployVotesToken use case
func NewDeployVotesToken(
	connector *Connector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *DeployVotesToken {
	return &DeployVotesToken{
		connector: connector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the use case
func (uc *DeployVotesToken) Run(ctx context.Context, params DeployVotesTokenParams) (*DeployVotesTokenResult, error) {
	var to common.Address
	if params.To != "" {
		if !common.IsHexAddress(params.To) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, params.To)
		}
		to = common.HexToAddress(params.To)
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
	deployer := signers[0]

	// A single configured key mints to itself
	if params.To == "" {
		to = deployer.Address
		if len(session.Accounts) > 1 {
			to = session.Accounts[1].Address
		}
	}

	token, deployment, err := uc.deploy(ctx, session, deployer, VotesTokenContract, params.Label, nil)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.transact(ctx, session, deployer, token, nil, "mint", to, VotesMintValue)
	if err != nil {
		return nil, err
	}

	return &DeployVotesTokenResult{
		Network:     session.Network.Name,
		Token:       token,
		Deployment:  deployment,
		MintTo:      to,
		MintValue:   domain.FormatEther(VotesMintValue),
		MintReceipt: receipt,
	}, nil
}
