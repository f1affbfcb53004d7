package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// scenario is the shared deploy/transact/call plumbing of every use case that touches the chain
type scenario struct {
	artifacts ArtifactRepository
	recorder  *DeploymentRecorder
	progress  ProgressSink
}

func newScenario(artifacts ArtifactRepository, recorder *DeploymentRecorder, progress ProgressSink) scenario {
	return scenario{
		artifacts: artifacts,
		recorder:  recorder,
		progress:  progress,
	}
}

// deploy loads an artifact, deploys it, waits for the receipt and records it
func (s *scenario) deploy(
	ctx context.Context,
	session *Session,
	from *models.Account,
	ref string,
	label string,
	value *big.Int,
	args ...any,
) (*models.ContractInstance, *models.Deployment, error) {
	contract, err := s.artifacts.Load(ctx, ref)
	if err != nil {
		return nil, nil, err
	}
	return s.deployContract(ctx, session, from, contract, label, value, args...)
}

func (s *scenario) deployContract(
	ctx context.Context,
	session *Session,
	from *models.Account,
	contract *models.Contract,
	label string,
	value *big.Int,
	args ...any,
) (*models.ContractInstance, *models.Deployment, error) {
	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deploying",
		Message: fmt.Sprintf("Deploying %s, awaiting confirmations", contract.Name),
		Spinner: true,
	})

	instance, err := session.Client.Deploy(ctx, from, contract, value, args...)
	if err != nil {
		s.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, nil, fmt.Errorf("failed to deploy %s: %w", contract.Name, err)
	}

	deployment, err := s.recorder.Record(ctx, session, instance, from, label, args)
	if err != nil {
		s.progress.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, nil, err
	}

	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "deployed",
		Message: fmt.Sprintf("%s deployed at %s", contract.Name, instance.Address.Hex()),
	})
	return instance, deployment, nil
}

// transact sends a state-changing call and waits for its receipt
func (s *scenario) transact(
	ctx context.Context,
	session *Session,
	from *models.Account,
	target *models.ContractInstance,
	value *big.Int,
	method string,
	args ...any,
) (*models.Receipt, error) {
	s.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "transacting",
		Message: fmt.Sprintf("%s.%s, awaiting confirmations", target.Contract.Name, method),
		Spinner: true,
	})

	receipt, err := session.Client.Transact(ctx, from, target, value, method, args...)
	s.progress.OnProgress(ctx, ProgressEvent{Stage: "mined"})
	if err != nil {
		return nil, fmt.Errorf("%s.%s failed: %w", target.Contract.Name, method, err)
	}
	return receipt, nil
}

// callOne performs a read-only call and returns its first output
func (s *scenario) callOne(ctx context.Context, session *Session, target *models.ContractInstance, method string, args ...any) (any, error) {
	out, err := session.Client.Call(ctx, target, method, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s failed: %w", target.Contract.Name, method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s.%s returned no values", target.Contract.Name, method)
	}
	return out[0], nil
}

// callBig performs a read-only call returning a single integer
func (s *scenario) callBig(ctx context.Context, session *Session, target *models.ContractInstance, method string, args ...any) (*big.Int, error) {
	out, err := s.callOne(ctx, session, target, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s.%s returned %T, expected an integer", target.Contract.Name, method, out)
	}
	return v, nil
}

// DeployContractParams contains parameters for deploying an arbitrary artifact
type DeployContractParams struct {
	Contract string
	Args     []string
	Value    *big.Int
	Label    string
}

// DeployContractResult contains the result of a generic deployment
type DeployContractResult struct {
	Network    string
	Instance   *models.ContractInstance
	Deployment *models.Deployment
	Args       []any
}

// DeployContract deploys any artifact with constructor arguments parsed against its ABI
type DeployContract struct {
	connector *Connector
	selector  ContractSelector
	scenario
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	connector *Connector,
	selector ContractSelector,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *DeployContract {
	return &DeployContract{
		connector: connector,
		selector:  selector,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Run executes the deploy use case
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (*DeployContractResult, error) {
	contract, err := uc.load(ctx, params.Contract)
	if err != nil {
		return nil, err
	}

	args, err := ParseArgs(contract.ConstructorInputs(), params.Args)
	if err != nil {
		return nil, fmt.Errorf("invalid constructor arguments for %s: %w", contract.Name, err)
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

	instance, deployment, err := uc.deployContract(ctx, session, signers[0], contract, params.Label, params.Value, args...)
	if err != nil {
		return nil, err
	}

	return &DeployContractResult{
		Network:    session.Network.Name,
		Instance:   instance,
		Deployment: deployment,
		Args:       args,
	}, nil
}

// load resolves the artifact, asking the selector when a bare name is ambiguous
func (uc *DeployContract) load(ctx context.Context, ref string) (*models.Contract, error) {
	contract, err := uc.artifacts.Load(ctx, ref)
	var ambiguous domain.AmbiguousContractErr
	if err == nil || uc.selector == nil || !errors.As(err, &ambiguous) {
		return contract, err
	}

	choice, selErr := uc.selector.SelectContract(ctx, ambiguous.Matches, fmt.Sprintf("Several artifacts match %s", ref))
	if selErr != nil {
		return nil, err
	}
	return uc.artifacts.Load(ctx, choice)
}
