package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// CallContractParams selects a method on an attached contract
type CallContractParams struct {
	// Target is an address or registry reference
	Target string
	// Contract names the artifact; optional when Target is in the registry
	Contract string
	// Method is a method name or a full signature such as transfer(address,uint256)
	Method string
	Args   []string
	// Value is sent with the transaction (send only)
	Value *big.Int
}

// CallContractResult contains the decoded outputs of a read-only call
type CallContractResult struct {
	Network  string
	Instance *models.ContractInstance
	Result   *models.CallResult
}

// SendTransactionResult contains the receipt of a state-changing call
type SendTransactionResult struct {
	Network  string
	Instance *models.ContractInstance
	Method   string
	Args     []any
	Receipt  *models.Receipt
}

// CallContract performs read-only calls and transactions against deployed contracts
type CallContract struct {
	connector *Connector
	attacher  *ContractAttacher
	scenario
}

// NewCallContract creates a new CallContract use case
func NewCallContract(
	connector *Connector,
	attacher *ContractAttacher,
	artifacts ArtifactRepository,
	recorder *DeploymentRecorder,
	progress ProgressSink,
) *CallContract {
	return &CallContract{
		connector: connector,
		attacher:  attacher,
		scenario:  newScenario(artifacts, recorder, progress),
	}
}

// Call runs eth_call and decodes the outputs
func (uc *CallContract) Call(ctx context.Context, params CallContractParams) (*CallContractResult, error) {
	session, instance, method, args, err := uc.prepare(ctx, params, false)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	values, err := session.Client.Call(ctx, instance, method.Name, args...)
	if err != nil {
		return nil, fmt.Errorf("%s.%s failed: %w", instance.Contract.Name, method.Name, err)
	}

	result := &models.CallResult{
		Method: method.Sig,
		Values: values,
	}
	for i, output := range method.Outputs {
		name := output.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		result.Names = append(result.Names, name)
		result.Types = append(result.Types, output.Type.String())
	}

	return &CallContractResult{
		Network:  session.Network.Name,
		Instance: instance,
		Result:   result,
	}, nil
}

// Send signs a transaction with the first signer and waits for the receipt
func (uc *CallContract) Send(ctx context.Context, params CallContractParams) (*SendTransactionResult, error) {
	session, instance, method, args, err := uc.prepare(ctx, params, true)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	if params.Value != nil && params.Value.Sign() > 0 && !method.IsPayable() {
		return nil, fmt.Errorf("%s is not payable", method.Sig)
	}

	signers, err := session.Signers(1)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.transact(ctx, session, signers[0], instance, params.Value, method.Name, args...)
	if err != nil {
		return nil, err
	}

	return &SendTransactionResult{
		Network:  session.Network.Name,
		Instance: instance,
		Method:   method.Sig,
		Args:     args,
		Receipt:  receipt,
	}, nil
}

func (uc *CallContract) prepare(ctx context.Context, params CallContractParams, broadcast bool) (*Session, *models.ContractInstance, *abi.Method, []any, error) {
	session, err := uc.connector.Open(ctx, broadcast)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	instance, err := uc.attacher.Attach(ctx, session.ChainID(), params.Target, params.Contract)
	if err != nil {
		session.Close()
		return nil, nil, nil, nil, err
	}

	method, err := FindMethod(instance.Contract, params.Method)
	if err != nil {
		session.Close()
		return nil, nil, nil, nil, err
	}

	args, err := ParseArgs(method.Inputs, params.Args)
	if err != nil {
		session.Close()
		return nil, nil, nil, nil, fmt.Errorf("invalid arguments for %s: %w", method.Sig, err)
	}

	return session, instance, method, args, nil
}

// FindMethod looks a method up by name or full signature. Overloaded names
// must be given as a signature.
func FindMethod(contract *models.Contract, ref string) (*abi.Method, error) {
	ref = strings.ReplaceAll(ref, " ", "")

	if strings.Contains(ref, "(") {
		for _, m := range contract.ABI.Methods {
			if m.Sig == ref {
				return &m, nil
			}
		}
		return nil, fmt.Errorf("%s has no method %s", contract.Name, ref)
	}

	candidates := lo.Filter(lo.Values(contract.ABI.Methods), func(m abi.Method, _ int) bool {
		return m.RawName == ref
	})
	switch len(candidates) {
	case 0:
		names := lo.Uniq(lo.Map(lo.Values(contract.ABI.Methods), func(m abi.Method, _ int) string { return m.RawName }))
		sort.Strings(names)
		return nil, fmt.Errorf("%s has no method %s (available: %s)", contract.Name, ref, strings.Join(names, ", "))
	case 1:
		return &candidates[0], nil
	default:
		sigs := lo.Map(candidates, func(m abi.Method, _ int) string { return m.Sig })
		sort.Strings(sigs)
		return nil, fmt.Errorf("%s is overloaded in %s, use one of: %s", ref, contract.Name, strings.Join(sigs, ", "))
	}
}
