package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// ContractAttacher binds a contract reference to an on-chain instance.
// References are hex addresses, registry IDs (31337/Lottery:default),
// name:label pairs or bare contract names (latest deployment wins).
type ContractAttacher struct {
	artifacts ArtifactRepository
	repo      DeploymentRepository
}

// NewContractAttacher creates a new ContractAttacher
func NewContractAttacher(artifacts ArtifactRepository, repo DeploymentRepository) *ContractAttacher {
	return &ContractAttacher{
		artifacts: artifacts,
		repo:      repo,
	}
}

// Attach resolves ref on the given chain. contractName selects the artifact; it is
// required for raw addresses that are not in the registry and defaults to the
// recorded contract otherwise.
func (a *ContractAttacher) Attach(ctx context.Context, chainID uint64, ref, contractName string) (*models.ContractInstance, error) {
	if ref == "" {
		ref = contractName
	}
	if ref == "" {
		return nil, errors.New("no contract address or name given")
	}

	address, deployment, err := a.resolve(ctx, chainID, ref)
	if err != nil {
		return nil, err
	}

	if contractName != "" && deployment != nil && deployment.ContractName != bareContractName(contractName) {
		return nil, fmt.Errorf("%s is a %s deployment, not %s", ref, deployment.ContractName, contractName)
	}

	artifactRef := contractName
	if artifactRef == "" && deployment != nil {
		artifactRef = deployment.ArtifactPath
		if artifactRef == "" {
			artifactRef = deployment.ContractName
		}
	}
	if artifactRef == "" {
		return nil, fmt.Errorf("address %s is not in the registry; specify the contract name", address.Hex())
	}

	contract, err := a.artifacts.Load(ctx, artifactRef)
	if err != nil {
		return nil, err
	}

	return &models.ContractInstance{
		Contract: contract,
		Address:  address,
	}, nil
}

// ResolveAddress resolves ref to an address without loading an artifact
func (a *ContractAttacher) ResolveAddress(ctx context.Context, chainID uint64, ref string) (common.Address, error) {
	address, _, err := a.resolve(ctx, chainID, ref)
	return address, err
}

func (a *ContractAttacher) resolve(ctx context.Context, chainID uint64, ref string) (common.Address, *models.Deployment, error) {
	if common.IsHexAddress(ref) {
		address := common.HexToAddress(ref)
		deployment, err := a.repo.GetDeploymentByAddress(ctx, chainID, address.Hex())
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return common.Address{}, nil, err
			}
			deployment = nil
		}
		return address, deployment, nil
	}
	if strings.HasPrefix(ref, "0x") {
		return common.Address{}, nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, ref)
	}

	var (
		deployment *models.Deployment
		err        error
	)
	switch {
	case strings.Contains(ref, "/"):
		deployment, err = a.repo.GetDeployment(ctx, ref)
	case strings.Contains(ref, ":"):
		name, label, _ := strings.Cut(ref, ":")
		deployment, err = a.repo.GetDeployment(ctx, models.DeploymentID(chainID, name, label))
	default:
		deployment, err = a.repo.GetLatestDeployment(ctx, chainID, ref)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return common.Address{}, nil, fmt.Errorf("no deployment of %s recorded on chain %d: %w", ref, chainID, domain.ErrNotFound)
		}
		return common.Address{}, nil, err
	}
	if deployment.ChainID != chainID {
		return common.Address{}, nil, fmt.Errorf("%s is recorded on chain %d, connected to chain %d: %w", ref, deployment.ChainID, chainID, domain.ErrNotFound)
	}

	return common.HexToAddress(deployment.Address), deployment, nil
}

// bareContractName strips artifact paths and "File.sol:" qualifiers
func bareContractName(ref string) string {
	if i := strings.LastIndex(ref, ":"); i >= 0 {
		return ref[i+1:]
	}
	return strings.TrimSuffix(filepath.Base(ref), filepath.Ext(ref))
}
