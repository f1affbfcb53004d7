package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// DeploymentRecorder writes successful deployments to the registry
type DeploymentRecorder struct {
	repo DeploymentRepository
	log  *slog.Logger
	now  func() time.Time
}

// NewDeploymentRecorder creates a new DeploymentRecorder
func NewDeploymentRecorder(repo DeploymentRepository, log *slog.Logger) *DeploymentRecorder {
	return &DeploymentRecorder{
		repo: repo,
		log:  log.With("component", "recorder"),
		now:  time.Now,
	}
}

// Record stores a deployment. Without a label the first deployment of a contract
// on a chain gets "default" and later ones the tx hash prefix.
func (r *DeploymentRecorder) Record(
	ctx context.Context,
	session *Session,
	instance *models.ContractInstance,
	from *models.Account,
	label string,
	args []any,
) (*models.Deployment, error) {
	chainID := session.ChainID()
	name := instance.Contract.Name

	if label == "" {
		var err error
		label, err = r.nextLabel(ctx, chainID, name, instance)
		if err != nil {
			return nil, err
		}
	}

	deployment := &models.Deployment{
		ID:              models.DeploymentID(chainID, name, label),
		ChainID:         chainID,
		Network:         session.Network.Name,
		ContractName:    name,
		Label:           label,
		Address:         instance.Address.Hex(),
		ArtifactPath:    instance.Contract.ArtifactPath,
		Deployer:        from.Address.Hex(),
		ConstructorArgs: FormatValues(args),
		CreatedAt:       r.now(),
	}
	if instance.Receipt != nil {
		deployment.TransactionHash = instance.Receipt.TxHash.Hex()
		deployment.BlockNumber = instance.Receipt.BlockNumber
	}

	if err := r.repo.SaveDeployment(ctx, deployment); err != nil {
		return nil, fmt.Errorf("failed to record deployment: %w", err)
	}
	r.log.Debug("deployment recorded", "id", deployment.ID, "address", deployment.Address)

	return deployment, nil
}

func (r *DeploymentRecorder) nextLabel(ctx context.Context, chainID uint64, name string, instance *models.ContractInstance) (string, error) {
	_, err := r.repo.GetDeployment(ctx, models.DeploymentID(chainID, name, models.DefaultLabel))
	if errors.Is(err, domain.ErrNotFound) {
		return models.DefaultLabel, nil
	}
	if err != nil {
		return "", err
	}
	if instance.Receipt == nil {
		return instance.Address.Hex()[:10], nil
	}
	return instance.Receipt.TxHash.Hex()[:10], nil
}
