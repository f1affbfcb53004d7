package usecase

import (
	"context"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// ArtifactRepository loads compiled contracts from the artifacts directory
type ArtifactRepository interface {
	// Load resolves a bare name, Source.sol:Name or an artifact path
	Load(ctx context.Context, ref string) (*models.Contract, error)
	List(ctx context.Context) ([]*models.ContractInfo, error)
}

// DeploymentRepository handles persistence of deployment records
type DeploymentRepository interface {
	GetDeployment(ctx context.Context, id string) (*models.Deployment, error)
	GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error)
	GetLatestDeployment(ctx context.Context, chainID uint64, contractName string) (*models.Deployment, error)
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	DeleteDeployment(ctx context.Context, id string) error
}

// AccountProvider returns the signers available on the selected network
type AccountProvider interface {
	Accounts(ctx context.Context) ([]*models.Account, error)
}

// ChainDialer opens an RPC session against the selected network
type ChainDialer interface {
	Dial(ctx context.Context) (ChainClient, error)
}

// ChainClient is a connected RPC session. Deploy and Transact block until the
// receipt is mined and fail with *domain.RevertError when execution reverts.
type ChainClient interface {
	ChainID() uint64
	BlockNumber(ctx context.Context) (uint64, error)
	LatestTimestamp(ctx context.Context) (uint64, error)
	Balance(ctx context.Context, address common.Address) (*big.Int, error)

	Deploy(ctx context.Context, from *models.Account, contract *models.Contract, value *big.Int, args ...any) (*models.ContractInstance, error)
	Transact(ctx context.Context, from *models.Account, target *models.ContractInstance, value *big.Int, method string, args ...any) (*models.Receipt, error)
	Call(ctx context.Context, target *models.ContractInstance, method string, args ...any) ([]any, error)

	// Dev network only
	IncreaseTime(ctx context.Context, seconds uint64) error
	Mine(ctx context.Context) error

	Close()
}

// ContractSelector lets the user pick one of several matching artifacts
type ContractSelector interface {
	SelectContract(ctx context.Context, matches []string, prompt string) (string, error)
}

// Confirmer asks the user to approve an action before it is broadcast
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// AnvilManager manages local anvil node instances
type AnvilManager interface {
	Start(ctx context.Context, instance *domain.AnvilInstance) error
	Stop(ctx context.Context, instance *domain.AnvilInstance) error
	GetStatus(ctx context.Context, instance *domain.AnvilInstance) (*domain.AnvilStatus, error)
	StreamLogs(ctx context.Context, instance *domain.AnvilInstance, writer io.Writer) error
}

// NetworkResolver resolves network names to their configuration
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
	ChainID(ctx context.Context, network *config.Network) (uint64, error)
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
