package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// DeploymentsFile is the registry file inside the data directory
const DeploymentsFile = "deployments.json"

// FileRepository stores deployments in a json file
type FileRepository struct {
	dataDir     string
	mu          sync.RWMutex
	deployments map[string]*models.Deployment
	// chainID -> lowercase address -> deployment ID
	byAddress map[uint64]map[string]string
}

// NewFileRepository creates the data directory if needed and loads the registry
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dataDir, err)
	}

	r := &FileRepository{
		dataDir:     dataDir,
		deployments: make(map[string]*models.Deployment),
		byAddress:   make(map[uint64]map[string]string),
	}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}
	return r, nil
}

// ProvideFileRepository builds the repository from the runtime config
func ProvideFileRepository(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

// Path returns the registry file location
func (r *FileRepository) Path() string {
	return filepath.Join(r.dataDir, DeploymentsFile)
}

func (r *FileRepository) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.Path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &r.deployments); err != nil {
		return fmt.Errorf("failed to parse %s: %w", r.Path(), err)
	}
	r.rebuildLookups()
	return nil
}

// commit writes next to disk and only then makes it the in-memory state.
// It must be called with the write lock held.
func (r *FileRepository) commit(next map[string]*models.Deployment) error {
	if err := r.save(next); err != nil {
		return err
	}
	r.deployments = next
	r.rebuildLookups()
	return nil
}

func (r *FileRepository) save(deployments map[string]*models.Deployment) error {
	data, err := json.MarshalIndent(deployments, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deployments: %w", err)
	}

	path := r.Path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func (r *FileRepository) rebuildLookups() {
	r.byAddress = make(map[uint64]map[string]string)
	for id, d := range r.deployments {
		if r.byAddress[d.ChainID] == nil {
			r.byAddress[d.ChainID] = make(map[string]string)
		}
		r.byAddress[d.ChainID][strings.ToLower(d.Address)] = id
	}
}

// GetDeployment retrieves a deployment by its ID
func (r *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deployments[id]
	if !ok {
		return nil, fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	return clone(d), nil
}

// GetDeploymentByAddress retrieves a deployment by chain and address, ignoring case
func (r *FileRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byAddress[chainID][strings.ToLower(address)]
	if !ok {
		return nil, fmt.Errorf("no deployment at %s on chain %d: %w", address, chainID, domain.ErrNotFound)
	}
	return clone(r.deployments[id]), nil
}

// GetLatestDeployment returns the most recently recorded deployment of a contract on a chain
func (r *FileRepository) GetLatestDeployment(ctx context.Context, chainID uint64, contractName string) (*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.filter(domain.DeploymentFilter{ChainID: chainID, ContractName: contractName})
	if len(matches) == 0 {
		return nil, fmt.Errorf("no %s deployment on chain %d: %w", contractName, chainID, domain.ErrNotFound)
	}
	latest := lo.MaxBy(matches, func(a, b *models.Deployment) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})
	return clone(latest), nil
}

// ListDeployments returns deployments matching the filter, ordered by chain, contract and creation time
func (r *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := lo.Map(r.filter(filter), func(d *models.Deployment, _ int) *models.Deployment {
		return clone(d)
	})
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.ChainID != b.ChainID {
			return a.ChainID < b.ChainID
		}
		if a.ContractName != b.ContractName {
			return a.ContractName < b.ContractName
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return matches, nil
}

func (r *FileRepository) filter(filter domain.DeploymentFilter) []*models.Deployment {
	return lo.Filter(lo.Values(r.deployments), func(d *models.Deployment, _ int) bool {
		if filter.ChainID != 0 && d.ChainID != filter.ChainID {
			return false
		}
		if filter.ContractName != "" && d.ContractName != filter.ContractName {
			return false
		}
		if filter.Label != "" && d.Label != filter.Label {
			return false
		}
		return true
	})
}

// SaveDeployment stores or replaces a deployment. A deployment at an address
// already recorded under another ID replaces that record.
func (r *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if deployment.ID == "" {
		return fmt.Errorf("deployment has no ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if deployment.CreatedAt.IsZero() {
		deployment.CreatedAt = time.Now()
	}

	next := maps.Clone(r.deployments)
	if previous, ok := r.byAddress[deployment.ChainID][strings.ToLower(deployment.Address)]; ok && previous != deployment.ID {
		delete(next, previous)
	}
	next[deployment.ID] = clone(deployment)

	return r.commit(next)
}

// DeleteDeployment removes a deployment
func (r *FileRepository) DeleteDeployment(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deployments[id]; !ok {
		return fmt.Errorf("deployment %s: %w", id, domain.ErrNotFound)
	}
	next := maps.Clone(r.deployments)
	delete(next, id)

	return r.commit(next)
}

func clone(d *models.Deployment) *models.Deployment {
	c := *d
	c.ConstructorArgs = append([]string(nil), d.ConstructorArgs...)
	return &c
}
