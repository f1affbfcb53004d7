package config

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
)

// DevRPCURL is where hardhat node and anvil listen by default
const DevRPCURL = "http://127.0.0.1:8545"

// DefaultMinBalance is the balance below which live-network runs refuse to broadcast
const DefaultMinBalance = "0.01"

// devNetworks are always available and use the well-known development accounts
var devNetworks = []string{"hardhat", "localhost", "anvil"}

// presetNetworks are used when solscripts.toml does not define a network of the same name
var presetNetworks = map[string]config.NetworkConfig{
	"goerli": {
		URL:      "${GOERLI_URL}",
		Accounts: []string{"${PRIVATE_KEY}"},
		GasPrice: 50_000_000_000,
		ChainID:  5,
	},
	"mumbai": {
		URL:      "https://polygon-mumbai.g.alchemy.com/v2/${ALCHEMY_API_KEY}",
		Accounts: []string{"${PRIVATE_KEY}"},
		ChainID:  80001,
	},
}

// NetworkResolver resolves network names to configurations with caching
type NetworkResolver struct {
	projectRoot string
	project     *config.ProjectConfig
	cache       *NetworkCache
	timeout     time.Duration
	mu          sync.RWMutex
}

// NetworkCache caches chain ID lookups
type NetworkCache struct {
	Networks   map[string]uint64   `json:"networks"`   // name -> chainID
	RPCs       map[string]uint64   `json:"rpcs"`       // rpcURL -> chainID
	ChainNames map[uint64][]string `json:"chainNames"` // chainID -> names
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(projectRoot string, project *config.ProjectConfig) *NetworkResolver {
	r := &NetworkResolver{
		projectRoot: projectRoot,
		project:     project,
		timeout:     10 * time.Second,
	}

	r.loadCache()

	return r
}

// ProvideNetworkResolver creates a NetworkResolver for Wire dependency injection
func ProvideNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return NewNetworkResolver(cfg.ProjectRoot, cfg.Project)
}

// Names returns every resolvable network: configured, presets and dev networks
func (r *NetworkResolver) Names() []string {
	names := append([]string{}, devNetworks...)
	names = append(names, lo.Keys(presetNetworks)...)
	names = append(names, lo.Keys(r.project.Networks)...)
	names = lo.Uniq(names)
	sort.Strings(names)
	return names
}

// IsConfigured reports whether the network is defined in solscripts.toml
func (r *NetworkResolver) IsConfigured(name string) bool {
	_, ok := r.project.Networks[name]
	return ok
}

// Resolve resolves a network name to its configuration with env vars expanded
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	raw, ok := r.lookup(name)
	if !ok {
		return nil, fmt.Errorf("network '%s' not found (available: %s): %w",
			name, strings.Join(r.Names(), ", "), domain.ErrNotFound)
	}

	url, missing := ExpandEnv(raw.URL)
	if len(missing) > 0 {
		return nil, fmt.Errorf("network %s: url references unset environment variable %s",
			name, strings.Join(missing, ", "))
	}
	if url == "" {
		return nil, fmt.Errorf("network %s has no url configured", name)
	}

	// Unset key references are dropped, mirroring an empty accounts list
	var accounts []string
	for _, entry := range raw.Accounts {
		key, missing := ExpandEnv(entry)
		if len(missing) > 0 || key == "" {
			continue
		}
		accounts = append(accounts, key)
	}

	minBalance := raw.MinBalance
	if minBalance == "" {
		minBalance = DefaultMinBalance
	}
	minBalanceWei, err := domain.ParseEther(minBalance)
	if err != nil {
		return nil, fmt.Errorf("network %s: invalid min_balance: %w", name, err)
	}

	network := &config.Network{
		Name:       name,
		RPCURL:     url,
		ChainID:    raw.ChainID,
		MinBalance: minBalanceWei,
		Accounts:   accounts,
		Dev:        raw.Dev,
	}
	if raw.GasPrice > 0 {
		network.GasPrice = new(big.Int).SetUint64(raw.GasPrice)
	}

	return network, nil
}

func (r *NetworkResolver) lookup(name string) (config.NetworkConfig, bool) {
	if cfg, ok := r.project.Networks[name]; ok {
		if lo.Contains(devNetworks, name) {
			cfg.Dev = true
			if cfg.URL == "" {
				cfg.URL = DevRPCURL
			}
		}
		return cfg, true
	}
	if cfg, ok := presetNetworks[name]; ok {
		return cfg, true
	}
	if lo.Contains(devNetworks, name) {
		return config.NetworkConfig{URL: DevRPCURL, Dev: true}, true
	}
	return config.NetworkConfig{}, false
}

// ChainID returns the chain ID of a network, from cache when known
func (r *NetworkResolver) ChainID(ctx context.Context, network *config.Network) (uint64, error) {
	r.mu.RLock()
	chainID, cached := r.cache.RPCs[network.RPCURL]
	r.mu.RUnlock()
	if cached {
		return chainID, nil
	}

	chainID, err := r.fetchChainID(ctx, network.RPCURL)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch chain ID for network %s: %w", network.Name, err)
	}

	// Dev node chain IDs change between restarts, so only live networks are cached
	if !network.Dev {
		r.updateCache(network.Name, network.RPCURL, chainID)
	}
	return chainID, nil
}

// fetchChainID fetches the chain ID from an RPC endpoint
func (r *NetworkResolver) fetchChainID(ctx context.Context, rpcURL string) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	client, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return 0, fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	var result hexutil.Uint64
	if err := client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, fmt.Errorf("RPC error: %w", err)
	}
	return uint64(result), nil
}

func (r *NetworkResolver) cachePath() string {
	return filepath.Join(r.projectRoot, "cache", "chainIds.json")
}

func newNetworkCache() *NetworkCache {
	return &NetworkCache{
		Networks:   make(map[string]uint64),
		RPCs:       make(map[string]uint64),
		ChainNames: make(map[uint64][]string),
		UpdatedAt:  time.Now(),
	}
}

// loadCache loads the chain ID cache from disk
func (r *NetworkResolver) loadCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = newNetworkCache()

	data, err := os.ReadFile(r.cachePath())
	if err != nil {
		return
	}

	if err := json.Unmarshal(data, &r.cache); err != nil {
		r.cache = newNetworkCache()
	}
}

// updateCache updates the cache with new chain ID information
func (r *NetworkResolver) updateCache(networkName, rpcURL string, chainID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Networks[networkName] = chainID
	r.cache.RPCs[rpcURL] = chainID
	if !lo.Contains(r.cache.ChainNames[chainID], networkName) {
		r.cache.ChainNames[chainID] = append(r.cache.ChainNames[chainID], networkName)
	}
	r.cache.UpdatedAt = time.Now()

	// cache is only an optimisation
	_ = r.saveCache()
}

// saveCache saves the cache to disk
func (r *NetworkResolver) saveCache() error {
	if err := os.MkdirAll(filepath.Dir(r.cachePath()), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(r.cachePath(), data, 0644)
}
