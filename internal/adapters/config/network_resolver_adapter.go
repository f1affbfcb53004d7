package config

import (
	"context"

	"github.com/trebuchet-org/solscripts/internal/config"
	domainconfig "github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworks returns all configured network names
func (a *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return a.resolver.Names()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	return a.resolver.Resolve(name)
}

// ChainID returns the configured chain ID or asks the node for it
func (a *NetworkResolverAdapter) ChainID(ctx context.Context, network *domainconfig.Network) (uint64, error) {
	return a.resolver.ChainID(ctx, network)
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
