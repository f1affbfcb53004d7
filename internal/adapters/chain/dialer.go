package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

const defaultDialTimeout = 30 * time.Second

// Dialer connects to the network selected in the runtime config
type Dialer struct {
	cfg *config.RuntimeConfig
	log *slog.Logger
}

// NewDialer creates a new Dialer
func NewDialer(cfg *config.RuntimeConfig, log *slog.Logger) *Dialer {
	return &Dialer{cfg: cfg, log: log}
}

// Dial connects, fetches the chain ID and checks it against the configured one
func (d *Dialer) Dial(ctx context.Context) (usecase.ChainClient, error) {
	network := d.cfg.Network
	if network == nil {
		return nil, errors.New("no network selected")
	}

	timeout := d.cfg.Timeout
	if timeout == 0 {
		timeout = defaultDialTimeout
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := rpc.DialContext(dialCtx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s (%s): %w", network.Name, network.RPCURL, err)
	}
	backend := ethclient.NewClient(raw)

	chainID, err := backend.ChainID(dialCtx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to connect to %s (%s): %w", network.Name, network.RPCURL, err)
	}
	if network.ChainID != 0 && chainID.Uint64() != network.ChainID {
		backend.Close()
		return nil, fmt.Errorf("%w: %s expects chain %d but the node reports %d",
			domain.ErrNetworkMismatch, network.Name, network.ChainID, chainID.Uint64())
	}

	client := NewClient(backend, chainID.Uint64(), network, d.cfg.Confirmations, d.log)
	client.raw = raw
	client.closer = backend.Close
	return client, nil
}

var _ usecase.ChainDialer = (*Dialer)(nil)
