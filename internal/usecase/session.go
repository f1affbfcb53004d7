package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// Session is an open connection to the selected network together with its signers
type Session struct {
	Client   ChainClient
	Network  *config.Network
	Accounts []*models.Account
}

// ChainID returns the chain ID reported by the node
func (s *Session) ChainID() uint64 {
	return s.Client.ChainID()
}

// Signers returns the first n accounts, failing when the network has fewer
func (s *Session) Signers(n int) ([]*models.Account, error) {
	if len(s.Accounts) < n {
		return nil, fmt.Errorf("need %d accounts but network %s has %d: %w",
			n, s.Network.Name, len(s.Accounts), domain.ErrNoAccounts)
	}
	return s.Accounts[:n], nil
}

// Close releases the RPC connection
func (s *Session) Close() {
	s.Client.Close()
}

// Connector opens sessions and guards broadcasts to live networks
type Connector struct {
	cfg       *config.RuntimeConfig
	dialer    ChainDialer
	accounts  AccountProvider
	confirmer Confirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewConnector creates a new Connector
func NewConnector(
	cfg *config.RuntimeConfig,
	dialer ChainDialer,
	accounts AccountProvider,
	confirmer Confirmer,
	progress ProgressSink,
	log *slog.Logger,
) *Connector {
	return &Connector{
		cfg:       cfg,
		dialer:    dialer,
		accounts:  accounts,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "connector"),
	}
}

// Network returns the selected network
func (c *Connector) Network() *config.Network {
	return c.cfg.Network
}

// Open dials the selected network. With broadcast set on a live network the
// first signer must hold at least min_balance and the user must confirm.
func (c *Connector) Open(ctx context.Context, broadcast bool) (*Session, error) {
	client, err := c.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := c.accounts.Accounts(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}

	session := &Session{
		Client:   client,
		Network:  c.cfg.Network,
		Accounts: accounts,
	}
	c.log.Debug("session opened", "network", c.cfg.Network.Name, "chainId", client.ChainID(), "accounts", len(accounts))

	if broadcast && !c.cfg.Network.Dev {
		if err := c.guardBroadcast(ctx, session); err != nil {
			client.Close()
			return nil, err
		}
	}

	return session, nil
}

func (c *Connector) guardBroadcast(ctx context.Context, session *Session) error {
	signers, err := session.Signers(1)
	if err != nil {
		return err
	}
	signer := signers[0]

	balance, err := session.Client.Balance(ctx, signer.Address)
	if err != nil {
		return fmt.Errorf("failed to fetch balance of %s: %w", signer.Address.Hex(), err)
	}
	c.progress.Info(fmt.Sprintf("Wallet balance %s ETH", domain.FormatEther(balance)))

	if min := session.Network.MinBalance; min != nil && balance.Cmp(min) < 0 {
		return fmt.Errorf("%w: %s holds %s ETH, at least %s ETH required",
			domain.ErrInsufficientFunds, signer.Address.Hex(), domain.FormatEther(balance), domain.FormatEther(min))
	}

	if c.cfg.Yes || c.cfg.NonInteractive {
		return nil
	}

	ok, err := c.confirmer.Confirm(ctx, fmt.Sprintf("Broadcast to %s (chain %d) from %s",
		session.Network.Name, session.ChainID(), signer.Address.Hex()))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCancelled
	}
	return nil
}
