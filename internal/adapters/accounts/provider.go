package accounts

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// devKeys are the first ten accounts of the default hardhat/anvil mnemonic
// "test test test test test test test test test test test junk"
var devKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
	"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
	"47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a",
	"8b3a350cf5c34c9194ca85829a2df0ec3153be0318b5e2d3348e872092edffba",
	"92db14e403b83dfe3df233f83dfa3a0d7096f21ca9b0d6d6b8d88b2b4ec1564e",
	"4bbbf85ce3377467afe5d46f804f221813b2bb87f24d81f60f1fcdbf7cbf4356",
	"dbda1821b80551c9d65939329250298aa3472ba22feea921c0cf5d620ea67b97",
	"2a871d0798f97d79848a013d4936a73bf4cc922c825d33c1cf7073dff6d409c6",
}

// Provider returns the signers of the selected network. Dev networks without
// configured keys get the development accounts.
type Provider struct {
	cfg *config.RuntimeConfig
}

// NewProvider creates a new Provider
func NewProvider(cfg *config.RuntimeConfig) *Provider {
	return &Provider{cfg: cfg}
}

// Accounts decodes the keys configured for the network
func (p *Provider) Accounts(ctx context.Context) ([]*models.Account, error) {
	network := p.cfg.Network
	if network == nil {
		return nil, fmt.Errorf("no network selected: %w", domain.ErrNoAccounts)
	}

	keys := network.Accounts
	if len(keys) == 0 && network.Dev {
		keys = devKeys
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w %s: set PRIVATE_KEY or accounts in solscripts.toml", domain.ErrNoAccounts, network.Name)
	}

	accounts := make([]*models.Account, 0, len(keys))
	for i, raw := range keys {
		key, err := ParseKey(raw)
		if err != nil {
			return nil, fmt.Errorf("network %s: account %d: %w", network.Name, i, err)
		}
		accounts = append(accounts, &models.Account{
			Index:   i,
			Address: crypto.PubkeyToAddress(key.PublicKey),
			Key:     key,
		})
	}
	return accounts, nil
}

// ParseKey decodes a hex private key with or without the 0x prefix
func ParseKey(raw string) (*ecdsa.PrivateKey, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	key, err := crypto.HexToECDSA(raw)
	if err != nil {
		// the key itself is never echoed
		return nil, errors.New("invalid private key")
	}
	return key, nil
}

var _ usecase.AccountProvider = (*Provider)(nil)
