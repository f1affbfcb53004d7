package config

import (
	"math/big"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	DataDir      string // registry and local config
	ArtifactsDir string

	// Network is the resolved network selected by --network
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	Yes            bool
	JSON           bool
	Timeout        time.Duration
	Confirmations  uint64

	// Resolved project file
	Project *ProjectConfig
}

// Network represents a resolved network: env vars expanded, keys decoded later by the accounts adapter
type Network struct {
	Name       string   `json:"name"`
	RPCURL     string   `json:"rpcUrl"`
	ChainID    uint64   `json:"chainId,omitempty"` // expected chain ID, 0 skips the check
	GasPrice   *big.Int `json:"gasPrice,omitempty"`
	MinBalance *big.Int `json:"minBalance,omitempty"`
	Accounts   []string `json:"-"`
	Dev        bool     `json:"dev"`
}
