package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Bytecode is the bytecode section of a compiled artifact. Hardhat writes it as
// a bare hex string, Foundry as an object with an "object" field.
type Bytecode struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

// UnmarshalJSON accepts both artifact layouts
func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	type foundryBytecode Bytecode
	var fb foundryBytecode
	if err := json.Unmarshal(data, &fb); err != nil {
		return fmt.Errorf("invalid bytecode section: %w", err)
	}
	*b = Bytecode(fb)
	return nil
}

// IsEmpty reports whether there is no code to deploy (interfaces, abstract contracts)
func (b Bytecode) IsEmpty() bool {
	code := strings.TrimPrefix(strings.TrimSpace(b.Object), "0x")
	return code == ""
}

// HasLinkPlaceholders reports whether library placeholders remain in the bytecode
func (b Bytecode) HasLinkPlaceholders() bool {
	return strings.Contains(b.Object, "__")
}

// Artifact represents a compilation artifact in either Hardhat or Foundry layout
type Artifact struct {
	Format           string          `json:"_format,omitempty"`
	ContractName     string          `json:"contractName,omitempty"`
	SourceName       string          `json:"sourceName,omitempty"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         Bytecode        `json:"bytecode"`
	DeployedBytecode Bytecode        `json:"deployedBytecode"`
	LinkReferences   map[string]any  `json:"linkReferences,omitempty"`
}

// Contract is a resolved, parsed artifact ready for deployment or attachment
type Contract struct {
	Name         string  `json:"name"`
	Source       string  `json:"source"` // e.g. "Ballot.sol"
	ArtifactPath string  `json:"artifactPath"`
	ABI          abi.ABI `json:"-"`
	Bytecode     []byte  `json:"-"`
}

// FQN returns the Source.sol:Name form of the contract reference
func (c *Contract) FQN() string {
	return fmt.Sprintf("%s:%s", c.Source, c.Name)
}

// ConstructorInputs returns the constructor parameters declared in the ABI
func (c *Contract) ConstructorInputs() abi.Arguments {
	return c.ABI.Constructor.Inputs
}

// ContractInfo is the listing view of an artifact
type ContractInfo struct {
	Name         string `json:"name"`
	Source       string `json:"source"`
	ArtifactPath string `json:"artifactPath"`
}
