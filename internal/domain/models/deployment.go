package models

import (
	"fmt"
	"time"
)

// DefaultLabel is the label given to the first deployment of a contract on a chain
const DefaultLabel = "default"

// Deployment represents a contract deployment record
type Deployment struct {
	// Core identification
	ID           string `json:"id" yaml:"id"` // e.g., "31337/Ballot:default"
	ChainID      uint64 `json:"chainId" yaml:"chainId"`
	Network      string `json:"network" yaml:"network"`
	ContractName string `json:"contractName" yaml:"contractName"`
	Label        string `json:"label" yaml:"label"`
	Address      string `json:"address" yaml:"address"`

	// Provenance
	ArtifactPath    string   `json:"artifactPath" yaml:"artifactPath"`
	TransactionHash string   `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64   `json:"blockNumber" yaml:"blockNumber"`
	Deployer        string   `json:"deployer" yaml:"deployer"`
	ConstructorArgs []string `json:"constructorArgs,omitempty" yaml:"constructorArgs,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// DeploymentID builds the registry key for a deployment
func DeploymentID(chainID uint64, contractName, label string) string {
	return fmt.Sprintf("%d/%s", chainID, ShortID(contractName, label))
}

// ShortID returns contractName:label, or just the contract name without a label
func ShortID(contractName, label string) string {
	if label == "" {
		return contractName
	}
	return fmt.Sprintf("%s:%s", contractName, label)
}

// GetShortID returns the short identifier (contractName:label or just contractName)
func (d *Deployment) GetShortID() string {
	return ShortID(d.ContractName, d.Label)
}
