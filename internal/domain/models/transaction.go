package models

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Receipt is the mined outcome of a transaction
type Receipt struct {
	TxHash            common.Hash     `json:"transactionHash"`
	From              common.Address  `json:"from"`
	To                *common.Address `json:"to,omitempty"`
	ContractAddress   common.Address  `json:"contractAddress,omitempty"`
	BlockNumber       uint64          `json:"blockNumber"`
	GasUsed           uint64          `json:"gasUsed"`
	EffectiveGasPrice *big.Int        `json:"effectiveGasPrice"`
	Status            uint64          `json:"status"`
}

// GasCost returns gasUsed * effectiveGasPrice in wei
func (r *Receipt) GasCost() *big.Int {
	if r == nil || r.EffectiveGasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(r.GasUsed), r.EffectiveGasPrice)
}

// TotalGasCost sums the gas costs of several receipts
func TotalGasCost(receipts ...*Receipt) *big.Int {
	total := new(big.Int)
	for _, r := range receipts {
		total.Add(total, r.GasCost())
	}
	return total
}

// ContractInstance is a contract bound to an on-chain address. Receipt is set
// when the instance was created by a deployment in this run.
type ContractInstance struct {
	Contract *Contract      `json:"contract"`
	Address  common.Address `json:"address"`
	Receipt  *Receipt       `json:"receipt"`
}

// CallResult holds the decoded outputs of a read-only call
type CallResult struct {
	Method string   `json:"method"`
	Names  []string `json:"names"`
	Types  []string `json:"types"`
	Values []any    `json:"values"`
}
