package models

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a signer available on the selected network
type Account struct {
	Index   int               `json:"index"`
	Address common.Address    `json:"address"`
	Key     *ecdsa.PrivateKey `json:"-"`
}

// AccountBalance pairs an account with its ETH balance
type AccountBalance struct {
	Account
	Balance *big.Int `json:"balance"`
}
