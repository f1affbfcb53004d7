package chain

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// Backend is the part of an Ethereum client the adapter needs. Both
// *ethclient.Client and the simulated backend's client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// rpcCaller issues raw JSON-RPC calls for the dev node helpers
type rpcCaller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
}

// Client implements usecase.ChainClient on top of go-ethereum's bind package
type Client struct {
	backend       Backend
	raw           rpcCaller
	closer        func()
	chainID       uint64
	network       *config.Network
	confirmations uint64
	pollInterval  time.Duration
	log           *slog.Logger
}

// NewClient wraps a connected backend
func NewClient(backend Backend, chainID uint64, network *config.Network, confirmations uint64, log *slog.Logger) *Client {
	if confirmations == 0 {
		confirmations = 1
	}
	return &Client{
		backend:       backend,
		closer:        func() {},
		chainID:       chainID,
		network:       network,
		confirmations: confirmations,
		pollInterval:  time.Second,
		log:           log.With("component", "chain", "network", network.Name),
	}
}

// ChainID returns the chain ID reported by the node
func (c *Client) ChainID() uint64 {
	return c.chainID
}

// BlockNumber returns the latest block number
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

// LatestTimestamp returns the timestamp of the latest block
func (c *Client) LatestTimestamp(ctx context.Context) (uint64, error) {
	header, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, err
	}
	return header.Time, nil
}

// Balance returns the latest ETH balance of address
func (c *Client) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	return c.backend.BalanceAt(ctx, address, nil)
}

// Deploy sends the creation transaction and waits for the receipt
func (c *Client) Deploy(ctx context.Context, from *models.Account, contract *models.Contract, value *big.Int, args ...any) (*models.ContractInstance, error) {
	packed, err := contract.ABI.Pack("", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	data := append(append([]byte{}, contract.Bytecode...), packed...)

	opts, err := c.transactOpts(ctx, from, &contract.ABI, "constructor", nil, value, data)
	if err != nil {
		return nil, err
	}

	address, tx, _, err := bind.DeployContract(opts, contract.ABI, contract.Bytecode, c.backend, args...)
	if err != nil {
		return nil, decodeError(&contract.ABI, "constructor", err)
	}
	c.log.Debug("deployment sent", "contract", contract.Name, "tx", tx.Hash().Hex(), "address", address.Hex())

	receipt, err := c.wait(ctx, tx, from, contract.Name)
	if err != nil {
		return nil, err
	}

	return &models.ContractInstance{
		Contract: contract,
		Address:  address,
		Receipt:  receipt,
	}, nil
}

// Transact sends a state-changing method call and waits for the receipt
func (c *Client) Transact(ctx context.Context, from *models.Account, target *models.ContractInstance, value *big.Int, method string, args ...any) (*models.Receipt, error) {
	contractABI := &target.Contract.ABI
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s arguments: %w", method, err)
	}

	opts, err := c.transactOpts(ctx, from, contractABI, method, &target.Address, value, data)
	if err != nil {
		return nil, err
	}

	tx, err := c.bound(target).Transact(opts, method, args...)
	if err != nil {
		return nil, decodeError(contractABI, method, err)
	}
	c.log.Debug("transaction sent", "method", method, "to", target.Address.Hex(), "tx", tx.Hash().Hex())

	return c.wait(ctx, tx, from, method)
}

// Call runs eth_call against the latest block and decodes the outputs
func (c *Client) Call(ctx context.Context, target *models.ContractInstance, method string, args ...any) ([]any, error) {
	var out []any
	if err := c.bound(target).Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, decodeError(&target.Contract.ABI, method, err)
	}
	return out, nil
}

// IncreaseTime moves the dev node clock forward
func (c *Client) IncreaseTime(ctx context.Context, seconds uint64) error {
	if err := c.requireDev("evm_increaseTime"); err != nil {
		return err
	}
	var result any
	if err := c.raw.CallContext(ctx, &result, "evm_increaseTime", seconds); err != nil {
		return fmt.Errorf("evm_increaseTime failed: %w", err)
	}
	return nil
}

// Mine asks the dev node to produce a block
func (c *Client) Mine(ctx context.Context) error {
	if err := c.requireDev("evm_mine"); err != nil {
		return err
	}
	var result any
	if err := c.raw.CallContext(ctx, &result, "evm_mine"); err != nil {
		return fmt.Errorf("evm_mine failed: %w", err)
	}
	return nil
}

// Close releases the connection
func (c *Client) Close() {
	c.closer()
}

func (c *Client) requireDev(method string) error {
	if !c.network.Dev {
		return fmt.Errorf("%s on %s: %w", method, c.network.Name, domain.ErrDevNetworkOnly)
	}
	if c.raw == nil {
		return fmt.Errorf("%s: no raw RPC connection", method)
	}
	return nil
}

func (c *Client) bound(target *models.ContractInstance) *bind.BoundContract {
	return bind.NewBoundContract(target.Address, target.Contract.ABI, c.backend, c.backend, c.backend)
}

// transactOpts builds signing options and estimates gas up front so reverts
// surface with their revert data
func (c *Client) transactOpts(ctx context.Context, from *models.Account, contractABI *abi.ABI, method string, to *common.Address, value *big.Int, data []byte) (*bind.TransactOpts, error) {
	if from == nil || from.Key == nil {
		return nil, fmt.Errorf("account has no private key: %w", domain.ErrNoAccounts)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(from.Key, new(big.Int).SetUint64(c.chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	opts.Context = ctx
	opts.Value = value
	if c.network.GasPrice != nil {
		opts.GasPrice = c.network.GasPrice
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from.Address,
		To:    to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, decodeError(contractABI, method, err)
	}
	opts.GasLimit = gas

	return opts, nil
}

// wait blocks until tx is mined and buried under the configured number of confirmations
func (c *Client) wait(ctx context.Context, tx *types.Transaction, from *models.Account, label string) (*models.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for %s: %w", tx.Hash().Hex(), err)
	}

	result := &models.Receipt{
		TxHash:            receipt.TxHash,
		From:              from.Address,
		To:                tx.To(),
		ContractAddress:   receipt.ContractAddress,
		BlockNumber:       receipt.BlockNumber.Uint64(),
		GasUsed:           receipt.GasUsed,
		EffectiveGasPrice: receipt.EffectiveGasPrice,
		Status:            receipt.Status,
	}
	if result.EffectiveGasPrice == nil {
		result.EffectiveGasPrice = tx.GasPrice()
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, &domain.RevertError{Method: label, Reason: fmt.Sprintf("transaction %s failed", receipt.TxHash.Hex())}
	}

	if err := c.waitConfirmations(ctx, result.BlockNumber); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) waitConfirmations(ctx context.Context, minedAt uint64) error {
	target := minedAt + c.confirmations - 1
	for {
		head, err := c.backend.BlockNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch block number: %w", err)
		}
		if head >= target {
			return nil
		}
		c.log.Debug("waiting for confirmations", "head", head, "target", target)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

var _ usecase.ChainClient = (*Client)(nil)
