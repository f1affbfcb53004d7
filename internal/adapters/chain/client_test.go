package chain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

// answerCode deploys a contract whose runtime returns 42 for any call
const answerCode = "0x600a600c600039600a6000f3" + "602a60005260206000f3"

// revertCode deploys a contract that reverts every call with Error("nope")
const revertCode = "0x607060" + "0c60003960706000f3" +
	"6064600c60003960646000fd" +
	"08c379a0" +
	"0000000000000000000000000000000000000000000000000000000000000020" +
	"0000000000000000000000000000000000000000000000000000000000000004" +
	"6e6f706500000000000000000000000000000000000000000000000000000000"

const answerABI = `[
	{"type":"constructor","stateMutability":"payable","inputs":[]},
	{"type":"function","name":"answer","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"poke","stateMutability":"payable","inputs":[],"outputs":[]}
]`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContract(t *testing.T, name, code string) *models.Contract {
	t.Helper()
	parsed, err := abi.JSON(strings.NewReader(answerABI))
	require.NoError(t, err)
	return &models.Contract{Name: name, Source: name + ".sol", ABI: parsed, Bytecode: hexutil.MustDecode(code)}
}

type simulatedChain struct {
	backend *simulated.Backend
	client  *Client
	account *models.Account
}

func newSimulatedChain(t *testing.T) *simulatedChain {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey)

	funds := new(big.Int).Mul(big.NewInt(100), big.NewInt(1e18))
	backend := simulated.NewBackend(types.GenesisAlloc{address: {Balance: funds}})
	t.Cleanup(func() { _ = backend.Close() })

	chainID, err := backend.Client().ChainID(context.Background())
	require.NoError(t, err)

	// mine continuously so WaitMined finds the receipt
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				backend.Commit()
			}
		}
	}()
	t.Cleanup(func() { close(done) })

	network := &config.Network{Name: "simulated", Dev: true}
	client := NewClient(backend.Client(), chainID.Uint64(), network, 1, discardLogger())
	client.pollInterval = 20 * time.Millisecond

	return &simulatedChain{
		backend: backend,
		client:  client,
		account: &models.Account{Address: address, Key: key},
	}
}

func TestClientDeployAndCall(t *testing.T) {
	ctx := context.Background()
	sim := newSimulatedChain(t)
	contract := testContract(t, "Answer", answerCode)

	before, err := sim.client.Balance(ctx, sim.account.Address)
	require.NoError(t, err)

	value := big.NewInt(1e18)
	instance, err := sim.client.Deploy(ctx, sim.account, contract, value)
	require.NoError(t, err)
	require.NotNil(t, instance.Receipt)
	assert.NotEqual(t, common.Address{}, instance.Address)
	assert.Equal(t, instance.Address, instance.Receipt.ContractAddress)
	assert.Equal(t, uint64(1), instance.Receipt.Status)
	assert.Equal(t, sim.account.Address, instance.Receipt.From)
	assert.NotZero(t, instance.Receipt.GasUsed)

	held, err := sim.client.Balance(ctx, instance.Address)
	require.NoError(t, err)
	assert.Equal(t, 0, held.Cmp(value))

	after, err := sim.client.Balance(ctx, sim.account.Address)
	require.NoError(t, err)
	spent := new(big.Int).Add(value, instance.Receipt.GasCost())
	assert.Equal(t, 0, new(big.Int).Sub(before, after).Cmp(spent), "balance drops by value plus gas")

	out, err := sim.client.Call(ctx, instance, "answer")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].(*big.Int).Cmp(big.NewInt(42)))

	receipt, err := sim.client.Transact(ctx, sim.account, instance, big.NewInt(5), "poke")
	require.NoError(t, err)
	assert.Equal(t, &instance.Address, receipt.To)
	assert.Greater(t, receipt.BlockNumber, instance.Receipt.BlockNumber)

	block, err := sim.client.BlockNumber(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, block, receipt.BlockNumber)

	ts, err := sim.client.LatestTimestamp(ctx)
	require.NoError(t, err)
	assert.NotZero(t, ts)
}

func TestClientRevert(t *testing.T) {
	ctx := context.Background()
	sim := newSimulatedChain(t)

	instance, err := sim.client.Deploy(ctx, sim.account, testContract(t, "Reverter", revertCode), nil)
	require.NoError(t, err)

	_, err = sim.client.Transact(ctx, sim.account, instance, nil, "poke")
	reason, ok := domain.RevertReason(err)
	require.True(t, ok, "expected a revert, got %v", err)
	assert.Equal(t, "nope", reason)

	_, err = sim.client.Call(ctx, instance, "answer")
	reason, ok = domain.RevertReason(err)
	require.True(t, ok, "expected a revert, got %v", err)
	assert.Equal(t, "nope", reason)
}

func TestClientWithoutKey(t *testing.T) {
	sim := newSimulatedChain(t)
	_, err := sim.client.Deploy(context.Background(), &models.Account{Address: sim.account.Address}, testContract(t, "Answer", answerCode), nil)
	assert.ErrorIs(t, err, domain.ErrNoAccounts)
}

type recordingCaller struct {
	methods []string
	params  [][]any
	err     error
}

func (r *recordingCaller) CallContext(_ context.Context, _ any, method string, args ...any) error {
	r.methods = append(r.methods, method)
	r.params = append(r.params, args)
	return r.err
}

func TestDevHelpers(t *testing.T) {
	ctx := context.Background()

	t.Run("dev network", func(t *testing.T) {
		caller := &recordingCaller{}
		client := NewClient(nil, 31337, &config.Network{Name: "hardhat", Dev: true}, 1, discardLogger())
		client.raw = caller

		require.NoError(t, client.IncreaseTime(ctx, 3601))
		require.NoError(t, client.Mine(ctx))
		assert.Equal(t, []string{"evm_increaseTime", "evm_mine"}, caller.methods)
		assert.Equal(t, []any{uint64(3601)}, caller.params[0])
	})

	t.Run("live network", func(t *testing.T) {
		caller := &recordingCaller{}
		client := NewClient(nil, 5, &config.Network{Name: "goerli"}, 1, discardLogger())
		client.raw = caller

		assert.ErrorIs(t, client.IncreaseTime(ctx, 10), domain.ErrDevNetworkOnly)
		assert.ErrorIs(t, client.Mine(ctx), domain.ErrDevNetworkOnly)
		assert.Empty(t, caller.methods)
	})

	t.Run("rpc failure", func(t *testing.T) {
		client := NewClient(nil, 31337, &config.Network{Name: "hardhat", Dev: true}, 1, discardLogger())
		client.raw = &recordingCaller{err: errors.New("method not found")}
		assert.ErrorContains(t, client.Mine(ctx), "evm_mine failed")
	})
}

func newChainIDServer(t *testing.T, chainID string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"` + chainID + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDialer(t *testing.T) {
	ctx := context.Background()

	t.Run("reports chain id", func(t *testing.T) {
		server := newChainIDServer(t, "0x7a69")
		cfg := &config.RuntimeConfig{Network: &config.Network{Name: "hardhat", RPCURL: server.URL, Dev: true}}

		client, err := NewDialer(cfg, discardLogger()).Dial(ctx)
		require.NoError(t, err)
		defer client.Close()
		assert.Equal(t, uint64(31337), client.ChainID())
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		server := newChainIDServer(t, "0x1")
		cfg := &config.RuntimeConfig{Network: &config.Network{Name: "goerli", RPCURL: server.URL, ChainID: 5}}

		_, err := NewDialer(cfg, discardLogger()).Dial(ctx)
		assert.ErrorIs(t, err, domain.ErrNetworkMismatch)
		assert.ErrorContains(t, err, "goerli expects chain 5 but the node reports 1")
	})

	t.Run("unreachable", func(t *testing.T) {
		cfg := &config.RuntimeConfig{
			Network: &config.Network{Name: "hardhat", RPCURL: "http://127.0.0.1:1"},
			Timeout: 2 * time.Second,
		}
		_, err := NewDialer(cfg, discardLogger()).Dial(ctx)
		assert.ErrorContains(t, err, "failed to connect to hardhat")
	})
}
