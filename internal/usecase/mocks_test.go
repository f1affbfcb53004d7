package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// MockDeploymentRepository is a mock implementation of DeploymentRepository
type MockDeploymentRepository struct {
	mock.Mock
}

func (m *MockDeploymentRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetDeploymentByAddress(ctx context.Context, chainID uint64, address string) (*models.Deployment, error) {
	args := m.Called(ctx, chainID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) GetLatestDeployment(ctx context.Context, chainID uint64, contractName string) (*models.Deployment, error) {
	args := m.Called(ctx, chainID, contractName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Deployment), args.Error(1)
}

func (m *MockDeploymentRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	args := m.Called(ctx, deployment)
	return args.Error(0)
}

func (m *MockDeploymentRepository) DeleteDeployment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockArtifactRepository is a mock implementation of ArtifactRepository
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) Load(ctx context.Context, ref string) (*models.Contract, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *MockArtifactRepository) List(ctx context.Context) ([]*models.ContractInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContractInfo), args.Error(1)
}

// MockChainClient is a mock implementation of ChainClient. Variadic arguments
// are matched as a single []any.
type MockChainClient struct {
	mock.Mock
}

func (m *MockChainClient) ChainID() uint64 {
	return m.Called().Get(0).(uint64)
}

func (m *MockChainClient) BlockNumber(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) LatestTimestamp(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockChainClient) Balance(ctx context.Context, address common.Address) (*big.Int, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockChainClient) Deploy(ctx context.Context, from *models.Account, contract *models.Contract, value *big.Int, params ...any) (*models.ContractInstance, error) {
	args := m.Called(ctx, from, contract, value, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractInstance), args.Error(1)
}

func (m *MockChainClient) Transact(ctx context.Context, from *models.Account, target *models.ContractInstance, value *big.Int, method string, params ...any) (*models.Receipt, error) {
	args := m.Called(ctx, from, target, value, method, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockChainClient) Call(ctx context.Context, target *models.ContractInstance, method string, params ...any) ([]any, error) {
	args := m.Called(ctx, target, method, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

func (m *MockChainClient) IncreaseTime(ctx context.Context, seconds uint64) error {
	return m.Called(ctx, seconds).Error(0)
}

func (m *MockChainClient) Mine(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockChainClient) Close() {}

// staticDialer always hands out the same client
type staticDialer struct {
	client usecase.ChainClient
	err    error
}

func (d *staticDialer) Dial(context.Context) (usecase.ChainClient, error) {
	return d.client, d.err
}

type staticAccounts []*models.Account

func (a staticAccounts) Accounts(context.Context) ([]*models.Account, error) {
	return a, nil
}

type staticConfirmer struct {
	answer bool
	asked  int
}

func (c *staticConfirmer) Confirm(context.Context, string) (bool, error) {
	c.asked++
	return c.answer, nil
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) GetNetworks(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

func (m *MockNetworkResolver) ChainID(ctx context.Context, network *config.Network) (uint64, error) {
	args := m.Called(ctx, network)
	return args.Get(0).(uint64), args.Error(1)
}

// recordingSink collects progress output
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (s *recordingSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) { s.errors = append(s.errors, message) }

const testChainID uint64 = 31337

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAccounts(n int) []*models.Account {
	out := make([]*models.Account, n)
	for i := range out {
		out[i] = &models.Account{
			Index:   i,
			Address: common.BigToAddress(big.NewInt(int64(0x1000 + i))),
		}
	}
	return out
}

func devNetwork() *config.Network {
	return &config.Network{Name: "hardhat", RPCURL: "http://127.0.0.1:8545", Dev: true}
}

// harness wires a use case against mocks
type harness struct {
	cfg       *config.RuntimeConfig
	client    *MockChainClient
	artifacts *MockArtifactRepository
	repo      *MockDeploymentRepository
	sink      *recordingSink
	confirmer *staticConfirmer
	accounts  []*models.Account

	connector *usecase.Connector
	recorder  *usecase.DeploymentRecorder
	attacher  *usecase.ContractAttacher
}

func newHarness(t *testing.T, network *config.Network, accounts int) *harness {
	t.Helper()

	h := &harness{
		cfg:       &config.RuntimeConfig{Network: network, Confirmations: 1},
		client:    new(MockChainClient),
		artifacts: new(MockArtifactRepository),
		repo:      new(MockDeploymentRepository),
		sink:      &recordingSink{},
		confirmer: &staticConfirmer{answer: true},
		accounts:  testAccounts(accounts),
	}
	h.client.On("ChainID").Return(testChainID).Maybe()

	log := discardLogger()
	h.connector = usecase.NewConnector(h.cfg, &staticDialer{client: h.client}, staticAccounts(h.accounts), h.confirmer, h.sink, log)
	h.recorder = usecase.NewDeploymentRecorder(h.repo, log)
	h.attacher = usecase.NewContractAttacher(h.artifacts, h.repo)
	return h
}

// expectRecording lets every deployment be recorded under the default label
func (h *harness) expectRecording() {
	h.repo.On("GetDeployment", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Maybe()
	h.repo.On("SaveDeployment", mock.Anything, mock.Anything).Return(nil).Maybe()
}

// expectArtifact registers a contract under its bare name
func (h *harness) expectArtifact(t *testing.T, name, abiJSON string) *models.Contract {
	t.Helper()
	contract := &models.Contract{
		Name:         name,
		Source:       name + ".sol",
		ArtifactPath: "artifacts/contracts/" + name + ".sol/" + name + ".json",
	}
	if abiJSON != "" {
		parsed, err := abi.JSON(strings.NewReader(abiJSON))
		require.NoError(t, err)
		contract.ABI = parsed
	}
	h.artifacts.On("Load", mock.Anything, name).Return(contract, nil).Maybe()
	return contract
}

// expectDeploy makes the client deploy contract at address
func (h *harness) expectDeploy(contract *models.Contract, address common.Address, block uint64) *models.ContractInstance {
	instance := &models.ContractInstance{
		Contract: contract,
		Address:  address,
		Receipt: &models.Receipt{
			TxHash:          common.BigToHash(address.Big()),
			ContractAddress: address,
			BlockNumber:     block,
			GasUsed:         100000,
			Status:          1,
		},
	}
	h.client.On("Deploy", mock.Anything, mock.Anything, contract, mock.Anything, mock.Anything).Return(instance, nil).Once()
	return instance
}

func (h *harness) expectCall(method string, params any, out ...any) {
	h.client.On("Call", mock.Anything, mock.Anything, method, params).Return(out, nil).Once()
}

func (h *harness) expectTransact(from *models.Account, method string, params any) *models.Receipt {
	receipt := &models.Receipt{BlockNumber: 2, GasUsed: 50000, EffectiveGasPrice: big.NewInt(1_000_000_000), Status: 1}
	h.client.On("Transact", mock.Anything, from, mock.Anything, mock.Anything, method, params).Return(receipt, nil).Once()
	return receipt
}

func ether(s string) *big.Int {
	return domain.MustParseEther(s)
}
