package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
	"gopkg.in/yaml.v3"
)

func init() {
	color.NoColor = true
}

func instance(name string, address string, block uint64) *models.ContractInstance {
	return &models.ContractInstance{
		Contract: &models.Contract{Name: name},
		Address:  common.HexToAddress(address),
		Receipt:  &models.Receipt{BlockNumber: block, GasUsed: 21000, EffectiveGasPrice: big.NewInt(1)},
	}
}

func TestFlashRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.FlashSwapResult{
		Minter:     instance("MyFlashMinter", "0x01", 1),
		Swap:       instance("MyFlashSwap", "0x02", 2),
		Faucet:     instance("MagicSwapFaucet", "0x03", 3),
		Fee:        1000,
		Amount:     domain.MustParseEther("10"),
		GasUsed:    81234,
		GasCost:    domain.MustParseEther("0.0001"),
		LendingFee: domain.MustParseEther("1"),
		Before: usecase.FlashBalances{
			TotalSupply: domain.MustParseEther("1000"),
			Swap:        big.NewInt(0),
			Faucet:      domain.MustParseEther("1000"),
		},
		After: usecase.FlashBalances{
			TotalSupply: domain.MustParseEther("1000"),
			Swap:        domain.MustParseEther("4"),
			Faucet:      domain.MustParseEther("995"),
		},
	}

	require.NoError(t, NewFlashRenderer(&buf).Render(result))
	out := buf.String()

	assert.Contains(t, out, "Flash Swap completed!\n\n81234 gas units spent (0.0001 ETH)\nPaid 1.0 tokens of lending fees (10.00%)")
	assert.Contains(t, out, "Current token balance inside the swap contract: 0.0")
	assert.Contains(t, out, "Current token balance inside the swap contract: 4.0")
	assert.NotContains(t, out, "Network:")
}

func TestVotesRenderer(t *testing.T) {
	var buf bytes.Buffer
	holder := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	result := &usecase.ERC20VotesResult{
		Network:                     "hardhat",
		Token:                       instance("MyERC20Votes", "0x5FbDB2315678afecb367f032d93F642f64180aa3", 1),
		Holder:                      holder,
		Recipient:                   common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906"),
		MintValue:                   domain.MustParseEther("10"),
		TransferValue:               domain.MustParseEther("2"),
		MintReceipts:                []*models.Receipt{{BlockNumber: 2}},
		HolderBalance:               domain.MustParseEther("10"),
		HolderVotesBeforeDelegation: big.NewInt(0),
		HolderVotesAfterDelegation:  domain.MustParseEther("10"),
		RecipientVotesBefore:        big.NewInt(0),
		RecipientVotesAfter:         domain.MustParseEther("2"),
		HolderVotesAfterTransfer:    domain.MustParseEther("8"),
		HolderVotesAfterSecondMint:  domain.MustParseEther("18"),
	}

	require.NoError(t, NewVotesRenderer(&buf).RenderERC20Votes(result))
	out := buf.String()

	assert.Contains(t, out, "🌐 Network: Hardhat")
	assert.Contains(t, out, "The contract was deployed at address 0x5FbDB2315678afecb367f032d93F642f64180aa3 at block 1")
	assert.Contains(t, out, "Minted 10.0 to the address "+holder.Hex()+" at block 2")
	assert.Contains(t, out, "Account "+holder.Hex()+" has 8.0 voting power.")
}

func TestDeploymentsRenderer(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &usecase.DeploymentListResult{
		Deployments: []*models.Deployment{
			{ID: "31337/Ballot:default", ChainID: 31337, Network: "hardhat", ContractName: "Ballot", Label: "default", Address: "0xaa", BlockNumber: 3, CreatedAt: created},
			{ID: "5/Lottery:default", ChainID: 5, Network: "goerli", ContractName: "Lottery", Label: "default", Address: "0xbb", BlockNumber: 9, CreatedAt: created},
		},
		Summary: usecase.DeploymentSummary{Total: 2},
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(result))
		out := buf.String()

		assert.Contains(t, out, "5 (goerli)")
		assert.Contains(t, out, "31337 (hardhat)")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("goerli")), bytes.Index(buf.Bytes(), []byte("hardhat")))
		assert.Contains(t, out, "Ballot:default")
		assert.Contains(t, out, "2024-03-01 12:00:00")
		assert.Contains(t, out, "Total deployments: 2")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).RenderYAML(result))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "Ballot", decoded[0]["contractName"])
		assert.Equal(t, 31337, decoded[0]["chainId"])
	})

	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDeploymentsRenderer(&buf).RenderDeploymentList(&usecase.DeploymentListResult{}))
		assert.Equal(t, "No deployments found\n", buf.String())
	})
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Current: "hardhat",
		Networks: []usecase.NetworkStatus{
			{Name: "hardhat", ChainID: 31337, Dev: true},
			{Name: "goerli", Error: errors.New("connection refused")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf).RenderNetworksList(result))
	assert.Contains(t, buf.String(), "▸ ✅ hardhat [dev] - Chain ID: 31337")
	assert.Contains(t, buf.String(), "  ❌ goerli - Error: connection refused")

	buf.Reset()
	require.NoError(t, NewNetworksRenderer(&buf).RenderJSON(result))
	assert.Contains(t, buf.String(), `"error": "connection refused"`)
	assert.Contains(t, buf.String(), `"current": true`)
}

func TestLotteryRenderer(t *testing.T) {
	var buf bytes.Buffer
	result := &usecase.LotteryDeployResult{
		Network:      "hardhat",
		Instance:     instance("Lottery", "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0", 4),
		PaymentToken: common.HexToAddress("0xCafac3dD18aC6c6e92c921884f9E4176737C052c"),
	}
	require.NoError(t, NewLotteryRenderer(&buf).RenderDeploy(result))
	assert.Contains(t, buf.String(), "Completed Lottery deployment\nLottery contract deployed at 0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	assert.Contains(t, buf.String(), "Payment token deployed at 0xCafac3dD18aC6c6e92c921884f9E4176737C052c")

	assert.Equal(t, "-", formatTimestamp(nil))
	assert.Equal(t, "1700000000 (2023-11-14T22:13:20Z)", formatTimestamp(big.NewInt(1700000000)))
}
