//go:build integration

package integration_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/domain/models"
)

var ballotProposals = []string{"Proposal 1", "Proposal 2", "Proposal 3"}

const (
	errAlreadyVoted  = "The voter already voted."
	errRightToVote   = "The voter already has right to vote."
	errOnlyChair     = "Only chairperson can give right to vote."
	errNoRightToVote = "Has no right to vote."
)

func deployBallot(t *testing.T) (*env, *models.ContractInstance) {
	e := newEnv(t)
	names, err := domain.FormatBytes32Strings(ballotProposals)
	require.NoError(t, err)
	return e, e.deploy(e.accounts[0], "Ballot", nil, names)
}

func bytes32Name(t *testing.T, v any) string {
	t.Helper()
	raw, ok := v.([32]byte)
	require.True(t, ok, "expected bytes32, got %T", v)
	name, err := domain.ParseBytes32String(raw)
	require.NoError(t, err)
	return name
}

func TestBallotDeployment(t *testing.T) {
	e, ballot := deployBallot(t)
	deployer := e.accounts[0]

	t.Run("has the provided proposals with zero votes", func(t *testing.T) {
		for i, want := range ballotProposals {
			out := e.call(ballot, "proposals", big.NewInt(int64(i)))
			require.Len(t, out, 2)
			assert.Equal(t, want, bytes32Name(t, out[0]))
			assert.Zero(t, out[1].(*big.Int).Sign())
		}
	})

	t.Run("sets the deployer as chairperson with weight 1", func(t *testing.T) {
		out := e.call(ballot, "chairperson")
		assert.Equal(t, deployer.Address, out[0].(common.Address))

		voter := e.call(ballot, "voters", deployer.Address)
		assert.Equal(t, int64(1), voter[0].(*big.Int).Int64())
	})

	t.Run("winner is proposal 0 before any votes", func(t *testing.T) {
		assert.Zero(t, e.callBig(ballot, "winningProposal").Sign())
		assert.Equal(t, ballotProposals[0], bytes32Name(t, e.call(ballot, "winnerName")[0]))
	})
}

func TestBallotGiveRightToVote(t *testing.T) {
	t.Run("gives right to vote", func(t *testing.T) {
		e, ballot := deployBallot(t)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[1].Address)

		voter := e.call(ballot, "voters", e.accounts[1].Address)
		assert.Equal(t, int64(1), voter[0].(*big.Int).Int64())
	})

	t.Run("rejects a voter that already voted", func(t *testing.T) {
		e, ballot := deployBallot(t)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[1].Address)
		e.send(e.accounts[1], ballot, nil, "vote", big.NewInt(0))

		assert.Equal(t, errAlreadyVoted, e.reverts(e.accounts[0], ballot, "giveRightToVote", e.accounts[1].Address))
	})

	t.Run("rejects a voter that already has the right", func(t *testing.T) {
		e, ballot := deployBallot(t)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[1].Address)

		assert.Equal(t, errRightToVote, e.reverts(e.accounts[0], ballot, "giveRightToVote", e.accounts[1].Address))
	})

	t.Run("only the chairperson may grant", func(t *testing.T) {
		e, ballot := deployBallot(t)

		assert.Equal(t, errOnlyChair, e.reverts(e.accounts[1], ballot, "giveRightToVote", e.accounts[2].Address))
	})
}

func TestBallotVoting(t *testing.T) {
	t.Run("registers the vote", func(t *testing.T) {
		e, ballot := deployBallot(t)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[1].Address)
		e.send(e.accounts[1], ballot, nil, "vote", big.NewInt(0))

		assert.Zero(t, e.callBig(ballot, "winningProposal").Sign())
		assert.Equal(t, ballotProposals[0], bytes32Name(t, e.call(ballot, "winnerName")[0]))
	})

	t.Run("rejects voters without the right", func(t *testing.T) {
		e, ballot := deployBallot(t)

		assert.Equal(t, errNoRightToVote, e.reverts(e.accounts[1], ballot, "vote", big.NewInt(0)))
	})

	t.Run("delegation transfers weight", func(t *testing.T) {
		e, ballot := deployBallot(t)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[1].Address)
		e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[2].Address)
		e.send(e.accounts[1], ballot, nil, "delegate", e.accounts[2].Address)

		voter := e.call(ballot, "voters", e.accounts[2].Address)
		assert.Equal(t, int64(2), voter[0].(*big.Int).Int64())
	})

	t.Run("strangers cannot delegate", func(t *testing.T) {
		e, ballot := deployBallot(t)

		e.reverts(e.accounts[1], ballot, "delegate", e.accounts[2].Address)
	})

	t.Run("majority wins after five votes", func(t *testing.T) {
		e, ballot := deployBallot(t)
		votes := []int64{1, 2, 1, 1, 0}
		for i := range votes {
			e.send(e.accounts[0], ballot, nil, "giveRightToVote", e.accounts[i+1].Address)
		}
		for i, proposal := range votes {
			e.send(e.accounts[i+1], ballot, nil, "vote", big.NewInt(proposal))
		}

		assert.Equal(t, int64(1), e.callBig(ballot, "winningProposal").Int64())
		assert.Equal(t, ballotProposals[1], bytes32Name(t, e.call(ballot, "winnerName")[0]))
	})
}
