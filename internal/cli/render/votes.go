package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solscripts/internal/domain/models"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// VotesRenderer renders the ERC20Votes and tokenized ballot walkthroughs
type VotesRenderer struct {
	out io.Writer
}

// NewVotesRenderer creates a new votes renderer
func NewVotesRenderer(out io.Writer) *VotesRenderer {
	return &VotesRenderer{out: out}
}

func (r *VotesRenderer) deployed(instance *models.ContractInstance) {
	fmt.Fprintf(r.out, "The contract was deployed at address %s at block %d\n",
		addr(instance.Address), blockOf(instance.Receipt))
}

// RenderERC20Votes prints the voting power observed at every step
func (r *VotesRenderer) RenderERC20Votes(result *usecase.ERC20VotesResult) error {
	networkHeader(r.out, result.Network)
	r.deployed(result.Token)

	var mintBlock uint64
	if len(result.MintReceipts) > 0 {
		mintBlock = blockOf(result.MintReceipts[0])
	}
	fmt.Fprintf(r.out, "Minted %s to the address %s at block %d\n", ether(result.MintValue), addr(result.Holder), mintBlock)
	fmt.Fprintf(r.out, "Account %s has %s MyTokens\n", addr(result.Holder), ether(result.HolderBalance))
	fmt.Fprintf(r.out, "Account %s has %s voting power before self delegating\n", addr(result.Holder), ether(result.HolderVotesBeforeDelegation))
	fmt.Fprintf(r.out, "Account %s has %s voting power after self delegating\n", addr(result.Holder), ether(result.HolderVotesAfterDelegation))
	fmt.Fprintf(r.out, "Transferred %s to %s\n", ether(result.TransferValue), addr(result.Recipient))
	fmt.Fprintf(r.out, "Account %s has %s voting power before self delegating\n", addr(result.Recipient), ether(result.RecipientVotesBefore))
	fmt.Fprintf(r.out, "Account %s has %s voting power after self delegating\n", addr(result.Recipient), ether(result.RecipientVotesAfter))
	fmt.Fprintf(r.out, "Account %s has %s voting power.\n", addr(result.Holder), ether(result.HolderVotesAfterTransfer))
	fmt.Fprintf(r.out, "Account %s has %s voting power after a second mint\n", addr(result.Holder), ether(result.HolderVotesAfterSecondMint))
	return nil
}

// RenderTokenizedBallot prints the token, proposals, delegation and vote
func (r *VotesRenderer) RenderTokenizedBallot(result *usecase.TokenizedBallotResult) error {
	networkHeader(r.out, result.Network)

	if result.TokenReused {
		fmt.Fprintf(r.out, "Using the token contract at %s\n\n", addr(result.Token.Address))
	} else {
		fmt.Fprintf(r.out, "The tokenContract address is %s\n\n", addr(result.Token.Address))
	}

	fmt.Fprintln(r.out, headerStyle.Sprint("Proposals:"))
	for i, name := range result.Proposals {
		fmt.Fprintf(r.out, "Proposal N. %d: %s\n", i+1, name)
	}

	fmt.Fprintf(r.out, "\nAccount %s has minted tokens,\nand the receipt hash is %s\n",
		addr(result.Voter), faintStyle.Sprint(hashOf(result.MintReceipt)))
	fmt.Fprintf(r.out, "Account %s has a balance of %s\n", addr(result.Voter), ether(result.VoterBalance))
	fmt.Fprintf(r.out, "After delegating votes account %s has %s\n", addr(result.Voter), ether(result.VoterVotes))

	fmt.Fprintf(r.out, "\nBlock Number %d\n\n", result.TargetBlock)
	fmt.Fprintf(r.out, "The address for the Token Ballot contract is %s\n", addr(result.Ballot.Address))
	fmt.Fprintf(r.out, "Voted for proposal %s with %s\n", result.Proposal, ether(result.Amount))
	fmt.Fprintf(r.out, "Voting power for %s is %s\n", addr(result.Voter), ether(result.VotingPower))
	return nil
}

// RenderDeployVotesToken prints the token deployment and the initial mint
func (r *VotesRenderer) RenderDeployVotesToken(result *usecase.DeployVotesTokenResult) error {
	networkHeader(r.out, result.Network)
	r.deployed(result.Token)
	fmt.Fprintf(r.out, "Minted %s to the address %s at block %d\n",
		valueStyle.Sprint(result.MintValue), addr(result.MintTo), blockOf(result.MintReceipt))
	return nil
}

func blockOf(receipt *models.Receipt) uint64 {
	if receipt == nil {
		return 0
	}
	return receipt.BlockNumber
}

func hashOf(receipt *models.Receipt) string {
	if receipt == nil {
		return ""
	}
	return receipt.TxHash.Hex()
}
