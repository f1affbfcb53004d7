package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// FlashRenderer renders the flash swap walkthrough
type FlashRenderer struct {
	out io.Writer
}

// NewFlashRenderer creates a new flash swap renderer
func NewFlashRenderer(out io.Writer) *FlashRenderer {
	return &FlashRenderer{out: out}
}

// Render prints deployments, balances before and after, and the swap cost
func (r *FlashRenderer) Render(result *usecase.FlashSwapResult) error {
	networkHeader(r.out, result.Network)

	fmt.Fprintf(r.out, "FlashMint ERC20 contract deployed at %s\n", addr(result.Minter.Address))
	fmt.Fprintf(r.out, "FlashSwap contract deployed at %s\n", addr(result.Swap.Address))
	fmt.Fprintf(r.out, "Magic Swap Faucet contract deployed at %s\n\n", addr(result.Faucet.Address))

	r.balances(result.Before)

	fmt.Fprintf(r.out, "Flash Swap completed!\n\n")
	fmt.Fprintf(r.out, "%d gas units spent (%s ETH)\n", result.GasUsed, ether(result.GasCost))
	fmt.Fprintf(r.out, "Paid %s tokens of lending fees (%s)\n\n",
		valueStyle.Sprint(domain.FormatEther(result.LendingFee)), result.FeePercent())

	r.balances(result.After)
	return nil
}

func (r *FlashRenderer) balances(b usecase.FlashBalances) {
	fmt.Fprintf(r.out, "Total supply of tokens: %s\n", ether(b.TotalSupply))
	fmt.Fprintf(r.out, "Current token balance inside the swap contract: %s\n", ether(b.Swap))
	fmt.Fprintf(r.out, "Current token balance inside the magic swap faucet contract: %s\n\n", ether(b.Faucet))
}

var _ Renderer[*usecase.FlashSwapResult] = (*FlashRenderer)(nil)
