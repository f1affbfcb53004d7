package render

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// LotteryRenderer renders lottery deployments and lifecycle actions
type LotteryRenderer struct {
	out io.Writer
}

// NewLotteryRenderer creates a new lottery renderer
func NewLotteryRenderer(out io.Writer) *LotteryRenderer {
	return &LotteryRenderer{out: out}
}

// RenderDeploy prints a LotteryToken or Lottery deployment
func (r *LotteryRenderer) RenderDeploy(result *usecase.LotteryDeployResult) error {
	networkHeader(r.out, result.Network)
	name := result.Instance.Contract.Name

	fmt.Fprintf(r.out, "Completed %s deployment\n", name)
	fmt.Fprintf(r.out, "%s contract deployed at %s\n", name, addr(result.Instance.Address))
	if result.PaymentToken != (common.Address{}) {
		fmt.Fprintf(r.out, "Payment token deployed at %s\n", addr(result.PaymentToken))
	}
	if result.Deployment != nil {
		fmt.Fprintf(r.out, "Recorded as %s\n", faintStyle.Sprint(result.Deployment.GetShortID()))
	}
	return nil
}

// RenderOpen prints the closing time chosen for the bets
func (r *LotteryRenderer) RenderOpen(result *usecase.LotteryActionResult) error {
	networkHeader(r.out, result.Network)
	fmt.Fprintf(r.out, "Bets are open on %s until %s\n", addr(result.Lottery.Address), formatTimestamp(result.ClosingTime))
	return nil
}

// RenderClose prints the outcome of closing the lottery
func (r *LotteryRenderer) RenderClose(result *usecase.LotteryActionResult) error {
	networkHeader(r.out, result.Network)
	if result.Advanced > 0 {
		fmt.Fprintf(r.out, "Advanced chain time by %d seconds\n", result.Advanced)
	}
	fmt.Fprintln(r.out, FormatSuccess("Lottery successfully closed!"))
	return nil
}

// RenderStatus prints the lottery state
func (r *LotteryRenderer) RenderStatus(result *usecase.LotteryStatusResult) error {
	networkHeader(r.out, result.Network)

	state := color.New(color.FgRed).Sprint("closed")
	if result.BetsOpen {
		state = color.New(color.FgGreen).Sprint("open")
	}

	fmt.Fprintf(r.out, "Lottery:       %s\n", addr(result.Lottery.Address))
	fmt.Fprintf(r.out, "Bets:          %s\n", state)
	fmt.Fprintf(r.out, "Closing time:  %s\n", formatTimestamp(result.ClosingTime))
	fmt.Fprintf(r.out, "Chain time:    %s\n", formatTimestamp(new(big.Int).SetUint64(result.Now)))
	fmt.Fprintf(r.out, "Payment token: %s\n", addr(result.PaymentToken))

	if result.BetsOpen && result.ClosingTime != nil && result.ClosingTime.Uint64() > result.Now {
		remaining := time.Duration(result.ClosingTime.Uint64()-result.Now) * time.Second
		fmt.Fprintf(r.out, "Closes in:     %s\n", remaining)
	}
	return nil
}

func formatTimestamp(ts *big.Int) string {
	if ts == nil || ts.Sign() == 0 {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", ts, time.Unix(ts.Int64(), 0).UTC().Format(time.RFC3339))
}
