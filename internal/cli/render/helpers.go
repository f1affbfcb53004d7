package render

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	addressStyle = color.New(color.FgCyan)
	valueStyle   = color.New(color.FgYellow, color.Bold)
	headerStyle  = color.New(color.Bold, color.FgHiWhite)
	faintStyle   = color.New(color.Faint)
	titleCaser   = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	if len(message) > 0 {
		message = strings.ToUpper(message[:1]) + message[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// networkHeader prints the network a command ran against
func networkHeader(out io.Writer, network string) {
	if network == "" {
		return
	}
	fmt.Fprintf(out, "%s %s\n\n", headerStyle.Sprint("🌐 Network:"), titleCaser.String(network))
}

func addr(a common.Address) string {
	return addressStyle.Sprint(a.Hex())
}

func ether(v *big.Int) string {
	return valueStyle.Sprint(domain.FormatEther(v))
}

// getRelativePath returns the path relative to the working directory when possible
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
