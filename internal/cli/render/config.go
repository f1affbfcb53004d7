package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "❌ No %s file found\n", getRelativePath(result.ConfigPath))
		fmt.Fprintf(r.out, "⚠️  Without config, commands use the hardhat network unless --network is given\n")
		return nil
	}

	fmt.Fprintln(r.out, "📋 Current config:")

	if result.Config.Network != "" {
		fmt.Fprintf(r.out, "Network:       %s\n", result.Config.Network)
	} else {
		fmt.Fprintf(r.out, "Network:       %s\n", "(not set)")
	}
	if result.Config.Confirmations > 0 {
		fmt.Fprintf(r.out, "Confirmations: %d\n", result.Config.Confirmations)
	} else {
		fmt.Fprintf(r.out, "Confirmations: %s\n", "(not set)")
	}

	fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyNetwork:
		fmt.Fprintf(r.out, "✅ Removed network from config (defaults to hardhat)\n")
	case config.ConfigKeyConfirmations:
		fmt.Fprintf(r.out, "✅ Removed confirmations from config (defaults to 1)\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
