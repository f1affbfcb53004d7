package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks and whether they respond
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in solscripts.toml")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	for _, network := range result.Networks {
		marker := "  "
		if network.Name == result.Current {
			marker = color.New(color.FgGreen).Sprint("▸ ")
		}
		dev := ""
		if network.Dev {
			dev = faintStyle.Sprint(" [dev]")
		}

		if network.Error != nil {
			fmt.Fprintf(r.out, "%s❌ %s%s - Error: %v\n", marker, network.Name, dev, network.Error)
		} else {
			fmt.Fprintf(r.out, "%s✅ %s%s - Chain ID: %d\n", marker, network.Name, dev, network.ChainID)
		}
	}
	return nil
}

type networkJSON struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl,omitempty"`
	ChainID uint64 `json:"chainId,omitempty"`
	Dev     bool   `json:"dev"`
	Current bool   `json:"current"`
	Error   string `json:"error,omitempty"`
}

// RenderJSON lists the networks as JSON
func (r *NetworksRenderer) RenderJSON(result *usecase.ListNetworksResult) error {
	out := make([]networkJSON, 0, len(result.Networks))
	for _, n := range result.Networks {
		entry := networkJSON{
			Name:    n.Name,
			RPCURL:  n.RPCURL,
			ChainID: n.ChainID,
			Dev:     n.Dev,
			Current: n.Name == result.Current,
		}
		if n.Error != nil {
			entry.Error = n.Error.Error()
		}
		out = append(out, entry)
	}
	return RenderJSON(r.out, out)
}
