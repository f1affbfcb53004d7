package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/solscripts/internal/domain/config"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

// SelectorAdapter handles interactive prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// Confirm asks a yes/no question; declining is not an error
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.NonInteractive {
		return false, fmt.Errorf("cannot confirm %q in non-interactive mode, pass --yes", prompt)
	}

	p := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

// SelectContract picks one of several Source:Name matches
func (s *SelectorAdapter) SelectContract(ctx context.Context, matches []string, prompt string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no contracts provided for selection")
	case 1:
		return matches[0], nil
	}

	options := formatContractOptions(matches)
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(matches),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}
	return matches[index], nil
}

// formatContractOptions renders "Name (path/to/Source.sol)"
func formatContractOptions(matches []string) []string {
	options := make([]string, len(matches))
	for i, match := range matches {
		source, name, found := strings.Cut(match, ":")
		if !found {
			options[i] = color.New(color.FgWhite, color.Bold).Sprint(match)
			continue
		}
		options[i] = fmt.Sprintf("%s (%s)",
			color.New(color.FgWhite, color.Bold).Sprint(name),
			color.New(color.FgBlue).Sprint(strings.TrimPrefix(source, "contracts/")))
	}
	return options
}

// createFuzzySearchFunc matches against the plain match strings, not the colored options
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var (
	_ usecase.Confirmer        = (*SelectorAdapter)(nil)
	_ usecase.ContractSelector = (*SelectorAdapter)(nil)
)
