package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when no artifact matches a contract reference
	ErrContractNotFound = errors.New("contract not found")

	// ErrNotDeployable is returned for artifacts without creation bytecode (interfaces, abstract contracts)
	ErrNotDeployable = errors.New("artifact has no creation bytecode")

	// ErrUnlinkedLibrary is returned when creation bytecode still contains library placeholders
	ErrUnlinkedLibrary = errors.New("bytecode references unlinked libraries")

	// ErrNoAccounts is returned when a network has no usable signer
	ErrNoAccounts = errors.New("no accounts configured for network")

	// ErrInsufficientFunds is returned when the signer cannot pay for gas
	ErrInsufficientFunds = errors.New("not enough ETH to pay for gas fees")

	// ErrNetworkMismatch is returned when the node reports a different chain ID than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrDevNetworkOnly is returned when a dev-node RPC is requested on a live network
	ErrDevNetworkOnly = errors.New("operation only available on a development network")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrCancelled is returned when the user declines a confirmation prompt
	ErrCancelled = errors.New("cancelled by user")
)

// RevertError is returned when a transaction or call reverts
type RevertError struct {
	Method string
	Reason string
	Data   []byte
}

func (e *RevertError) Error() string {
	target := "execution"
	if e.Method != "" {
		target = e.Method
	}
	if e.Reason == "" {
		return fmt.Sprintf("%s reverted without a reason", target)
	}
	return fmt.Sprintf("%s reverted: %s", target, e.Reason)
}

// RevertReason extracts the revert reason from an error chain
func RevertReason(err error) (string, bool) {
	var revert *RevertError
	if errors.As(err, &revert) {
		return revert.Reason, true
	}
	return "", false
}

// AmbiguousContractErr is returned when a contract name matches several artifacts
type AmbiguousContractErr struct {
	Query   string
	Matches []string
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]string, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Strings(sorted)

	var suggestions []string
	for _, match := range sorted {
		suggestions = append(suggestions, "  - "+match)
	}

	return fmt.Sprintf("multiple contracts found matching %q - use Source.sol:Name format to disambiguate:\n%s",
		e.Query, strings.Join(suggestions, "\n"))
}

// ContractNotFoundErr wraps ErrContractNotFound with close matches
type ContractNotFoundErr struct {
	Query       string
	Suggestions []string
}

func (e ContractNotFoundErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %s", ErrContractNotFound, e.Query)
	}
	return fmt.Sprintf("%s: %s (did you mean %s?)", ErrContractNotFound, e.Query, strings.Join(e.Suggestions, ", "))
}

func (e ContractNotFoundErr) Unwrap() error {
	return ErrContractNotFound
}
