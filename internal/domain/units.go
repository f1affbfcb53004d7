package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// EtherDecimals is the number of decimals of ETH and of the ERC20 tokens handled here
const EtherDecimals = 18

// ParseUnits converts a decimal string into base units with the given number of decimals.
// "1.5" with 18 decimals yields 1500000000000000000.
func ParseUnits(value string, decimals int) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("invalid decimal value: empty")
	}

	negative := false
	if strings.HasPrefix(value, "-") {
		negative = true
		value = value[1:]
		if value == "" {
			return nil, errors.New("invalid decimal value: missing digits after sign")
		}
	}

	whole, fraction, hasDot := strings.Cut(value, ".")
	if hasDot && fraction == "" && whole == "" {
		return nil, fmt.Errorf("invalid decimal value: %q", value)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return nil, fmt.Errorf("invalid decimal value: %q", value)
	}

	fraction = strings.TrimRight(fraction, "0")
	if len(fraction) > decimals {
		return nil, fmt.Errorf("fractional component exceeds %d decimals: %q", decimals, value)
	}
	fraction += strings.Repeat("0", decimals-len(fraction))

	result, ok := new(big.Int).SetString(whole+fraction, 10)
	if !ok {
		return nil, fmt.Errorf("invalid decimal value: %q", value)
	}
	if negative {
		result.Neg(result)
	}
	return result, nil
}

// ParseEther converts an ETH amount expressed as a decimal string into wei
func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, EtherDecimals)
}

// ParseAmount parses an integer amount in base units. Decimal and 0x-prefixed hex
// are accepted, as are the unit suffixes "wei", "gwei" and "ether" ("1ether", "0.2 ether").
func ParseAmount(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	lower := strings.ToLower(value)

	for _, unit := range []struct {
		suffix   string
		decimals int
	}{
		{"gwei", 9},
		{"ether", EtherDecimals},
		{"wei", 0},
	} {
		if strings.HasSuffix(lower, unit.suffix) {
			return ParseUnits(strings.TrimSpace(value[:len(value)-len(unit.suffix)]), unit.decimals)
		}
	}

	if strings.HasPrefix(lower, "0x") {
		digits := value[2:]
		if digits == "" || !isHex(digits) {
			return nil, fmt.Errorf("invalid hex amount: %q", value)
		}
		v, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return nil, fmt.Errorf("invalid hex amount: %q", value)
		}
		return v, nil
	}

	if value == "" || !isDigits(strings.TrimPrefix(value, "-")) || value == "-" {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	v, _ := new(big.Int).SetString(value, 10)
	return v, nil
}

// MustParseEther is ParseEther for constants; it panics on malformed input
func MustParseEther(value string) *big.Int {
	v, err := ParseEther(value)
	if err != nil {
		panic(err)
	}
	return v
}

// FormatUnits renders base units as a decimal string. The result always has a
// fractional part: 10 ether formats as "10.0".
func FormatUnits(value *big.Int, decimals int) string {
	if value == nil {
		return "0.0"
	}

	sign := ""
	abs := new(big.Int).Set(value)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	digits := abs.String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}

	whole := digits[:len(digits)-decimals]
	fraction := strings.TrimRight(digits[len(digits)-decimals:], "0")
	if fraction == "" {
		fraction = "0"
	}

	return sign + whole + "." + fraction
}

// FormatEther renders wei as ETH
func FormatEther(value *big.Int) string {
	return FormatUnits(value, EtherDecimals)
}

// FormatPercentBasisPoints renders a basis point fee as a percentage with two decimals
func FormatPercentBasisPoints(bp uint64) string {
	return fmt.Sprintf("%d.%02d%%", bp/100, bp%100)
}

// FormatBytes32String encodes a short string as a null-terminated bytes32 value
func FormatBytes32String(text string) ([32]byte, error) {
	var out [32]byte
	raw := []byte(text)
	if len(raw) > 31 {
		return out, fmt.Errorf("bytes32 string must be less than 32 bytes: %q", text)
	}
	copy(out[:], raw)
	return out, nil
}

// FormatBytes32Strings encodes a list of strings with FormatBytes32String
func FormatBytes32Strings(texts []string) ([][32]byte, error) {
	out := make([][32]byte, 0, len(texts))
	for _, text := range texts {
		b, err := FormatBytes32String(text)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ParseBytes32String decodes a null-terminated bytes32 value into a string
func ParseBytes32String(b [32]byte) (string, error) {
	if b[31] != 0 {
		return "", errors.New("invalid bytes32 string - no null terminator")
	}
	length := 0
	for length < 31 && b[length] != 0 {
		length++
	}
	return string(b[:length]), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') && (r < 'A' || r > 'F') {
			return false
		}
	}
	return true
}
