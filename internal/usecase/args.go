package usecase

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/solscripts/internal/domain"
)

// ParseArgs converts command line strings into Go values matching the ABI arguments
func ParseArgs(inputs abi.Arguments, raw []string) ([]any, error) {
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("expected %d arguments (%s), got %d", len(inputs), describeArgs(inputs), len(raw))
	}

	values := make([]any, 0, len(raw))
	for i, input := range inputs {
		v, err := ParseArg(input.Type, raw[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseArg converts a single string into a value of the given ABI type
func ParseArg(t abi.Type, s string) (any, error) {
	s = strings.TrimSpace(s)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, s)
		}
		return common.HexToAddress(s), nil

	case abi.BoolTy:
		return strconv.ParseBool(s)

	case abi.StringTy:
		return s, nil

	case abi.UintTy, abi.IntTy:
		return parseInteger(t, s)

	case abi.FixedBytesTy:
		return parseFixedBytes(t, s)

	case abi.BytesTy:
		return hexutil.Decode(s)

	case abi.SliceTy, abi.ArrayTy:
		return parseList(t, s)

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

func parseInteger(t abi.Type, s string) (any, error) {
	v, err := domain.ParseAmount(s)
	if err != nil {
		return nil, err
	}
	if t.T == abi.UintTy && v.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s for unsigned type", v)
	}

	bits := v.BitLen()
	if t.T == abi.IntTy {
		if v.Sign() < 0 {
			// -2^(n-1) still fits in n bits
			bits = new(big.Int).Sub(new(big.Int).Neg(v), big.NewInt(1)).BitLen()
		}
		bits++ // sign bit
	}
	if bits > t.Size {
		return nil, fmt.Errorf("value %s overflows %s", v, t.String())
	}

	// Only 8/16/32/64 bit integers map to native Go types
	if t.GetType().Kind() == reflect.Ptr {
		return v, nil
	}

	out := reflect.New(t.GetType()).Elem()
	if t.T == abi.UintTy {
		out.SetUint(v.Uint64())
	} else {
		out.SetInt(v.Int64())
	}
	return out.Interface(), nil
}

func parseFixedBytes(t abi.Type, s string) (any, error) {
	var raw []byte
	if strings.HasPrefix(s, "0x") {
		decoded, err := hexutil.Decode(s)
		if err != nil {
			return nil, err
		}
		if len(decoded) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(decoded))
		}
		raw = decoded
	} else {
		if t.Size != 32 {
			return nil, fmt.Errorf("bytes%d values must be 0x-prefixed hex", t.Size)
		}
		b, err := domain.FormatBytes32String(s)
		if err != nil {
			return nil, err
		}
		raw = b[:]
	}

	out := reflect.New(t.GetType()).Elem()
	reflect.Copy(out, reflect.ValueOf(raw))
	return out.Interface(), nil
}

func parseList(t abi.Type, s string) (any, error) {
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	var items []string
	if strings.TrimSpace(s) != "" {
		items = lo.Map(strings.Split(s, ","), func(item string, _ int) string {
			return strings.TrimSpace(item)
		})
	}

	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
	}

	var out reflect.Value
	if t.T == abi.ArrayTy {
		out = reflect.New(t.GetType()).Elem()
	} else {
		out = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}

	for i, item := range items {
		v, err := ParseArg(*t.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.Index(i).Set(reflect.ValueOf(v))
	}
	return out.Interface(), nil
}

func describeArgs(inputs abi.Arguments) string {
	if len(inputs) == 0 {
		return "none"
	}
	return strings.Join(lo.Map(inputs, func(a abi.Argument, _ int) string {
		if a.Name == "" {
			return a.Type.String()
		}
		return a.Type.String() + " " + a.Name
	}), ", ")
}

// FormatValue renders a decoded ABI value for display
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case *big.Int:
		return val.String()
	case common.Address:
		return val.Hex()
	case [32]byte:
		if s, err := domain.ParseBytes32String(val); err == nil && s != "" && isPrintable(s) {
			return s
		}
		return hexutil.Encode(val[:])
	case []byte:
		return hexutil.Encode(val)
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = FormatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ",") + "]"
	case reflect.Struct:
		parts := make([]string, rv.NumField())
		for i := range parts {
			parts[i] = fmt.Sprintf("%s: %s", rv.Type().Field(i).Name, FormatValue(rv.Field(i).Interface()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprint(v)
}

// FormatValues renders a list of values
func FormatValues(values []any) []string {
	return lo.Map(values, func(v any, _ int) string { return FormatValue(v) })
}

func isPrintable(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
