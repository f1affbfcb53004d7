package usecase_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/solscripts/internal/domain"
	"github.com/trebuchet-org/solscripts/internal/usecase"
)

func abiType(t *testing.T, name string) abi.Type {
	t.Helper()
	typ, err := abi.NewType(name, "", nil)
	require.NoError(t, err)
	return typ
}

func TestParseArg(t *testing.T) {
	t.Run("address", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "address"), "0x5FbDB2315678afecb367f032d93F642f64180aa3")
		require.NoError(t, err)
		assert.Equal(t, tokenAddress, v)

		_, err = usecase.ParseArg(abiType(t, "address"), "0x5FbD")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})

	t.Run("bool and string", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "bool"), "true")
		require.NoError(t, err)
		assert.Equal(t, true, v)

		v, err = usecase.ParseArg(abiType(t, "string"), "Lottery Token")
		require.NoError(t, err)
		assert.Equal(t, "Lottery Token", v)
	})

	t.Run("uint256 accepts units", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "uint256"), "1ether")
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", v.(*big.Int).String())

		v, err = usecase.ParseArg(abiType(t, "uint256"), "0x10")
		require.NoError(t, err)
		assert.Equal(t, int64(16), v.(*big.Int).Int64())
	})

	t.Run("native integer widths", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "uint8"), "255")
		require.NoError(t, err)
		assert.Equal(t, uint8(255), v)

		v, err = usecase.ParseArg(abiType(t, "int64"), "-5")
		require.NoError(t, err)
		assert.Equal(t, int64(-5), v)

		v, err = usecase.ParseArg(abiType(t, "uint24"), "1000")
		require.NoError(t, err)
		assert.Equal(t, "1000", v.(*big.Int).String())
	})

	t.Run("integer bounds", func(t *testing.T) {
		_, err := usecase.ParseArg(abiType(t, "uint8"), "256")
		assert.Error(t, err)

		_, err = usecase.ParseArg(abiType(t, "uint256"), "-1")
		assert.Error(t, err)

		_, err = usecase.ParseArg(abiType(t, "int8"), "128")
		assert.Error(t, err)

		v, err := usecase.ParseArg(abiType(t, "int8"), "-128")
		require.NoError(t, err)
		assert.Equal(t, int8(-128), v)
	})

	t.Run("bytes32 from text or hex", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "bytes32"), "Proposal 1")
		require.NoError(t, err)
		name, err := domain.ParseBytes32String(v.([32]byte))
		require.NoError(t, err)
		assert.Equal(t, "Proposal 1", name)

		hex := "0x" + common.Bytes2Hex(common.LeftPadBytes([]byte{1}, 32))
		v, err = usecase.ParseArg(abiType(t, "bytes32"), hex)
		require.NoError(t, err)
		assert.Equal(t, byte(1), v.([32]byte)[31])

		_, err = usecase.ParseArg(abiType(t, "bytes4"), "text")
		assert.Error(t, err)
	})

	t.Run("bytes", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "bytes"), "0xdeadbeef")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, v)
	})

	t.Run("arrays", func(t *testing.T) {
		v, err := usecase.ParseArg(abiType(t, "bytes32[]"), "[Chocolate, Vanilla]")
		require.NoError(t, err)
		proposals := v.([][32]byte)
		require.Len(t, proposals, 2)
		second, err := domain.ParseBytes32String(proposals[1])
		require.NoError(t, err)
		assert.Equal(t, "Vanilla", second)

		v, err = usecase.ParseArg(abiType(t, "uint256[2]"), "1,2")
		require.NoError(t, err)
		pair := v.([2]*big.Int)
		assert.Equal(t, int64(2), pair[1].Int64())

		_, err = usecase.ParseArg(abiType(t, "uint256[2]"), "1,2,3")
		assert.Error(t, err)

		v, err = usecase.ParseArg(abiType(t, "address[]"), "[]")
		require.NoError(t, err)
		assert.Empty(t, v)
	})
}

func TestParseArgs(t *testing.T) {
	inputs := abi.Arguments{
		{Name: "name", Type: abiType(t, "string")},
		{Name: "ratio", Type: abiType(t, "uint256")},
	}

	values, err := usecase.ParseArgs(inputs, []string{"Lottery Token", "5"})
	require.NoError(t, err)
	assert.Equal(t, "Lottery Token", values[0])
	assert.Equal(t, int64(5), values[1].(*big.Int).Int64())

	_, err = usecase.ParseArgs(inputs, []string{"only one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 arguments (string name, uint256 ratio), got 1")

	_, err = usecase.ParseArgs(inputs, []string{"x", "five"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument ratio (uint256)")
}

func TestFormatValue(t *testing.T) {
	name, err := domain.FormatBytes32String("Chocolate")
	require.NoError(t, err)

	assert.Equal(t, "12", usecase.FormatValue(big.NewInt(12)))
	assert.Equal(t, tokenAddress.Hex(), usecase.FormatValue(tokenAddress))
	assert.Equal(t, "Chocolate", usecase.FormatValue(name))
	assert.Equal(t, "0x0102", usecase.FormatValue([]byte{1, 2}))
	assert.Equal(t, "true", usecase.FormatValue(true))
	assert.Equal(t, "[1,2]", usecase.FormatValue([]*big.Int{big.NewInt(1), big.NewInt(2)}))
	assert.Equal(t, "0x01020304", usecase.FormatValue([4]byte{1, 2, 3, 4}))

	var nonPrintable [32]byte
	nonPrintable[0] = 0x01
	assert.Equal(t, hexutil.Encode(nonPrintable[:]), usecase.FormatValue(nonPrintable))

	proposal := struct {
		Name      [32]byte
		VoteCount *big.Int
	}{Name: name, VoteCount: big.NewInt(3)}
	assert.Equal(t, "{Name: Chocolate, VoteCount: 3}", usecase.FormatValue(proposal))
}
