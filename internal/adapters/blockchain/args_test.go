package blockchain

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[{"type":"constructor","inputs":[
	{"name":"name","type":"string"},
	{"name":"symbol","type":"string"},
	{"name":"initialSupply","type":"uint256"}
],"stateMutability":"nonpayable"}]`

func TestCoerceArgs(t *testing.T) {
	parsed, err := ParseABI(json.RawMessage(tokenABI))
	require.NoError(t, err)
	inputs := parsed.Constructor.Inputs

	t.Run("strings become abi types", func(t *testing.T) {
		out, err := CoerceArgs(inputs, []any{"Safe Coin", "SAFE", "100000000"})
		require.NoError(t, err)
		assert.Equal(t, "Safe Coin", out[0])
		assert.Equal(t, "SAFE", out[1])
		assert.Equal(t, big.NewInt(100000000), out[2])
	})

	t.Run("go integers are accepted", func(t *testing.T) {
		out, err := CoerceArgs(inputs, []any{"Safe Coin", "SAFE", 100000000})
		require.NoError(t, err)
		assert.Equal(t, 0, big.NewInt(100000000).Cmp(out[2].(*big.Int)))
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		_, err := CoerceArgs(inputs, []any{"Safe Coin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expects 3 arguments (string,string,uint256), got 1")
	})

	t.Run("invalid integer names the argument", func(t *testing.T) {
		_, err := CoerceArgs(inputs, []any{"Safe Coin", "SAFE", "lots"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "initialSupply")
	})
}

func TestCoerceTypes(t *testing.T) {
	const typesABI = `[{"type":"constructor","inputs":[
		{"name":"owner","type":"address"},
		{"name":"enabled","type":"bool"},
		{"name":"decimals","type":"uint8"},
		{"name":"offset","type":"int64"},
		{"name":"salt","type":"bytes32"},
		{"name":"data","type":"bytes"},
		{"name":"holders","type":"address[]"},
		{"name":"weights","type":"uint256[2]"}
	]}]`
	parsed, err := ParseABI(json.RawMessage(typesABI))
	require.NoError(t, err)

	out, err := CoerceArgs(parsed.Constructor.Inputs, []any{
		"0x2205183B44ec598dAc52589D0336FD1E332c9f07",
		"true",
		"18",
		"-5",
		"0x01",
		"0xdeadbeef",
		`["0x2205183B44ec598dAc52589D0336FD1E332c9f07"]`,
		`["1", "2"]`,
	})
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress("0x2205183B44ec598dAc52589D0336FD1E332c9f07"), out[0])
	assert.Equal(t, true, out[1])
	assert.Equal(t, uint8(18), out[2])
	assert.Equal(t, int64(-5), out[3])
	var salt [32]byte
	salt[0] = 1
	assert.Equal(t, salt, out[4])
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, out[5])
	assert.Equal(t, []common.Address{common.HexToAddress("0x2205183B44ec598dAc52589D0336FD1E332c9f07")}, out[6])
	assert.Equal(t, [2]*big.Int{big.NewInt(1), big.NewInt(2)}, out[7])

	// The packer accepts everything coerce produced
	_, err = parsed.Constructor.Inputs.Pack(out...)
	assert.NoError(t, err)
}

func TestCoerceRejects(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		value any
		want  string
	}{
		{"uint overflow", "uint8", "256", "overflows"},
		{"negative uint", "uint256", "-1", "negative"},
		{"int overflow", "int8", "128", "overflows"},
		{"bad address", "address", "0x1234", "invalid address"},
		{"bad bool", "bool", "maybe", "invalid bool"},
		{"fixed bytes too long", "bytes2", "0x010203", "at most 2"},
		{"bad hex", "bytes", "0xzz", "invalid hex"},
		{"array size", "uint256[2]", `["1"]`, "expected 2 elements"},
		{"not a list", "uint256[]", "1,2", "JSON array"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `[{"type":"constructor","inputs":[{"name":"v","type":"` + tt.typ + `"}]}]`
			parsed, err := ParseABI(json.RawMessage(raw))
			require.NoError(t, err)

			_, err = CoerceArgs(parsed.Constructor.Inputs, []any{tt.value})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEncodeConstructorArgs(t *testing.T) {
	t.Run("no constructor", func(t *testing.T) {
		parsed, err := ParseABI(json.RawMessage(`[]`))
		require.NoError(t, err)

		encoded, err := EncodeConstructorArgs(parsed, nil)
		require.NoError(t, err)
		assert.Equal(t, "0x", encoded)
	})

	t.Run("single uint", func(t *testing.T) {
		parsed, err := ParseABI(json.RawMessage(`[{"type":"constructor","inputs":[{"name":"v","type":"uint256"}]}]`))
		require.NoError(t, err)

		encoded, err := EncodeConstructorArgs(parsed, []string{"100000000"})
		require.NoError(t, err)
		assert.Equal(t, "0x"+common.Bytes2Hex(common.LeftPadBytes(big.NewInt(100000000).Bytes(), 32)), encoded)
	})

	t.Run("token constructor", func(t *testing.T) {
		parsed, err := ParseABI(json.RawMessage(tokenABI))
		require.NoError(t, err)

		encoded, err := EncodeConstructorArgs(parsed, []string{"Safe Coin", "SAFE", "100000000"})
		require.NoError(t, err)
		// three head words plus two (length, data) tails
		assert.Len(t, encoded, 2+7*64)
	})

	t.Run("missing abi", func(t *testing.T) {
		_, err := ParseABI(nil)
		assert.Error(t, err)
	})
}
