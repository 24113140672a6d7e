package blockchain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/safecoin-labs/safecoin-deploy/internal/domain/models"
)

// ParseABI parses an artifact ABI
func ParseABI(raw json.RawMessage) (abi.ABI, error) {
	if len(raw) == 0 {
		return abi.ABI{}, fmt.Errorf("artifact has no abi")
	}
	return abi.JSON(bytes.NewReader(raw))
}

// CoerceArgs converts constructor arguments to the Go types the ABI packer
// expects. Values that already have the exact type pass through; anything
// else is parsed from its string form.
func CoerceArgs(inputs abi.Arguments, args []any) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("constructor expects %d arguments (%s), got %d", len(inputs), signature(inputs), len(args))
	}

	out := make([]any, len(args))
	for i, input := range inputs {
		v, err := coerce(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		out[i] = v
	}
	return out, nil
}

// EncodeConstructorArgs ABI-encodes string arguments against the constructor
// and returns them as 0x-prefixed hex, the form block explorers expect.
func EncodeConstructorArgs(parsed abi.ABI, args []string) (string, error) {
	if len(parsed.Constructor.Inputs) == 0 && len(args) == 0 {
		return "0x", nil
	}

	values, err := CoerceArgs(parsed.Constructor.Inputs, models.StringArgs(args))
	if err != nil {
		return "", err
	}

	encoded, err := parsed.Constructor.Inputs.Pack(values...)
	if err != nil {
		return "", fmt.Errorf("failed to encode constructor args: %w", err)
	}
	return "0x" + common.Bytes2Hex(encoded), nil
}

func signature(inputs abi.Arguments) string {
	types := make([]string, len(inputs))
	for i, in := range inputs {
		types[i] = in.Type.String()
	}
	return strings.Join(types, ",")
}

func coerce(t abi.Type, arg any) (any, error) {
	if arg == nil {
		return nil, fmt.Errorf("missing value")
	}
	if reflect.TypeOf(arg) == t.GetType() {
		return arg, nil
	}

	switch t.T {
	case abi.IntTy, abi.UintTy:
		return coerceInteger(t, arg)

	case abi.AddressTy:
		s := strings.TrimSpace(models.StringifyArg(arg))
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return common.HexToAddress(s), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(strings.TrimSpace(models.StringifyArg(arg)))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", models.StringifyArg(arg))
		}
		return b, nil

	case abi.StringTy:
		return models.StringifyArg(arg), nil

	case abi.BytesTy:
		return decodeHex(arg)

	case abi.FixedBytesTy:
		b, err := decodeHex(arg)
		if err != nil {
			return nil, err
		}
		if len(b) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, want at most %d", len(b), t.Size)
		}
		fixed := reflect.New(t.GetType()).Elem()
		reflect.Copy(fixed, reflect.ValueOf(b))
		return fixed.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return coerceList(t, arg)

	default:
		return nil, fmt.Errorf("unsupported type %s", t.String())
	}
}

func coerceInteger(t abi.Type, arg any) (any, error) {
	s := strings.TrimSpace(models.StringifyArg(arg))
	n, ok := new(big.Int).SetString(strings.ReplaceAll(s, "_", ""), 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}

	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s for unsigned type", s)
		}
		if n.BitLen() > t.Size {
			return nil, fmt.Errorf("value %s overflows %s", s, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, fmt.Errorf("value %s overflows %s", s, t.String())
		}
	}

	goType := t.GetType()
	if goType == reflect.TypeOf(&big.Int{}) {
		return n, nil
	}

	v := reflect.New(goType).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}

func coerceList(t abi.Type, arg any) (any, error) {
	var items []any
	switch v := arg.(type) {
	case []any:
		items = v
	case []string:
		items = models.StringArgs(v)
	default:
		s := strings.TrimSpace(models.StringifyArg(arg))
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("expected a JSON array, got %q", s)
		}
	}

	if t.T == abi.ArrayTy && len(items) != t.Size {
		return nil, fmt.Errorf("expected %d elements, got %d", t.Size, len(items))
	}

	var list reflect.Value
	if t.T == abi.ArrayTy {
		list = reflect.New(t.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(t.GetType(), len(items), len(items))
	}
	for i, item := range items {
		elem, err := coerce(*t.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(elem))
	}
	return list.Interface(), nil
}

func decodeHex(arg any) ([]byte, error) {
	if b, ok := arg.([]byte); ok {
		return b, nil
	}
	s := strings.TrimSpace(models.StringifyArg(arg))
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex %q: %w", s, err)
	}
	return b, nil
}
