package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects the semantic type a configuration value is coerced into.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindBigInt
	KindBigDecimal
	KindPath
	KindCores
	KindMemory
	KindDuration
)

var kindNames = map[Kind]string{
	KindString:     "string",
	KindBool:       "bool",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindBigInt:     "bigint",
	KindBigDecimal: "decimal",
	KindPath:       "path",
	KindCores:      "cores",
	KindMemory:     "memory",
	KindDuration:   "duration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Supported reports whether k belongs to the closed set of semantic types.
func (k Kind) Supported() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseKind maps a kind name such as "int32" or "memory" to its Kind.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
}

// KindNames returns the names accepted by ParseKind in declaration order.
func KindNames() []string {
	names := make([]string, 0, len(kindNames))
	for k := KindString; k <= KindDuration; k++ {
		names = append(names, kindNames[k])
	}
	return names
}

// Value is the closed set of Go types a configuration value can be read as.
type Value interface {
	string | bool | int16 | int32 | int64 | float32 | float64 |
		*big.Int | decimal.Decimal | Path | Cores | Memory | time.Duration
}

func kindOf[T Value]() Kind {
	var zero T
	switch any(zero).(type) {
	case string:
		return KindString
	case bool:
		return KindBool
	case int16:
		return KindInt16
	case int32:
		return KindInt32
	case int64:
		return KindInt64
	case float32:
		return KindFloat32
	case float64:
		return KindFloat64
	case *big.Int:
		return KindBigInt
	case decimal.Decimal:
		return KindBigDecimal
	case Path:
		return KindPath
	case Cores:
		return KindCores
	case Memory:
		return KindMemory
	case time.Duration:
		return KindDuration
	default:
		return KindInvalid
	}
}

// TypedValue is the result of a kind-selected lookup. Value always holds the
// Go type that corresponds to Kind.
type TypedValue struct {
	Kind  Kind
	Value any
}

func (v TypedValue) String() string {
	switch val := v.Value.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
