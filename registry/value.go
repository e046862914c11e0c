package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/c360/seqstreams/errors"
)

// ValueKind is the element type chosen when a named sequence is created.
type ValueKind int

const (
	// ValueInt stores int64 elements
	ValueInt ValueKind = iota
	// ValueDouble stores float64 elements
	ValueDouble
)

// String returns "int" or "double".
func (k ValueKind) String() string {
	switch k {
	case ValueInt:
		return "int"
	case ValueDouble:
		return "double"
	default:
		return fmt.Sprintf("value_kind(%d)", int(k))
	}
}

// ParseValueKind accepts "int" or "double"; "integer" and "float" are aliases.
func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "int", "integer":
		return ValueInt, nil
	case "double", "float":
		return ValueDouble, nil
	default:
		return 0, errors.InvalidArgument("Registry", "ParseValueKind", fmt.Sprintf("unknown value kind %q", s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ValueKind) UnmarshalText(text []byte) error {
	parsed, err := ParseValueKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Value is a single element passed into or read out of the registry.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
}

// IntValue wraps an int64.
func IntValue(v int64) Value {
	return Value{kind: ValueInt, i: v}
}

// DoubleValue wraps a float64.
func DoubleValue(v float64) Value {
	return Value{kind: ValueDouble, f: v}
}

// Kind returns the kind of the wrapped number.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Int returns the value as int64, truncating doubles.
func (v Value) Int() int64 {
	if v.kind == ValueDouble {
		return int64(v.f)
	}
	return v.i
}

// Float returns the value as float64.
func (v Value) Float() float64 {
	if v.kind == ValueInt {
		return float64(v.i)
	}
	return v.f
}

// String formats ints in base 10 and doubles in their shortest form.
func (v Value) String() string {
	if v.kind == ValueDouble {
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return strconv.FormatInt(v.i, 10)
}

// ParseValue converts text into a Value of the given kind.
func ParseValue(kind ValueKind, text string) (Value, error) {
	text = strings.TrimSpace(text)
	switch kind {
	case ValueInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, errors.WrapInvalid(errors.ErrParsingFailed, "Registry", "ParseValue",
				fmt.Sprintf("parse %q as int", text))
		}
		return IntValue(n), nil
	case ValueDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, errors.WrapInvalid(errors.ErrParsingFailed, "Registry", "ParseValue",
				fmt.Sprintf("parse %q as double", text))
		}
		return DoubleValue(f), nil
	default:
		return Value{}, errors.InvalidArgument("Registry", "ParseValue", fmt.Sprintf("unknown value kind %s", kind))
	}
}

type number interface {
	~int64 | ~float64
}

// unwrap converts v into the element type of a sequence of kind want.
// Ints widen into double sequences; doubles never narrow into int sequences.
func unwrap[T number](v Value, want ValueKind) (T, error) {
	switch {
	case v.kind == want && want == ValueInt:
		return T(v.i), nil
	case v.kind == want:
		return T(v.f), nil
	case v.kind == ValueInt && want == ValueDouble:
		return T(float64(v.i)), nil
	default:
		return 0, errors.WrapInvalid(errors.ErrTypeMismatch, "Registry", "unwrap",
			fmt.Sprintf("%s value into %s sequence", v.kind, want))
	}
}

func wrap[T number](x T, kind ValueKind) Value {
	if kind == ValueInt {
		return IntValue(int64(x))
	}
	return DoubleValue(float64(x))
}
