// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"cmp"
	"math"
	"strconv"
	"strings"
)

const (
	// KindInvalid is the kind of the zero Number. It is never a scalar.
	KindInvalid Kind = iota
	// KindInt is a signed 64-bit integer.
	KindInt
	// KindFloat is a finite 64-bit floating-point number.
	KindFloat
)

// Floats whose magnitude falls outside [expLow, expHigh) are rendered in
// exponent notation.
const (
	expLow  = 1e-4
	expHigh = 1e16
)

// twoTo63 is the smallest float64 above math.MaxInt64.
const twoTo63 = 1 << 63

type (
	// Kind identifies the variant held by a Number.
	Kind uint8

	// Number is a numeric leaf value: either an integer or a floating-point number.
	// The zero value has KindInvalid and is rejected everywhere a scalar is required.
	Number struct {
		kind Kind
		i    int64
		f    float64
	}
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Int returns an integer Number.
func Int(v int64) Number { return Number{kind: KindInt, i: v} }

// Float returns a floating-point Number. Non-finite values produce a Number
// that reports IsScalar() == false.
func Float(v float64) Number { return Number{kind: KindFloat, f: v} }

// Kind returns the variant held by n.
func (n Number) Kind() Kind { return n.kind }

// IsScalar reports whether n is an integer or a finite float.
func (n Number) IsScalar() bool {
	switch n.kind {
	case KindInt:
		return true
	case KindFloat:
		return !math.IsNaN(n.f) && !math.IsInf(n.f, 0)
	default:
		return false
	}
}

// Float64 returns n converted to float64. Integers beyond 2^53 lose precision.
func (n Number) Float64() float64 {
	if n.kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// Int64 returns the integer held by n. The boolean is false when n is not KindInt.
func (n Number) Int64() (int64, bool) {
	if n.kind != KindInt {
		return 0, false
	}
	return n.i, true
}

// Equal reports whether n and o hold the same kind and the same value.
// Int(1) and Float(1) are not equal: the kind is part of a scalar's identity
// because it determines the rendered text.
func (n Number) Equal(o Number) bool {
	if n.kind != o.kind {
		return false
	}
	if n.kind == KindInt {
		return n.i == o.i
	}
	return n.f == o.f
}

// Compare orders n and o numerically, ignoring kind. It returns -1, 0 or +1.
// Mixed int and float operands are compared exactly, without rounding the
// integer to float64.
func (n Number) Compare(o Number) int {
	switch {
	case n.kind == KindInt && o.kind == KindInt:
		return cmp.Compare(n.i, o.i)
	case n.kind == KindInt:
		return compareIntFloat(n.i, o.f)
	case o.kind == KindInt:
		return -compareIntFloat(o.i, n.f)
	default:
		return cmp.Compare(n.f, o.f)
	}
}

// compareIntFloat orders i against the finite float f. The integral part of f
// is compared in int64 and the fraction breaks ties.
func compareIntFloat(i int64, f float64) int {
	if f >= twoTo63 {
		return -1
	}
	if f < -twoTo63 {
		return 1
	}
	t := math.Trunc(f)
	if c := cmp.Compare(i, int64(t)); c != 0 {
		return c
	}
	return cmp.Compare(t, f)
}

// String returns the canonical text form of n.
func (n Number) String() string { return Format(n) }

// Format renders n in canonical text form: integers in plain decimal, floats as
// the shortest decimal that parses back to the same value. Floats always carry a
// fractional point or an exponent so that ParseText restores KindFloat.
func Format(n Number) string {
	switch n.kind {
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		return formatFloat(n.f)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	abs := math.Abs(f)
	if abs != 0 && (abs < expLow || abs >= expHigh) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseText converts a raw text token into a Number. Surrounding whitespace is
// ignored. Only decimal literals are accepted: hex floats, digit separators and
// inf/nan spellings are rejected. Tokens that parse as a base-10 int64 become
// KindInt; any other valid literal becomes KindFloat. Empty, malformed and
// non-finite tokens return a *SyntaxError wrapping ErrNotScalar.
func ParseText(text string) (Number, error) {
	s := strings.TrimSpace(text)
	if s == "" || !isDecimalLiteral(s) {
		return Number{}, &SyntaxError{Text: text}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Number{}, &SyntaxError{Text: text, Err: err}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, &SyntaxError{Text: text}
	}
	return Float(f), nil
}

// isDecimalLiteral reports whether s uses only the characters of a decimal
// number: digits, sign, point and exponent marker.
func isDecimalLiteral(s string) bool {
	return !strings.ContainsFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && !strings.ContainsRune("+-.eE", r)
	})
}

// FromValue converts an already-decoded Go value into a Number. Only Go integer
// and floating-point types are scalars; strings, booleans, nil, collections and
// any other type return a *TypeError wrapping ErrNotScalar, as do NaN, ±Inf and
// unsigned values beyond math.MaxInt64.
func FromValue(v any) (Number, error) {
	switch x := v.(type) {
	case Number:
		if !x.IsScalar() {
			return Number{}, &TypeError{Value: v}
		}
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x), v)
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x, v)
	case float32:
		return fromFloat(float64(x), v)
	case float64:
		return fromFloat(x, v)
	default:
		return Number{}, &TypeError{Value: v}
	}
}

func fromUint(u uint64, orig any) (Number, error) {
	if u > math.MaxInt64 {
		return Number{}, &TypeError{Value: orig}
	}
	return Int(int64(u)), nil
}

func fromFloat(f float64, orig any) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, &TypeError{Value: orig}
	}
	return Float(f), nil
}
