// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"strconv"
	"strings"
)

type (
	// Constraint is a domain predicate over scalar values.
	Constraint interface {
		// Check reports whether n belongs to the domain. n is always a scalar.
		Check(n Number) bool
		// String describes the domain for error messages, e.g. "must be in range [0, 1]".
		String() string
	}

	// Range constrains values to an interval. A side without a bound is open-ended.
	Range struct {
		Min, Max                   float64
		HasMin, HasMax             bool
		MinExclusive, MaxExclusive bool
	}

	// OneOf constrains values to an enumeration, compared numerically.
	OneOf []Number

	// AnyOf accepts a value when at least one of its constraints does.
	AnyOf []Constraint

	unbounded struct{}
)

// Unbounded accepts every scalar.
func Unbounded() Constraint { return unbounded{} }

// Closed returns the inclusive range [lo, hi].
func Closed(lo, hi float64) Range {
	return Range{Min: lo, Max: hi, HasMin: true, HasMax: true}
}

// AtLeast returns the range [lo, +inf).
func AtLeast(lo float64) Range { return Range{Min: lo, HasMin: true} }

// GreaterThan returns the range (lo, +inf).
func GreaterThan(lo float64) Range { return Range{Min: lo, HasMin: true, MinExclusive: true} }

// AtMost returns the range (-inf, hi].
func AtMost(hi float64) Range { return Range{Max: hi, HasMax: true} }

// NonNegative returns the range [0, +inf).
func NonNegative() Range { return AtLeast(0) }

// Positive returns the range (0, +inf).
func Positive() Range { return GreaterThan(0) }

func (unbounded) Check(Number) bool { return true }

func (unbounded) String() string { return "any finite number" }

// Check implements Constraint. Integers are compared against the bounds
// exactly, so values beyond 2^53 cannot round onto a bound.
func (r Range) Check(n Number) bool {
	if r.HasMin {
		c := n.Compare(Float(r.Min))
		if c < 0 || c == 0 && r.MinExclusive {
			return false
		}
	}
	if r.HasMax {
		c := n.Compare(Float(r.Max))
		if c > 0 || c == 0 && r.MaxExclusive {
			return false
		}
	}
	return true
}

// String implements Constraint.
func (r Range) String() string {
	switch {
	case r.HasMin && r.HasMax:
		lb, rb := "[", "]"
		if r.MinExclusive {
			lb = "("
		}
		if r.MaxExclusive {
			rb = ")"
		}
		return "must be in range " + lb + formatBound(r.Min) + ", " + formatBound(r.Max) + rb
	case r.HasMin && r.MinExclusive:
		return "must be > " + formatBound(r.Min)
	case r.HasMin:
		return "must be >= " + formatBound(r.Min)
	case r.HasMax && r.MaxExclusive:
		return "must be < " + formatBound(r.Max)
	case r.HasMax:
		return "must be <= " + formatBound(r.Max)
	default:
		return unbounded{}.String()
	}
}

func formatBound(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// Check implements Constraint.
func (o OneOf) Check(n Number) bool {
	for _, v := range o {
		if v.Compare(n) == 0 {
			return true
		}
	}
	return false
}

// String implements Constraint.
func (o OneOf) String() string {
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = v.String()
	}
	return "must be one of " + strings.Join(parts, ", ")
}

// Check implements Constraint.
func (a AnyOf) Check(n Number) bool {
	for _, c := range a {
		if c.Check(n) {
			return true
		}
	}
	return false
}

// String implements Constraint.
func (a AnyOf) String() string {
	parts := make([]string, len(a))
	for i, c := range a {
		parts[i] = strings.TrimPrefix(c.String(), "must be ")
	}
	return "must be " + strings.Join(parts, " or ")
}
