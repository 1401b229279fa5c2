// SPDX-License-Identifier: MPL-2.0

package scalar

import "testing"

func TestRange_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		c     Constraint
		value Number
		want  bool
	}{
		{"closed lower", Closed(0, 1), Int(0), true},
		{"closed upper", Closed(0, 1), Float(1), true},
		{"closed below", Closed(0, 1), Float(-0.1), false},
		{"closed above", Closed(0, 1), Float(1.1), false},
		{"non-negative zero", NonNegative(), Int(0), true},
		{"non-negative negative", NonNegative(), Float(-1e-9), false},
		{"positive zero", Positive(), Float(0), false},
		{"positive small", Positive(), Float(1e-9), true},
		{"at most", AtMost(5), Int(5), true},
		{"at most above", AtMost(5), Float(5.01), false},
		{"half open", Range{Min: 0, Max: 1, HasMin: true, HasMax: true, MaxExclusive: true}, Int(1), false},
		{"unbounded", Unbounded(), Float(-1e300), true},
		{"one of hit", OneOf{Int(0), Int(1), Int(2)}, Float(2), true},
		{"one of miss", OneOf{Int(0), Int(1), Int(2)}, Int(3), false},
		{"any of sentinel", AnyOf{OneOf{Int(-1)}, NonNegative()}, Int(-1), true},
		{"any of range", AnyOf{OneOf{Int(-1)}, NonNegative()}, Float(12.5), true},
		{"any of miss", AnyOf{OneOf{Int(-1)}, NonNegative()}, Float(-0.5), false},
		{"int above 2^53 max", AtMost(1 << 53), Int(1<<53 + 1), false},
		{"int at 2^53 max", AtMost(1 << 53), Int(1 << 53), true},
		{"int below -2^53 min", AtLeast(-(1 << 53)), Int(-(1 << 53) - 1), false},
		{"int at exclusive 2^53 max", Range{Max: 1 << 53, HasMax: true, MaxExclusive: true}, Int(1 << 53), false},
		{"one of large int miss", OneOf{Float(1 << 53)}, Int(1<<53 + 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.c.Check(tt.value); got != tt.want {
				t.Errorf("%s.Check(%s) = %v, want %v", tt.c, tt.value, got, tt.want)
			}
		})
	}
}

func TestConstraint_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    Constraint
		want string
	}{
		{Closed(0, 1), "must be in range [0, 1]"},
		{Range{Min: 0, Max: 1, HasMin: true, HasMax: true, MinExclusive: true}, "must be in range (0, 1]"},
		{NonNegative(), "must be >= 0"},
		{Positive(), "must be > 0"},
		{AtMost(3.5), "must be <= 3.5"},
		{Range{Max: 2, HasMax: true, MaxExclusive: true}, "must be < 2"},
		{Unbounded(), "any finite number"},
		{Range{}, "any finite number"},
		{OneOf{Int(0), Float(0.5)}, "must be one of 0, 0.5"},
		{AnyOf{OneOf{Int(-1)}, NonNegative()}, "must be one of -1 or >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.c.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
