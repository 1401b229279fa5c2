// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"errors"
	"slices"
	"strings"
)

// Rule declares a leaf value type: its identity, its default and its domain.
// Rules are plain values; the same Rule can back any number of Scalars.
type Rule struct {
	// Name is the tag name the rule applies to (e.g. "angular").
	Name string
	// Dialect is the document format the tag belongs to (e.g. "sdf", "urdf").
	Dialect string
	// Doc is a one-line human description of the leaf.
	Doc string
	// IntegerOnly restricts accepted values to KindInt.
	IntegerOnly bool
	// Default is the value read when nothing has been assigned.
	Default Number
	// Constraint is the domain predicate. Nil means Unbounded.
	Constraint Constraint
}

// Key returns the registry key of the rule, formatted as "dialect:name".
func (r Rule) Key() string { return r.Dialect + ":" + r.Name }

// Domain returns the effective constraint of the rule.
func (r Rule) Domain() Constraint {
	if r.Constraint == nil {
		return Unbounded()
	}
	return r.Constraint
}

// Clone returns a copy of r that shares no slice-backed constraint with it,
// so later changes to the caller's OneOf or AnyOf do not reach the copy.
func (r Rule) Clone() Rule {
	r.Constraint = cloneConstraint(r.Constraint)
	return r
}

func cloneConstraint(c Constraint) Constraint {
	switch x := c.(type) {
	case OneOf:
		return slices.Clone(x)
	case AnyOf:
		out := make(AnyOf, len(x))
		for i, inner := range x {
			out[i] = cloneConstraint(inner)
		}
		return out
	default:
		return c
	}
}

// Accepts describes the accepted kinds for error messages.
func (r Rule) Accepts() string {
	if r.IntegerOnly {
		return "an integer"
	}
	return "an integer or float"
}

// WithDefault returns a copy of r with a different default value. The copy
// must still pass Validate before use.
func (r Rule) WithDefault(def Number) Rule {
	r.Default = def
	return r
}

// Validate checks the rule declaration itself: a non-empty name and dialect,
// and a default that is a scalar of an accepted kind inside the rule's domain.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &InvalidRuleError{Field: r.Name, Dialect: r.Dialect, Reason: "name must be non-empty"}
	}
	if strings.TrimSpace(r.Dialect) == "" {
		return &InvalidRuleError{Field: r.Name, Dialect: r.Dialect, Reason: "dialect must be non-empty"}
	}
	if err := r.Check(r.Default); err != nil {
		return &InvalidRuleError{Field: r.Name, Dialect: r.Dialect, Reason: "invalid default", Cause: err}
	}
	return nil
}

// Check runs the type check and then the domain check for n. It returns a
// *TypeError when n is not an accepted scalar and a *ValidationError when n is
// outside the domain.
func (r Rule) Check(n Number) error {
	if !n.IsScalar() || (r.IntegerOnly && n.Kind() != KindInt) {
		return &TypeError{Field: r.Name, Dialect: r.Dialect, Value: n, Want: r.Accepts()}
	}
	c := r.Domain()
	if !c.Check(n) {
		return &ValidationError{Field: r.Name, Dialect: r.Dialect, Value: n, Constraint: c.String()}
	}
	return nil
}

// annotate stamps the rule identity onto conversion errors produced outside it.
func (r Rule) annotate(err error) error {
	var typeErr *TypeError
	if errors.As(err, &typeErr) {
		return &TypeError{Field: r.Name, Dialect: r.Dialect, Value: typeErr.Value, Want: r.Accepts()}
	}
	var synErr *SyntaxError
	if errors.As(err, &synErr) {
		return &SyntaxError{Field: r.Name, Dialect: r.Dialect, Text: synErr.Text, Err: synErr.Err}
	}
	return err
}
