// SPDX-License-Identifier: MPL-2.0

package scalar

// Scalar holds one leaf value governed by a Rule. The current value, once set,
// always satisfies the rule: every assignment is checked before it is stored,
// and a failed assignment leaves the previous state untouched.
//
// A Scalar is owned by a single document node and is not safe for concurrent
// mutation.
type Scalar struct {
	rule    Rule
	current Number
	set     bool
}

// New returns a Scalar for rule after validating the rule declaration.
// It returns an *InvalidRuleError when the default is not usable.
func New(rule Rule) (*Scalar, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return &Scalar{rule: rule}, nil
}

// MustNew is like New but panics on an invalid rule. It is meant for rules
// that have already been validated, such as those held by a sealed registry.
func MustNew(rule Rule) *Scalar {
	s, err := New(rule)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the tag name of the scalar's rule.
func (s *Scalar) Name() string { return s.rule.Name }

// Dialect returns the dialect of the scalar's rule.
func (s *Scalar) Dialect() string { return s.rule.Dialect }

// Rule returns the rule governing the scalar.
func (s *Scalar) Rule() Rule { return s.rule }

// Default returns the rule's default value.
func (s *Scalar) Default() Number { return s.rule.Default }

// IsSet reports whether a value has been assigned since creation or the last Reset.
func (s *Scalar) IsSet() bool { return s.set }

// Assign validates n against the rule and stores it on success.
func (s *Scalar) Assign(n Number) error {
	if err := s.rule.Check(n); err != nil {
		return err
	}
	s.current = n
	s.set = true
	return nil
}

// AssignValue converts an already-decoded Go value with FromValue and assigns it.
// Strings, booleans, nil and collections fail the type check before the domain
// constraint is evaluated.
func (s *Scalar) AssignValue(v any) error {
	n, err := FromValue(v)
	if err != nil {
		return s.rule.annotate(err)
	}
	return s.Assign(n)
}

// AssignText parses a raw text token with ParseText and assigns the result.
func (s *Scalar) AssignText(text string) error {
	n, err := ParseText(text)
	if err != nil {
		return s.rule.annotate(err)
	}
	return s.Assign(n)
}

// Read returns the current value, or the rule's default when nothing is set.
func (s *Scalar) Read() Number {
	if s.set {
		return s.current
	}
	return s.rule.Default
}

// Reset discards the current value so that Read returns the default again.
func (s *Scalar) Reset() {
	s.current = Number{}
	s.set = false
}

// Render returns the canonical text form of Read().
func (s *Scalar) Render() string { return Format(s.Read()) }

// String implements fmt.Stringer.
func (s *Scalar) String() string { return s.rule.Name + "=" + s.Render() }
