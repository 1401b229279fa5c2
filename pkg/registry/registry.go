// SPDX-License-Identifier: MPL-2.0

// Package registry maps (tag name, dialect) pairs to scalar rules.
//
// Registration happens on a Builder during an explicit initialization step.
// Seal freezes the builder into an immutable Registry; a Registry has no
// mutating methods and is safe for concurrent Resolve calls from any number
// of goroutines.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"

	"golang.org/x/exp/slices"
)

var (
	// ErrUnknownField is the sentinel error wrapped by UnknownFieldError.
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateRule is the sentinel error wrapped by DuplicateRuleError.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrSealed is returned when registering on a builder that has already been sealed.
	ErrSealed = errors.New("registry is sealed")
)

type (
	// Key identifies a rule by tag name and dialect.
	Key struct {
		Name    string
		Dialect string
	}

	// Factory creates a fresh Scalar holding the rule's default.
	Factory func() *scalar.Scalar

	// UnknownFieldError is returned when no rule is registered for a (name, dialect) pair.
	UnknownFieldError struct {
		Name    string
		Dialect string
		// Elsewhere lists other dialects that do register Name, if any.
		Elsewhere []string
	}

	// DuplicateRuleError is returned when a (name, dialect) pair is registered twice.
	// The first registration is kept.
	DuplicateRuleError struct {
		Key Key
	}

	// Builder collects rules before sealing. It is not safe for concurrent use.
	Builder struct {
		rules  map[Key]scalar.Rule
		order  []Key
		sealed bool
	}

	// Registry is an immutable, sealed set of rules.
	Registry struct {
		entries map[Key]entry
		keys    []Key
		byName  map[string][]string
	}

	entry struct {
		rule    scalar.Rule
		factory Factory
	}
)

// KeyOf returns the registry key of rule.
func KeyOf(rule scalar.Rule) Key { return Key{Name: rule.Name, Dialect: rule.Dialect} }

// String returns the key formatted as "dialect:name".
func (k Key) String() string { return k.Dialect + ":" + k.Name }

// Error implements the error interface.
func (e *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("unknown field %q for dialect %q", e.Name, e.Dialect)
	if len(e.Elsewhere) > 0 {
		msg += fmt.Sprintf(" (registered for: %s)", strings.Join(e.Elsewhere, ", "))
	}
	return msg
}

// Unwrap returns ErrUnknownField for errors.Is() compatibility.
func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// Error implements the error interface.
func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule %q: a rule for this tag and dialect is already registered", e.Key)
}

// Unwrap returns ErrDuplicateRule for errors.Is() compatibility.
func (e *DuplicateRuleError) Unwrap() error { return ErrDuplicateRule }

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{rules: make(map[Key]scalar.Rule)}
}

// Register validates rule and adds a private copy of it to the builder.
// Invalid declarations return the rule's *scalar.InvalidRuleError; a second
// rule for the same key returns *DuplicateRuleError and leaves the first one
// in place.
func (b *Builder) Register(rule scalar.Rule) error {
	if b.sealed {
		return ErrSealed
	}
	rule = rule.Clone()
	if err := rule.Validate(); err != nil {
		return err
	}
	key := KeyOf(rule)
	if _, exists := b.rules[key]; exists {
		return &DuplicateRuleError{Key: key}
	}
	b.rules[key] = rule
	b.order = append(b.order, key)
	return nil
}

// RegisterAll registers rules in order and stops at the first error.
func (b *Builder) RegisterAll(rules ...scalar.Rule) error {
	for _, rule := range rules {
		if err := b.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of rules registered so far.
func (b *Builder) Len() int { return len(b.order) }

// Seal freezes the builder and returns the immutable Registry. Any later
// Register call on the builder returns ErrSealed.
func (b *Builder) Seal() *Registry {
	b.sealed = true

	r := &Registry{
		entries: make(map[Key]entry, len(b.rules)),
		keys:    slices.Clone(b.order),
		byName:  make(map[string][]string),
	}
	for _, key := range b.order {
		rule := b.rules[key]
		r.entries[key] = entry{
			rule:    rule,
			factory: func() *scalar.Scalar { return scalar.MustNew(rule) },
		}
		r.byName[key.Name] = append(r.byName[key.Name], key.Dialect)
	}
	slices.SortFunc(r.keys, func(a, b Key) int {
		if c := cmp.Compare(a.Dialect, b.Dialect); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	for name := range r.byName {
		slices.Sort(r.byName[name])
	}
	return r
}

// Resolve returns the factory for (name, dialect). It never falls back to
// another rule: an unregistered pair returns *UnknownFieldError.
func (r *Registry) Resolve(name, dialect string) (Factory, error) {
	e, ok := r.entries[Key{Name: name, Dialect: dialect}]
	if !ok {
		return nil, r.unknown(name, dialect)
	}
	return e.factory, nil
}

// New resolves (name, dialect) and returns a fresh Scalar.
func (r *Registry) New(name, dialect string) (*scalar.Scalar, error) {
	factory, err := r.Resolve(name, dialect)
	if err != nil {
		return nil, err
	}
	return factory(), nil
}

// Rule returns the rule registered for (name, dialect).
func (r *Registry) Rule(name, dialect string) (scalar.Rule, bool) {
	e, ok := r.entries[Key{Name: name, Dialect: dialect}]
	return e.rule, ok
}

// Rules returns the registered rules sorted by dialect then name. An empty
// dialect returns the rules of every dialect.
func (r *Registry) Rules(dialect string) []scalar.Rule {
	var out []scalar.Rule
	for _, key := range r.keys {
		if dialect != "" && key.Dialect != dialect {
			continue
		}
		out = append(out, r.entries[key].rule)
	}
	return out
}

// Keys returns every registered key sorted by dialect then name.
func (r *Registry) Keys() []Key { return slices.Clone(r.keys) }

// Dialects returns the sorted set of dialects with at least one rule.
func (r *Registry) Dialects() []string {
	var out []string
	for _, key := range r.keys {
		if !slices.Contains(out, key.Dialect) {
			out = append(out, key.Dialect)
		}
	}
	return out
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.keys) }

func (r *Registry) unknown(name, dialect string) error {
	var elsewhere []string
	for _, d := range r.byName[name] {
		if d != dialect {
			elsewhere = append(elsewhere, d)
		}
	}
	return &UnknownFieldError{Name: name, Dialect: dialect, Elsewhere: elsewhere}
}
