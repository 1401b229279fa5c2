// SPDX-License-Identifier: MPL-2.0

package scalar

import (
	"errors"
	"fmt"
)

var (
	// ErrNotScalar is the sentinel error wrapped by TypeError and SyntaxError.
	ErrNotScalar = errors.New("value is not a scalar")
	// ErrValidation is the sentinel error wrapped by ValidationError.
	ErrValidation = errors.New("scalar validation failed")
	// ErrInvalidRule is the sentinel error wrapped by InvalidRuleError.
	ErrInvalidRule = errors.New("invalid scalar rule")
)

type (
	// TypeError is returned when a value is not an integer or a finite float, or
	// when its kind is not accepted by the rule (a float for an integer-only rule).
	// The domain constraint is never evaluated for such values.
	TypeError struct {
		// Field is the rule name, empty when the conversion happened outside a rule.
		Field string
		// Dialect is the rule dialect, empty when Field is empty.
		Dialect string
		// Value is the rejected value.
		Value any
		// Want describes the accepted kinds, e.g. "integer".
		Want string
	}

	// SyntaxError is returned when a raw text token is not a numeric literal.
	SyntaxError struct {
		Field   string
		Dialect string
		Text    string
		Err     error
	}

	// ValidationError is returned when a scalar value violates the domain
	// constraint of its rule. The message is generated from the rule's own
	// identity and constraint description.
	ValidationError struct {
		Field      string
		Dialect    string
		Value      Number
		Constraint string
	}

	// InvalidRuleError is returned when a rule declaration is unusable: empty
	// identity, or a default value that is not a scalar or violates the rule's
	// own constraint. It is a programmer error surfaced at registration time.
	InvalidRuleError struct {
		Field   string
		Dialect string
		Reason  string
		Cause   error
	}
)

func fieldLabel(field, dialect string) string {
	switch {
	case field == "":
		return ""
	case dialect == "":
		return field + ": "
	default:
		return fmt.Sprintf("%s (%s): ", field, dialect)
	}
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	want := e.Want
	if want == "" {
		want = "an integer or float"
	}
	return fmt.Sprintf("%svalue %s is not a scalar: must be %s", fieldLabel(e.Field, e.Dialect), describeValue(e.Value), want)
}

func describeValue(v any) string {
	if n, ok := v.(Number); ok {
		if n.Kind() == KindInvalid {
			return "<unset>"
		}
		return fmt.Sprintf("%s (%s)", n, n.Kind())
	}
	return fmt.Sprintf("%#v (%T)", v, v)
}

// Unwrap returns ErrNotScalar for errors.Is() compatibility.
func (e *TypeError) Unwrap() error { return ErrNotScalar }

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s%q is not a numeric literal", fieldLabel(e.Field, e.Dialect), e.Text)
}

// Unwrap returns ErrNotScalar for errors.Is() compatibility.
func (e *SyntaxError) Unwrap() error { return ErrNotScalar }

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%svalue %s violates constraint: %s", fieldLabel(e.Field, e.Dialect), e.Value, e.Constraint)
}

// Unwrap returns ErrValidation for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Error implements the error interface.
func (e *InvalidRuleError) Error() string {
	name := e.Field
	if name == "" {
		name = "<unnamed>"
	}
	msg := fmt.Sprintf("invalid rule %s", name)
	if e.Dialect != "" {
		msg += " (" + e.Dialect + ")"
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrInvalidRule and the underlying cause, if any.
func (e *InvalidRuleError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidRule}
	}
	return []error{ErrInvalidRule, e.Cause}
}
