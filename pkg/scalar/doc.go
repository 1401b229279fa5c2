// SPDX-License-Identifier: MPL-2.0

// Package scalar implements typed numeric leaf values for SDF-like scene documents.
//
// A leaf value (an angle, a length, a mass) is modelled as a [Number], a closed
// sum of integer and floating-point variants. A [Rule] declares the identity of a
// leaf (tag name and dialect), its default value, and the [Constraint] every
// accepted value must satisfy. A [Scalar] binds a rule to its current value and
// guarantees that the stored value always satisfies the rule.
//
// Text enters through [ParseText] and leaves through [Format]; the two are
// inverses for every finite number, so a rendered scalar re-parses to the same
// kind and value.
//
// This package is a leaf dependency: it imports only the standard library.
package scalar
