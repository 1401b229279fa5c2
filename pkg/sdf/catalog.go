// SPDX-License-Identifier: MPL-2.0

// Package sdf declares the numeric leaf rules of the SDFormat and URDF dialects
// and assembles them into a sealed registry.
//
// The catalog is an ordered list; NewRegistry registers it in that order and
// seals the result, so a process builds its registry in one explicit step
// instead of through package init side effects.
package sdf

import (
	"github.com/ben-isaac/pcg-gazebo/pkg/registry"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
)

const (
	// DialectSDF is the SDFormat dialect.
	DialectSDF = "sdf"
	// DialectURDF is the URDF dialect.
	DialectURDF = "urdf"
)

// Rules returns the built-in catalog: SDFormat rules first, then URDF rules.
// The returned slice is a fresh copy.
func Rules() []scalar.Rule {
	out := make([]scalar.Rule, 0, len(sdfRules)+len(urdfRules))
	out = append(out, sdfRules...)
	return append(out, urdfRules...)
}

// NewBuilder returns a registry builder preloaded with the built-in catalog.
// Callers may register additional rules before sealing it.
func NewBuilder() (*registry.Builder, error) {
	b := registry.NewBuilder()
	if err := b.RegisterAll(Rules()...); err != nil {
		return nil, err
	}
	return b, nil
}

// NewRegistry registers the built-in catalog followed by extra, then seals.
// A rule in extra that collides with a built-in key is rejected.
func NewRegistry(extra ...scalar.Rule) (*registry.Registry, error) {
	b, err := NewBuilder()
	if err != nil {
		return nil, err
	}
	if err := b.RegisterAll(extra...); err != nil {
		return nil, err
	}
	return b.Seal(), nil
}

func fraction() scalar.Constraint { return scalar.Closed(0, 1) }

// unlimited accepts -1 as the "no limit" sentinel or any non-negative value.
func unlimited() scalar.Constraint {
	return scalar.AnyOf{scalar.OneOf{scalar.Int(-1)}, scalar.NonNegative()}
}
