// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "load manifest"},
			expected: "failed to load manifest",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "load manifest", Resource: "robot.cue"},
			expected: "failed to load manifest: robot.cue",
		},
		{
			name:     "full context",
			err:      &ActionableError{Operation: "load manifest", Resource: "robot.cue", Cause: errors.New("file not found")},
			expected: "failed to load manifest: robot.cue: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &ActionableError{Operation: "test", Cause: fmt.Errorf("wrapped: %w", cause)}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	validation := &scalar.ValidationError{Field: "angular", Dialect: "sdf", Value: scalar.Float(1.5), Constraint: "must be in range [0, 1]"}
	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "load manifest",
				Resource:    "robot.cue",
				Suggestions: []string{"Check the path", "Use .cue or .toml"},
			},
			contains: []string{"failed to load manifest: robot.cue", "• Check the path", "• Use .cue or .toml"},
		},
		{
			name:     "no chain when not verbose",
			err:      &ActionableError{Operation: "validate manifest", Cause: validation},
			contains: []string{"failed to validate manifest: "},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "chain when verbose",
			err:     &ActionableError{Operation: "validate manifest", Cause: fmt.Errorf("robot.sdf:12: %w", validation)},
			verbose: true,
			contains: []string{
				"Error chain:",
				"1. robot.sdf:12: ",
				"2. " + validation.Error(),
				"3. " + scalar.ErrValidation.Error(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without an operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without an operation should return nil")
	}

	cause := &scalar.ValidationError{Field: "mass", Dialect: "sdf", Value: scalar.Int(-1), Constraint: "must be > 0"}
	ae := NewErrorContext().
		WithOperation("validate manifest").
		WithResource("robot.cue").
		WithSuggestion("Check the mass").
		Wrap(cause).
		Build()

	if ae.Issue != ValueOutOfRangeId {
		t.Errorf("Issue = %d, want ValueOutOfRangeId picked from the cause", ae.Issue)
	}
	if len(ae.Suggestions) != 2 || ae.Suggestions[0] != "Check the mass" {
		t.Fatalf("Suggestions = %v", ae.Suggestions)
	}
	if !strings.Contains(ae.Suggestions[1], "sdfscalar explain value-out-of-range") {
		t.Errorf("last suggestion = %q, want an explain hint", ae.Suggestions[1])
	}
}

func TestErrorContext_ExplicitIssue(t *testing.T) {
	t.Parallel()

	ae := NewErrorContext().
		WithOperation("load configuration").
		WithIssue(ConfigLoadFailedId).
		Wrap(errors.New("boom")).
		Build()
	if ae.Issue != ConfigLoadFailedId {
		t.Errorf("Issue = %d, want ConfigLoadFailedId", ae.Issue)
	}

	plain := NewErrorContext().WithOperation("do thing").Wrap(errors.New("boom")).Build()
	if plain.Issue != 0 || plain.HasSuggestions() {
		t.Errorf("unmapped cause should get no issue and no suggestions, got %+v", plain)
	}
}

func TestErrorContext_DoesNotAliasSuggestions(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("op").WithSuggestion("a")
	first := ctx.Build()
	ctx.WithSuggestion("b")
	if len(first.Suggestions) != 1 {
		t.Errorf("built error changed after builder reuse: %v", first.Suggestions)
	}
}

func TestWrapWithContext(t *testing.T) {
	t.Parallel()

	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}
	ae := WrapWithContext(errors.New("boom"), "render value", "angular")
	if ae.Error() != "failed to render value: angular: boom" {
		t.Errorf("Error() = %q", ae.Error())
	}
}
