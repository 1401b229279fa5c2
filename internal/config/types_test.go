// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"

	"github.com/charmbracelet/log"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level     LogLevel
		want      bool
		wantLevel log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"", false, log.InfoLevel},
		{"DEBUG", false, log.InfoLevel},
		{"trace", false, log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.level.IsValid()
			if isValid != tt.want {
				t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidLogLevel)) {
				t.Errorf("LogLevel(%q).IsValid() errors = %v, want ErrInvalidLogLevel", tt.level, errs)
			}
			if got := tt.level.Level(); got != tt.wantLevel {
				t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.level, got, tt.wantLevel)
			}
		})
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme ColorScheme
		want   bool
	}{
		{ColorSchemeAuto, true},
		{ColorSchemeDark, true},
		{ColorSchemeLight, true},
		{"", false},
		{"AUTO", false},
	}

	for _, tt := range tests {
		isValid, errs := tt.scheme.IsValid()
		if isValid != tt.want {
			t.Errorf("ColorScheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
		}
		if !tt.want && !errors.Is(errs[0], ErrInvalidColorScheme) {
			t.Errorf("error should wrap ErrInvalidColorScheme, got: %v", errs[0])
		}
	}
}

func TestDialect_IsValid(t *testing.T) {
	t.Parallel()

	for _, d := range []Dialect{"sdf", "urdf", "rover_2"} {
		if valid, errs := d.IsValid(); !valid {
			t.Errorf("Dialect(%q).IsValid() = false: %v", d, errs)
		}
	}
	for _, d := range []Dialect{"", "SDF", "2d", "sdf-1", " sdf"} {
		valid, errs := d.IsValid()
		if valid {
			t.Errorf("Dialect(%q).IsValid() = true, want false", d)
			continue
		}
		if !errors.Is(errs[0], ErrInvalidDialect) {
			t.Errorf("error should wrap ErrInvalidDialect, got: %v", errs[0])
		}
	}
}

func TestRuleConfig_Rule(t *testing.T) {
	t.Parallel()

	lo, hi := 0.0, 1.0
	tests := []struct {
		name    string
		rc      RuleConfig
		wantErr error
		accept  []scalar.Number
		reject  []scalar.Number
	}{
		{
			name:   "unbounded float",
			rc:     RuleConfig{Name: "gain", Dialect: "sdf", Kind: RuleKindFloat, Default: float64(0.5)},
			accept: []scalar.Number{scalar.Float(-1e9), scalar.Int(3)},
		},
		{
			name:   "closed fraction",
			rc:     RuleConfig{Name: "ratio", Dialect: "sdf", Kind: RuleKindFloat, Default: int64(0), Min: &lo, Max: &hi},
			accept: []scalar.Number{scalar.Int(0), scalar.Float(1)},
			reject: []scalar.Number{scalar.Float(1.01), scalar.Int(-1)},
		},
		{
			name:   "enumeration only",
			rc:     RuleConfig{Name: "mode", Dialect: "sdf", Kind: RuleKindInt, Default: int64(1), OneOf: []any{int64(1), int64(2), int64(4)}},
			accept: []scalar.Number{scalar.Int(2)},
			reject: []scalar.Number{scalar.Int(3), scalar.Float(2)},
		},
		{
			name:    "bad kind",
			rc:      RuleConfig{Name: "x", Dialect: "sdf", Kind: "bool", Default: int64(0)},
			wantErr: ErrInvalidRuleKind,
		},
		{
			name:    "bad dialect",
			rc:      RuleConfig{Name: "x", Dialect: "Sdf", Kind: RuleKindInt, Default: int64(0)},
			wantErr: ErrInvalidDialect,
		},
		{
			name:    "missing default",
			rc:      RuleConfig{Name: "x", Dialect: "sdf", Kind: RuleKindInt},
			wantErr: scalar.ErrNotScalar,
		},
		{
			name:    "non-numeric one_of",
			rc:      RuleConfig{Name: "x", Dialect: "sdf", Kind: RuleKindInt, Default: int64(0), OneOf: []any{"zero"}},
			wantErr: scalar.ErrNotScalar,
		},
		{
			name:    "default outside domain",
			rc:      RuleConfig{Name: "x", Dialect: "sdf", Kind: RuleKindFloat, Default: float64(2), Min: &lo, Max: &hi},
			wantErr: scalar.ErrInvalidRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule, err := tt.rc.Rule()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Rule() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Rule() unexpected error: %v", err)
			}
			for _, n := range tt.accept {
				if err := rule.Check(n); err != nil {
					t.Errorf("Check(%s) unexpected error: %v", n, err)
				}
			}
			for _, n := range tt.reject {
				if err := rule.Check(n); err == nil {
					t.Errorf("Check(%s) expected error", n)
				}
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Log.Level = "loud"
	cfg.UI.ColorScheme = "neon"
	cfg.Rules = []RuleConfig{{Name: "x", Dialect: "sdf", Kind: "bool"}}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error should be *InvalidConfigError, got: %T", errs[0])
	}
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("FieldErrors = %v, want 3 entries", cfgErr.FieldErrors)
	}
	for _, target := range []error{ErrInvalidConfig, ErrInvalidLogLevel, ErrInvalidColorScheme, ErrInvalidRuleConfig, ErrInvalidRuleKind} {
		if !errors.Is(errs[0], target) {
			t.Errorf("errors.Is(err, %v) = false", target)
		}
	}
}
