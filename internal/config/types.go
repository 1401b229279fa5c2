// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
	"github.com/ben-isaac/pcg-gazebo/pkg/sdf"

	"github.com/charmbracelet/log"
)

const (
	// LogLevelDebug logs every resolved leaf.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo is the default log level.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn only logs warnings and errors.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError only logs errors.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// RuleKindInt accepts integers only.
	RuleKindInt RuleKind = "int"
	// RuleKindFloat accepts integers and floats.
	RuleKindFloat RuleKind = "float"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidDialect is returned when a Dialect value is malformed.
	ErrInvalidDialect = errors.New("invalid dialect")
	// ErrInvalidRuleKind is returned when a RuleKind value is not recognized.
	ErrInvalidRuleKind = errors.New("invalid rule kind")
	// ErrInvalidRuleConfig is the sentinel error wrapped by InvalidRuleConfigError.
	ErrInvalidRuleConfig = errors.New("invalid rule config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	dialectPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Dialect names a document format ("sdf", "urdf", or a user dialect).
	Dialect string

	// InvalidDialectError is returned when a Dialect is not a lower-case identifier.
	InvalidDialectError struct {
		Value Dialect
	}

	// RuleKind selects the numeric kinds a configured rule accepts.
	RuleKind string

	// InvalidRuleKindError is returned when a RuleKind value is not recognized.
	InvalidRuleKindError struct {
		Value RuleKind
	}

	// InvalidRuleConfigError is returned when a configured rule cannot be
	// turned into a scalar rule.
	InvalidRuleConfigError struct {
		Index int
		Name  string
		Cause error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Dialect is used for manifests that do not declare one.
		Dialect Dialect `json:"dialect" mapstructure:"dialect"`
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// Rules are registered after the built-in catalog.
		Rules []RuleConfig `json:"rules" mapstructure:"rules"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// RuleConfig declares a user rule. Bounds are inclusive unless the
	// matching *_exclusive flag is set; OneOf, when present, is an extra set
	// of accepted values outside the bounds.
	RuleConfig struct {
		Name         string   `json:"name" mapstructure:"name"`
		Dialect      Dialect  `json:"dialect" mapstructure:"dialect"`
		Kind         RuleKind `json:"kind" mapstructure:"kind"`
		Doc          string   `json:"doc,omitempty" mapstructure:"doc"`
		Default      any      `json:"default" mapstructure:"default"`
		Min          *float64 `json:"min,omitempty" mapstructure:"min"`
		Max          *float64 `json:"max,omitempty" mapstructure:"max"`
		MinExclusive bool     `json:"min_exclusive,omitempty" mapstructure:"min_exclusive"`
		MaxExclusive bool     `json:"max_exclusive,omitempty" mapstructure:"max_exclusive"`
		OneOf        []any    `json:"one_of,omitempty" mapstructure:"one_of"`
	}
)

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts l to a charmbracelet/log level. Unknown values map to info.
func (l LogLevel) Level() log.Level {
	switch l {
	case LogLevelDebug:
		return log.DebugLevel
	case LogLevelWarn:
		return log.WarnLevel
	case LogLevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidDialectError.
func (e *InvalidDialectError) Error() string {
	return fmt.Sprintf("invalid dialect %q: must be a lower-case identifier", e.Value)
}

// Unwrap returns ErrInvalidDialect for errors.Is() compatibility.
func (e *InvalidDialectError) Unwrap() error { return ErrInvalidDialect }

// String returns the string representation of the Dialect.
func (d Dialect) String() string { return string(d) }

// IsValid returns whether the Dialect is a lower-case identifier.
func (d Dialect) IsValid() (bool, []error) {
	if !dialectPattern.MatchString(string(d)) {
		return false, []error{&InvalidDialectError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidRuleKindError.
func (e *InvalidRuleKindError) Error() string {
	return fmt.Sprintf("invalid rule kind %q (valid: int, float)", e.Value)
}

// Unwrap returns ErrInvalidRuleKind for errors.Is() compatibility.
func (e *InvalidRuleKindError) Unwrap() error { return ErrInvalidRuleKind }

// IsValid returns whether the RuleKind is "int" or "float".
func (k RuleKind) IsValid() (bool, []error) {
	switch k {
	case RuleKindInt, RuleKindFloat:
		return true, nil
	default:
		return false, []error{&InvalidRuleKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidRuleConfigError.
func (e *InvalidRuleConfigError) Error() string {
	return fmt.Sprintf("rules[%d] %q: %v", e.Index, e.Name, e.Cause)
}

// Unwrap returns both the sentinel and the cause, so errors.Is matches either
// ErrInvalidRuleConfig or the underlying scalar error.
func (e *InvalidRuleConfigError) Unwrap() []error {
	return []error{ErrInvalidRuleConfig, e.Cause}
}

// Rule converts the configured rule into a scalar rule. The result has been
// checked with scalar.Rule.Validate.
func (rc RuleConfig) Rule() (scalar.Rule, error) {
	if valid, errs := rc.Kind.IsValid(); !valid {
		return scalar.Rule{}, errs[0]
	}
	if valid, errs := rc.Dialect.IsValid(); !valid {
		return scalar.Rule{}, errs[0]
	}
	def, err := scalar.FromValue(rc.Default)
	if err != nil {
		return scalar.Rule{}, fmt.Errorf("default: %w", err)
	}
	c, err := rc.constraint()
	if err != nil {
		return scalar.Rule{}, err
	}

	rule := scalar.Rule{
		Name:        rc.Name,
		Dialect:     string(rc.Dialect),
		Doc:         rc.Doc,
		IntegerOnly: rc.Kind == RuleKindInt,
		Default:     def,
		Constraint:  c,
	}
	if err := rule.Validate(); err != nil {
		return scalar.Rule{}, err
	}
	return rule, nil
}

func (rc RuleConfig) constraint() (scalar.Constraint, error) {
	var bounds scalar.Constraint
	if rc.Min != nil || rc.Max != nil {
		r := scalar.Range{MinExclusive: rc.MinExclusive, MaxExclusive: rc.MaxExclusive}
		if rc.Min != nil {
			r.Min, r.HasMin = *rc.Min, true
		}
		if rc.Max != nil {
			r.Max, r.HasMax = *rc.Max, true
		}
		if r.HasMin && r.HasMax && r.Min > r.Max {
			return nil, fmt.Errorf("min %v is greater than max %v", r.Min, r.Max)
		}
		bounds = r
	}

	if len(rc.OneOf) == 0 {
		if bounds == nil {
			return scalar.Unbounded(), nil
		}
		return bounds, nil
	}

	set := make(scalar.OneOf, 0, len(rc.OneOf))
	for i, v := range rc.OneOf {
		n, err := scalar.FromValue(v)
		if err != nil {
			return nil, fmt.Errorf("one_of[%d]: %w", i, err)
		}
		set = append(set, n)
	}
	if bounds == nil {
		return set, nil
	}
	return scalar.AnyOf{set, bounds}, nil
}

// IsValid returns whether the Config has valid fields. Configured rules are
// fully converted, so a valid Config can always be registered.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dialect.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if _, err := c.ScalarRules(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig followed by the field errors, so errors.Is
// matches the sentinel of any individual field failure.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ScalarRules converts every configured rule, stopping at the first invalid one.
func (c Config) ScalarRules() ([]scalar.Rule, error) {
	rules := make([]scalar.Rule, 0, len(c.Rules))
	for i, rc := range c.Rules {
		rule, err := rc.Rule()
		if err != nil {
			return nil, &InvalidRuleConfigError{Index: i, Name: rc.Name, Cause: err}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dialect: sdf.DialectSDF,
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
		Rules: []RuleConfig{},
	}
}
