// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ben-isaac/pcg-gazebo/internal/config"
	"github.com/ben-isaac/pcg-gazebo/internal/document"
	"github.com/ben-isaac/pcg-gazebo/internal/issue"
	"github.com/ben-isaac/pcg-gazebo/pkg/registry"
	"github.com/ben-isaac/pcg-gazebo/pkg/sdf"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App reference and
	// reaches configuration, logging and the rule registry through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		flags globalFlags

		once    sync.Once
		sess    *session
		sessErr error
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	globalFlags struct {
		verbose    bool
		configPath string
	}

	// session is the per-invocation state derived from the configuration.
	// It is built once, after flags are parsed.
	session struct {
		cfg    *config.Config
		logger *log.Logger
		reg    *registry.Registry
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}

	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// session loads the configuration, builds the logger and seals the registry
// on first use.
func (a *App) session(ctx context.Context) (*session, error) {
	a.once.Do(func() {
		a.sess, a.sessErr = a.loadSession(ctx)
	})
	return a.sess, a.sessErr
}

func (a *App) loadSession(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, &ExitError{Code: types.ExitUsage, Err: err}
	}

	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  cfg.Log.Level.Level(),
	})
	if a.flags.verbose || cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	rules, err := cfg.ScalarRules()
	if err != nil {
		return nil, &ExitError{Code: types.ExitUsage, Err: issue.NewErrorContext().
			WithOperation("register configured rules").
			WithSuggestion("Check the rules list of your configuration").
			Wrap(err).
			BuildError()}
	}

	reg, err := sdf.NewRegistry(rules...)
	if err != nil {
		return nil, &ExitError{Code: types.ExitUsage, Err: issue.NewErrorContext().
			WithOperation("build rule registry").
			Wrap(err).
			BuildError()}
	}
	logger.Debug("registry sealed", "rules", reg.Len(), "dialects", reg.Dialects())

	return &session{cfg: cfg, logger: logger, reg: reg}, nil
}

func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	return a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.configPath)})
}

// verbose reports whether errors should include their full cause chain.
func (a *App) verbose() bool {
	if a.flags.verbose {
		return true
	}
	return a.sess != nil && a.sess.cfg.UI.Verbose
}

// glamourStyle maps the configured color scheme to a glamour style name.
// Help pages must render even when the configuration is broken, so a load
// failure falls back to auto detection.
func (a *App) glamourStyle(ctx context.Context) string {
	s, err := a.session(ctx)
	if err != nil {
		return string(config.ColorSchemeAuto)
	}
	return string(s.cfg.UI.ColorScheme)
}

func (s *session) decoder() *document.Decoder {
	return document.NewDecoder(s.reg, document.WithLogger(s.logger))
}

// dialect resolves the dialect to use: an explicit flag wins over the
// fallback, and the result must be known to the registry.
func (s *session) dialect(flag, fallback string) (string, error) {
	dialect := fallback
	if flag != "" {
		dialect = flag
	}
	if dialect == "" {
		dialect = string(s.cfg.Dialect)
	}
	if !slices.Contains(s.reg.Dialects(), dialect) {
		return "", &unknownDialectError{Dialect: dialect, Known: s.reg.Dialects()}
	}
	return dialect, nil
}

var errUnknownDialect = errors.New("unknown dialect")

type unknownDialectError struct {
	Dialect string
	Known   []string
}

func (e *unknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q (known: %s)", e.Dialect, strings.Join(e.Known, ", "))
}

func (e *unknownDialectError) Unwrap() error { return errUnknownDialect }

