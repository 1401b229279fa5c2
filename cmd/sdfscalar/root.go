// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ben-isaac/pcg-gazebo/internal/issue"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sdfscalar",
		Short: "Validate numeric leaf values of SDF and URDF documents",
		Long: TitleStyle.Render("sdfscalar") + SubtitleStyle.Render(" - typed scalar validation for SDF/URDF leaves") + `

sdfscalar checks the numeric leaf elements of robot and world descriptions
(friction coefficients, decay factors, solver iterations, ...) against a
catalog of rules keyed by tag name and dialect. Every accepted value is
re-rendered in canonical text, so integers stay integers and floats stay
floats.

Leaves are read from manifests in CUE or TOML format.

` + SubtitleStyle.Render("Examples:") + `
  sdfscalar validate robot.leaves.cue     Validate every leaf of a manifest
  sdfscalar render angular 0.5            Print the canonical text of a value
  sdfscalar rules --dialect urdf          List the URDF rules
  sdfscalar explain unknown-field         Explain an error`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/sdfscalar/config.cue)")

	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.AddCommand(
		newValidateCommand(app),
		newRenderCommand(app),
		newRulesCommand(app),
		newExplainCommand(app),
		newConfigCommand(app),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command. It is called
// by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(int(types.ExitUsage))
	}

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithCommit(Commit),
		fang.WithErrorHandler(app.handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// handleError prints err to w. Commands that already printed a report return
// a bare ExitError, which is not printed again.
func (a *App) handleError(w io.Writer, _ fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.verbose()))
}

// exitCodeOf maps a command error to the process exit status. Errors raised
// by cobra itself (unknown flags, wrong argument counts) are usage errors.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code.Validate() == nil && !exitErr.Code.IsSuccess() {
			return exitErr.Code
		}
		return types.ExitRejected
	}
	return types.ExitUsage
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
