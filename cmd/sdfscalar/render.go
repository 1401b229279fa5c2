// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/internal/document"
	"github.com/ben-isaac/pcg-gazebo/internal/issue"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/spf13/cobra"
)

// newRenderCommand creates the `sdfscalar render` command.
func newRenderCommand(app *App) *cobra.Command {
	var dialect string

	renderCmd := &cobra.Command{
		Use:   "render <tag> [value]",
		Short: "Print the canonical text of a leaf value",
		Long: `Coerce and validate a single leaf value and print its canonical text.

Without a value, the default of the field is printed. Integers are printed
without a decimal point; floats always carry one (or an exponent).

Negative values must follow "--" so they are not read as flags.`,
		Example: `  sdfscalar render angular 0.5
  sdfscalar render iters 50
  sdfscalar render effort --dialect urdf
  sdfscalar render lower -- -0.5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), app, dialect, args)
		},
	}

	renderCmd.Flags().StringVarP(&dialect, "dialect", "d", "", "dialect of the tag (default from the configuration)")
	renderCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if strings.Contains(err.Error(), "unknown shorthand flag") {
			return usageError("%w; put negative values after --, e.g. sdfscalar render lower -- -0.5", err)
		}
		return &ExitError{Code: types.ExitUsage, Err: err}
	})

	return renderCmd
}

func runRender(ctx context.Context, app *App, dialectFlag string, args []string) error {
	s, err := app.session(ctx)
	if err != nil {
		return err
	}

	dialect, err := s.dialect(dialectFlag, "")
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	tag := args[0]
	if len(args) == 1 {
		sc, err := s.reg.New(tag, dialect)
		if err != nil {
			return rejected(issue.WrapWithContext(err, "render default", tag))
		}
		fmt.Fprintln(app.stdout, sc.Render())
		return nil
	}

	sc, err := s.decoder().DecodeLeaf(dialect, document.Leaf{Tag: tag, Text: args[1]})
	if err != nil {
		return rejected(issue.WrapWithContext(err, "render value", tag))
	}
	fmt.Fprintln(app.stdout, sc.Render())
	return nil
}
