// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ben-isaac/pcg-gazebo/internal/document"
	"github.com/ben-isaac/pcg-gazebo/internal/issue"
	"github.com/ben-isaac/pcg-gazebo/internal/manifest"
	"github.com/ben-isaac/pcg-gazebo/internal/watch"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/spf13/cobra"
)

type validateOptions struct {
	dialect  string
	emit     string
	watch    bool
	debounce time.Duration
}

// newValidateCommand creates the `sdfscalar validate` command.
func newValidateCommand(app *App) *cobra.Command {
	var opts validateOptions

	validateCmd := &cobra.Command{
		Use:   "validate <manifest>...",
		Short: "Validate the leaves of one or more manifests",
		Long: `Validate every leaf of one or more manifests.

Each manifest is decoded as a whole: the first leaf with an unknown tag, a
non-numeric value or a value outside its domain rejects the manifest.
Manifests are independent, so one rejected manifest does not stop the others.

The dialect is taken from --dialect, then from the manifest, then from the
configuration.

Quoted glob patterns are expanded, including "**" for any depth:
  sdfscalar validate 'models/**/*.leaves.{cue,toml}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), app, opts, args)
		},
	}

	validateCmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "dialect of every manifest (overrides the manifest)")
	validateCmd.Flags().StringVar(&opts.emit, "emit", "", "write the canonical manifest to stdout (cue|toml)")
	validateCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-validate manifests when they change")
	validateCmd.Flags().DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period before re-validating in --watch mode")

	return validateCmd
}

func runValidate(ctx context.Context, app *App, opts validateOptions, args []string) error {
	s, err := app.session(ctx)
	if err != nil {
		return err
	}

	emit := manifest.Format(opts.emit)
	if emit != "" && emit != manifest.FormatCUE && emit != manifest.FormatTOML {
		return usageError("invalid --emit format %q (want cue or toml)", opts.emit)
	}
	if emit != "" && opts.watch {
		return usageError("--emit and --watch cannot be combined")
	}
	if opts.dialect != "" {
		if _, err := s.dialect(opts.dialect, ""); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
	}

	paths, err := manifest.Expand(args)
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	// The canonical manifests own stdout when emitting.
	report := app.stdout
	if emit != "" {
		report = app.stderr
	}

	rejectedCount, err := validateAll(app, s, opts, emit, report, paths)
	if err != nil {
		return err
	}
	if opts.watch {
		return watchManifests(ctx, app, s, opts, paths)
	}
	if rejectedCount > 0 {
		return &ExitError{Code: types.ExitRejected}
	}
	return nil
}

// validateAll validates every manifest, writes the report and returns the
// number of rejected manifests.
func validateAll(app *App, s *session, opts validateOptions, emit manifest.Format, report io.Writer, paths []string) (int, error) {
	rejectedCount := 0
	for _, path := range paths {
		doc, err := validateManifest(s, path, opts.dialect)
		if err != nil {
			rejectedCount++
			fmt.Fprintf(report, "%s %s\n", ErrorStyle.Render("✗"), path)
			fmt.Fprintln(report, indent(formatErrorForDisplay(err, app.verbose())))
			continue
		}

		fmt.Fprintf(report, "%s %s %s\n", SuccessStyle.Render("✓"), path,
			SubtitleStyle.Render(fmt.Sprintf("(%d leaves, %s)", len(doc.Fields), doc.Dialect)))
		if app.verbose() {
			writeFields(report, doc)
		}

		if emit != "" {
			if err := manifest.Write(app.stdout, manifest.FromDocument(doc), emit); err != nil {
				return rejectedCount, fmt.Errorf("failed to write %s manifest: %w", emit, err)
			}
		}
	}

	fmt.Fprintln(report)
	if rejectedCount > 0 {
		fmt.Fprintln(report, ErrorStyle.Render(fmt.Sprintf("%d of %d manifests rejected", rejectedCount, len(paths))))
	} else {
		fmt.Fprintln(report, SuccessStyle.Render(fmt.Sprintf("%d manifests valid", len(paths))))
	}
	return rejectedCount, nil
}

// watchManifests re-validates manifests as they change until ctx is
// cancelled. Rejections are reported but do not stop the loop.
func watchManifests(ctx context.Context, app *App, s *session, opts validateOptions, paths []string) error {
	w, err := watch.New(watch.Config{
		Files:    paths,
		Debounce: opts.debounce,
		Stderr:   app.stderr,
		OnChange: func(_ context.Context, changed []string) error {
			s.logger.Debug("manifests changed", "files", changed)
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("--- "+strings.Join(changed, ", ")))
			_, err := validateAll(app, s, opts, "", app.stdout, changed)
			return err
		},
	})
	if err != nil {
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	fmt.Fprintln(app.stdout, VerboseStyle.Render(fmt.Sprintf("Watching %d manifests (Ctrl+C to stop)", len(paths))))
	return w.Run(ctx)
}

// validateManifest loads and decodes one manifest. The returned errors are
// ActionableErrors carrying the matching help page.
func validateManifest(s *session, path, dialectFlag string) (*document.Document, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load manifest").
			WithResource(path).
			Wrap(err).
			BuildError()
	}

	dialect, err := s.dialect(dialectFlag, m.DialectOr(string(s.cfg.Dialect)))
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate manifest").
			WithResource(path).
			WithSuggestion("Pass --dialect or set the dialect field of the manifest").
			Wrap(err).
			BuildError()
	}

	doc, err := s.decoder().Decode(m.Source, dialect, m.Leaves)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate manifest").
			WithResource(path).
			Wrap(err).
			BuildError()
	}
	s.logger.Debug("manifest accepted", "path", path, "leaves", len(doc.Fields), "dialect", dialect)
	return doc, nil
}

func writeFields(w io.Writer, doc *document.Document) {
	for _, f := range doc.Fields {
		loc := ""
		if f.Leaf.Path != "" {
			loc = " " + f.Leaf.Path
		}
		fmt.Fprintf(w, "    %s = %s%s\n", CmdStyle.Render(f.Leaf.Tag), f.Scalar.Render(), VerboseStyle.Render(loc))
	}
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(s, "\n", "\n    ")
}
