// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

type rulesOptions struct {
	dialect  string
	markdown bool
}

// newRulesCommand creates the `sdfscalar rules` command.
func newRulesCommand(app *App) *cobra.Command {
	var opts rulesOptions

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered leaf rules",
		Long: `List the rules of the sealed registry: the built-in SDF and URDF catalog
followed by the rules declared in the configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd.Context(), app, opts)
		},
	}

	rulesCmd.Flags().StringVarP(&opts.dialect, "dialect", "d", "", "only list the rules of this dialect")
	rulesCmd.Flags().BoolVar(&opts.markdown, "markdown", false, "render the catalog as Markdown")

	return rulesCmd
}

func runRules(ctx context.Context, app *App, opts rulesOptions) error {
	s, err := app.session(ctx)
	if err != nil {
		return err
	}

	dialects := s.reg.Dialects()
	if opts.dialect != "" {
		if _, err := s.dialect(opts.dialect, ""); err != nil {
			return &ExitError{Code: types.ExitUsage, Err: err}
		}
		dialects = []string{opts.dialect}
	}

	if opts.markdown {
		out, err := glamour.Render(rulesMarkdown(s, dialects), app.glamourStyle(ctx))
		if err != nil {
			return fmt.Errorf("failed to render rules: %w", err)
		}
		fmt.Fprint(app.stdout, out)
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("DIALECT", "NAME", "KIND", "DEFAULT", "DOMAIN")
	for _, d := range dialects {
		for _, r := range s.reg.Rules(d) {
			t.Row(r.Dialect, r.Name, ruleKind(r), scalar.Format(r.Default), r.Domain().String())
		}
	}
	fmt.Fprintln(app.stdout, t.Render())
	return nil
}

// rulesMarkdown renders one section per dialect with one bullet per rule.
func rulesMarkdown(s *session, dialects []string) string {
	var sb strings.Builder
	sb.WriteString("# Leaf rules\n")
	for _, d := range dialects {
		fmt.Fprintf(&sb, "\n## %s\n\n", d)
		for _, r := range s.reg.Rules(d) {
			fmt.Fprintf(&sb, "- **%s** (%s, default `%s`): %s", r.Name, ruleKind(r), scalar.Format(r.Default), r.Domain())
			if r.Doc != "" {
				sb.WriteString(". " + r.Doc)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func ruleKind(r scalar.Rule) string {
	if r.IntegerOnly {
		return "int"
	}
	return "float"
}
