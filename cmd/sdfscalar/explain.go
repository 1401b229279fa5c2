// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ben-isaac/pcg-gazebo/internal/issue"

	"github.com/spf13/cobra"
)

// newExplainCommand creates the `sdfscalar explain` command.
func newExplainCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain [issue]",
		Short: "Explain an error and how to fix it",
		Long: `Show the help page of an issue. Error messages end with the command to run,
e.g. 'sdfscalar explain value-out-of-range'. Without an argument, every issue
name is listed.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return issue.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listIssues(app)
				return nil
			}
			return explainIssue(cmd.Context(), app, args[0])
		},
	}
}

func listIssues(app *App) {
	fmt.Fprintln(app.stdout, TitleStyle.Render("Issues"))
	fmt.Fprintln(app.stdout)
	for _, is := range issue.Values() {
		fmt.Fprintf(app.stdout, "  %s  %s\n", CmdStyle.Render(fmt.Sprintf("%-22s", is.Name())), SubtitleStyle.Render(issueTitle(is)))
	}
}

func explainIssue(ctx context.Context, app *App, name string) error {
	is, ok := issue.Lookup(name)
	if !ok {
		return usageError("unknown issue %q (run 'sdfscalar explain' to list them)", name)
	}
	out, err := is.Render(app.glamourStyle(ctx))
	if err != nil {
		return fmt.Errorf("failed to render issue %s: %w", name, err)
	}
	fmt.Fprint(app.stdout, out)
	return nil
}

// issueTitle returns the first heading of the page without its marker.
func issueTitle(is *issue.Issue) string {
	for _, line := range strings.Split(string(is.MarkdownMsg()), "\n") {
		if title, ok := strings.CutPrefix(line, "# "); ok {
			return strings.TrimSuffix(title, "!")
		}
	}
	return ""
}
