// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/ben-isaac/pcg-gazebo/internal/config"
	"github.com/ben-isaac/pcg-gazebo/internal/issue"
	"github.com/ben-isaac/pcg-gazebo/pkg/scalar"
	"github.com/ben-isaac/pcg-gazebo/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `sdfscalar config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage sdfscalar configuration",
		Long: `Manage sdfscalar configuration.

Configuration is stored in:
  - Linux: ~/.config/sdfscalar/config.cue
  - macOS: ~/Library/Application Support/sdfscalar/config.cue
  - Windows: %APPDATA%\sdfscalar\config.cue

Every key can be overridden from the environment, e.g. SDFSCALAR_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context())
			if err != nil {
				return &ExitError{Code: types.ExitUsage, Err: err}
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.loadConfig(ctx)
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(string(config.ColorSchemeAuto)); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
		return &ExitError{Code: types.ExitUsage, Err: err}
	}

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(app.stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(app.stdout)

	cfgPath, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: types.FilesystemPath(app.flags.configPath)})
	if err != nil || cfgPath == "" {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	}
	fmt.Fprintln(app.stdout)

	fmt.Fprintf(app.stdout, "%s: %s\n", keyStyle.Render("dialect"), valueStyle.Render(string(cfg.Dialect)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(app.stdout, "  level: %s\n", valueStyle.Render(string(cfg.Log.Level)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(app.stdout, "  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(app.stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "%s:\n", keyStyle.Render("rules"))
	if len(cfg.Rules) == 0 {
		fmt.Fprintf(app.stdout, "  %s\n", SubtitleStyle.Render("(none configured)"))
		return nil
	}
	for _, rc := range cfg.Rules {
		def := "?"
		if n, err := scalar.FromValue(rc.Default); err == nil {
			def = scalar.Format(n)
		}
		fmt.Fprintf(app.stdout, "  - %s:%s (%s, default %s)\n", rc.Dialect, valueStyle.Render(rc.Name), rc.Kind, def)
	}

	return nil
}

func initConfig(app *App) error {
	cfgPath, err := config.CreateDefaultConfig()
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Fprintf(app.stdout, "%s Configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath(app *App) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	defaultPath, err := config.DefaultPath()
	if err != nil {
		return err
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(app.stdout, "Config file: %s\n", defaultPath)

	active, err := config.ResolvePath(config.LoadOptions{ConfigFilePath: types.FilesystemPath(app.flags.configPath)})
	if err != nil {
		return err
	}
	if active == "" {
		active = "(none, using defaults)"
	}
	fmt.Fprintf(app.stdout, "Active file: %s\n", active)

	return nil
}
