package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bgs-labs/sketcher/internal/theme"
	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	themeCmd.AddCommand(themePresetsCmd)
	themeCmd.AddCommand(themeApplyCmd)
	themeCmd.AddCommand(themeSaveCmd)
	themeCmd.AddCommand(themeResetCmd)
	rootCmd.AddCommand(themeCmd)
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show theme values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return err
		}
		order, leaves := theme.Leaves(store.Theme())
		for _, key := range order {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, leaves[key].Value())
		}
		return nil
	},
}

var themePresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List theme presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := themePresetNames()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No theme presets found. Run 'sketcher presets' to install the bundled ones.")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

var themeApplyCmd = &cobra.Command{
	Use:   "apply <preset>",
	Short: "Apply a theme preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := themePresetPath(args[0])
		if err != nil {
			return err
		}
		p, err := theme.LoadPreset(path)
		if err != nil {
			return err
		}
		store, err := openSettings()
		if err != nil {
			return err
		}
		if err := store.ApplyPreset(p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied theme preset %s\n", p.Name)
		return nil
	},
}

var themeSaveCmd = &cobra.Command{
	Use:   "save <preset>",
	Short: "Save the current theme as a preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := themePresetPath(args[0])
		if err != nil {
			return err
		}
		store, err := openSettings()
		if err != nil {
			return err
		}
		if err := ensureParent(path); err != nil {
			return err
		}
		if err := theme.Capture(store.Theme(), args[0]).Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved theme preset %s\n", path)
		return nil
	},
}

var themeResetCmd = &cobra.Command{
	Use:   "reset [path...]",
	Short: "Restore theme values to their defaults",
	Long:  "Restore the named theme values, or every theme value when none is named.",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return err
		}
		if err := store.ResetTheme(args...); err != nil {
			return err
		}
		if len(args) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Reset all theme values")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %d theme value(s)\n", len(args))
		return nil
	},
}

func themePresetPath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid preset name %q", name)
	}
	dir, err := userdata.GetThemePresetsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+theme.PresetExt), nil
}

func ensureParent(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating preset directory: %w", err)
	}
	return nil
}
