package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bgs-labs/sketcher/internal/installer"
	"github.com/bgs-labs/sketcher/internal/prefs"
	"github.com/bgs-labs/sketcher/internal/theme"
	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Activate the add-on and show the preferences panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, appOptions{console: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		if err := a.activate(ctx); err != nil {
			return err
		}
		defer a.close(ctx)

		fmt.Fprintf(cmd.OutOrStdout(), "State: %s\n\n", a.registrar.State())
		return prefs.Render(cmd.OutOrStdout(), buildPanel(a, nil))
	},
}

// buildPanel assembles the preferences panel for a.
func buildPanel(a *app, last *installer.Result) prefs.Panel {
	names, _ := themePresetNames()
	return prefs.Build(prefs.Input{
		Status:      a.registrar,
		Module:      a.installer,
		Settings:    a.settings,
		LastInstall: last,
		Presets:     names,
	})
}

// themePresetNames lists the theme presets in the user presets directory.
func themePresetNames() ([]string, error) {
	dir, err := userdata.GetThemePresetsDir()
	if err != nil {
		return nil, err
	}
	paths, err := theme.ListPresets(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, strings.TrimSuffix(filepath.Base(p), theme.PresetExt))
	}
	return names, nil
}
