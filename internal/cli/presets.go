package cli

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/presets"
	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

var presetsForce bool

func init() {
	presetsCmd.Flags().BoolVar(&presetsForce, "force", false, "Overwrite presets in an existing directory")
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Install the bundled presets into the user presets directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir, err := userdata.GetPresetsDir()
		if err != nil {
			return err
		}
		report, err := presets.Ensure(presets.Bundled(), dir, presetsForce)
		if err != nil {
			return err
		}

		if report.Created {
			fmt.Fprintf(out, "Created %s\n", report.Dir)
		}
		if len(report.Copied) == 0 {
			fmt.Fprintf(out, "%s already exists, nothing copied (use --force to overwrite)\n", report.Dir)
			return nil
		}
		for _, name := range report.Copied {
			fmt.Fprintf(out, "  [ OK ] %s\n", name)
		}
		return nil
	},
}
