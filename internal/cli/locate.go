package cli

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(locateCmd)
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Find the bundled native module wheel for this interpreter",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir, err := userdata.GetArtifactsDir()
		if err != nil {
			return err
		}
		a, err := newApp(ctx, appOptions{console: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}

		t, err := a.installer.Target(ctx)
		if err != nil {
			return fmt.Errorf("detecting interpreter: %w", err)
		}
		path, ok := a.installer.LocateBundledArtifact(ctx, dir)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "No bundled wheel matching %s in %s\n", t.Pattern(), dir)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}
