package cli

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing user directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the add-on environment",
	Long: `Check the user directories, the interpreter the native module installs into,
and whether the native module already imports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		problems, err := userdata.Check(out, doctorFix)
		if err != nil {
			return err
		}

		a, err := newApp(ctx, appOptions{console: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Native module check:")
		t, err := a.installer.Target(ctx)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s: %v\n", interpreter, err)
			problems++
		} else {
			fmt.Fprintf(out, "  [ OK ] %s targets %s\n", interpreter, t)
		}
		if a.installer.Probe(ctx) {
			m, _ := a.installer.Module()
			fmt.Fprintf(out, "  [ OK ] %s imports from %s\n", branding.NativeModule(), m.Path)
		} else {
			fmt.Fprintf(out, "  [MISS] %s does not import; run '%s install'\n", branding.NativeModule(), branding.CLIName())
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}
