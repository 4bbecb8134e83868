package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(enableCmd)
}

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Run an activate/deactivate cycle and print the host registry",
	Long: `Activate the add-on against the in-memory host, list the capabilities it
registered, then deactivate and list what was unregistered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		a, err := newApp(ctx, appOptions{console: cmd.ErrOrStderr()})
		if err != nil {
			return err
		}
		if err := a.activate(ctx); err != nil {
			return err
		}

		fmt.Fprintf(out, "State: %s\n", a.registrar.State())
		for _, d := range a.host.Registered() {
			fmt.Fprintf(out, "  + %s\n", d)
		}

		mark := len(a.host.Events())
		if err := a.close(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "State: %s\n", a.registrar.State())
		for _, e := range a.host.Events()[mark:] {
			fmt.Fprintf(out, "  - %s\n", e.ID)
		}
		return nil
	},
}
