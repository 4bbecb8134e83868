package cli

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/bgs-labs/sketcher/internal/prefs"
	"github.com/bgs-labs/sketcher/internal/registrar"
	"github.com/spf13/cobra"
)

var (
	installFile  string
	installIndex string
)

func init() {
	installCmd.Flags().StringVar(&installFile, "file", "", "Install a local wheel (default: the configured package path)")
	installCmd.Flags().StringVar(&installIndex, "index", "", "Install a package from the package index")
	installCmd.Flags().Lookup("index").NoOptDefVal = branding.NativePackage()
	installCmd.MarkFlagsMutuallyExclusive("file", "index")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the native solver module and register dependent capabilities",
	Long: `Install the native solver module from a local wheel (--file) or from the
package index (--index or --index=<name>). Without flags the configured package path is
used. On success the dependent capabilities are registered in place.`,
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
		defer a.close(ctx)

		src := registrar.FromPath(installFile)
		switch {
		case installIndex != "":
			src = registrar.FromIndex(installIndex)
		case installFile == "":
			src = registrar.FromPath(a.settings.PackagePath())
		}

		res := a.registrar.RequestInstallAndUpgrade(ctx, src)
		fmt.Fprintf(out, "Install %s: %s\n", src, res)
		fmt.Fprintf(out, "State: %s\n\n", a.registrar.State())
		if err := prefs.Render(out, buildPanel(a, &res)); err != nil {
			return err
		}
		return res.Err()
	},
}
