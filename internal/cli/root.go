package cli

import (
	"github.com/bgs-labs/sketcher/internal/branding"
	"github.com/spf13/cobra"
)

// defaultHostVersion is the host version the in-memory host reports.
const defaultHostVersion = "4.2.0"

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	hostVersion string
	interpreter string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` add-on harness. Runs activation, native solver module
installs and deactivation against an in-memory host, and manages the add-on's
settings, presets and theme.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&hostVersion, "host-version", defaultHostVersion, "Version reported by the in-memory host")
	rootCmd.PersistentFlags().StringVar(&interpreter, "python", "python3", "Interpreter the native module is installed into")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
