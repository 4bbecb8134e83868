package cli

import (
	"fmt"

	"github.com/bgs-labs/sketcher/internal/settings"
	"github.com/bgs-labs/sketcher/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage add-on settings",
	Long: `Read and write the add-on settings stored at ~/.bgs/config.yaml.
Theme values are addressed as theme.<path>, for example theme.size.point.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return err
		}
		key, value := args[0], args[1]
		if err := store.Set(key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		got, _ := store.Get(key)
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, got)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return err
		}
		value, err := store.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the flat settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return err
		}
		for _, f := range settings.Fields() {
			value, _ := store.Get(string(f))
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", f, value)
		}
		return nil
	},
}

// openSettings opens the settings file without wiring logging, for
// commands that do not activate the add-on.
func openSettings() (*settings.Store, error) {
	path, err := userdata.GetConfigPath()
	if err != nil {
		return nil, err
	}
	return settings.Open(path)
}
