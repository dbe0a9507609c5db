package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/pdemeta/internal/module"
)

// ScanCmd creates the 'scan' command
func ScanCmd(app *App) *cobra.Command {
	var pluginsOnly bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the discovered modules as JSON",
		Long: `Discover modules exactly like 'generate' and print one JSON record per
module (path, descriptor, name, packaging, sources, libs) without writing
anything.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := discover(app)
			if err != nil {
				return err
			}
			if pluginsOnly {
				records = module.PluginLike(records)
			}
			if records == nil {
				records = []module.Record{}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			enc.SetIndent("", "    ")
			if err := enc.Encode(records); err != nil {
				return fmt.Errorf("encoding modules: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&pluginsOnly, "plugins", false, "Only list plugin and test plugin modules")
	return cmd
}
