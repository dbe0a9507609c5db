package commands

import (
	"github.com/spf13/cobra"

	"github.com/simonhull/pdemeta/internal/config"
	"github.com/simonhull/pdemeta/internal/logger"
	"github.com/simonhull/pdemeta/internal/output"
)

// RootCmd creates the pdemeta command tree. Running it without a
// subcommand behaves like "pdemeta generate".
func RootCmd() *cobra.Command {
	var (
		verbose, debug bool
		configPath     string
		root           string
		exclude        []string
		gen            generateOptions
	)
	app := &App{}

	cmd := &cobra.Command{
		Use:   "pdemeta",
		Short: "Generate editor project metadata for Maven/Tycho plugin trees",
		Long: `pdemeta scans a multi-module Maven/Tycho tree and writes the metadata an
editor needs to open it as a workspace:

• .classpath and .project next to every plugin descriptor
• .project for aggregator and repository modules
• javaConfig.json at the root, listing plugin projects and the target platform

Patch the target platform's ${git_work_tree} placeholder with the absolute
checkout path using --patch-target-platform.`,
		Version:       VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Root = root
			app.Logger = logger.New(cmd.ErrOrStderr(), verbose || debug)
			app.Out = output.New(cmd.OutOrStdout(), verbose || debug)

			cfg, err := config.Load(root, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Scan.Exclude = exclude
			}
			app.Config = cfg

			app.Logger.Debug("Loaded configuration", "root", root, "exclude", cfg.Scan.Exclude)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, gen)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	flags.BoolVarP(&debug, "debug", "d", false, "Alias for --verbose")
	flags.StringVar(&configPath, "config", "", "Config file (default is <root>/"+config.FileName+")")
	flags.StringVar(&root, "root", ".", "Root of the tree to scan")
	flags.StringArrayVar(&exclude, "exclude", nil, "Skip descriptors whose path contains this text (repeatable, replaces the configured list)")

	addGenerateFlags(cmd, &gen)

	cmd.AddCommand(GenerateCmd(app))
	cmd.AddCommand(ScanCmd(app))
	cmd.AddCommand(ConfigCmd(app))
	cmd.AddCommand(VersionCmd())

	return cmd
}
