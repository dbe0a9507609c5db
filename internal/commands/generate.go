package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/simonhull/pdemeta/internal/discovery"
	"github.com/simonhull/pdemeta/internal/generator"
	"github.com/simonhull/pdemeta/internal/generators/classpath"
	"github.com/simonhull/pdemeta/internal/generators/javaconfig"
	projectgen "github.com/simonhull/pdemeta/internal/generators/project"
	"github.com/simonhull/pdemeta/internal/generators/targetplatform"
	"github.com/simonhull/pdemeta/internal/module"
	"github.com/simonhull/pdemeta/internal/project"
)

type generateOptions struct {
	dryRun bool
	patch  bool
	diff   bool
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Show what would be written without touching any file")
	cmd.Flags().BoolVar(&opts.patch, "patch-target-platform", false, "Replace the work tree placeholder in the target platform file")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "Preview changes to existing files as a diff (implies --dry-run)")
}

// GenerateCmd creates the 'generate' command
func GenerateCmd(app *App) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write .classpath, .project and javaConfig.json for the tree",
		Long: `Discover every module descriptor below --root and write its editor metadata.

The target platform definition (**/*.target outside distrib) must be unique;
otherwise nothing is written.

Examples:
  pdemeta generate
  pdemeta generate --root ~/src/kura --dry-run
  pdemeta generate --diff
  pdemeta generate --patch-target-platform
  pdemeta generate --exclude target --exclude examples`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, opts)
		},
	}

	addGenerateFlags(cmd, &opts)
	return cmd
}

func runGenerate(cmd *cobra.Command, app *App, opts generateOptions) error {
	if opts.diff {
		opts.dryRun = true
	}

	records, err := discover(app)
	if err != nil {
		return err
	}
	for _, r := range records {
		app.Out.Verbose(fmt.Sprintf("%s %s (%s)", r.Dir(), r.Name(), r.RawPackaging()))
	}

	ops, target, err := plan(app, records, opts)
	if err != nil {
		return err
	}

	summary, err := generator.Execute(cmd.Context(), ops, generator.ExecuteOptions{
		DryRun:   opts.dryRun,
		ShowDiff: opts.diff,
		Writer:   app.Out.Writer(),
		Logger:   app.Logger,
	})
	if err != nil {
		return err
	}

	plugins := len(module.PluginLike(records))
	if summary.DryRun {
		app.Out.Info(fmt.Sprintf("Dry run: %d modules (%d plugins), %d files would change", len(records), plugins, len(summary.Results)-summary.Count(generator.StatusUnchanged)))
	} else {
		app.Out.Success(fmt.Sprintf("Generated metadata for %d modules (%d plugins): %d written, %d unchanged", len(records), plugins, summary.Written(), summary.Count(generator.StatusUnchanged)))
	}
	app.Out.Step("Target platform: " + target)
	return nil
}

func discover(app *App) ([]module.Record, error) {
	scanner := discovery.NewScanner(app.Config.DiscoveryOptions(), app.Logger)
	records, err := scanner.Discover(app.Root)
	if err != nil {
		return nil, err
	}
	app.Logger.Info("Discovered modules", "count", len(records), "root", app.Root)
	return records, nil
}

// plan builds every operation of a run and returns them with the resolved
// target platform path. The target platform is resolved before anything
// executes, so a missing or ambiguous definition leaves the tree untouched.
func plan(app *App, records []module.Record, opts generateOptions) ([]generator.Operation, string, error) {
	cfg := app.Config
	var ops []generator.Operation

	classpathOps, err := classpath.New(app.Root, cfg.Output.ClasspathDir).Generate(records)
	if err != nil {
		return nil, "", fmt.Errorf("generating classpath files: %w", err)
	}
	ops = append(ops, classpathOps...)

	projectOps, err := projectgen.New(app.Root).Generate(records)
	if err != nil {
		return nil, "", fmt.Errorf("generating project files: %w", err)
	}
	ops = append(ops, projectOps...)

	target, err := discovery.FindTargetPlatform(app.Root, cfg.Platform.Pattern, cfg.Platform.Exclude)
	if err != nil {
		var tpErr *discovery.TargetPlatformError
		if errors.As(err, &tpErr) {
			app.Logger.Error("There should be exactly one target platform file", "found", len(tpErr.Found), "files", tpErr.Found)
		}
		return nil, "", err
	}
	app.Logger.Info("Found target platform file", "path", target)

	aggregate, err := javaconfig.New(app.Root, cfg.Output.AggregateFile).Generate(records, target)
	if err != nil {
		return nil, "", err
	}
	ops = append(ops, aggregate)

	if opts.patch {
		workTree, err := project.FindWorkTree(app.Root, cfg.Platform.SearchDepth)
		if err != nil {
			app.Logger.Error("Could not find the git work tree", "root", app.Root, "depth", cfg.Platform.SearchDepth)
			return nil, "", err
		}
		app.Logger.Info("Patching target platform file", "work_tree", workTree)

		patch, err := targetplatform.New(cfg.Platform.Placeholder).Generate(filepath.Join(app.Root, filepath.FromSlash(target)), workTree)
		if err != nil {
			return nil, "", err
		}
		ops = append(ops, patch)
	}

	return ops, target, nil
}
