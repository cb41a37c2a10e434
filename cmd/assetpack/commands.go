package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/scenekit/assetpack/internal/version"
	"github.com/scenekit/assetpack/pkg/commands/collect"
	"github.com/scenekit/assetpack/pkg/commands/duplicates"
	"github.com/scenekit/assetpack/pkg/commands/scan"
	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "assetpack",
		Short: "Collect and consolidate project assets",
		Long: `assetpack gathers a project document and every external asset it
references into a self-contained folder, deduplicates redundant copies, and
relinks the document to the new layout.`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase logging verbosity (-v, -vv, -vvv)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to assetpack.toml (default: working dir, then XDG config dir)")

	rootCmd.AddCommand(newScanCmd(&configPath))
	rootCmd.AddCommand(newCollectCmd(&configPath))
	rootCmd.AddCommand(newDuplicatesCmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("assetpack %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

func newScanCmd(configPath *string) *cobra.Command {
	var excludeUnused bool

	cmd := &cobra.Command{
		Use:   "scan <project>",
		Short: "List every external file the project references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("exclude-unused") {
				cfg.Options.ExcludeUnused = excludeUnused
			}

			result, err := scan.Scan(cmd.Context(), scan.Options{
				ProjectPath: args[0],
				Config:      cfg,
			})
			if err != nil {
				return err
			}

			renderInventory(os.Stdout, result.Inventory)
			return nil
		},
	}

	cmd.Flags().BoolVar(&excludeUnused, "exclude-unused", false, "Skip references whose data block has no users")
	return cmd
}

func newCollectCmd(configPath *string) *cobra.Command {
	var (
		dest          string
		flatten       bool
		rename        bool
		noDocument    bool
		noRelink      bool
		workers       int
		excludeUnused bool
		only          []string
	)

	cmd := &cobra.Command{
		Use:   "collect <project>",
		Short: "Copy the project and all referenced assets to a destination folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("flatten") {
				cfg.Options.FlattenFolders = flatten
			}
			if cmd.Flags().Changed("rename-to-match") {
				cfg.Options.RenameToMatch = rename
			}
			if noDocument {
				cfg.Options.CopyDocument = false
			}
			if noRelink {
				cfg.Options.Relink = false
			}
			if cmd.Flags().Changed("workers") {
				cfg.Options.Workers = workers
			}
			if cmd.Flags().Changed("exclude-unused") {
				cfg.Options.ExcludeUnused = excludeUnused
			}

			selectCategories, err := parseCategories(only)
			if err != nil {
				return err
			}

			result, err := collect.Collect(cmd.Context(), collect.Options{
				ProjectPath:      args[0],
				DestRoot:         dest,
				Config:           cfg,
				SelectCategories: selectCategories,
			})
			if err != nil {
				return err
			}

			renderCollectSummary(os.Stdout, result)
			if result.FailedCount > 0 {
				return fmt.Errorf("%d of %d entries failed",
					result.FailedCount, result.Execution.CopiedCount+result.FailedCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination folder (required)")
	_ = cmd.MarkFlagRequired("dest")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "Put every file directly under the destination root")
	cmd.Flags().BoolVar(&rename, "rename-to-match", false, "Name copies after their reference identifier")
	cmd.Flags().BoolVar(&noDocument, "no-document", false, "Do not copy the project document itself")
	cmd.Flags().BoolVar(&noRelink, "no-relink", false, "Do not rewrite paths in the collected document")
	cmd.Flags().IntVar(&workers, "workers", 0, "Copy concurrency (0 = default)")
	cmd.Flags().BoolVar(&excludeUnused, "exclude-unused", false, "Skip references whose data block has no users")
	cmd.Flags().StringSliceVar(&only, "only", nil, "Collect only these categories (image, sound, font, movieclip, cachefile, volume, library)")
	return cmd
}

func newDuplicatesCmd(configPath *string) *cobra.Command {
	var (
		consolidate bool
		output      string
	)

	cmd := &cobra.Command{
		Use:   "duplicates <project>",
		Short: "Report assets with identical content, optionally consolidating them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			result, err := duplicates.Run(cmd.Context(), duplicates.Options{
				ProjectPath: args[0],
				Config:      cfg,
				Consolidate: consolidate,
				OutputPath:  output,
			})
			if err != nil {
				return err
			}

			renderDuplicates(os.Stdout, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&consolidate, "consolidate", false, "Rewrite duplicate references onto the canonical file and save")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Where to save the consolidated document (default: in place)")
	return cmd
}

func parseCategories(names []string) ([]types.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]types.Category, 0, len(names))
	for _, name := range names {
		cat := types.Category(name)
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown category %q", name)
		}
		out = append(out, cat)
	}
	return out, nil
}
