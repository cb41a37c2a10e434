// Package collect implements the collect command: scan a project document,
// plan a conflict-free destination layout, copy every selected asset, and
// relink the copied document to the new layout.
package collect

import (
	"context"

	"github.com/scenekit/assetpack/pkg/commands/scan"
	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/executor"
	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/planner"
	"github.com/scenekit/assetpack/pkg/relink"
	"github.com/scenekit/assetpack/pkg/types"
)

// Options holds options for the collect command
type Options struct {
	ProjectPath string
	DestRoot    string
	Config      config.Config
	FileSystem  types.FS // Allow injecting a filesystem for testing

	// SelectCategories, when non-nil, deselects every scanned entry whose
	// category is not listed before planning.
	SelectCategories []types.Category
}

// Result is the collect command's output.
type Result struct {
	Inventory *types.Inventory
	Plan      *types.CollectionPlan
	Execution *executor.Result

	// FailedCount is the user-visible failure total: copy failures plus
	// selected entries skipped at planning time because they are missing
	// on disk.
	FailedCount int

	// Relinked reports how many references were rewritten in the copied
	// document, and how many were skipped.
	RelinkApplied int
	RelinkSkipped int

	// DocumentDest is the collected document's path, empty when document
	// copying is disabled.
	DocumentDest string
}

// Collect runs the full pipeline: scan → plan → execute → relink.
func Collect(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.collect")
	logger.Info().
		Str("project", opts.ProjectPath).
		Str("dest", opts.DestRoot).
		Msg("Collecting project")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	scanned, err := scan.Scan(ctx, scan.Options{
		ProjectPath: opts.ProjectPath,
		Config:      opts.Config,
		FileSystem:  fs,
	})
	if err != nil {
		return nil, err
	}
	inv := scanned.Inventory

	if opts.SelectCategories != nil {
		applySelection(inv, opts.SelectCategories)
	}

	plan, err := planner.Build(inv, fs, planner.Options{
		DestRoot:          opts.DestRoot,
		FlattenFolders:    opts.Config.Options.FlattenFolders,
		RenameToMatchName: opts.Config.Options.RenameToMatch,
	})
	if err != nil {
		return nil, err
	}

	exec, err := executor.Execute(ctx, fs, plan, executor.Options{
		Workers:      opts.Config.Options.Workers,
		CopyDocument: opts.Config.Options.CopyDocument,
		DocumentPath: scanned.Document.DocumentPath(),
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Inventory:    inv,
		Plan:         plan,
		Execution:    exec,
		FailedCount:  exec.FailedCount + plan.SkippedMissing,
		DocumentDest: exec.DocumentDest,
	}

	// Relinking rewrites the copied document, never the working one: the
	// mutator operates on a clone and overwrites the plain copy made by
	// the executor with the relinked version.
	if opts.Config.Options.Relink && exec.DocumentDest != "" {
		instructions := relink.Build(inv, exec.Mapping, plan.DestRoot)
		mut := scanned.Document.Mutator()
		result.RelinkApplied, result.RelinkSkipped = relink.Apply(mut, instructions)
		if err := mut.SaveCopy(exec.DocumentDest); err != nil {
			logger.Warn().Err(err).
				Str("document", exec.DocumentDest).
				Msg("Failed to save relinked document, plain copy left in place")
		}
	}

	logger.Info().
		Int("copied", exec.CopiedCount).
		Int("failed", result.FailedCount).
		Str("document", result.DocumentDest).
		Msg("Collection finished")

	return result, nil
}

func applySelection(inv *types.Inventory, categories []types.Category) {
	inv.SelectAll(false)
	for _, cat := range categories {
		inv.SelectCategory(cat, true)
	}
}
