// Package duplicates implements the duplicates command: hash a project's
// inventory, report redundant copies, and optionally consolidate them by
// rewriting duplicate references onto the canonical file.
package duplicates

import (
	"context"

	"github.com/scenekit/assetpack/pkg/commands/scan"
	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/dedupe"
	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/hashindex"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/relink"
	"github.com/scenekit/assetpack/pkg/types"
)

// Options holds options for the duplicates command
type Options struct {
	ProjectPath string
	Config      config.Config
	FileSystem  types.FS // Allow injecting a filesystem for testing

	// Consolidate applies the redirect rewrites and saves the consolidated
	// document.
	Consolidate bool

	// OutputPath is where the consolidated document is written. Empty
	// means in place, over the original document file. Either way the
	// in-memory working document stays untouched and the caller must
	// rescan before further pipeline runs.
	OutputPath string
}

// Result is the duplicates command's output.
type Result struct {
	Inventory *types.Inventory
	Report    *dedupe.Report

	Hashed     int
	Unhashable int

	// Applied/Skipped count redirect rewrites when consolidating.
	Applied int
	Skipped int

	// SavedTo is the consolidated document's path, empty without
	// consolidation.
	SavedTo string
}

// Run scans, hashes and groups the project's assets by content.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.duplicates")
	logger.Info().Str("project", opts.ProjectPath).Msg("Scanning for duplicates")

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

	hashed, unhashable, err := hashindex.Populate(ctx, fs, inv, opts.Config.Options.Workers)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Inventory:  inv,
		Report:     dedupe.Resolve(inv),
		Hashed:     hashed,
		Unhashable: unhashable,
	}

	if !opts.Consolidate || len(result.Report.Groups) == 0 {
		return result, nil
	}

	redirects := dedupe.Redirects(result.Report, scanned.Document.BaseDir())
	mut := scanned.Document.Mutator()
	result.Applied, result.Skipped = applyRedirects(mut, redirects)

	target := opts.OutputPath
	if target == "" {
		target = scanned.Document.DocumentPath()
	}
	if err := mut.SaveCopy(target); err != nil {
		return nil, err
	}
	result.SavedTo = target

	logger.Info().
		Int("applied", result.Applied).
		Str("saved_to", target).
		Msg("Consolidation saved, rescan before collecting")

	return result, nil
}

// applyRedirects rewrites each duplicate reference onto the canonical path.
// Like relinking, redirecting is best-effort per reference.
func applyRedirects(mut types.DocumentMutator, redirects []types.RedirectInstruction) (applied, skipped int) {
	instructions := make([]types.RelinkInstruction, 0, len(redirects))
	for _, r := range redirects {
		instructions = append(instructions, types.RelinkInstruction{
			Identity: r.Identity,
			NewPath:  r.Target,
		})
	}
	return relink.Apply(mut, instructions)
}
