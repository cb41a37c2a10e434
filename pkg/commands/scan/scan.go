// Package scan implements the scan command: load a project document and
// produce its external-reference inventory.
package scan

import (
	"context"

	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/projfile"
	"github.com/scenekit/assetpack/pkg/scanner"
	"github.com/scenekit/assetpack/pkg/types"
)

// Options holds options for the scan command
type Options struct {
	ProjectPath string
	Config      config.Config
	FileSystem  types.FS // Allow injecting a filesystem for testing
}

// Result is the scan command's output.
type Result struct {
	Document  *projfile.Document
	Inventory *types.Inventory
}

// Scan loads the project document and scans its external references.
func Scan(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.scan")
	logger.Info().Str("project", opts.ProjectPath).Msg("Scanning project")

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	doc, err := projfile.Load(fs, opts.ProjectPath)
	if err != nil {
		return nil, err
	}

	inv, err := scanner.Scan(ctx, doc, fs, scanner.Options{
		Include:       opts.Config.IncludedCategories(),
		ExcludeUnused: opts.Config.Options.ExcludeUnused,
		Workers:       opts.Config.Options.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Document: doc, Inventory: inv}, nil
}
