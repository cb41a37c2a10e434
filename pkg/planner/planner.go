// Package planner computes the conflict-free copy layout for a collection
// run. Planning is a pure transformation over the inventory: it claims no
// disk space and writes nothing.
package planner

import (
	"os"
	"path/filepath"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

// Options controls the destination layout.
type Options struct {
	// DestRoot is the destination root directory.
	DestRoot string

	// FlattenFolders puts every file directly under DestRoot instead of
	// the per-category subfolders.
	FlattenFolders bool

	// RenameToMatchName names each copy after the reference's identifier,
	// keeping the original extension.
	RenameToMatchName bool
}

// Build maps every selected, existing inventory entry to a destination
// path. Name collisions, whether with an earlier plan entry or with a file
// already on disk from a previous run, are resolved by suffixing _1, _2, …
// before the extension. Given the same inventory order and an empty
// destination, two runs produce identical plans.
func Build(inv *types.Inventory, fsys types.FS, opts Options) (*types.CollectionPlan, error) {
	logger := logging.GetLogger("planner")

	if opts.DestRoot == "" {
		return nil, errors.New(errors.ErrInvalidDestination, "no destination folder set")
	}
	destRoot := filepath.Clean(opts.DestRoot)
	if info, err := fsys.Stat(destRoot); err == nil && !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidDestination,
			"destination %s exists and is not a directory", destRoot)
	} else if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrInvalidDestination, "probe destination %s", destRoot)
	}

	plan := &types.CollectionPlan{DestRoot: destRoot}
	claimed := make(map[string]struct{})
	planned := make(map[string]struct{})

	for _, ref := range inv.Entries {
		if !ref.Selected {
			continue
		}
		if !ref.Exists {
			plan.SkippedMissing++
			continue
		}
		// Several references may point at one source file. It is copied
		// once; the path mapping relinks every such reference to that copy.
		if _, done := planned[ref.AbsolutePath]; done {
			continue
		}

		dir := destRoot
		if !opts.FlattenFolders {
			dir = filepath.Join(destRoot, ref.Category.Folder())
		}

		name := filepath.Base(ref.AbsolutePath)
		if opts.RenameToMatchName {
			_, ext := paths.SplitExt(name)
			name = ref.Name + ext
		}

		dest, err := paths.AvailableName(fsys, filepath.Join(dir, name), claimed)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidDestination,
				"probe destination for %s", ref.Name)
		}
		claimed[dest] = struct{}{}
		planned[ref.AbsolutePath] = struct{}{}

		plan.Entries = append(plan.Entries, types.PlanEntry{
			Ref:         ref,
			Destination: dest,
		})
	}

	logger.Info().
		Str("dest", destRoot).
		Int("entries", len(plan.Entries)).
		Int("skipped_missing", plan.SkippedMissing).
		Bool("flatten", opts.FlattenFolders).
		Msg("Collection plan built")

	return plan, nil
}
