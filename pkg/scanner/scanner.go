// Package scanner walks an AssetSource and produces the normalized
// inventory of external references every later stage works from.
package scanner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

// Options controls which references a scan includes.
type Options struct {
	// Include lists the categories to scan. Nil means all seven.
	Include []types.Category

	// ExcludeUnused skips references whose data block has no users.
	ExcludeUnused bool

	// Workers bounds the per-category probe concurrency. Zero or negative
	// means one worker per category.
	Workers int
}

func (o Options) enabled(cat types.Category) bool {
	if o.Include == nil {
		return true
	}
	for _, c := range o.Include {
		if c == cat {
			return true
		}
	}
	return false
}

// Scan enumerates every enabled category of src, resolves each raw path
// against the document's base directory, probes existence and size, and
// returns the completed inventory.
//
// Output order is stable: entries are grouped by category in the canonical
// enumeration order, and within a category in the source's own order.
//
// When the document has never been persisted there is no base directory to
// resolve against; Scan fails with NO_DOCUMENT_LOCATION and produces no
// inventory.
func Scan(ctx context.Context, src types.AssetSource, fsys types.FS, opts Options) (*types.Inventory, error) {
	logger := logging.GetLogger("scanner")

	if !src.HasLocation() {
		return nil, errors.New(errors.ErrNoDocumentLocation,
			"document has no saved location, save it before scanning")
	}
	baseDir := src.BaseDir()

	done := logging.LogOperationStart(logger, "scan")
	defer done()

	// Per-category enumeration is independent, so categories are probed in
	// parallel and merged back in enumeration order.
	results := make([][]types.AssetReference, len(types.Categories))
	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, spec := range types.Categories {
		if !opts.enabled(spec.Category) {
			continue
		}
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = scanCategory(src, fsys, baseDir, spec, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inv := &types.Inventory{}
	for _, entries := range results {
		inv.Entries = append(inv.Entries, entries...)
	}
	inv.Recount()

	logger.Info().
		Int("entries", inv.TotalCount).
		Int64("total_size", inv.TotalSize).
		Int("missing", inv.MissingCount).
		Msg("Scan complete")

	return inv, nil
}

// scanCategory resolves and probes every raw reference of one category.
func scanCategory(src types.AssetSource, fsys types.FS, baseDir string, spec types.CategorySpec, opts Options) []types.AssetReference {
	logger := logging.GetLogger("scanner").With().
		Str("category", string(spec.Category)).
		Logger()

	var entries []types.AssetReference
	for _, raw := range src.References(spec.Category) {
		if raw.Embedded {
			continue
		}
		if raw.RawPath == "" {
			continue
		}
		if spec.BuiltinSentinel != "" && raw.RawPath == spec.BuiltinSentinel {
			continue
		}
		if opts.ExcludeUnused && raw.UsageCount == 0 {
			continue
		}

		abs := paths.Resolve(baseDir, raw.RawPath)
		exists, size := probe(fsys, abs)
		if !exists {
			logger.Debug().Str("path", abs).Str("name", raw.Identifier).Msg("Referenced file missing")
		}

		entries = append(entries, types.AssetReference{
			Name:         raw.Identifier,
			AbsolutePath: abs,
			Category:     spec.Category,
			SizeBytes:    size,
			Exists:       exists,
			Selected:     true,
		})
	}
	return entries
}

// probe returns whether abs is a regular file and its size. Unreadable or
// directory paths count as missing.
func probe(fsys types.FS, abs string) (exists bool, size int64) {
	info, err := fsys.Stat(abs)
	if err != nil || info.IsDir() {
		return false, 0
	}
	return true, info.Size()
}
