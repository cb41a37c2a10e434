// Package executor performs the file copies a collection plan calls for.
// Execution is best-effort over the whole plan: one failed entry is
// recorded and never aborts the batch.
package executor

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

// DefaultWorkers bounds copy concurrency when the caller does not.
const DefaultWorkers = 4

// Options controls one execution run.
type Options struct {
	// Workers bounds the per-entry copy concurrency.
	Workers int

	// CopyDocument copies the primary document file into the destination
	// root under its original name, with the same collision suffixing as
	// asset files.
	CopyDocument bool

	// DocumentPath is the absolute path of the primary document. Required
	// when CopyDocument is set.
	DocumentPath string
}

// Failure records one entry that could not be copied.
type Failure struct {
	Ref         types.AssetReference
	Destination string
	Reason      error
}

// Result is the outcome of one execution run. CopiedCount plus FailedCount
// always equals the number of plan entries attempted.
type Result struct {
	// RunID identifies this execution in logs and reports.
	RunID string

	// Mapping holds source→destination for every successful copy.
	Mapping types.PathMapping

	CopiedCount int
	FailedCount int
	Failures    []Failure

	// DocumentDest is where the primary document was copied. Empty when
	// document copying was disabled or failed.
	DocumentDest string
}

// Execute copies every plan entry to its destination. Destination
// directories are created idempotently up front. Copies run in parallel
// with at most opts.Workers goroutines; the batch is cancellable between
// entries through ctx, and already-copied files are left in place on
// cancellation.
func Execute(ctx context.Context, fsys types.FS, plan *types.CollectionPlan, opts Options) (*Result, error) {
	runID := uuid.NewString()
	logger := logging.GetLogger("executor").With().
		Str("run_id", runID).
		Int("entries", len(plan.Entries)).
		Logger()

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	if err := ensureDirs(fsys, plan); err != nil {
		return nil, err
	}

	done := logging.LogOperationStart(logger, "execute-plan")
	defer done()

	// One slot per entry; each goroutine writes only its own index, the
	// merge happens once after Wait.
	copyErrs := make([]error, len(plan.Entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range plan.Entries {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry := plan.Entries[i]
			if err := filesystem.CopyFile(fsys, entry.Ref.AbsolutePath, entry.Destination); err != nil {
				logger.Warn().
					Str("name", entry.Ref.Name).
					Str("source", entry.Ref.AbsolutePath).
					Err(err).
					Msg("Entry copy failed")
				copyErrs[i] = errors.Wrapf(err, errors.ErrEntryCopyFailed,
					"copy %s", entry.Ref.Name)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   runID,
		Mapping: make(types.PathMapping, len(plan.Entries)),
	}
	for i, entry := range plan.Entries {
		if copyErrs[i] != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, Failure{
				Ref:         entry.Ref,
				Destination: entry.Destination,
				Reason:      copyErrs[i],
			})
			continue
		}
		result.CopiedCount++
		result.Mapping[entry.Ref.AbsolutePath] = entry.Destination
	}

	if opts.CopyDocument && opts.DocumentPath != "" {
		result.DocumentDest = copyDocument(fsys, logger, plan.DestRoot, opts.DocumentPath)
	}

	logger.Info().
		Int("copied", result.CopiedCount).
		Int("failed", result.FailedCount).
		Msg("Plan executed")

	return result, nil
}

// ensureDirs creates the destination root and every directory a plan entry
// lands in. Creation is idempotent.
func ensureDirs(fsys types.FS, plan *types.CollectionPlan) error {
	if err := fsys.MkdirAll(plan.DestRoot, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "create destination %s", plan.DestRoot)
	}
	seen := map[string]struct{}{plan.DestRoot: {}}
	for _, entry := range plan.Entries {
		dir := filepath.Dir(entry.Destination)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "create folder %s", dir)
		}
	}
	return nil
}

// copyDocument places the primary document in the destination root,
// suffixing on collision. Document copy failure is logged, not fatal.
func copyDocument(fsys types.FS, logger zerolog.Logger, destRoot, docPath string) string {
	dest, err := paths.AvailableName(fsys, filepath.Join(destRoot, filepath.Base(docPath)), nil)
	if err != nil {
		logger.Warn().Str("document", docPath).Err(err).Msg("Document destination unavailable")
		return ""
	}
	if err := filesystem.CopyFile(fsys, docPath, dest); err != nil {
		logger.Warn().Str("document", docPath).Err(err).Msg("Document copy failed")
		return ""
	}
	logger.Debug().Str("document", docPath).Str("dest", dest).Msg("Document copied")
	return dest
}
