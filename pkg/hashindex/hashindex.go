// Package hashindex computes content fingerprints for inventory entries.
// The digest identifies byte content only: identical content always yields
// the same digest regardless of file name or path. MD5 is enough here, the
// engine only needs collision avoidance within one project, not adversarial
// resistance.
package hashindex

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/types"
)

// chunkSize is the read granularity for streaming files through the digest.
const chunkSize = 64 * 1024

// DefaultWorkers bounds hashing concurrency when the caller does not.
const DefaultWorkers = 4

// HashFile streams the file at path through MD5 and returns the hex digest.
// A missing or unreadable file yields HASH_UNAVAILABLE.
func HashFile(fsys types.FS, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrHashUnavailable, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	h := md5.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errors.Wrapf(err, errors.ErrHashUnavailable, "read %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Populate fills ContentHash for every existing entry of inv, hashing files
// in parallel with at most workers goroutines. Entries that cannot be
// hashed keep an empty hash and are simply excluded from duplicate
// grouping; one unreadable file never fails the pass.
//
// The batch is cancellable between entries through ctx.
func Populate(ctx context.Context, fsys types.FS, inv *types.Inventory, workers int) (hashed, unhashable int, err error) {
	logger := logging.GetLogger("hashindex")
	if workers <= 0 {
		workers = DefaultWorkers
	}

	done := logging.LogOperationStart(logger, "hash-inventory")
	defer done()

	// Each goroutine owns exactly one entry index, so results need no lock.
	outcomes := make([]int8, len(inv.Entries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range inv.Entries {
		if !inv.Entries[i].Exists {
			continue
		}
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			digest, err := HashFile(fsys, inv.Entries[i].AbsolutePath)
			if err != nil {
				logger.Debug().
					Str("path", inv.Entries[i].AbsolutePath).
					Err(err).
					Msg("File unhashable, excluded from duplicate grouping")
				outcomes[i] = -1
				return nil
			}
			inv.Entries[i].ContentHash = digest
			outcomes[i] = 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	for _, o := range outcomes {
		switch o {
		case 1:
			hashed++
		case -1:
			unhashable++
		}
	}

	logger.Info().
		Int("hashed", hashed).
		Int("unhashable", unhashable).
		Msg("Inventory hashing complete")

	return hashed, unhashable, nil
}
