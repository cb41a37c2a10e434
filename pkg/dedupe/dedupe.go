// Package dedupe groups inventory entries by content hash and proposes the
// reference rewrites that consolidate redundant copies onto one canonical
// file.
package dedupe

import (
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

// Group is one set of entries sharing a content hash. Members are in
// inventory order; Members[0] is the canonical entry every other member
// should be redirected to.
type Group struct {
	Hash    string
	Members []types.AssetReference

	// WastedBytes is the canonical file's size multiplied by the number of
	// redundant members.
	WastedBytes int64
}

// Report is the full result of one duplicate scan. Groups are ordered by
// the inventory position of their canonical member, so two runs over the
// same inventory produce identical reports.
type Report struct {
	Groups []Group

	// DuplicateCount is the number of redundant entries across all groups.
	DuplicateCount int

	// WastedSize is the total redundant bytes across all groups.
	WastedSize int64
}

// Resolve groups the inventory's hashed entries and keeps only groups with
// at least two members. Entries without a hash (missing or unhashable
// files) are excluded. Groups are recomputed fully on every call, never
// patched incrementally.
//
// The canonical member is the first entry encountered in inventory order.
// That is arbitrary but deterministic; it is not a quality signal.
func Resolve(inv *types.Inventory) *Report {
	logger := logging.GetLogger("dedupe")

	byHash := make(map[string][]types.AssetReference)
	var order []string
	for _, e := range inv.Entries {
		if !e.Exists || e.ContentHash == "" {
			continue
		}
		if _, seen := byHash[e.ContentHash]; !seen {
			order = append(order, e.ContentHash)
		}
		byHash[e.ContentHash] = append(byHash[e.ContentHash], e)
	}

	report := &Report{}
	for _, hash := range order {
		members := byHash[hash]
		if len(members) < 2 {
			continue
		}
		wasted := members[0].SizeBytes * int64(len(members)-1)
		report.Groups = append(report.Groups, Group{
			Hash:        hash,
			Members:     members,
			WastedBytes: wasted,
		})
		report.DuplicateCount += len(members) - 1
		report.WastedSize += wasted
	}

	logger.Info().
		Int("groups", len(report.Groups)).
		Int("duplicates", report.DuplicateCount).
		Int64("wasted_bytes", report.WastedSize).
		Msg("Duplicate scan complete")

	return report
}

// Redirects computes one rewrite instruction per redundant member, pointing
// it at the canonical member's file. Targets are document-relative when the
// canonical path shares a root with baseDir, absolute otherwise.
//
// No file is moved or deleted. After the host applies the rewrites the
// caller is expected to rescan; stale hashes and paths are never reused
// across a consolidation cycle.
func Redirects(report *Report, baseDir string) []types.RedirectInstruction {
	var out []types.RedirectInstruction
	for _, g := range report.Groups {
		canonical := g.Members[0]
		target, _ := paths.MakeDocumentRelative(baseDir, canonical.AbsolutePath)
		for _, member := range g.Members[1:] {
			out = append(out, types.RedirectInstruction{
				Identity: member.Identity(),
				Target:   target,
			})
		}
	}
	return out
}
