// Package relink turns a realized path mapping into the document-relative
// rewrite instructions that point a collected document at its new asset
// layout. Planning performs no I/O; applying instructions goes back through
// the host's DocumentMutator and is best-effort per reference.
package relink

import (
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

// Build emits one instruction per inventory entry that participated in the
// mapping. New paths are expressed relative to destRoot using the "//"
// marker convention with forward slashes, so a document saved into destRoot
// resolves each reference back to the exact copied file.
func Build(inv *types.Inventory, mapping types.PathMapping, destRoot string) []types.RelinkInstruction {
	var out []types.RelinkInstruction
	for _, e := range inv.Entries {
		newAbs, ok := mapping[e.AbsolutePath]
		if !ok {
			continue
		}
		newPath, ok := paths.MakeDocumentRelative(destRoot, newAbs)
		if !ok {
			// No common root with the destination; keep the absolute path
			// rather than emit a marker path that cannot resolve.
			newPath = newAbs
		}
		out = append(out, types.RelinkInstruction{
			Identity: e.Identity(),
			NewPath:  newPath,
		})
	}
	return out
}

// Apply rewrites each instruction through mut. Relinking is best-effort
// across references: an instruction that fails is logged and skipped so one
// bad reference never blocks the others.
func Apply(mut types.DocumentMutator, instructions []types.RelinkInstruction) (applied, skipped int) {
	logger := logging.GetLogger("relink")

	for _, instr := range instructions {
		if err := mut.SetReferencePath(instr.Identity, instr.NewPath); err != nil {
			logger.Warn().
				Str("name", instr.Identity.Name).
				Str("category", string(instr.Identity.Category)).
				Err(err).
				Msg("Relink failed for reference, skipping")
			skipped++
			continue
		}
		applied++
	}

	logger.Info().
		Int("applied", applied).
		Int("skipped", skipped).
		Msg("Relink instructions applied")

	return applied, skipped
}
