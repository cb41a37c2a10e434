package types

// PlanEntry pairs one inventory entry with the destination path the planner
// chose for it.
type PlanEntry struct {
	Ref         AssetReference
	Destination string
}

// CollectionPlan is the complete copy layout for one collection run.
// Destination paths within a plan are pairwise distinct; planning itself
// has no side effects.
type CollectionPlan struct {
	DestRoot string
	Entries  []PlanEntry

	// SkippedMissing counts selected entries that were excluded at planning
	// time because they do not exist on disk. The caller reports them as
	// failures for visibility.
	SkippedMissing int
}

// PathMapping records the realized source→destination correspondence for
// files that were actually copied. It exists only to feed the relink
// planner and is discarded afterwards.
type PathMapping map[string]string

// RelinkInstruction tells the host to rewrite one reference to a new
// document-relative path. NewPath uses the "//" marker convention with
// forward slashes regardless of platform.
type RelinkInstruction struct {
	Identity ReferenceIdentity
	NewPath  string
}

// RedirectInstruction proposes rewriting a duplicate reference to the
// canonical copy's path. It is advisory: no file is moved or deleted.
type RedirectInstruction struct {
	Identity ReferenceIdentity

	// Target is the canonical file's path, document-relative when the
	// canonical file shares a root with the document, absolute otherwise.
	Target string
}
