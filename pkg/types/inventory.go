package types

// Inventory is the ordered result of one scan: every external reference
// found, grouped by category in enumeration order, plus aggregate counters.
//
// An inventory is owned by the scan that produced it. A rescan replaces the
// whole inventory; plans and mappings derived from an earlier inventory are
// invalidated, never patched.
type Inventory struct {
	Entries []AssetReference

	TotalCount   int
	TotalSize    int64
	MissingCount int
}

// Recount recomputes the aggregate counters from Entries. TotalSize sums
// only existing entries; MissingCount counts the rest.
func (inv *Inventory) Recount() {
	inv.TotalCount = len(inv.Entries)
	inv.TotalSize = 0
	inv.MissingCount = 0
	for _, e := range inv.Entries {
		if e.Exists {
			inv.TotalSize += e.SizeBytes
		} else {
			inv.MissingCount++
		}
	}
}

// SelectAll sets the Selected flag on every entry.
func (inv *Inventory) SelectAll(selected bool) {
	for i := range inv.Entries {
		inv.Entries[i].Selected = selected
	}
}

// SelectCategory sets the Selected flag on every entry of one category.
func (inv *Inventory) SelectCategory(cat Category, selected bool) {
	for i := range inv.Entries {
		if inv.Entries[i].Category == cat {
			inv.Entries[i].Selected = selected
		}
	}
}

// SelectedStats returns the count and total size of entries that are both
// selected and present on disk.
func (inv *Inventory) SelectedStats() (count int, size int64) {
	for _, e := range inv.Entries {
		if e.Selected && e.Exists {
			count++
			size += e.SizeBytes
		}
	}
	return count, size
}

// Snapshot returns a deep copy of the inventory. Consumers that outlive the
// scan hold a snapshot, never the scan's own slice.
func (inv *Inventory) Snapshot() *Inventory {
	out := &Inventory{
		Entries:      make([]AssetReference, len(inv.Entries)),
		TotalCount:   inv.TotalCount,
		TotalSize:    inv.TotalSize,
		MissingCount: inv.MissingCount,
	}
	copy(out.Entries, inv.Entries)
	return out
}
