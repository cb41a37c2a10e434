// Package types defines the core data model shared by every stage of the
// collection pipeline: asset references, inventories, plans, mappings, and
// the host-facing interfaces (AssetSource, DocumentMutator, FS).
//
// The engine never holds references into host-owned mutable state. A scan
// reads a point-in-time enumeration through AssetSource and later issues
// explicit rewrite instructions back through DocumentMutator.
package types
