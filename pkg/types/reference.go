package types

// AssetReference is one external file used by the project document.
// AbsolutePath is always fully resolved before the reference is stored;
// SizeBytes is meaningful only when Exists is true.
type AssetReference struct {
	// Name is the source-side identifier of the reference. It is unique
	// within a category but not across categories.
	Name string

	// AbsolutePath is the resolved, normalized location of the file.
	AbsolutePath string

	Category  Category
	SizeBytes int64
	Exists    bool

	// Selected records user intent to include this entry in collection.
	// Scans default it to true.
	Selected bool

	// ContentHash is the hex digest of the file content, populated lazily
	// by the hash indexer. Empty means not yet hashed or unhashable.
	ContentHash string
}

// Identity returns the (category, name) pair that identifies the reference
// back in the host document.
func (r AssetReference) Identity() ReferenceIdentity {
	return ReferenceIdentity{Name: r.Name, Category: r.Category}
}

// ReferenceIdentity addresses one reference in the host document.
type ReferenceIdentity struct {
	Name     string
	Category Category
}

// RawReference is what an AssetSource yields before resolution: the host's
// identifier, the unresolved path as stored in the document, and the flags
// the scanner filters on.
type RawReference struct {
	Identifier string
	RawPath    string

	// Embedded references carry their bytes inside the document and have
	// no external file to resolve.
	Embedded bool

	// UsageCount is the host's user count for the underlying data block.
	// Zero means loaded but unused.
	UsageCount int
}
