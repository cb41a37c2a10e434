package types

// Category identifies the kind of external asset a reference points at.
type Category string

const (
	CategoryImage     Category = "image"
	CategorySound     Category = "sound"
	CategoryFont      Category = "font"
	CategoryMovieClip Category = "movieclip"
	CategoryCacheFile Category = "cachefile"
	CategoryVolume    Category = "volume"
	CategoryLibrary   Category = "library"
)

// CategorySpec describes how one asset category is scanned and laid out.
// The scanner and planner iterate this table instead of branching per
// category at every stage.
type CategorySpec struct {
	Category Category

	// Folder is the destination subfolder used by the planner when the
	// layout is not flattened.
	Folder string

	// BuiltinSentinel is a raw path value that marks a host built-in
	// resource with no backing file (e.g. a bundled font). Empty when the
	// category has no such sentinel.
	BuiltinSentinel string
}

// Categories is the canonical enumeration order. Scan output is grouped in
// this order, which in turn fixes canonical-member selection during
// duplicate resolution.
var Categories = []CategorySpec{
	{Category: CategoryImage, Folder: "textures"},
	{Category: CategorySound, Folder: "sounds"},
	{Category: CategoryFont, Folder: "fonts", BuiltinSentinel: "<builtin>"},
	{Category: CategoryMovieClip, Folder: "videos"},
	{Category: CategoryCacheFile, Folder: "caches"},
	{Category: CategoryVolume, Folder: "volumes"},
	{Category: CategoryLibrary, Folder: "libraries"},
}

// Spec returns the CategorySpec for c, or false if c is not a known category.
func (c Category) Spec() (CategorySpec, bool) {
	for _, spec := range Categories {
		if spec.Category == c {
			return spec, true
		}
	}
	return CategorySpec{}, false
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	_, ok := c.Spec()
	return ok
}

// Folder returns the destination subfolder for c, or "" for unknown
// categories.
func (c Category) Folder() string {
	spec, _ := c.Spec()
	return spec.Folder
}
