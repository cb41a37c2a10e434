// Package paths implements the document-relative path convention used by
// project documents and the collision-safe naming used by the planner and
// executor.
//
// A path stored in a document may start with the "//" marker, meaning it is
// relative to the directory containing the document. Marker paths always use
// forward slashes, regardless of platform.
package paths

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scenekit/assetpack/pkg/types"
)

// Marker prefixes document-relative paths.
const Marker = "//"

// IsDocumentRelative reports whether raw uses the document-relative marker.
func IsDocumentRelative(raw string) bool {
	return strings.HasPrefix(raw, Marker)
}

// Resolve turns a raw document path into an absolute, normalized path.
// Marker paths are resolved against baseDir; all other paths are normalized
// as-is.
func Resolve(baseDir, raw string) string {
	if IsDocumentRelative(raw) {
		rel := filepath.FromSlash(strings.TrimPrefix(raw, Marker))
		return filepath.Clean(filepath.Join(baseDir, rel))
	}
	return filepath.Clean(raw)
}

// MakeDocumentRelative expresses abs relative to baseDir using the marker
// convention with forward slashes. When no relative form exists (different
// volume roots on some platforms), abs is returned unchanged with ok=false.
func MakeDocumentRelative(baseDir, abs string) (path string, ok bool) {
	rel, err := filepath.Rel(baseDir, abs)
	if err != nil {
		return abs, false
	}
	return Marker + filepath.ToSlash(rel), true
}

// SplitExt splits path into everything before the extension and the
// extension itself (including the dot, possibly empty).
func SplitExt(path string) (base, ext string) {
	ext = filepath.Ext(path)
	return strings.TrimSuffix(path, ext), ext
}

// AvailableName returns the first variant of want that is neither claimed
// nor present on disk, suffixing _1, _2, ... before the extension. The
// counter restarts at 1 for every distinct base path, so the probe sequence
// is deterministic given a fixed processing order.
//
// A destination that cannot be probed (a stat failure other than not-exist,
// such as a permission error on the parent directory) fails the call; it
// must never be retried as if the name were merely taken.
func AvailableName(fsys types.FS, want string, claimed map[string]struct{}) (string, error) {
	ok, err := free(fsys, want, claimed)
	if err != nil {
		return "", err
	}
	if ok {
		return want, nil
	}
	base, ext := SplitExt(want)
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i) + ext
		ok, err := free(fsys, candidate, claimed)
		if err != nil {
			return "", err
		}
		if ok {
			return candidate, nil
		}
	}
}

func free(fsys types.FS, path string, claimed map[string]struct{}) (bool, error) {
	if claimed != nil {
		if _, taken := claimed[path]; taken {
			return false, nil
		}
	}
	if fsys == nil {
		return true, nil
	}
	if _, err := fsys.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	return true, nil
}
