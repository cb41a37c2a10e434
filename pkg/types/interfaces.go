package types

import (
	"io"
	"io/fs"
	"time"
)

// AssetSource is the host-side contract the scanner reads from. It is a
// point-in-time snapshot: the engine never reaches back into live host
// state through it.
type AssetSource interface {
	// References yields the raw references of one category, in the host's
	// enumeration order.
	References(cat Category) []RawReference

	// HasLocation reports whether the document has ever been persisted.
	// Without a location there is no base directory and path resolution is
	// undefined.
	HasLocation() bool

	// BaseDir returns the directory containing the document. Only valid
	// when HasLocation is true.
	BaseDir() string

	// DocumentPath returns the absolute path of the document file itself.
	// Only valid when HasLocation is true.
	DocumentPath() string
}

// DocumentMutator applies reference rewrites back to the host document.
type DocumentMutator interface {
	// SetReferencePath rewrites one reference to point at newPath.
	SetReferencePath(id ReferenceIdentity, newPath string) error

	// SaveCopy persists the current (mutated) document state to path
	// without disturbing the working session afterwards.
	SaveCopy(path string) error
}

// FS is the filesystem surface the engine needs: stat, chunked read,
// copy-with-metadata primitives, and idempotent directory creation.
// Implementations exist for the OS filesystem and for afero-backed
// in-memory filesystems used in tests.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
	Chmod(name string, mode fs.FileMode) error
	Chtimes(name string, atime, mtime time.Time) error
}
