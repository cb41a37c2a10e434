package filesystem

import (
	"io"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/types"
)

// CopyFile copies src to dst through fsys, preserving the file mode and
// modification time where the implementation supports it. dst's parent
// directory must already exist.
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "stat %s", src)
	}

	in, err := fsys.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "open %s", src)
	}
	defer func() { _ = in.Close() }()

	out, err := fsys.Create(dst)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileWrite, "copy %s", dst)
	}
	if err := out.Close(); err != nil {
		_ = fsys.Remove(dst)
		return errors.Wrapf(err, errors.ErrFileWrite, "close %s", dst)
	}

	// Metadata preservation is best-effort; in-memory filesystems may not
	// support either call.
	_ = fsys.Chmod(dst, info.Mode().Perm())
	_ = fsys.Chtimes(dst, info.ModTime(), info.ModTime())

	return nil
}
