package paths_test

import (
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/paths"
	"github.com/scenekit/assetpack/pkg/types"
)

func TestResolve_DocumentRelative(t *testing.T) {
	abs := paths.Resolve("/project", "//textures/brick.png")
	assert.Equal(t, "/project/textures/brick.png", abs)
}

func TestResolve_DocumentRelativeWithParent(t *testing.T) {
	abs := paths.Resolve("/project/scenes", "//../shared/brick.png")
	assert.Equal(t, "/project/shared/brick.png", abs)
}

func TestResolve_AbsolutePassesThrough(t *testing.T) {
	abs := paths.Resolve("/project", "/assets/sky//clouds.exr")
	assert.Equal(t, "/assets/sky/clouds.exr", abs)
}

func TestMakeDocumentRelative(t *testing.T) {
	rel, ok := paths.MakeDocumentRelative("/project", "/project/textures/brick.png")
	require.True(t, ok)
	assert.Equal(t, "//textures/brick.png", rel)
}

func TestMakeDocumentRelative_OutsideBase(t *testing.T) {
	rel, ok := paths.MakeDocumentRelative("/project", "/elsewhere/brick.png")
	require.True(t, ok)
	assert.Equal(t, "//../elsewhere/brick.png", rel)
}

func TestRoundTrip_ResolveAfterRelativize(t *testing.T) {
	original := "/project/sub/textures/brick.png"
	rel, ok := paths.MakeDocumentRelative("/project", original)
	require.True(t, ok)
	assert.Equal(t, original, paths.Resolve("/project", rel))
}

func TestSplitExt(t *testing.T) {
	base, ext := paths.SplitExt("/dest/tex.png")
	assert.Equal(t, "/dest/tex", base)
	assert.Equal(t, ".png", ext)

	base, ext = paths.SplitExt("/dest/noext")
	assert.Equal(t, "/dest/noext", base)
	assert.Equal(t, "", ext)
}

func TestAvailableName_SuffixSequence(t *testing.T) {
	fs := filesystem.NewMemory()
	claimed := make(map[string]struct{})

	var got []string
	for i := 0; i < 4; i++ {
		name, err := paths.AvailableName(fs, "/dest/tex.png", claimed)
		require.NoError(t, err)
		claimed[name] = struct{}{}
		got = append(got, name)
	}

	assert.Equal(t, []string{
		"/dest/tex.png",
		"/dest/tex_1.png",
		"/dest/tex_2.png",
		"/dest/tex_3.png",
	}, got)
}

func TestAvailableName_ProbesDisk(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/dest", 0755))
	require.NoError(t, fs.WriteFile("/dest/tex.png", []byte("old"), 0644))

	name, err := paths.AvailableName(fs, "/dest/tex.png", nil)
	require.NoError(t, err)
	assert.Equal(t, "/dest/tex_1.png", name)
}

func TestAvailableName_Deterministic(t *testing.T) {
	// Re-running the same probe sequence over an empty destination must
	// reproduce the same names.
	for run := 0; run < 2; run++ {
		fs := filesystem.NewMemory()
		claimed := make(map[string]struct{})
		for i := 0; i < 3; i++ {
			name, err := paths.AvailableName(fs, "/dest/tex.png", claimed)
			require.NoError(t, err)
			claimed[name] = struct{}{}
			if i == 0 {
				assert.Equal(t, "/dest/tex.png", name, fmt.Sprintf("run %d", run))
			} else {
				assert.Equal(t, fmt.Sprintf("/dest/tex_%d.png", i), name, fmt.Sprintf("run %d", run))
			}
		}
	}
}

// deniedStatFS simulates a destination whose entries cannot be probed at
// all, as with a permission error on the parent directory.
type deniedStatFS struct {
	types.FS
}

func (deniedStatFS) Stat(string) (fs.FileInfo, error) { return nil, fs.ErrPermission }

func TestAvailableName_UnprobeableDestinationFails(t *testing.T) {
	fsys := deniedStatFS{FS: filesystem.NewMemory()}

	done := make(chan struct{})
	var name string
	var err error
	go func() {
		name, err = paths.AvailableName(fsys, "/dest/textures/tex.png", nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AvailableName did not return for an unprobeable destination")
	}
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Empty(t, name)
}
