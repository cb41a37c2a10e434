// Package testutil provides test environments for pipeline tests: an
// in-memory filesystem seeded with a project directory, plus a fake
// AssetSource for exercising stages without a document file.
package testutil

import (
	"path"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/filesystem"
	"github.com/scenekit/assetpack/pkg/types"
)

// Env is an in-memory project environment.
type Env struct {
	FS types.FS

	// Root is the project directory; documents and assets written through
	// the helpers live under it.
	Root string

	// DestRoot is a conventional destination directory for collection
	// tests. It is not created up front.
	DestRoot string

	t *testing.T
}

// NewEnv creates an in-memory environment with a project root.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	fs := filesystem.NewMemory()
	root := "/project"
	require.NoError(t, fs.MkdirAll(root, 0755))
	return &Env{
		FS:       fs,
		Root:     root,
		DestRoot: "/collected",
		t:        t,
	}
}

// WriteAsset writes content at relPath under Root and returns the absolute
// path.
func (e *Env) WriteAsset(relPath string, content []byte) string {
	e.t.Helper()
	abs := path.Join(e.Root, relPath)
	require.NoError(e.t, e.FS.MkdirAll(path.Dir(abs), 0755))
	require.NoError(e.t, e.FS.WriteFile(abs, content, 0644))
	return abs
}

// WriteDocument writes a project document named name under Root and
// returns its absolute path.
func (e *Env) WriteDocument(name, content string) string {
	e.t.Helper()
	return e.WriteAsset(name, []byte(content))
}

// ReadFile returns the content of abs, failing the test on error.
func (e *Env) ReadFile(abs string) []byte {
	e.t.Helper()
	data, err := e.FS.ReadFile(abs)
	require.NoError(e.t, err)
	return data
}

// Exists reports whether abs exists in the environment's filesystem.
func (e *Env) Exists(abs string) bool {
	_, err := e.FS.Stat(abs)
	return err == nil
}

// FakeSource is an AssetSource backed by literal reference tables.
type FakeSource struct {
	Base    string
	Doc     string
	Located bool
	Refs    map[types.Category][]types.RawReference
}

// NewFakeSource returns a located source rooted at base with its document
// at base/project.yaml.
func NewFakeSource(base string) *FakeSource {
	return &FakeSource{
		Base:    base,
		Doc:     path.Join(base, "project.yaml"),
		Located: true,
		Refs:    make(map[types.Category][]types.RawReference),
	}
}

// Add appends a raw reference to one category.
func (s *FakeSource) Add(cat types.Category, ref types.RawReference) *FakeSource {
	s.Refs[cat] = append(s.Refs[cat], ref)
	return s
}

func (s *FakeSource) References(cat types.Category) []types.RawReference { return s.Refs[cat] }
func (s *FakeSource) HasLocation() bool                                  { return s.Located }
func (s *FakeSource) BaseDir() string                                    { return s.Base }
func (s *FakeSource) DocumentPath() string                               { return s.Doc }
