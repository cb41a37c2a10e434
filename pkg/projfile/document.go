package projfile

import (
	"path/filepath"
	"strings"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/logging"
	"github.com/scenekit/assetpack/pkg/types"
)

// Asset is one reference as stored in a project document.
type Asset struct {
	Name     string
	Path     string
	Embedded bool
	Users    int
}

// assetTable holds per-category asset lists. Category order is imposed by
// types.Categories, not by the table itself.
type assetTable map[types.Category][]Asset

func (t assetTable) clone() assetTable {
	out := make(assetTable, len(t))
	for cat, assets := range t {
		cp := make([]Asset, len(assets))
		copy(cp, assets)
		out[cat] = cp
	}
	return out
}

// codec turns document bytes into an asset table and back.
type codec interface {
	decode(data []byte) (name string, assets assetTable, err error)
	encode(name string, assets assetTable) ([]byte, error)
}

// codecFor picks a codec from the file extension.
func codecFor(path string) (codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec{}, nil
	case ".xml", ".xproj":
		return xmlCodec{}, nil
	default:
		return nil, errors.Newf(errors.ErrDocumentFormat,
			"unsupported project document format %q", filepath.Ext(path))
	}
}

// Document is a loaded project document. It implements types.AssetSource.
type Document struct {
	fsys   types.FS
	path   string
	name   string
	codec  codec
	assets assetTable
}

// Load reads and parses the project document at path through fsys.
func Load(fsys types.FS, path string) (*Document, error) {
	logger := logging.GetLogger("projfile")

	c, err := codecFor(path)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "resolve %s", path)
	}

	data, err := fsys.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "read project document %s", abs)
	}

	name, assets, err := c.decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDocumentParse, "parse project document %s", abs)
	}

	count := 0
	for _, list := range assets {
		count += len(list)
	}
	logger.Debug().
		Str("document", abs).
		Str("name", name).
		Int("assets", count).
		Msg("Project document loaded")

	return &Document{
		fsys:   fsys,
		path:   abs,
		name:   name,
		codec:  c,
		assets: assets,
	}, nil
}

// Name returns the project's declared name.
func (d *Document) Name() string { return d.name }

// References implements types.AssetSource.
func (d *Document) References(cat types.Category) []types.RawReference {
	assets := d.assets[cat]
	out := make([]types.RawReference, 0, len(assets))
	for _, a := range assets {
		out = append(out, types.RawReference{
			Identifier: a.Name,
			RawPath:    a.Path,
			Embedded:   a.Embedded,
			UsageCount: a.Users,
		})
	}
	return out
}

// HasLocation implements types.AssetSource.
func (d *Document) HasLocation() bool { return d.path != "" }

// BaseDir implements types.AssetSource.
func (d *Document) BaseDir() string { return filepath.Dir(d.path) }

// DocumentPath implements types.AssetSource.
func (d *Document) DocumentPath() string { return d.path }

// Mutator returns a DocumentMutator over a private copy of the document's
// asset table. The receiver document itself is never mutated.
func (d *Document) Mutator() *Mutator {
	return &Mutator{
		fsys:   d.fsys,
		name:   d.name,
		codec:  d.codec,
		assets: d.assets.clone(),
	}
}

// Mutator applies reference rewrites to a cloned document state and
// persists it. It implements types.DocumentMutator.
type Mutator struct {
	fsys   types.FS
	name   string
	codec  codec
	assets assetTable
}

// SetReferencePath implements types.DocumentMutator.
func (m *Mutator) SetReferencePath(id types.ReferenceIdentity, newPath string) error {
	assets := m.assets[id.Category]
	for i := range assets {
		if assets[i].Name == id.Name {
			assets[i].Path = newPath
			return nil
		}
	}
	return errors.Newf(errors.ErrRelinkApplyFailed,
		"no %s reference named %q", id.Category, id.Name)
}

// SaveCopy implements types.DocumentMutator. The target document keeps the
// format of the source document regardless of the target extension. The
// encoded bytes land in a temp file first and are renamed into place, so an
// in-place save never leaves a half-written document behind.
func (m *Mutator) SaveCopy(path string) error {
	data, err := m.codec.encode(m.name, m.assets)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "encode project document")
	}
	if err := m.fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "create folder for %s", path)
	}
	tmp := path + ".tmp"
	if err := m.fsys.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "write project document %s", tmp)
	}
	if err := m.fsys.Rename(tmp, path); err != nil {
		_ = m.fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "replace project document %s", path)
	}
	return nil
}
