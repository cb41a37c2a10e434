package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.True(t, cfg.Include.Images)
	assert.True(t, cfg.Include.Libraries)
	assert.True(t, cfg.Options.CopyDocument)
	assert.True(t, cfg.Options.Relink)
	assert.False(t, cfg.Options.FlattenFolders)
	assert.Equal(t, 4, cfg.Options.Workers)
	assert.Nil(t, cfg.IncludedCategories(), "all categories enabled means no filter")
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[include]
images = true
sounds = false
fonts = true
movieclips = false
caches = false
volumes = false
libraries = true

[options]
flatten_folders = true
workers = 8
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Options.FlattenFolders)
	assert.Equal(t, 8, cfg.Options.Workers)
	assert.Equal(t, []types.Category{
		types.CategoryImage,
		types.CategoryFont,
		types.CategoryLibrary,
	}, cfg.IncludedCategories())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[options]\nrename_to_match = true\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Options.RenameToMatch)
	assert.True(t, cfg.Options.CopyDocument, "unset options keep their defaults")
	assert.True(t, cfg.Include.Sounds)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad),
		"an explicitly named config file must exist")

	bad := writeConfig(t, "not [valid toml")
	_, err = config.Load(bad)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))

	negative := writeConfig(t, "[options]\nworkers = -2\n")
	_, err = config.Load(negative)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}
