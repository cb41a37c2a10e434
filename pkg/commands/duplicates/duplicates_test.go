package duplicates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/commands/duplicates"
	"github.com/scenekit/assetpack/pkg/config"
	"github.com/scenekit/assetpack/pkg/projfile"
	"github.com/scenekit/assetpack/pkg/testutil"
	"github.com/scenekit/assetpack/pkg/types"
)

const dupProject = `name: demo
assets:
  images:
    - name: brick
      path: //textures/brick.png
    - name: brick_backup
      path: //backup/brick.png
    - name: sky
      path: //textures/sky.png
`

func writeDupEnv(t *testing.T) (*testutil.Env, string) {
	t.Helper()
	env := testutil.NewEnv(t)
	doc := env.WriteDocument("scene.yaml", dupProject)
	env.WriteAsset("textures/brick.png", []byte("shared pixels"))
	env.WriteAsset("backup/brick.png", []byte("shared pixels"))
	env.WriteAsset("textures/sky.png", []byte("unique pixels!"))
	return env, doc
}

func TestRun_ReportsDuplicateGroup(t *testing.T) {
	env, doc := writeDupEnv(t)

	result, err := duplicates.Run(context.Background(), duplicates.Options{
		ProjectPath: doc,
		Config:      config.Default(),
		FileSystem:  env.FS,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Hashed)
	require.Len(t, result.Report.Groups, 1)
	group := result.Report.Groups[0]
	assert.Len(t, group.Members, 2)
	assert.Equal(t, "brick", group.Members[0].Name)
	assert.Equal(t, 1, result.Report.DuplicateCount)
	assert.EqualValues(t, len("shared pixels"), result.Report.WastedSize)
	assert.Empty(t, result.SavedTo, "report-only runs save nothing")
}

func TestRun_ConsolidateRewritesDuplicates(t *testing.T) {
	env, doc := writeDupEnv(t)

	result, err := duplicates.Run(context.Background(), duplicates.Options{
		ProjectPath: doc,
		Config:      config.Default(),
		FileSystem:  env.FS,
		Consolidate: true,
		OutputPath:  "/project/consolidated.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, "/project/consolidated.yaml", result.SavedTo)

	// The duplicate reference now points at the canonical file; the
	// canonical and unique references are untouched. No file was moved.
	saved, err := projfile.Load(env.FS, result.SavedTo)
	require.NoError(t, err)
	images := saved.References(types.CategoryImage)
	require.Len(t, images, 3)
	assert.Equal(t, "//textures/brick.png", images[0].RawPath)
	assert.Equal(t, "//textures/brick.png", images[1].RawPath)
	assert.Equal(t, "//textures/sky.png", images[2].RawPath)
	assert.True(t, env.Exists("/project/backup/brick.png"))
}

func TestRun_ConsolidateInPlace(t *testing.T) {
	env, doc := writeDupEnv(t)

	result, err := duplicates.Run(context.Background(), duplicates.Options{
		ProjectPath: doc,
		Config:      config.Default(),
		FileSystem:  env.FS,
		Consolidate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, doc, result.SavedTo)

	// A rescan of the saved document sees the redirect.
	saved, err := projfile.Load(env.FS, doc)
	require.NoError(t, err)
	assert.Equal(t, "//textures/brick.png",
		saved.References(types.CategoryImage)[1].RawPath)
}

func TestRun_NoDuplicates(t *testing.T) {
	env := testutil.NewEnv(t)
	doc := env.WriteDocument("scene.yaml", "name: x\nassets:\n  images:\n    - name: only\n      path: //a.png\n")
	env.WriteAsset("a.png", []byte("alone"))

	result, err := duplicates.Run(context.Background(), duplicates.Options{
		ProjectPath: doc,
		Config:      config.Default(),
		FileSystem:  env.FS,
		Consolidate: true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Report.Groups)
	assert.Empty(t, result.SavedTo, "nothing to consolidate, nothing saved")
}
