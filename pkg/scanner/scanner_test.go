// pkg/scanner/scanner_test.go
// TEST TYPE: Unit
// DEPENDENCIES: Memory FS, FakeSource
// PURPOSE: Verify reference enumeration, filtering, resolution and counters

package scanner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/errors"
	"github.com/scenekit/assetpack/pkg/scanner"
	"github.com/scenekit/assetpack/pkg/testutil"
	"github.com/scenekit/assetpack/pkg/types"
)

func TestScan_NoDocumentLocation(t *testing.T) {
	env := testutil.NewEnv(t)
	src := testutil.NewFakeSource(env.Root)
	src.Located = false

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{})

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoDocumentLocation))
	assert.Nil(t, inv, "a failed scan must not produce a partial inventory")
}

func TestScan_ResolvesAndProbes(t *testing.T) {
	env := testutil.NewEnv(t)
	brick := env.WriteAsset("textures/brick.png", []byte("pixels"))

	src := testutil.NewFakeSource(env.Root)
	src.Add(types.CategoryImage, types.RawReference{
		Identifier: "brick", RawPath: "//textures/brick.png", UsageCount: 1,
	})
	src.Add(types.CategoryImage, types.RawReference{
		Identifier: "ghost", RawPath: "//textures/ghost.png", UsageCount: 1,
	})

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{})
	require.NoError(t, err)
	require.Len(t, inv.Entries, 2)

	assert.Equal(t, brick, inv.Entries[0].AbsolutePath)
	assert.True(t, inv.Entries[0].Exists)
	assert.EqualValues(t, 6, inv.Entries[0].SizeBytes)
	assert.True(t, inv.Entries[0].Selected, "scans default entries to selected")

	assert.False(t, inv.Entries[1].Exists)
	assert.EqualValues(t, 0, inv.Entries[1].SizeBytes)

	assert.Equal(t, 2, inv.TotalCount)
	assert.EqualValues(t, 6, inv.TotalSize)
	assert.Equal(t, 1, inv.MissingCount)
}

func TestScan_SkipsEmbeddedEmptyAndSentinel(t *testing.T) {
	env := testutil.NewEnv(t)
	src := testutil.NewFakeSource(env.Root)
	src.Add(types.CategoryImage, types.RawReference{Identifier: "packed", RawPath: "//a.png", Embedded: true, UsageCount: 1})
	src.Add(types.CategoryImage, types.RawReference{Identifier: "pathless", RawPath: "", UsageCount: 1})
	src.Add(types.CategoryFont, types.RawReference{Identifier: "Bfont", RawPath: "<builtin>", UsageCount: 1})

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{})
	require.NoError(t, err)
	assert.Empty(t, inv.Entries)
}

func TestScan_ExcludeUnused(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteAsset("sounds/used.wav", []byte("aud"))
	env.WriteAsset("sounds/unused.wav", []byte("aud"))

	src := testutil.NewFakeSource(env.Root)
	src.Add(types.CategorySound, types.RawReference{Identifier: "used", RawPath: "//sounds/used.wav", UsageCount: 3})
	src.Add(types.CategorySound, types.RawReference{Identifier: "unused", RawPath: "//sounds/unused.wav", UsageCount: 0})

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{ExcludeUnused: true})
	require.NoError(t, err)
	require.Len(t, inv.Entries, 1)
	assert.Equal(t, "used", inv.Entries[0].Name)
}

func TestScan_CategoryFilterAndOrder(t *testing.T) {
	env := testutil.NewEnv(t)
	env.WriteAsset("textures/a.png", []byte("x"))
	env.WriteAsset("sounds/b.wav", []byte("x"))
	env.WriteAsset("libs/c.scene", []byte("x"))

	src := testutil.NewFakeSource(env.Root)
	// Added out of canonical order on purpose.
	src.Add(types.CategoryLibrary, types.RawReference{Identifier: "c", RawPath: "//libs/c.scene", UsageCount: 1})
	src.Add(types.CategoryImage, types.RawReference{Identifier: "a", RawPath: "//textures/a.png", UsageCount: 1})
	src.Add(types.CategorySound, types.RawReference{Identifier: "b", RawPath: "//sounds/b.wav", UsageCount: 1})

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{})
	require.NoError(t, err)
	require.Len(t, inv.Entries, 3)

	// Output is grouped in canonical category enumeration order.
	assert.Equal(t, types.CategoryImage, inv.Entries[0].Category)
	assert.Equal(t, types.CategorySound, inv.Entries[1].Category)
	assert.Equal(t, types.CategoryLibrary, inv.Entries[2].Category)

	// Include filter drops the rest.
	inv, err = scanner.Scan(context.Background(), src, env.FS, scanner.Options{
		Include: []types.Category{types.CategorySound},
	})
	require.NoError(t, err)
	require.Len(t, inv.Entries, 1)
	assert.Equal(t, "b", inv.Entries[0].Name)
}

func TestScan_AbsolutePathsNormalized(t *testing.T) {
	env := testutil.NewEnv(t)
	shared := env.WriteAsset("shared/tex.png", []byte("x"))

	src := testutil.NewFakeSource(env.Root)
	src.Add(types.CategoryImage, types.RawReference{
		Identifier: "tex", RawPath: env.Root + "//shared/tex.png", UsageCount: 1,
	})

	inv, err := scanner.Scan(context.Background(), src, env.FS, scanner.Options{})
	require.NoError(t, err)
	require.Len(t, inv.Entries, 1)
	assert.Equal(t, shared, inv.Entries[0].AbsolutePath)
}
