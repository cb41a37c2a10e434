package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scenekit/assetpack/pkg/types"
)

func TestCategoryTable(t *testing.T) {
	require.Len(t, types.Categories, 7)

	assert.Equal(t, "textures", types.CategoryImage.Folder())
	assert.Equal(t, "videos", types.CategoryMovieClip.Folder())
	assert.True(t, types.CategoryVolume.Valid())
	assert.False(t, types.Category("gizmo").Valid())

	spec, ok := types.CategoryFont.Spec()
	require.True(t, ok)
	assert.Equal(t, "<builtin>", spec.BuiltinSentinel)
}

func TestInventory_Recount(t *testing.T) {
	inv := &types.Inventory{Entries: []types.AssetReference{
		{Name: "a", SizeBytes: 100, Exists: true},
		{Name: "b", SizeBytes: 50, Exists: true},
		// Missing entries carry no meaningful size.
		{Name: "c", SizeBytes: 0, Exists: false},
	}}
	inv.Recount()

	assert.Equal(t, 3, inv.TotalCount)
	assert.EqualValues(t, 150, inv.TotalSize)
	assert.Equal(t, 1, inv.MissingCount)
}

func TestInventory_Selection(t *testing.T) {
	inv := &types.Inventory{Entries: []types.AssetReference{
		{Name: "img", Category: types.CategoryImage, SizeBytes: 10, Exists: true, Selected: true},
		{Name: "snd", Category: types.CategorySound, SizeBytes: 20, Exists: true, Selected: true},
		{Name: "gone", Category: types.CategoryImage, Exists: false, Selected: true},
	}}

	count, size := inv.SelectedStats()
	assert.Equal(t, 2, count)
	assert.EqualValues(t, 30, size)

	inv.SelectAll(false)
	count, _ = inv.SelectedStats()
	assert.Equal(t, 0, count)

	inv.SelectCategory(types.CategorySound, true)
	count, size = inv.SelectedStats()
	assert.Equal(t, 1, count)
	assert.EqualValues(t, 20, size)
}

func TestInventory_SnapshotIsIndependent(t *testing.T) {
	inv := &types.Inventory{Entries: []types.AssetReference{
		{Name: "a", Selected: true},
	}}
	inv.Recount()

	snap := inv.Snapshot()
	inv.Entries[0].Selected = false
	inv.Entries[0].Name = "mutated"

	assert.Equal(t, "a", snap.Entries[0].Name)
	assert.True(t, snap.Entries[0].Selected)
}
