package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TriM-Organization/bedrock-structure-editor/config"
	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLibrary, "")
	return newApp().Run(append([]string{"mcstructure"}, args...))
}

func writeHouse(t *testing.T, dir string, name string, indices define.BlockMatrix) string {
	t.Helper()

	doc := structure.New(define.Size{2, 1, 2}, define.Origin{10, 64, 10})
	require.NoError(t, doc.SetBlockPalette([]define.BlockDefinition{
		{Name: "minecraft:stone"},
		{Name: "minecraft:oak_planks"},
	}))
	require.NoError(t, doc.SetBlockIndices(0, indices))
	require.NoError(t, doc.SetEntities([]define.EntityRecord{{
		Identifier: "minecraft:cow",
		Position:   mgl32.Vec3{10.5, 64, 11.5},
		Rotation:   mgl32.Vec2{90, 0},
	}}))

	data, err := structure.Export(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestInspectCommands(t *testing.T) {
	dir := t.TempDir()
	house := writeHouse(t, dir, "house.mcstructure", define.BlockMatrix{0, 1, -1, 0})

	assert.NoError(t, run(t, "info", house))
	assert.NoError(t, run(t, "objects", "--hide-block", "minecraft:stone", "--list", house))
	assert.NoError(t, run(t, "block", house, "1", "0", "0"))
	assert.NoError(t, run(t, "entity", house, "0"))
	assert.NoError(t, run(t, "select", house, "block_0_0_1"))
	assert.NoError(t, run(t, "select", house, "entity_0"))

	assert.Error(t, run(t, "block", house, "2", "0", "0"))
	assert.Error(t, run(t, "entity", house, "1"))
	assert.Error(t, run(t, "select", house, "chest_1"))
	assert.Error(t, run(t, "info"))
}

func TestRejectsOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	house := writeHouse(t, dir, "house.nbt", define.BlockMatrix{0, 1, -1, 0})
	assert.ErrorContains(t, run(t, "info", house), "is not a .mcstructure file")
}

func TestConvertAddsExtension(t *testing.T) {
	dir := t.TempDir()
	house := writeHouse(t, dir, "house.mcstructure", define.BlockMatrix{0, 1, -1, 0})

	out := filepath.Join(dir, "copy")
	require.NoError(t, run(t, "convert", house, out))

	want, err := os.ReadFile(house)
	require.NoError(t, err)
	got, err := os.ReadFile(out + structure.Extension)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCompareAndApplyLayers(t *testing.T) {
	dir := t.TempDir()
	older := writeHouse(t, dir, "older.mcstructure", define.BlockMatrix{0, 1, -1, 0})
	newer := writeHouse(t, dir, "newer.mcstructure", define.BlockMatrix{1, 1, 0, -1})
	diff := filepath.Join(dir, "layers.diff")
	out := filepath.Join(dir, "restored.mcstructure")

	require.NoError(t, run(t, "compare", "--verbose", "--out", diff, older, newer))
	require.NoError(t, run(t, "apply-layers", older, diff, out))

	doc, err := loadDocument(out)
	require.NoError(t, err)
	indices, err := doc.BlockIndices(0)
	require.NoError(t, err)
	assert.Equal(t, define.BlockMatrix{1, 1, 0, -1}, indices)
}

func TestCompareRejectsDifferentSizes(t *testing.T) {
	dir := t.TempDir()
	older := writeHouse(t, dir, "older.mcstructure", define.BlockMatrix{0, 1, -1, 0})

	doc := structure.New(define.Size{1, 1, 1}, define.Origin{})
	data, err := structure.Export(doc)
	require.NoError(t, err)
	small := filepath.Join(dir, "small.mcstructure")
	require.NoError(t, os.WriteFile(small, data, 0o644))

	assert.ErrorContains(t, run(t, "compare", older, small), "sizes differ")
}

func TestApplyLayersRejectsOtherGrid(t *testing.T) {
	dir := t.TempDir()
	older := writeHouse(t, dir, "older.mcstructure", define.BlockMatrix{0, 1, -1, 0})
	newer := writeHouse(t, dir, "newer.mcstructure", define.BlockMatrix{1, 1, 0, -1})
	diff := filepath.Join(dir, "layers.diff")
	require.NoError(t, run(t, "compare", "--out", diff, older, newer))

	doc := structure.New(define.Size{1, 1, 1}, define.Origin{})
	data, err := structure.Export(doc)
	require.NoError(t, err)
	small := filepath.Join(dir, "small.mcstructure")
	require.NoError(t, os.WriteFile(small, data, 0o644))

	err = run(t, "apply-layers", small, diff, filepath.Join(dir, "out.mcstructure"))
	assert.ErrorIs(t, err, define.ErrSchemaMismatch)
	_, err = os.Stat(filepath.Join(dir, "out.mcstructure"))
	assert.True(t, os.IsNotExist(err))
}

func TestDiffAndPatch(t *testing.T) {
	dir := t.TempDir()
	older := writeHouse(t, dir, "older.mcstructure", define.BlockMatrix{0, 1, -1, 0})
	newer := writeHouse(t, dir, "newer.mcstructure", define.BlockMatrix{-1, -1, -1, 1})
	patch := filepath.Join(dir, "house.patch")
	out := filepath.Join(dir, "patched.mcstructure")

	require.NoError(t, run(t, "diff", older, newer, patch))
	require.NoError(t, run(t, "patch", older, patch, out))

	want, err := os.ReadFile(newer)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	assert.Error(t, run(t, "patch", newer, patch, out))
}

func TestLibraryCommands(t *testing.T) {
	dir := t.TempDir()
	house := writeHouse(t, dir, "house.mcstructure", define.BlockMatrix{0, 1, -1, 0})
	lib := filepath.Join(dir, "library.db")
	out := filepath.Join(dir, "fetched")

	require.NoError(t, run(t, "library", "--library", lib, "put", house))
	require.NoError(t, run(t, "library", "--library", lib, "ls"))
	require.NoError(t, run(t, "library", "--library", lib, "info", "house"))
	require.NoError(t, run(t, "library", "--library", lib, "get", "house", out))

	want, err := os.ReadFile(house)
	require.NoError(t, err)
	got, err := os.ReadFile(out + structure.Extension)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, run(t, "library", "--library", lib, "rm", "house"))
	assert.Error(t, run(t, "library", "--library", lib, "get", "house", out))
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("library:\n  backend: sqlite\n"), 0o600))

	house := writeHouse(t, dir, "house.mcstructure", define.BlockMatrix{0, 1, -1, 0})
	assert.ErrorContains(t, run(t, "--config", cfg, "info", house), "unknown library backend")
}
