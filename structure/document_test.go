package structure

import (
	"encoding/binary"
	"testing"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioA is a 2x2x2 structure whose bottom layer alternates
// between stone and air.
func scenarioA(t *testing.T) *Document {
	t.Helper()

	doc := New(define.Size{2, 2, 2}, define.Origin{0, 0, 0})
	require.NoError(t, doc.SetBlockPalette([]define.BlockDefinition{{Name: "stone"}}))
	require.NoError(t, doc.SetBlockIndices(0, define.BlockMatrix{0, -1, 0, -1, 0, -1, 0, -1}))
	return doc
}

func TestNewDocument(t *testing.T) {
	doc := New(define.Size{2, 3, 4}, define.Origin{1, 2, 3})

	version, err := doc.FormatVersion()
	require.NoError(t, err)
	assert.EqualValues(t, DefaultFormatVersion, version)

	size, err := doc.Size()
	require.NoError(t, err)
	assert.Equal(t, define.Size{2, 3, 4}, size)

	origin, err := doc.WorldOrigin()
	require.NoError(t, err)
	assert.Equal(t, define.Origin{1, 2, 3}, origin)

	layers, err := doc.Layers()
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, define.NewBlockMatrix(24), layers[0])
	assert.Equal(t, define.NewBlockMatrix(24), layers[1])

	palette, err := doc.BlockPalette()
	require.NoError(t, err)
	assert.Empty(t, palette)

	entities, err := doc.Entities()
	require.NoError(t, err)
	assert.Empty(t, entities)

	data, err := doc.BlockPositionData()
	require.NoError(t, err)
	assert.Empty(t, data)

	assert.NoError(t, doc.Validate())
}

func TestScenarioARoundTrip(t *testing.T) {
	doc := scenarioA(t)
	require.NoError(t, doc.Validate())

	data, err := Export(doc)
	require.NoError(t, err)

	imported, err := Import(data)
	require.NoError(t, err)
	assert.True(t, nbt.Equal(doc.Root(), imported.Root()))

	palette, err := imported.BlockPalette()
	require.NoError(t, err)
	require.Len(t, palette, 1)
	assert.Equal(t, "stone", palette[0].Name)
	assert.EqualValues(t, 0, palette[0].PaletteIndex)
	assert.Equal(t, 0, palette[0].States.Len())

	indices, err := imported.BlockIndices(0)
	require.NoError(t, err)
	assert.Equal(t, define.BlockMatrix{0, -1, 0, -1, 0, -1, 0, -1}, indices)

	again, err := Export(imported)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestImportSkipsPreamble(t *testing.T) {
	data, err := Export(scenarioA(t))
	require.NoError(t, err)

	wrapped := binary.LittleEndian.AppendUint32(nil, 10)
	wrapped = binary.LittleEndian.AppendUint32(wrapped, uint32(len(data)))
	wrapped = append(wrapped, data...)

	doc, err := Import(wrapped)
	require.NoError(t, err)
	size, err := doc.Size()
	require.NoError(t, err)
	assert.Equal(t, define.Size{2, 2, 2}, size)
}

func TestImportFailures(t *testing.T) {
	data, err := Export(scenarioA(t))
	require.NoError(t, err)

	_, err = Import(data[:len(data)-3])
	assert.ErrorIs(t, err, nbt.ErrMalformedInput)

	_, err = Import(append(append([]byte{}, data...), 0x00))
	assert.ErrorIs(t, err, nbt.ErrMalformedInput)

	_, err = Import([]byte{0xff})
	assert.ErrorIs(t, err, nbt.ErrMalformedInput)

	notCompound, err := nbt.Encode(nbt.NamedTag{Tag: nbt.Int(7)}, nbt.LittleEndian)
	require.NoError(t, err)
	_, err = Import(notCompound)
	assert.ErrorIs(t, err, define.ErrSchemaMismatch)
}

func TestSizeAcceptsIntArray(t *testing.T) {
	doc := scenarioA(t)
	require.NoError(t, doc.SetPath(PathSize, nbt.IntArray{3, 4, 5}))

	size, err := doc.Size()
	require.NoError(t, err)
	assert.Equal(t, define.Size{3, 4, 5}, size)
}

func TestAccessorsReportSchemaMismatch(t *testing.T) {
	cases := []struct {
		name  string
		setup func(doc *Document)
		read  func(doc *Document) error
	}{
		{
			name:  "size missing",
			setup: func(doc *Document) { doc.Root().Delete(PathSize) },
			read:  func(doc *Document) error { _, err := doc.Size(); return err },
		},
		{
			name:  "size is a string",
			setup: func(doc *Document) { doc.Root().Set(PathSize, nbt.String("2x2x2")) },
			read:  func(doc *Document) error { _, err := doc.Size(); return err },
		},
		{
			name:  "size has two elements",
			setup: func(doc *Document) { doc.Root().Set(PathSize, nbt.IntArray{2, 2}) },
			read:  func(doc *Document) error { _, err := doc.Size(); return err },
		},
		{
			name:  "origin holds floats",
			setup: func(doc *Document) { doc.Root().Set(PathWorldOrigin, nbt.NewList(nbt.KindFloat, nbt.Float(1), nbt.Float(2), nbt.Float(3))) },
			read:  func(doc *Document) error { _, err := doc.WorldOrigin(); return err },
		},
		{
			name:  "structure is not a compound",
			setup: func(doc *Document) { doc.Root().Set(PathStructure, nbt.Int(1)) },
			read:  func(doc *Document) error { _, err := doc.BlockIndices(0); return err },
		},
		{
			name:  "block indices are not lists",
			setup: func(doc *Document) { _ = doc.SetPath(PathBlockIndices, nbt.NewList(nbt.KindInt, nbt.Int(0))) },
			read:  func(doc *Document) error { _, err := doc.LayerCount(); return err },
		},
		{
			name:  "palette missing",
			setup: func(doc *Document) { doc.Root().Set(PathStructure, nbt.NewCompound()) },
			read:  func(doc *Document) error { _, err := doc.BlockPalette(); return err },
		},
		{
			name: "palette entry without name",
			setup: func(doc *Document) {
				_ = doc.SetPath(PathBlockPalette, nbt.NewList(nbt.KindCompound, nbt.NewCompound().Set("states", nbt.NewCompound())))
			},
			read: func(doc *Document) error { _, err := doc.BlockPalette(); return err },
		},
		{
			name: "palette states are a string",
			setup: func(doc *Document) {
				_ = doc.SetPath(PathBlockPalette, nbt.NewList(nbt.KindCompound, nbt.NewCompound().
					Set("name", nbt.String("stone")).
					Set("states", nbt.String("none"))))
			},
			read: func(doc *Document) error { _, err := doc.BlockPalette(); return err },
		},
		{
			name: "position data key is not an index",
			setup: func(doc *Document) {
				_ = doc.SetPath(PathBlockPositionData, nbt.NewCompound().Set("chest", nbt.NewCompound()))
			},
			read: func(doc *Document) error { _, err := doc.BlockPositionData(); return err },
		},
		{
			name:  "format version missing",
			setup: func(doc *Document) { doc.Root().Delete(PathFormatVersion) },
			read:  func(doc *Document) error { _, err := doc.FormatVersion(); return err },
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			doc := scenarioA(t)
			c.setup(doc)
			assert.ErrorIs(t, c.read(doc), define.ErrSchemaMismatch)
		})
	}
}

func TestBlockIndicesLayerOutOfRange(t *testing.T) {
	doc := scenarioA(t)

	_, err := doc.BlockIndices(2)
	assert.ErrorIs(t, err, define.ErrOutOfRange)
	_, err = doc.BlockIndices(-1)
	assert.ErrorIs(t, err, define.ErrOutOfRange)

	assert.ErrorIs(t, doc.SetBlockIndices(3, nil), define.ErrOutOfRange)
	require.NoError(t, doc.SetBlockIndices(2, define.NewBlockMatrix(8)))

	count, err := doc.LayerCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOptionalFieldsReadAsEmpty(t *testing.T) {
	doc := scenarioA(t)
	structure, ok := doc.Root().Get(PathStructure)
	require.True(t, ok)
	structure.(*nbt.Compound).Delete("entities")
	require.NoError(t, doc.SetPath(PathDefaultPalette, nbt.NewCompound().Set("block_palette", nbt.NewList(nbt.KindCompound))))

	entities, err := doc.Entities()
	require.NoError(t, err)
	assert.Empty(t, entities)

	count, err := doc.EntityCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	data, err := doc.BlockPositionData()
	require.NoError(t, err)
	assert.Empty(t, data)

	blockEntityData, err := doc.BlockEntityData(0)
	require.NoError(t, err)
	assert.Nil(t, blockEntityData)
}

func TestEntities(t *testing.T) {
	doc := New(define.Size{1, 1, 1}, define.Origin{5, 60, 5})

	fields := nbt.NewCompound().
		Set("Health", nbt.Float(10)).
		Set("UniqueID", nbt.Long(1))
	require.NoError(t, doc.SetEntities([]define.EntityRecord{
		{
			Identifier:  "minecraft:cow",
			Position:    mgl32.Vec3{10, 64, 10},
			Rotation:    mgl32.Vec2{90, 0},
			UniqueID:    -42,
			HasUniqueID: true,
			Definitions: []string{"+minecraft:cow", "+minecraft:cow_adult"},
			Fields:      fields,
		},
		{
			Identifier: "minecraft:armor_stand",
			Position:   mgl32.Vec3{6.5, 61, 5.5},
			Fields:     fields,
		},
	}))

	data, err := Export(doc)
	require.NoError(t, err)
	doc, err = Import(data)
	require.NoError(t, err)

	cow, err := doc.Entity(0)
	require.NoError(t, err)
	assert.Equal(t, 0, cow.Ordinal)
	assert.Equal(t, "minecraft:cow", cow.Identifier)
	assert.Equal(t, mgl32.Vec3{10, 64, 10}, cow.Position)
	assert.Equal(t, mgl32.Vec2{90, 0}, cow.Rotation)
	assert.True(t, cow.HasUniqueID)
	assert.EqualValues(t, -42, cow.UniqueID)
	assert.Equal(t, []string{"+minecraft:cow", "+minecraft:cow_adult"}, cow.Definitions)

	health, ok := cow.Fields.Get("Health")
	require.True(t, ok)
	assert.Equal(t, nbt.Float(10), health)

	origin, err := doc.WorldOrigin()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{5, 4, 5}, cow.LocalPosition(origin))

	stand, err := doc.Entity(1)
	require.NoError(t, err)
	assert.False(t, stand.HasUniqueID)
	assert.Empty(t, stand.Definitions)

	all, err := doc.Entities()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = doc.Entity(2)
	assert.ErrorIs(t, err, define.ErrOutOfRange)
	_, err = doc.Entity(-1)
	assert.ErrorIs(t, err, define.ErrOutOfRange)

	// Fields of the input record are not touched by SetEntities.
	_, ok = fields.Get("identifier")
	assert.False(t, ok)
}

func TestEntityWithoutPos(t *testing.T) {
	doc := New(define.Size{1, 1, 1}, define.Origin{})
	require.NoError(t, doc.SetPath(PathEntities, nbt.NewList(nbt.KindCompound,
		nbt.NewCompound().Set("identifier", nbt.String("minecraft:pig")),
	)))

	_, err := doc.Entity(0)
	assert.ErrorIs(t, err, define.ErrSchemaMismatch)
	_, err = doc.Entities()
	assert.ErrorIs(t, err, define.ErrSchemaMismatch)
}

func TestBlockEntityData(t *testing.T) {
	doc := scenarioA(t)
	chest := nbt.NewCompound().Set("id", nbt.String("Chest"))

	require.NoError(t, doc.SetBlockEntityData(0, chest))

	data, err := doc.BlockEntityData(0)
	require.NoError(t, err)
	assert.Same(t, chest, data)

	data, err = doc.BlockEntityData(1)
	require.NoError(t, err)
	assert.Nil(t, data)

	all, err := doc.BlockPositionData()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, doc.SetBlockEntityData(0, nil))
	all, err = doc.BlockPositionData()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSetPath(t *testing.T) {
	doc := scenarioA(t)

	assert.ErrorIs(t, doc.SetPath("", nbt.Int(1)), define.ErrSchemaMismatch)
	assert.ErrorIs(t, doc.SetPath("nope.child", nbt.Int(1)), define.ErrSchemaMismatch)
	assert.Error(t, doc.SetPath("custom", nil))

	require.NoError(t, doc.SetPath("structure.custom", nbt.String("x")))
	structure, _ := doc.Root().Get(PathStructure)
	value, ok := structure.(*nbt.Compound).Get("custom")
	require.True(t, ok)
	assert.Equal(t, nbt.String("x"), value)
}

func TestSettersDoNotKeepConsistency(t *testing.T) {
	doc := scenarioA(t)
	require.NoError(t, doc.SetSize(define.Size{3, 2, 2}))

	size, err := doc.Size()
	require.NoError(t, err)
	assert.Equal(t, define.Size{3, 2, 2}, size)
	assert.ErrorIs(t, doc.Validate(), define.ErrSchemaMismatch)

	require.NoError(t, doc.SetWorldOrigin(define.Origin{-1, -2, -3}))
	origin, err := doc.WorldOrigin()
	require.NoError(t, err)
	assert.Equal(t, define.Origin{-1, -2, -3}, origin)
}

func TestValidate(t *testing.T) {
	doc := scenarioA(t)
	require.NoError(t, doc.SetBlockIndices(1, define.BlockMatrix{0, 0, 0, 0, 0, 0, 0, 1}))
	assert.ErrorIs(t, doc.Validate(), define.ErrPaletteIndexOutOfRange)

	require.NoError(t, doc.SetBlockIndices(1, define.BlockMatrix{-2, -1, -1, -1, -1, -1, -1, -1}))
	assert.ErrorIs(t, doc.Validate(), define.ErrPaletteIndexOutOfRange)

	require.NoError(t, doc.SetBlockIndices(1, define.BlockMatrix{-1}))
	assert.ErrorIs(t, doc.Validate(), define.ErrSchemaMismatch)

	require.NoError(t, doc.SetBlockIndices(1, define.NewBlockMatrix(8)))
	assert.NoError(t, doc.Validate())
}

func TestInfo(t *testing.T) {
	doc := scenarioA(t)
	require.NoError(t, doc.SetBlockPalette([]define.BlockDefinition{
		{Name: "stone"},
		{Name: "minecraft:definitely_not_a_block"},
	}))

	info, err := doc.Info()
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.FormatVersion)
	assert.Equal(t, define.Size{2, 2, 2}, info.Size)
	assert.Equal(t, 2, info.PaletteLen)
	assert.Equal(t, 2, info.LayerCount)
	assert.Zero(t, info.EntityCount)
	assert.Contains(t, info.UnknownBlocks, "minecraft:definitely_not_a_block")
}

func TestExtension(t *testing.T) {
	assert.True(t, HasExtension("house.mcstructure"))
	assert.False(t, HasExtension("HOUSE.McStructure"))
	assert.False(t, HasExtension("house.nbt"))
	assert.False(t, HasExtension("mcstructure"))

	assert.Equal(t, "house.mcstructure", EnsureExtension("house"))
	assert.Equal(t, "house.mcstructure", EnsureExtension("house.mcstructure"))
	assert.Equal(t, "house.nbt.mcstructure", EnsureExtension("house.nbt"))
	assert.Equal(t, "x.MCSTRUCTURE.mcstructure", EnsureExtension("x.MCSTRUCTURE"))
}
