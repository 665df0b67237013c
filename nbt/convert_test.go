package nbt

import (
	"bytes"
	"encoding/binary"
	"testing"

	gtnbt "github.com/sandertv/gophertunnel/minecraft/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGophertunnelOutput(t *testing.T) {
	source := map[string]any{
		"name":    "minecraft:stone",
		"version": int32(18090528),
		"states":  map[string]any{"stone_type": "granite"},
		"flag":    uint8(1),
		"pos":     [3]int32{1, 2, 3},
	}

	buf := bytes.NewBuffer(nil)
	require.NoError(t, gtnbt.NewEncoderWithEncoding(buf, gtnbt.LittleEndian).Encode(source))

	root, err := Decode(buf.Bytes(), LittleEndian)
	require.NoError(t, err)

	c, ok := root.Tag.(*Compound)
	require.True(t, ok)
	assert.Equal(t, 5, c.Len())

	name, _ := c.Get("name")
	assert.Equal(t, String("minecraft:stone"), name)
	version, _ := c.Get("version")
	assert.Equal(t, Int(18090528), version)
	flag, _ := c.Get("flag")
	assert.Equal(t, Byte(1), flag)
	pos, _ := c.Get("pos")
	assert.Equal(t, IntArray{1, 2, 3}, pos)

	states, _ := c.Get("states")
	stoneType, _ := states.(*Compound).Get("stone_type")
	assert.Equal(t, String("granite"), stoneType)
}

func TestGophertunnelDecodesOurOutput(t *testing.T) {
	root := NewCompound().
		Set("identifier", String("minecraft:pig")).
		Set("health", Float(10)).
		Set("id", Long(-4294967295)).
		Set("slot", Byte(3)).
		Set("extra", NewCompound().Set("short", Short(-2)))

	cases := []struct {
		name   string
		ours   binary.ByteOrder
		theirs gtnbt.Encoding
	}{
		{"little", LittleEndian, gtnbt.LittleEndian},
		{"big", BigEndian, gtnbt.BigEndian},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			data, err := Encode(NamedTag{Tag: root}, c.ours)
			require.NoError(t, err)

			var m map[string]any
			require.NoError(t, gtnbt.NewDecoderWithEncoding(bytes.NewBuffer(data), c.theirs).Decode(&m))

			assert.Equal(t, "minecraft:pig", m["identifier"])
			assert.Equal(t, float32(10), m["health"])
			assert.Equal(t, int64(-4294967295), m["id"])
			assert.Equal(t, uint8(3), m["slot"])
			assert.Equal(t, int16(-2), m["extra"].(map[string]any)["short"])
		})
	}
}

func TestToGoFromGo(t *testing.T) {
	root := NewCompound().
		Set("b", Byte(-1)).
		Set("i", Int(7)).
		Set("list", NewList(KindString, String("x"), String("y"))).
		Set("bytes", ByteArray{1, -1}).
		Set("ints", IntArray{4, 5}).
		Set("longs", LongArray{6})

	m := CompoundToGo(root)
	assert.Equal(t, uint8(0xff), m["b"])
	assert.Equal(t, int32(7), m["i"])
	assert.Equal(t, []any{"x", "y"}, m["list"])
	assert.Equal(t, [2]uint8{1, 0xff}, m["bytes"])
	assert.Equal(t, [2]int32{4, 5}, m["ints"])
	assert.Equal(t, [1]int64{6}, m["longs"])

	back, err := FromGo(m)
	require.NoError(t, err)

	// keys come back sorted
	assert.Equal(t, []string{"b", "bytes", "i", "ints", "list", "longs"}, back.(*Compound).Names())
	for _, name := range root.Names() {
		want, _ := root.Get(name)
		got, ok := back.(*Compound).Get(name)
		require.True(t, ok, name)
		assert.True(t, Equal(want, got), name)
	}
}

func TestToGoTypedNil(t *testing.T) {
	root := NewCompound().
		Set("list", (*List)(nil)).
		Set("compound", (*Compound)(nil)).
		Set("nested", NewList(KindCompound, (*Compound)(nil)))

	var m map[string]any
	require.NotPanics(t, func() { m = CompoundToGo(root) })
	assert.Nil(t, m["list"])
	assert.Nil(t, m["compound"])
	assert.Equal(t, []any{nil}, m["nested"])

	_, err := Encode(NamedTag{Tag: root}, LittleEndian)
	assert.Error(t, err)
}

func TestFromGoConversions(t *testing.T) {
	tag, err := FromGo(true)
	require.NoError(t, err)
	assert.Equal(t, Byte(1), tag)

	tag, err = FromGo([]int32{})
	require.NoError(t, err)
	assert.Equal(t, KindInt, tag.(*List).ElemKind)

	tag, err = FromGo([]any{map[string]any{"a": int16(1)}})
	require.NoError(t, err)
	assert.Equal(t, KindCompound, tag.(*List).ElemKind)

	_, err = FromGo([]any{int32(1), "mixed"})
	assert.Error(t, err)

	_, err = FromGo(map[int]any{1: int32(1)})
	assert.Error(t, err)

	_, err = FromGo(nil)
	assert.Error(t, err)

	_, err = FromGo(struct{}{})
	assert.Error(t, err)
}
