package marshal

import (
	"bytes"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// BlockMatrixToBytes write the bytes represents of blockMatrix into a bytes buffer.
func BlockMatrixToBytes(buf *bytes.Buffer, blockMatrix define.BlockMatrix) {
	if define.BlockMatrixIsEmpty(blockMatrix) {
		buf.WriteByte(MatrixStateEmpty)
		return
	}
	buf.WriteByte(MatrixStateNotEmpty)

	w := protocol.NewWriter(buf, 0)
	length := uint32(len(blockMatrix))
	w.Varuint32(&length)
	for i := range blockMatrix {
		w.Varint32(&blockMatrix[i])
	}
}

// BytesToBlockMatrix decode BlockMatrix from bytes buffer.
// It panics on truncated input; see readFrom.
func BytesToBlockMatrix(buf *bytes.Buffer) define.BlockMatrix {
	b, _ := buf.ReadByte()
	if b == MatrixStateEmpty {
		return nil
	}

	r := protocol.NewReader(buf, 0, false)

	var length uint32
	r.Varuint32(&length)
	// Every element takes at least one byte.
	if int(length) > buf.Len() {
		panic(errTruncated)
	}

	result := make(define.BlockMatrix, length)
	for i := range result {
		r.Varint32(&result[i])
	}

	return result
}

// DiffMatrixToBytes writes the bytes represents of diffMatrix into a bytes buffer.
// Offsets are written as the distance to the previous offset, so
// diffMatrix must be sorted by offset, as BlockDifference returns it.
func DiffMatrixToBytes(buf *bytes.Buffer, diffMatrix define.DiffMatrix) {
	if len(diffMatrix) == 0 {
		buf.WriteByte(MatrixStateEmpty)
		return
	}
	buf.WriteByte(MatrixStateNotEmpty)

	w := protocol.NewWriter(buf, 0)
	length := uint32(len(diffMatrix))
	w.Varuint32(&length)

	previous := 0
	for _, value := range diffMatrix {
		delta := uint32(value.Offset - previous)
		w.Varuint32(&delta)
		w.Varint32(&value.NewPaletteID)
		previous = value.Offset
	}
}

// BytesToDiffMatrix decode DiffMatrix from bytes buffer.
// It panics on truncated input; see readFrom.
func BytesToDiffMatrix(buf *bytes.Buffer) define.DiffMatrix {
	b, _ := buf.ReadByte()
	if b == MatrixStateEmpty {
		return nil
	}

	r := protocol.NewReader(buf, 0, false)

	var length uint32
	r.Varuint32(&length)
	// Every element takes at least two bytes.
	if int(length) > buf.Len()/2 {
		panic(errTruncated)
	}

	result := make(define.DiffMatrix, length)
	previous := 0
	for i := range result {
		var delta uint32
		r.Varuint32(&delta)
		r.Varint32(&result[i].NewPaletteID)
		result[i].Offset = previous + int(delta)
		previous = result[i].Offset
	}

	return result
}
