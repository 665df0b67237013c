package marshal

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/utils"
)

var errTruncated = errors.New("truncated matrix")

// readFrom runs decode and turns a panic of the protocol
// reader into an error.
func readFrom(decode func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	decode()
	return nil
}

// LayersToBytes return the bytes represents of layers.
func LayersToBytes(layers define.Layers) (result []byte, err error) {
	buf := bytes.NewBuffer(nil)

	for _, value := range layers {
		BlockMatrixToBytes(buf, value)
	}

	if buf.Len() == 0 {
		return nil, nil
	}

	result, err = utils.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("LayersToBytes: %v", err)
	}
	return
}

// BytesToLayers decode Layers from bytes.
func BytesToLayers(in []byte) (result define.Layers, err error) {
	if len(in) == 0 {
		return result, nil
	}

	originBytes, err := utils.Decompress(in)
	if err != nil {
		return nil, fmt.Errorf("BytesToLayers: %v", err)
	}

	buf := bytes.NewBuffer(originBytes)
	err = readFrom(func() {
		for buf.Len() > 0 {
			result = append(result, BytesToBlockMatrix(buf))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("BytesToLayers: %v", err)
	}

	return result, nil
}

// LayersDiffToBytes return the bytes represents of layersDiff made
// for a grid of size. The bytes start with a magic, a version and
// size, so that BytesToLayersDiff can refuse a diff of another grid.
func LayersDiffToBytes(layersDiff define.LayersDiff, size define.Size) (result []byte, err error) {
	if err = checkOffsets(layersDiff, size); err != nil {
		return nil, fmt.Errorf("LayersDiffToBytes: %w", err)
	}
	result, err = encodeLayersDiff(layersDiff, size)
	if err != nil {
		return nil, fmt.Errorf("LayersDiffToBytes: %v", err)
	}
	return result, nil
}

func encodeLayersDiff(layersDiff define.LayersDiff, size define.Size) (result []byte, err error) {
	buf := bytes.NewBuffer(nil)
	for _, value := range layersDiff {
		DiffMatrixToBytes(buf, value)
	}

	compressed, err := utils.Compress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	result = make([]byte, layersDiffHeaderSize, layersDiffHeaderSize+len(compressed))
	copy(result, layersDiffMagic[:])
	result[len(layersDiffMagic)] = layersDiffVersion
	for i, value := range size {
		binary.LittleEndian.PutUint32(result[len(layersDiffMagic)+1+4*i:], uint32(value))
	}
	return append(result, compressed...), nil
}

// BytesToLayersDiff decode LayersDiff from bytes, and checks that
// it was made for a grid of size (define.ErrSchemaMismatch) and
// that no offset falls outside that grid (define.ErrOutOfRange).
func BytesToLayersDiff(in []byte, size define.Size) (result define.LayersDiff, err error) {
	if len(in) < layersDiffHeaderSize || !bytes.Equal(in[:len(layersDiffMagic)], layersDiffMagic[:]) {
		return nil, fmt.Errorf("BytesToLayersDiff: not a layer diff")
	}
	if version := in[len(layersDiffMagic)]; version != layersDiffVersion {
		return nil, fmt.Errorf("BytesToLayersDiff: unsupported version %d", version)
	}

	var diffSize define.Size
	for i := range diffSize {
		diffSize[i] = int32(binary.LittleEndian.Uint32(in[len(layersDiffMagic)+1+4*i:]))
	}
	if diffSize != size {
		return nil, fmt.Errorf("BytesToLayersDiff: %w: diff is for %v, not %v", define.ErrSchemaMismatch, diffSize, size)
	}

	originBytes, err := utils.Decompress(in[layersDiffHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("BytesToLayersDiff: %v", err)
	}

	buf := bytes.NewBuffer(originBytes)
	err = readFrom(func() {
		for buf.Len() > 0 {
			result = append(result, BytesToDiffMatrix(buf))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("BytesToLayersDiff: %v", err)
	}

	if err = checkOffsets(result, size); err != nil {
		return nil, fmt.Errorf("BytesToLayersDiff: %w", err)
	}
	return result, nil
}

// checkOffsets fails when an offset of layersDiff is outside size.
func checkOffsets(layersDiff define.LayersDiff, size define.Size) error {
	volume := size.Volume()
	for layer, changes := range layersDiff {
		for _, value := range changes {
			if value.Offset < 0 || value.Offset >= volume {
				return fmt.Errorf("%w: layer %d changes offset %d of %d", define.ErrOutOfRange, layer, value.Offset, volume)
			}
		}
	}
	return nil
}
