package main

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/library"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
)

// packBytes joins payloads, each prefixed by its little endian uint32 length.
func packBytes(payloads [][]byte) []byte {
	buf := bytes.NewBuffer(nil)
	for _, value := range payloads {
		length := make([]byte, 4)
		binary.LittleEndian.PutUint32(length, uint32(len(value)))
		buf.Write(length)
		buf.Write(value)
	}
	return buf.Bytes()
}

func unpackBytes(payload []byte) (result [][]byte, err error) {
	for len(payload) > 0 {
		if len(payload) < 4 {
			return nil, fmt.Errorf("unpackBytes: Broken payload")
		}
		length := binary.LittleEndian.Uint32(payload)
		if uint64(len(payload)-4) < uint64(length) {
			return nil, fmt.Errorf("unpackBytes: Broken payload")
		}
		result = append(result, payload[4:length+4])
		payload = payload[length+4:]
	}
	return
}

func packStrings(values []string) []byte {
	payloads := make([][]byte, len(values))
	for i, value := range values {
		payloads[i] = []byte(value)
	}
	return packBytes(payloads)
}

// packInfo writes the summary of a structure as little endian
// int32 values: format version, size, origin, palette length,
// layer count and entity count. The unknown block names follow
// as packed strings.
func packInfo(info structure.Info) []byte {
	buf := bytes.NewBuffer(nil)
	values := []int32{
		info.FormatVersion,
		info.Size[0], info.Size[1], info.Size[2],
		info.WorldOrigin[0], info.WorldOrigin[1], info.WorldOrigin[2],
		int32(info.PaletteLen),
		int32(info.LayerCount),
		int32(info.EntityCount),
	}
	_ = binary.Write(buf, binary.LittleEndian, values)
	buf.Write(packStrings(info.UnknownBlocks))
	return buf.Bytes()
}

// packEntry writes the id, the stored unix milli time, the
// size and the checksum of entry.
func packEntry(entry library.Entry) []byte {
	buf := bytes.NewBuffer(nil)
	buf.Write(entry.ID[:])
	_ = binary.Write(buf, binary.LittleEndian, entry.StoredAt.UnixMilli())
	_ = binary.Write(buf, binary.LittleEndian, uint32(entry.Size))
	_ = binary.Write(buf, binary.LittleEndian, entry.Checksum)
	return buf.Bytes()
}
