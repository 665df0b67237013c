package library

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/TriM-Organization/bedrock-structure-editor/utils"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

var recordMagic = [4]byte{'M', 'C', 'S', 'L'}

const (
	recordVersion uint8 = 1
	// magic, version, checksum, stored at, id, raw length
	recordHeaderSize = 4 + 1 + 8 + 8 + 16 + 4
)

// Entry describes one stored structure.
type Entry struct {
	Name string
	// ID is given when the name is stored for the first
	// time, and kept when the structure is overwritten.
	ID       uuid.UUID
	StoredAt time.Time
	// Size is the length of the export, and StoredSize the
	// length of the compressed record.
	Size       int
	StoredSize int
	// Checksum is the xxhash of the export.
	Checksum uint64
}

// encodeRecord compresses data and puts the header of entry before it.
func encodeRecord(entry Entry, data []byte) (result []byte, err error) {
	compressed, err := utils.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("encodeRecord: %v", err)
	}

	buf := bytes.NewBuffer(make([]byte, 0, recordHeaderSize+len(compressed)))
	buf.Write(recordMagic[:])
	buf.WriteByte(recordVersion)
	_ = binary.Write(buf, binary.LittleEndian, xxhash.Sum64(data))
	_ = binary.Write(buf, binary.LittleEndian, entry.StoredAt.UnixMilli())
	buf.Write(entry.ID[:])
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(compressed)

	return buf.Bytes(), nil
}

// decodeHeader reads the header of a record without decompressing it.
func decodeHeader(name string, record []byte) (result Entry, err error) {
	if len(record) < recordHeaderSize || !bytes.Equal(record[:4], recordMagic[:]) {
		return result, fmt.Errorf("decodeHeader: %w: %q has no record header", ErrCorrupted, name)
	}
	if record[4] != recordVersion {
		return result, fmt.Errorf("decodeHeader: %w: %q has record version %d", ErrCorrupted, name, record[4])
	}

	result.Name = name
	result.Checksum = binary.LittleEndian.Uint64(record[5:])
	result.StoredAt = time.UnixMilli(int64(binary.LittleEndian.Uint64(record[13:])))
	copy(result.ID[:], record[21:37])
	result.Size = int(binary.LittleEndian.Uint32(record[37:]))
	result.StoredSize = len(record)

	return result, nil
}

// decodeRecord returns the header and the export stored in record.
// The export is checked against the length and the checksum.
func decodeRecord(name string, record []byte) (entry Entry, data []byte, err error) {
	entry, err = decodeHeader(name, record)
	if err != nil {
		return entry, nil, fmt.Errorf("decodeRecord: %w", err)
	}

	data, err = utils.Decompress(record[recordHeaderSize:])
	if err != nil {
		return entry, nil, fmt.Errorf("decodeRecord: %w: %v", ErrCorrupted, err)
	}
	if len(data) != entry.Size || xxhash.Sum64(data) != entry.Checksum {
		return entry, nil, fmt.Errorf("decodeRecord: %w: %q does not match its checksum", ErrCorrupted, name)
	}

	return entry, data, nil
}
