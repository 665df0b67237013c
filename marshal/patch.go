package marshal

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/kr/binarydist"
)

// NewPatch returns a patch that turns the export older into the
// export newer.
//
// The patch is the magic, the xxhash of older, the xxhash of newer
// and then the bsdiff of both. The hashes let ApplyPatch refuse a
// wrong base and detect a broken result.
//
// Time complexity: O(C), C is not small because of bsdiff.
func NewPatch(older []byte, newer []byte) (result []byte, err error) {
	olderHashBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(olderHashBytes, xxhash.Sum64(older))

	newerHashBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(newerHashBytes, xxhash.Sum64(newer))

	buf := bytes.NewBuffer(nil)
	err = binarydist.Diff(bytes.NewReader(older), bytes.NewReader(newer), buf)
	if err != nil {
		return nil, fmt.Errorf("NewPatch: %v", err)
	}

	result = make([]byte, 0, patchHeaderSize+buf.Len())
	result = append(result, patchMagic[:]...)
	result = append(result, olderHashBytes...)
	result = append(result, newerHashBytes...)
	result = append(result, buf.Bytes()...)

	return result, nil
}

// ApplyPatch uses older and a patch made by NewPatch to compute
// the newer export.
func ApplyPatch(older []byte, patch []byte) (newer []byte, err error) {
	if len(patch) < patchHeaderSize || !bytes.Equal(patch[:4], patchMagic[:]) {
		return nil, fmt.Errorf("ApplyPatch: Broken patch")
	}

	if xxhash.Sum64(older) != binary.LittleEndian.Uint64(patch[4:]) {
		return nil, fmt.Errorf("ApplyPatch: Given older bytes is not the correct one (hash mismatch)")
	}

	buf := bytes.NewBuffer(nil)
	err = binarydist.Patch(bytes.NewReader(older), buf, bytes.NewReader(patch[patchHeaderSize:]))
	if err != nil {
		return nil, fmt.Errorf("ApplyPatch: %v", err)
	}
	newer = buf.Bytes()

	if xxhash.Sum64(newer) != binary.LittleEndian.Uint64(patch[12:]) {
		return nil, fmt.Errorf("ApplyPatch: Data changed")
	}

	return newer, nil
}

// PatchHashes returns the hashes of the base and the result
// that patch was made for.
func PatchHashes(patch []byte) (older uint64, newer uint64, err error) {
	if len(patch) < patchHeaderSize || !bytes.Equal(patch[:4], patchMagic[:]) {
		return 0, 0, fmt.Errorf("PatchHashes: Broken patch")
	}
	return binary.LittleEndian.Uint64(patch[4:]), binary.LittleEndian.Uint64(patch[12:]), nil
}
