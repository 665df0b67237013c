package main

import "C"
import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/marshal"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
)

//export StructureInfo
func StructureInfo(payload *C.char) *C.char {
	doc, err := structure.Import(asGoBytes(payload))
	if err != nil {
		return asCbytes(nil)
	}
	info, err := doc.Info()
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(packInfo(info))
}

//export StructureValidate
func StructureValidate(payload *C.char) *C.char {
	doc, err := structure.Import(asGoBytes(payload))
	if err != nil {
		return C.CString(fmt.Sprintf("StructureValidate: %v", err))
	}
	return asCerror(doc.Validate())
}

//export NewStructurePatch
func NewStructurePatch(older *C.char, newer *C.char) *C.char {
	patch, err := marshal.NewPatch(asGoBytes(older), asGoBytes(newer))
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(patch)
}

//export ApplyStructurePatch
func ApplyStructurePatch(older *C.char, patch *C.char) *C.char {
	newer, err := marshal.ApplyPatch(asGoBytes(older), asGoBytes(patch))
	if err != nil {
		return asCbytes(nil)
	}
	return asCbytes(newer)
}
