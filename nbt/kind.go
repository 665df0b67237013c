package nbt

import "fmt"

// Kind is the one byte discriminator that precedes every named tag,
// and that a List uses to describe all of its elements.
type Kind byte

const (
	KindEnd Kind = iota
	KindByte
	KindShort
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindByteArray
	KindString
	KindList
	KindCompound
	KindIntArray
	KindLongArray
)

var kindNames = [...]string{
	KindEnd:       "TAG_End",
	KindByte:      "TAG_Byte",
	KindShort:     "TAG_Short",
	KindInt:       "TAG_Int",
	KindLong:      "TAG_Long",
	KindFloat:     "TAG_Float",
	KindDouble:    "TAG_Double",
	KindByteArray: "TAG_Byte_Array",
	KindString:    "TAG_String",
	KindList:      "TAG_List",
	KindCompound:  "TAG_Compound",
	KindIntArray:  "TAG_Int_Array",
	KindLongArray: "TAG_Long_Array",
}

// Valid reports whether k is one of the thirteen known kinds.
func (k Kind) Valid() bool {
	return k <= KindLongArray
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("TAG_Unknown(0x%02x)", byte(k))
	}
	return kindNames[k]
}
