package nbt

import "fmt"

// Tag is a single node of the tag tree.
// The concrete types below are the only implementations.
type Tag interface {
	Kind() Kind
}

type (
	// Byte is a signed 8-bit integer.
	Byte int8
	// Short is a signed 16-bit integer.
	Short int16
	// Int is a signed 32-bit integer.
	Int int32
	// Long is a signed 64-bit integer.
	Long int64
	// Float is an IEEE 754 single precision number.
	Float float32
	// Double is an IEEE 754 double precision number.
	Double float64
	// ByteArray is a length prefixed sequence of signed bytes.
	ByteArray []int8
	// String is an UTF-8 string with an unsigned 16-bit length prefix.
	String string
	// IntArray is a length prefixed sequence of Int payloads.
	IntArray []int32
	// LongArray is a length prefixed sequence of Long payloads.
	LongArray []int64
)

func (Byte) Kind() Kind      { return KindByte }
func (Short) Kind() Kind     { return KindShort }
func (Int) Kind() Kind       { return KindInt }
func (Long) Kind() Kind      { return KindLong }
func (Float) Kind() Kind     { return KindFloat }
func (Double) Kind() Kind    { return KindDouble }
func (ByteArray) Kind() Kind { return KindByteArray }
func (String) Kind() Kind    { return KindString }
func (IntArray) Kind() Kind  { return KindIntArray }
func (LongArray) Kind() Kind { return KindLongArray }

// NamedTag is a tag together with the name it is stored under.
// The root of an encoded tree is always a NamedTag, usually
// a Compound with an empty name.
type NamedTag struct {
	Name string
	Tag  Tag
}

// List is a homogeneous sequence of unnamed tags.
// ElemKind is written even for an empty list, so an empty
// List of Int and an empty List of End are different trees.
type List struct {
	ElemKind Kind
	Elems    []Tag
}

// NewList returns a List of elemKind holding elems.
// It panics if any element is not of elemKind, because
// such a list could never be encoded.
func NewList(elemKind Kind, elems ...Tag) *List {
	l := &List{ElemKind: elemKind}
	for _, value := range elems {
		if err := l.Append(value); err != nil {
			panic(err)
		}
	}
	return l
}

func (*List) Kind() Kind { return KindList }

// Len returns the count of elements in this list.
func (l *List) Len() int {
	return len(l.Elems)
}

// Append adds tag to the end of the list.
// If the list is still empty and declared as End, then the
// list adopts the kind of tag.
func (l *List) Append(tag Tag) error {
	if tag == nil {
		return fmt.Errorf("Append: nil tag")
	}
	if len(l.Elems) == 0 && l.ElemKind == KindEnd {
		l.ElemKind = tag.Kind()
	}
	if tag.Kind() != l.ElemKind {
		return fmt.Errorf("Append: list holds %v but got %v", l.ElemKind, tag.Kind())
	}
	l.Elems = append(l.Elems, tag)
	return nil
}
