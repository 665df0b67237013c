package nbt

import (
	"encoding/binary"
	"fmt"
	"math"
)

// MaxDepth is how deep lists and compounds may nest before
// Decode refuses the input.
const MaxDepth = 512

var (
	// LittleEndian is the byte order of Bedrock Edition files,
	// including .mcstructure.
	LittleEndian binary.ByteOrder = binary.LittleEndian
	// BigEndian is the byte order of Java Edition files.
	BigEndian binary.ByteOrder = binary.BigEndian
)

// decoder is a recursive descent parser over an in-memory buffer.
type decoder struct {
	data  []byte
	off   int
	order binary.ByteOrder
	depth int
}

// Decode parses data as a single named tag, which is the root of
// the tree. The whole buffer must be consumed by the root.
//
// Any fault aborts the decode and returns a *MalformedInputError
// with the offset where it was detected; a partial tree is never
// returned.
//
// Time complexity: O(n), n=len(data).
func Decode(data []byte, order binary.ByteOrder) (root NamedTag, err error) {
	if order == nil {
		return NamedTag{}, fmt.Errorf("Decode: byte order is nil")
	}

	d := &decoder{data: data, order: order}

	kind, err := d.readKind()
	if err != nil {
		return NamedTag{}, err
	}
	if kind == KindEnd {
		return NamedTag{}, d.fail(d.off-1, "root tag is TAG_End")
	}

	name, err := d.readString()
	if err != nil {
		return NamedTag{}, err
	}

	tag, err := d.readPayload(kind)
	if err != nil {
		return NamedTag{}, err
	}

	if d.off != len(d.data) {
		return NamedTag{}, d.fail(d.off, fmt.Sprintf("%d trailing bytes after root tag", len(d.data)-d.off))
	}

	return NamedTag{Name: name, Tag: tag}, nil
}

func (d *decoder) fail(offset int, reason string) error {
	return &MalformedInputError{Offset: offset, Reason: reason}
}

// need makes sure n more bytes can be read.
func (d *decoder) need(n int, what string) error {
	if n < 0 || len(d.data)-d.off < n {
		return d.fail(d.off, fmt.Sprintf("%s needs %d bytes but only %d left", what, n, len(d.data)-d.off))
	}
	return nil
}

func (d *decoder) readKind() (Kind, error) {
	if err := d.need(1, "tag kind"); err != nil {
		return 0, err
	}
	kind := Kind(d.data[d.off])
	if !kind.Valid() {
		return 0, d.fail(d.off, fmt.Sprintf("unknown tag kind 0x%02x", byte(kind)))
	}
	d.off++
	return kind, nil
}

func (d *decoder) readString() (string, error) {
	if err := d.need(2, "string length"); err != nil {
		return "", err
	}
	length := int(d.order.Uint16(d.data[d.off:]))
	d.off += 2

	if err := d.need(length, "string"); err != nil {
		return "", err
	}
	s := string(d.data[d.off : d.off+length])
	d.off += length
	return s, nil
}

// readCount reads the signed 32-bit length that prefixes arrays and lists,
// and makes sure count elements of at least elemSize bytes can still fit.
func (d *decoder) readCount(elemSize int, what string) (int, error) {
	if err := d.need(4, what+" length"); err != nil {
		return 0, err
	}
	start := d.off
	count := int32(d.order.Uint32(d.data[d.off:]))
	d.off += 4

	if count < 0 {
		return 0, d.fail(start, fmt.Sprintf("%s has negative length %d", what, count))
	}
	if int64(count)*int64(elemSize) > int64(len(d.data)-d.off) {
		return 0, d.fail(start, fmt.Sprintf("%s declares %d elements but only %d bytes left", what, count, len(d.data)-d.off))
	}
	return int(count), nil
}

func (d *decoder) readPayload(kind Kind) (Tag, error) {
	switch kind {
	case KindByte:
		if err := d.need(1, "TAG_Byte"); err != nil {
			return nil, err
		}
		v := int8(d.data[d.off])
		d.off++
		return Byte(v), nil

	case KindShort:
		if err := d.need(2, "TAG_Short"); err != nil {
			return nil, err
		}
		v := int16(d.order.Uint16(d.data[d.off:]))
		d.off += 2
		return Short(v), nil

	case KindInt:
		if err := d.need(4, "TAG_Int"); err != nil {
			return nil, err
		}
		v := int32(d.order.Uint32(d.data[d.off:]))
		d.off += 4
		return Int(v), nil

	case KindLong:
		if err := d.need(8, "TAG_Long"); err != nil {
			return nil, err
		}
		v := int64(d.order.Uint64(d.data[d.off:]))
		d.off += 8
		return Long(v), nil

	case KindFloat:
		if err := d.need(4, "TAG_Float"); err != nil {
			return nil, err
		}
		v := math.Float32frombits(d.order.Uint32(d.data[d.off:]))
		d.off += 4
		return Float(v), nil

	case KindDouble:
		if err := d.need(8, "TAG_Double"); err != nil {
			return nil, err
		}
		v := math.Float64frombits(d.order.Uint64(d.data[d.off:]))
		d.off += 8
		return Double(v), nil

	case KindString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}
		return String(s), nil

	case KindByteArray:
		count, err := d.readCount(1, "TAG_Byte_Array")
		if err != nil {
			return nil, err
		}
		result := make(ByteArray, count)
		for i := range result {
			result[i] = int8(d.data[d.off+i])
		}
		d.off += count
		return result, nil

	case KindIntArray:
		count, err := d.readCount(4, "TAG_Int_Array")
		if err != nil {
			return nil, err
		}
		result := make(IntArray, count)
		for i := range result {
			result[i] = int32(d.order.Uint32(d.data[d.off:]))
			d.off += 4
		}
		return result, nil

	case KindLongArray:
		count, err := d.readCount(8, "TAG_Long_Array")
		if err != nil {
			return nil, err
		}
		result := make(LongArray, count)
		for i := range result {
			result[i] = int64(d.order.Uint64(d.data[d.off:]))
			d.off += 8
		}
		return result, nil

	case KindList:
		return d.readList()

	case KindCompound:
		return d.readCompound()
	}

	return nil, d.fail(d.off, fmt.Sprintf("%v has no payload", kind))
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return d.fail(d.off, fmt.Sprintf("nesting deeper than %d", MaxDepth))
	}
	return nil
}

func (d *decoder) readList() (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	kindOffset := d.off
	elemKind, err := d.readKind()
	if err != nil {
		return nil, err
	}

	// Every element kind except End occupies at least one byte.
	count, err := d.readCount(1, "TAG_List")
	if err != nil {
		return nil, err
	}
	if elemKind == KindEnd && count > 0 {
		return nil, d.fail(kindOffset, fmt.Sprintf("TAG_List of TAG_End declares %d elements", count))
	}

	result := &List{ElemKind: elemKind, Elems: make([]Tag, 0, count)}
	for range count {
		elem, err := d.readPayload(elemKind)
		if err != nil {
			return nil, err
		}
		result.Elems = append(result.Elems, elem)
	}
	return result, nil
}

func (d *decoder) readCompound() (Tag, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer func() { d.depth-- }()

	result := NewCompound()
	for {
		if d.off >= len(d.data) {
			return nil, d.fail(d.off, "TAG_Compound is not terminated by TAG_End")
		}

		kind, err := d.readKind()
		if err != nil {
			return nil, err
		}
		if kind == KindEnd {
			return result, nil
		}

		nameOffset := d.off
		name, err := d.readString()
		if err != nil {
			return nil, err
		}

		tag, err := d.readPayload(kind)
		if err != nil {
			return nil, err
		}

		if !result.add(name, tag) {
			return nil, d.fail(nameOffset, fmt.Sprintf("duplicate key %q in TAG_Compound", name))
		}
	}
}
