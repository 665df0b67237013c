package nbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// encoder writes tags into buf using order.
type encoder struct {
	buf     *bytes.Buffer
	order   binary.ByteOrder
	scratch [8]byte
}

// Encode returns the uncompressed serialization of root.
// Decoding the result with the same byte order yields a tree
// that is Equal to root.
func Encode(root NamedTag, order binary.ByteOrder) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeTo(buf, root, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo is like Encode but appends to buf.
// On error, buf may hold a partially written tree.
func EncodeTo(buf *bytes.Buffer, root NamedTag, order binary.ByteOrder) error {
	if order == nil {
		return fmt.Errorf("Encode: byte order is nil")
	}
	if root.Tag == nil {
		return fmt.Errorf("Encode: root tag is nil")
	}

	e := &encoder{buf: buf, order: order}
	if err := e.writeNamed(root.Name, root.Tag); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}
	return nil
}

func (e *encoder) writeNamed(name string, tag Tag) error {
	if tag == nil {
		return fmt.Errorf("child %q is nil", name)
	}
	kind := tag.Kind()
	if kind == KindEnd || !kind.Valid() {
		return fmt.Errorf("child %q has kind %v which can not be written", name, kind)
	}

	e.buf.WriteByte(byte(kind))
	if err := e.writeString(name); err != nil {
		return fmt.Errorf("name of %q: %w", name, err)
	}
	if err := e.writePayload(tag); err != nil {
		return fmt.Errorf("%q: %w", name, err)
	}
	return nil
}

func (e *encoder) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("string of %d bytes is longer than %d", len(s), math.MaxUint16)
	}
	e.order.PutUint16(e.scratch[:2], uint16(len(s)))
	e.buf.Write(e.scratch[:2])
	e.buf.WriteString(s)
	return nil
}

func (e *encoder) writeCount(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%d elements do not fit a 32-bit length", n)
	}
	e.order.PutUint32(e.scratch[:4], uint32(n))
	e.buf.Write(e.scratch[:4])
	return nil
}

func (e *encoder) writePayload(tag Tag) error {
	switch v := tag.(type) {
	case Byte:
		e.buf.WriteByte(byte(v))

	case Short:
		e.order.PutUint16(e.scratch[:2], uint16(v))
		e.buf.Write(e.scratch[:2])

	case Int:
		e.order.PutUint32(e.scratch[:4], uint32(v))
		e.buf.Write(e.scratch[:4])

	case Long:
		e.order.PutUint64(e.scratch[:8], uint64(v))
		e.buf.Write(e.scratch[:8])

	case Float:
		e.order.PutUint32(e.scratch[:4], math.Float32bits(float32(v)))
		e.buf.Write(e.scratch[:4])

	case Double:
		e.order.PutUint64(e.scratch[:8], math.Float64bits(float64(v)))
		e.buf.Write(e.scratch[:8])

	case String:
		return e.writeString(string(v))

	case ByteArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		for _, value := range v {
			e.buf.WriteByte(byte(value))
		}

	case IntArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		for _, value := range v {
			e.order.PutUint32(e.scratch[:4], uint32(value))
			e.buf.Write(e.scratch[:4])
		}

	case LongArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		for _, value := range v {
			e.order.PutUint64(e.scratch[:8], uint64(value))
			e.buf.Write(e.scratch[:8])
		}

	case *List:
		return e.writeList(v)

	case *Compound:
		if v == nil {
			return fmt.Errorf("compound is nil")
		}
		for _, value := range v.entries {
			if err := e.writeNamed(value.Name, value.Tag); err != nil {
				return err
			}
		}
		e.buf.WriteByte(byte(KindEnd))

	default:
		return fmt.Errorf("unsupported tag type %T", tag)
	}

	return nil
}

func (e *encoder) writeList(l *List) error {
	if l == nil {
		return fmt.Errorf("list is nil")
	}
	if !l.ElemKind.Valid() {
		return fmt.Errorf("list element kind %v is unknown", l.ElemKind)
	}
	if l.ElemKind == KindEnd && len(l.Elems) > 0 {
		return fmt.Errorf("list of TAG_End holds %d elements", len(l.Elems))
	}

	e.buf.WriteByte(byte(l.ElemKind))
	if err := e.writeCount(len(l.Elems)); err != nil {
		return err
	}

	for i, value := range l.Elems {
		if value == nil {
			return fmt.Errorf("list element %d is nil", i)
		}
		if value.Kind() != l.ElemKind {
			return fmt.Errorf("list element %d is %v but the list holds %v", i, value.Kind(), l.ElemKind)
		}
		if err := e.writePayload(value); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}
