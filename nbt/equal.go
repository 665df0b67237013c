package nbt

import (
	"math"
	"slices"
)

// Equal reports whether a and b are structurally the same tree.
// Compound children must appear in the same order, and floating
// point payloads are compared by their bits so that NaN equals
// itself after a round trip.
func Equal(a, b Tag) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}

	switch x := a.(type) {
	case Float:
		return math.Float32bits(float32(x)) == math.Float32bits(float32(b.(Float)))
	case Double:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Double)))
	case ByteArray:
		return slices.Equal(x, b.(ByteArray))
	case IntArray:
		return slices.Equal(x, b.(IntArray))
	case LongArray:
		return slices.Equal(x, b.(LongArray))
	case *List:
		y := b.(*List)
		if x == nil || y == nil {
			return x == y
		}
		if x.ElemKind != y.ElemKind || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case *Compound:
		y := b.(*Compound)
		if x == nil || y == nil {
			return x == y
		}
		if len(x.entries) != len(y.entries) {
			return false
		}
		for i := range x.entries {
			if x.entries[i].Name != y.entries[i].Name || !Equal(x.entries[i].Tag, y.entries[i].Tag) {
				return false
			}
		}
		return true
	}

	return a == b
}
