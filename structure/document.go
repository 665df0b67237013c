package structure

import (
	"fmt"
	"strings"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/nbt"
)

// Document is a typed view over the root compound of a structure.
//
// Accessors never cache, so they always reflect the current tag tree.
// A Document must not be mutated while another goroutine reads it.
type Document struct {
	name string
	root *nbt.Compound
}

// FromTag wraps a decoded root. Only the root kind is checked here;
// every other field is checked by the accessor that reads it.
func FromTag(root nbt.NamedTag) (*Document, error) {
	compound, ok := root.Tag.(*nbt.Compound)
	if !ok || compound == nil {
		kind := nbt.KindEnd
		if root.Tag != nil {
			kind = root.Tag.Kind()
		}
		return nil, fmt.Errorf("FromTag: %w: root is %v, want %v", define.ErrSchemaMismatch, kind, nbt.KindCompound)
	}
	return &Document{name: root.Name, root: compound}, nil
}

// New builds an empty document of the given size. Both block
// index layers are full of air, and the palette, the position
// data and the entity list are empty.
func New(size define.Size, origin define.Origin) *Document {
	volume := size.Volume()

	layers := nbt.NewList(nbt.KindList)
	for range 2 {
		_ = layers.Append(intList(define.NewBlockMatrix(volume)))
	}

	defaultPalette := nbt.NewCompound().
		Set("block_palette", nbt.NewList(nbt.KindCompound)).
		Set("block_position_data", nbt.NewCompound())

	structure := nbt.NewCompound().
		Set("block_indices", layers).
		Set("entities", nbt.NewList(nbt.KindCompound)).
		Set("palette", nbt.NewCompound().Set("default", defaultPalette))

	root := nbt.NewCompound().
		Set(PathFormatVersion, nbt.Int(DefaultFormatVersion)).
		Set(PathSize, intList(size[:])).
		Set(PathStructure, structure).
		Set(PathWorldOrigin, intList(origin[:]))

	return &Document{root: root}
}

// Name returns the name of the root tag, which is usually empty.
func (d *Document) Name() string {
	return d.name
}

// Root returns the underlying tag tree.
func (d *Document) Root() *nbt.Compound {
	return d.root
}

// NamedTag returns the document as a root that nbt.Encode accepts.
func (d *Document) NamedTag() nbt.NamedTag {
	return nbt.NamedTag{Name: d.name, Tag: d.root}
}

// lookup walks path through nested compounds. found is false
// when any element of path is absent, and err is set when an
// intermediate element exists but is not a compound.
func (d *Document) lookup(path string) (tag nbt.Tag, found bool, err error) {
	current := d.root
	parts := strings.Split(path, ".")

	for i, name := range parts {
		child, ok := current.Get(name)
		if !ok {
			return nil, false, nil
		}
		if i == len(parts)-1 {
			return child, true, nil
		}
		next, ok := child.(*nbt.Compound)
		if !ok {
			return nil, false, mismatch(strings.Join(parts[:i+1], "."), child, nbt.KindCompound)
		}
		current = next
	}

	return nil, false, nil
}

// optionalField reads path as a T. A missing field is not an error.
func optionalField[T nbt.Tag](d *Document, path string) (result T, found bool, err error) {
	tag, found, err := d.lookup(path)
	if err != nil || !found {
		return result, false, err
	}
	result, ok := tag.(T)
	if !ok {
		return result, false, mismatch(path, tag, result.Kind())
	}
	return result, true, nil
}

// requiredField reads path as a T and fails when it is missing.
func requiredField[T nbt.Tag](d *Document, path string) (result T, err error) {
	result, found, err := optionalField[T](d, path)
	if err != nil {
		return result, err
	}
	if !found {
		return result, fmt.Errorf("%w: %s is missing", define.ErrSchemaMismatch, path)
	}
	return result, nil
}

// childField is requiredField for a direct child of c.
// path is only used in the error message.
func childField[T nbt.Tag](c *nbt.Compound, name string, path string) (result T, found bool, err error) {
	tag, ok := c.Get(name)
	if !ok {
		return result, false, nil
	}
	result, ok = tag.(T)
	if !ok {
		return result, false, mismatch(path+"."+name, tag, result.Kind())
	}
	return result, true, nil
}

func mismatch(path string, got nbt.Tag, want nbt.Kind) error {
	if got == nil {
		return fmt.Errorf("%w: %s is nil, want %v", define.ErrSchemaMismatch, path, want)
	}
	return fmt.Errorf("%w: %s is %v, want %v", define.ErrSchemaMismatch, path, got.Kind(), want)
}

func intList(values []int32) *nbt.List {
	result := &nbt.List{ElemKind: nbt.KindInt, Elems: make([]nbt.Tag, len(values))}
	for i, value := range values {
		result.Elems[i] = nbt.Int(value)
	}
	return result
}

func floatList(values []float32) *nbt.List {
	result := &nbt.List{ElemKind: nbt.KindFloat, Elems: make([]nbt.Tag, len(values))}
	for i, value := range values {
		result.Elems[i] = nbt.Float(value)
	}
	return result
}
