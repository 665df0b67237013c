package index

import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/define"
	"github.com/TriM-Organization/bedrock-structure-editor/structure"
)

type (
	// NameCount is how many instances of one block name
	// or entity identifier a document holds.
	NameCount struct {
		Name  string
		Count int
	}
	// Instance is one block voxel or one entity.
	Instance struct {
		Key  define.Key
		Name string
	}
)

// Index groups the blocks and entities of one document by name.
//
// An Index is built once and never changes. When the document is
// replaced or edited, build a new Index instead.
type Index struct {
	// Blocks and Entities hold the counts per name, in the
	// order each name first appears in the scan.
	Blocks   []NameCount
	Entities []NameCount
	// BlockInstances are the non-air voxels of the primary
	// layer in offset order.
	BlockInstances []Instance
	// EntityInstances are the entities in list order.
	EntityInstances []Instance

	blockPosition  map[string]int
	entityPosition map[string]int
	blockAt        map[define.BlockPos]int
}

// Build scans the primary layer and the entity list of doc.
// A voxel referring to a palette entry that does not exist
// fails the whole build.
//
// Time complexity: O(n+e), n=volume, e=count of entities.
func Build(doc *structure.Document) (*Index, error) {
	r, err := NewResolver(doc)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	indices, err := r.Layer(0)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	entities, err := doc.Entities()
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	result := &Index{
		blockPosition:  make(map[string]int),
		entityPosition: make(map[string]int),
		blockAt:        make(map[define.BlockPos]int),
	}

	for offset, paletteIndex := range indices {
		if paletteIndex == define.AirIndex {
			continue
		}
		def, err := r.Definition(paletteIndex)
		if err != nil {
			return nil, fmt.Errorf("Build: %w at offset %d", err, offset)
		}
		pos, err := define.OffsetToPosition(offset, r.Size())
		if err != nil {
			return nil, fmt.Errorf("Build: %w", err)
		}

		result.blockAt[pos] = len(result.BlockInstances)
		result.BlockInstances = append(result.BlockInstances, Instance{
			Key:  define.BlockKey(pos),
			Name: def.Name,
		})
		result.Blocks = addCount(result.Blocks, result.blockPosition, def.Name)
	}

	for _, entity := range entities {
		result.EntityInstances = append(result.EntityInstances, Instance{
			Key:  define.EntityKey(entity.Ordinal),
			Name: entity.Identifier,
		})
		result.Entities = addCount(result.Entities, result.entityPosition, entity.Identifier)
	}

	return result, nil
}

func addCount(counts []NameCount, position map[string]int, name string) []NameCount {
	if i, ok := position[name]; ok {
		counts[i].Count++
		return counts
	}
	position[name] = len(counts)
	return append(counts, NameCount{Name: name, Count: 1})
}

// Count returns how many instances named name the index holds.
func (i *Index) Count(kind define.ObjectKind, name string) int {
	switch kind {
	case define.ObjectBlock:
		if p, ok := i.blockPosition[name]; ok {
			return i.Blocks[p].Count
		}
	case define.ObjectEntity:
		if p, ok := i.entityPosition[name]; ok {
			return i.Entities[p].Count
		}
	}
	return 0
}

// Counts returns the counts of kind as a map from name to count.
// The map is empty for an unknown kind.
func (i *Index) Counts(kind define.ObjectKind) map[string]int {
	var groups []NameCount
	switch kind {
	case define.ObjectBlock:
		groups = i.Blocks
	case define.ObjectEntity:
		groups = i.Entities
	}

	result := make(map[string]int, len(groups))
	for _, value := range groups {
		result[value.Name] = value.Count
	}
	return result
}

// Name returns the block name or entity identifier of key.
// found is false for air and for keys outside the document.
func (i *Index) Name(key define.Key) (name string, found bool) {
	switch key.Kind {
	case define.ObjectEntity:
		if key.Ordinal >= 0 && key.Ordinal < len(i.EntityInstances) {
			return i.EntityInstances[key.Ordinal].Name, true
		}
	case define.ObjectBlock:
		if p, ok := i.blockAt[key.Pos]; ok {
			return i.BlockInstances[p].Name, true
		}
	}
	return "", false
}

// VisibleInstances returns the block instances and then the entity
// instances whose name is visible in snapshot.
func (i *Index) VisibleInstances(snapshot VisibilitySnapshot) []Instance {
	result := make([]Instance, 0, len(i.BlockInstances)+len(i.EntityInstances))
	for _, value := range i.BlockInstances {
		if snapshot.Visible(define.ObjectBlock, value.Name) {
			result = append(result, value)
		}
	}
	for _, value := range i.EntityInstances {
		if snapshot.Visible(define.ObjectEntity, value.Name) {
			result = append(result, value)
		}
	}
	return result
}
