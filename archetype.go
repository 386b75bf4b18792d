package bento

import "github.com/edwinsyarief/bento/sortedset"

// archetype is one unique component set and its table. Archetypes are
// created on the first structural transition that lands in them and are
// never destroyed, so their indices stay valid for the world's lifetime.
type archetype struct {
	ids   sortedset.Set[ComponentID] // ascending component ids, the identity
	table table
	mask  bitmask256 // same set, as the archetype map key
	index int        // position in archetypeRegistry.list
}

// archetypeRegistry is the deduplicated mask -> archetype mapping. The list
// preserves insertion order so archetype indices are stable across further
// inserts, which iteration order and the entity directory both rely on.
type archetypeRegistry struct {
	maskToIndex map[bitmask256]int
	list        []*archetype
}

func maskOf(ids sortedset.Set[ComponentID]) bitmask256 {
	var m bitmask256
	for _, id := range ids.Items() {
		m.set(id)
	}
	return m
}

// getOrCreate returns the archetype for the given id set, building its table
// on first sight. The table's column order follows the set's ascending id
// order. The id set is cloned into the stored archetype, so callers may keep
// borrowing theirs.
func (r *archetypeRegistry) getOrCreate(components *componentRegistry, ids sortedset.Set[ComponentID]) *archetype {
	mask := maskOf(ids)
	if idx, ok := r.maskToIndex[mask]; ok {
		return r.list[idx]
	}
	a := &archetype{
		ids:   ids.Clone(),
		mask:  mask,
		index: len(r.list),
	}
	t := &a.table
	for i := range t.colIndex {
		t.colIndex[i] = -1
	}
	for _, id := range a.ids.Items() {
		t.colIndex[id] = int16(len(t.cols))
		t.ids = append(t.ids, id)
		t.cols = append(t.cols, newColumn(components.info(id)))
	}
	r.list = append(r.list, a)
	r.maskToIndex[mask] = a.index
	return a
}
