package bento

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/edwinsyarief/bento/sortedset"
)

// entityDirectory is the generational slot array mapping entity ID to
// (archetype index, row), plus a LIFO stack of recycled IDs.
type entityDirectory struct {
	metas    []entityMeta
	freeIDs  []uint32
	capacity int
}

// World owns all ECS state: the component registry, the archetype index and
// the entity directory. All methods require exclusive access for mutations
// and shared access for reads; enforcement is the caller's responsibility.
type World struct {
	components componentRegistry
	archetypes archetypeRegistry
	entities   entityDirectory
	resources  Resources
	events     EventBus
}

// NewWorld creates a world preallocating directory slots for up to
// initialCapacity entities. The empty archetype is created eagerly so that
// spawning never misses.
func NewWorld(initialCapacity int) *World {
	w := &World{
		components: componentRegistry{
			typeToID: make(map[reflect.Type]ComponentID, 16),
		},
		archetypes: archetypeRegistry{
			maskToIndex: make(map[bitmask256]int),
			list:        make([]*archetype, 0, 16),
		},
		entities: entityDirectory{
			metas:    make([]entityMeta, initialCapacity),
			freeIDs:  make([]uint32, initialCapacity),
			capacity: initialCapacity,
		},
	}
	for i := 0; i < initialCapacity; i++ {
		// fill freeIDs with [cap-1 .. 0] so ID 0 is handed out first
		w.entities.freeIDs[i] = uint32(initialCapacity - 1 - i)
	}
	for i := range w.entities.metas {
		w.entities.metas[i].archetypeIndex = -1
		w.entities.metas[i].row = -1
	}
	w.archetypes.getOrCreate(&w.components, sortedset.New[ComponentID]())
	return w
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources {
	return &w.resources
}

// Events returns the world's event bus.
func (w *World) Events() *EventBus {
	return &w.events
}

// expand grows the directory when the free stack runs dry.
func (w *World) expand(additional int) {
	oldCap := w.entities.capacity
	newCap := oldCap * 2
	if newCap == 0 {
		newCap = 1
	}
	if newCap < oldCap+additional {
		newCap = oldCap + additional
	}
	delta := newCap - oldCap
	newMetas := make([]entityMeta, delta)
	for i := range newMetas {
		newMetas[i].archetypeIndex = -1
		newMetas[i].row = -1
	}
	w.entities.metas = append(w.entities.metas, newMetas...)
	for i := 0; i < delta; i++ {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(newCap-1-i))
	}
	w.entities.capacity = newCap
}

// allocate pops a directory slot (most recently freed first), points it at
// the given location and returns the handle carrying the slot's current
// generation.
func (w *World) allocate(archetypeIndex, row int32) Entity {
	if len(w.entities.freeIDs) == 0 {
		w.expand(1)
	}
	last := len(w.entities.freeIDs) - 1
	id := w.entities.freeIDs[last]
	w.entities.freeIDs = w.entities.freeIDs[:last]
	meta := &w.entities.metas[id]
	meta.archetypeIndex = archetypeIndex
	meta.row = row
	return Entity{ID: id, Version: meta.version}
}

// CreateEntity spawns a new entity with no components.
func (w *World) CreateEntity() Entity {
	a := w.archetypes.list[0] // empty archetype, created in NewWorld
	e := w.allocate(0, int32(a.table.count()))
	a.table.addRow(e)
	return e
}

// RemoveEntity despawns an entity: its row is swap-removed from its table,
// the slot's generation is bumped and the slot goes back on the free stack.
// Stale or dead handles are a silent no-op.
func (w *World) RemoveEntity(e Entity) {
	if !w.IsAlive(e) {
		return
	}
	meta := &w.entities.metas[e.ID]
	a := w.archetypes.list[meta.archetypeIndex]
	row := int(meta.row)
	a.table.swapRemoveRow(row)
	if row < a.table.count() {
		moved := a.table.entities[row]
		w.entities.metas[moved.ID].row = int32(row)
	}
	meta.version++
	meta.archetypeIndex = -1
	meta.row = -1
	w.entities.freeIDs = append(w.entities.freeIDs, e.ID)
}

// IsAlive reports whether the handle refers to a live entity: the index is
// in range, the slot is occupied and the generations match.
func (w *World) IsAlive(e Entity) bool {
	if int(e.ID) >= len(w.entities.metas) {
		return false
	}
	meta := &w.entities.metas[e.ID]
	return meta.archetypeIndex >= 0 && meta.version == e.Version
}

// ClearEntities removes all entities, recycling every ID and resetting all
// tables without deallocating their storage. Generations of occupied slots
// are bumped so outstanding handles go stale.
func (w *World) ClearEntities() {
	for i := range w.entities.metas {
		m := &w.entities.metas[i]
		if m.archetypeIndex >= 0 {
			m.version++
		}
		m.archetypeIndex = -1
		m.row = -1
	}
	w.entities.freeIDs = w.entities.freeIDs[:0]
	for i := 0; i < w.entities.capacity; i++ {
		w.entities.freeIDs = append(w.entities.freeIDs, uint32(w.entities.capacity-1-i))
	}
	for _, a := range w.archetypes.list {
		a.table.entities = a.table.entities[:0]
		for i := range a.table.cols {
			a.table.cols[i].reset()
		}
	}
}

// ArchetypeCount returns the number of distinct archetypes created so far,
// including the empty one.
func (w *World) ArchetypeCount() int {
	return len(w.archetypes.list)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	n := 0
	for _, a := range w.archetypes.list {
		n += a.table.count()
	}
	return n
}

// mustMeta resolves a handle that the calling operation documents as
// requiring a live entity.
func (w *World) mustMeta(e Entity, op string) *entityMeta {
	if !w.IsAlive(e) {
		panic(fmt.Sprintf("bento: %s on dead or stale entity {%d %d}", op, e.ID, e.Version))
	}
	return &w.entities.metas[e.ID]
}

// moveEntity migrates the entity's row from its current table to target.
// The order is load-bearing: copy the row, swap-remove the source, fix the
// displaced entity's directory row, then update the mover's entry.
func (w *World) moveEntity(meta *entityMeta, target *archetype) int {
	src := w.archetypes.list[meta.archetypeIndex]
	row := int(meta.row)
	dstRow := target.table.copyRowFrom(&src.table, row)
	src.table.swapRemoveRow(row)
	if row < src.table.count() {
		moved := src.table.entities[row]
		w.entities.metas[moved.ID].row = int32(row)
	}
	meta.archetypeIndex = int32(target.index)
	meta.row = int32(dstRow)
	return dstRow
}

// AddRaw adds the component id to the entity, migrating its row to the
// archetype source+id, and writes data (exactly descriptor-size bytes) into
// the new column. A nil data leaves the slot zeroed. Returns the slot
// address. Panics if the entity already has the component.
func (w *World) AddRaw(e Entity, id ComponentID, data []byte) unsafe.Pointer {
	meta := w.mustMeta(e, "AddRaw")
	info := w.components.info(id)
	if data != nil && uintptr(len(data)) != info.size {
		panic(fmt.Sprintf("bento: AddRaw %s: got %d bytes, want %d", info.name, len(data), info.size))
	}
	src := w.archetypes.list[meta.archetypeIndex]
	if src.mask.has(id) {
		panic(fmt.Sprintf("bento: entity {%d %d} already has component %s", e.ID, e.Version, info.name))
	}
	target := w.archetypes.getOrCreate(&w.components, src.ids.Add(id))
	row := w.moveEntity(meta, target)
	col := target.table.column(id)
	if data != nil {
		copy(col.slot(row), data)
	}
	return col.itemPtr(row)
}

// SetRaw overwrites the entity's existing component in place. Panics if the
// entity lacks the component.
func (w *World) SetRaw(e Entity, id ComponentID, data []byte) {
	meta := w.mustMeta(e, "SetRaw")
	info := w.components.info(id)
	if uintptr(len(data)) != info.size {
		panic(fmt.Sprintf("bento: SetRaw %s: got %d bytes, want %d", info.name, len(data), info.size))
	}
	a := w.archetypes.list[meta.archetypeIndex]
	col := a.table.column(id)
	if col == nil {
		panic(fmt.Sprintf("bento: entity {%d %d} does not have component %s", e.ID, e.Version, info.name))
	}
	copy(col.slot(int(meta.row)), data)
}

// PutRaw overwrites the component if present, else adds it. Returns the slot
// address.
func (w *World) PutRaw(e Entity, id ComponentID, data []byte) unsafe.Pointer {
	meta := w.mustMeta(e, "PutRaw")
	a := w.archetypes.list[meta.archetypeIndex]
	if col := a.table.column(id); col != nil {
		info := w.components.info(id)
		if uintptr(len(data)) != info.size {
			panic(fmt.Sprintf("bento: PutRaw %s: got %d bytes, want %d", info.name, len(data), info.size))
		}
		copy(col.slot(int(meta.row)), data)
		return col.itemPtr(int(meta.row))
	}
	return w.AddRaw(e, id, data)
}

// DeleteRaw removes the component id from the entity, migrating its row to
// the archetype source-id. Removing a component the entity lacks is a no-op.
func (w *World) DeleteRaw(e Entity, id ComponentID) {
	meta := w.mustMeta(e, "DeleteRaw")
	src := w.archetypes.list[meta.archetypeIndex]
	if !src.mask.has(id) {
		return
	}
	target := w.archetypes.getOrCreate(&w.components, src.ids.Remove(id))
	w.moveEntity(meta, target)
}

// GetRaw returns the address of the entity's component slot, or false if the
// entity's archetype lacks the id. The pointer is borrowed and valid only
// until the next structural mutation.
func (w *World) GetRaw(e Entity, id ComponentID) (unsafe.Pointer, bool) {
	meta := w.mustMeta(e, "GetRaw")
	a := w.archetypes.list[meta.archetypeIndex]
	col := a.table.column(id)
	if col == nil {
		return nil, false
	}
	return col.itemPtr(int(meta.row)), true
}
