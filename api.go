package bento

import "fmt"

// AddComponent adds a component of type T with the given value to an entity,
// migrating it to the archetype that includes T. It returns a pointer to the
// stored value. Panics if the entity already has the component or if T was
// never registered.
func AddComponent[T any](w *World, e Entity, value T) *T {
	id := GetID[T](w)
	p := (*T)(w.AddRaw(e, id, nil))
	*p = value
	return p
}

// SetComponent overwrites the entity's existing component of type T in
// place. Panics if the entity does not have the component.
func SetComponent[T any](w *World, e Entity, value T) {
	id := GetID[T](w)
	meta := w.mustMeta(e, "SetComponent")
	a := w.archetypes.list[meta.archetypeIndex]
	col := a.table.column(id)
	if col == nil {
		panic(fmt.Sprintf("bento: entity {%d %d} does not have component %s", e.ID, e.Version, w.components.info(id).name))
	}
	*(*T)(col.itemPtr(int(meta.row))) = value
}

// PutComponent overwrites the component if the entity has it, else adds it.
// Returns a pointer to the stored value.
func PutComponent[T any](w *World, e Entity, value T) *T {
	id := GetID[T](w)
	meta := w.mustMeta(e, "PutComponent")
	a := w.archetypes.list[meta.archetypeIndex]
	if col := a.table.column(id); col != nil {
		p := (*T)(col.itemPtr(int(meta.row)))
		*p = value
		return p
	}
	p := (*T)(w.AddRaw(e, id, nil))
	*p = value
	return p
}

// RemoveComponent removes the component of type T from the entity, migrating
// it to the archetype without T. Removing a component the entity lacks is a
// no-op.
func RemoveComponent[T any](w *World, e Entity) {
	w.DeleteRaw(e, GetID[T](w))
}

// GetComponent returns a pointer to the entity's component of type T, or
// false if the entity's archetype lacks it. The pointer is borrowed and
// valid only until the next structural mutation on the world.
func GetComponent[T any](w *World, e Entity) (*T, bool) {
	id := GetID[T](w)
	meta := w.mustMeta(e, "GetComponent")
	a := w.archetypes.list[meta.archetypeIndex]
	col := a.table.column(id)
	if col == nil {
		return nil, false
	}
	return (*T)(col.itemPtr(int(meta.row))), true
}

// HasComponent reports whether the entity's archetype contains T.
func HasComponent[T any](w *World, e Entity) bool {
	id := GetID[T](w)
	meta := w.mustMeta(e, "HasComponent")
	return w.archetypes.list[meta.archetypeIndex].mask.has(id)
}
