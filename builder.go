package bento

import "github.com/edwinsyarief/bento/sortedset"

// Builder spawns entities directly into the archetype containing exactly the
// component type T. The archetype is resolved once at construction, so each
// spawn is a straight row append with no transition lookup.
type Builder[T any] struct {
	world *World
	arch  *archetype
	id1   ComponentID
}

// NewBuilder creates a builder for entities with component T, registering T
// if needed.
func NewBuilder[T any](w *World) *Builder[T] {
	id1 := RegisterComponent[T](w)
	arch := w.archetypes.getOrCreate(&w.components, sortedset.New(id1))
	return &Builder[T]{world: w, arch: arch, id1: id1}
}

// NewEntity spawns an entity whose component is the zero value.
func (b *Builder[T]) NewEntity() Entity {
	return spawnInto(b.world, b.arch)
}

// NewEntityWith spawns an entity carrying the given component value.
func (b *Builder[T]) NewEntityWith(v1 T) Entity {
	e := spawnInto(b.world, b.arch)
	row := b.arch.table.count() - 1
	*(*T)(b.arch.table.column(b.id1).itemPtr(row)) = v1
	return e
}

// NewEntities spawns count entities with zero-valued components and returns
// their handles.
func (b *Builder[T]) NewEntities(count int) []Entity {
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = spawnInto(b.world, b.arch)
	}
	return ents
}

// Builder2 spawns entities with exactly the components T1 and T2. The two
// types must be distinct; a duplicate panics at construction.
type Builder2[T1, T2 any] struct {
	world    *World
	arch     *archetype
	id1, id2 ComponentID
}

// NewBuilder2 creates a builder for entities with components T1 and T2.
func NewBuilder2[T1, T2 any](w *World) *Builder2[T1, T2] {
	id1 := RegisterComponent[T1](w)
	id2 := RegisterComponent[T2](w)
	arch := w.archetypes.getOrCreate(&w.components, sortedset.New(id1, id2))
	return &Builder2[T1, T2]{world: w, arch: arch, id1: id1, id2: id2}
}

// NewEntity spawns an entity whose components are zero values.
func (b *Builder2[T1, T2]) NewEntity() Entity {
	return spawnInto(b.world, b.arch)
}

// NewEntityWith spawns an entity carrying the given component values.
func (b *Builder2[T1, T2]) NewEntityWith(v1 T1, v2 T2) Entity {
	e := spawnInto(b.world, b.arch)
	row := b.arch.table.count() - 1
	*(*T1)(b.arch.table.column(b.id1).itemPtr(row)) = v1
	*(*T2)(b.arch.table.column(b.id2).itemPtr(row)) = v2
	return e
}

// NewEntities spawns count entities with zero-valued components and returns
// their handles.
func (b *Builder2[T1, T2]) NewEntities(count int) []Entity {
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = spawnInto(b.world, b.arch)
	}
	return ents
}

// Builder3 spawns entities with exactly the components T1, T2 and T3. The
// types must be pairwise distinct; a duplicate panics at construction.
type Builder3[T1, T2, T3 any] struct {
	world         *World
	arch          *archetype
	id1, id2, id3 ComponentID
}

// NewBuilder3 creates a builder for entities with components T1, T2 and T3.
func NewBuilder3[T1, T2, T3 any](w *World) *Builder3[T1, T2, T3] {
	id1 := RegisterComponent[T1](w)
	id2 := RegisterComponent[T2](w)
	id3 := RegisterComponent[T3](w)
	arch := w.archetypes.getOrCreate(&w.components, sortedset.New(id1, id2, id3))
	return &Builder3[T1, T2, T3]{world: w, arch: arch, id1: id1, id2: id2, id3: id3}
}

// NewEntity spawns an entity whose components are zero values.
func (b *Builder3[T1, T2, T3]) NewEntity() Entity {
	return spawnInto(b.world, b.arch)
}

// NewEntityWith spawns an entity carrying the given component values.
func (b *Builder3[T1, T2, T3]) NewEntityWith(v1 T1, v2 T2, v3 T3) Entity {
	e := spawnInto(b.world, b.arch)
	row := b.arch.table.count() - 1
	*(*T1)(b.arch.table.column(b.id1).itemPtr(row)) = v1
	*(*T2)(b.arch.table.column(b.id2).itemPtr(row)) = v2
	*(*T3)(b.arch.table.column(b.id3).itemPtr(row)) = v3
	return e
}

// NewEntities spawns count entities with zero-valued components and returns
// their handles.
func (b *Builder3[T1, T2, T3]) NewEntities(count int) []Entity {
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = spawnInto(b.world, b.arch)
	}
	return ents
}

// spawnInto allocates a directory slot pointing at the archetype's next row
// and appends the row.
func spawnInto(w *World, a *archetype) Entity {
	e := w.allocate(int32(a.index), int32(a.table.count()))
	a.table.addRow(e)
	return e
}
