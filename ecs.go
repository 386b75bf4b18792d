// Package bento implements a high-performance, archetype-based Entity
// Component System for Go.
//
// Entities are grouped by the exact set of component types they carry. Each
// group (archetype) stores its entities in a struct-of-arrays table: one
// contiguous, type-erased column per component plus a parallel vector of
// entity handles. Bulk iteration projects matching tables into typed slices,
// so systems touch component data linearly.
//
// The world is single-threaded and non-reentrant. Pointers handed out by
// GetComponent, filters, and views are borrowed: any structural mutation
// (spawn, despawn, component add/remove) invalidates them. That contract is
// caller-enforced; the core does not detect it.
package bento

import "unsafe"

const (
	bitsPerWord = 64
	maskWords   = 4

	// MaxComponentTypes is the maximum number of unique component types a
	// World can register. This value is fixed at 256.
	MaxComponentTypes = maskWords * bitsPerWord
)

// ComponentID is a dense identifier for a registered component type. IDs are
// assigned sequentially at first registration and are stable for the
// lifetime of the world; they are never recycled.
type ComponentID uint8

// Entity is a unique ID + generation tag. The generation is bumped every
// time the entity is despawned, so stale handles compare unequal against the
// slot's current generation.
type Entity struct {
	ID      uint32
	Version uint32
}

// entityMeta holds where an entity lives. A free slot has archetypeIndex -1;
// the generation lives outside that discriminant so despawn can bump it
// before the slot is recycled.
type entityMeta struct {
	archetypeIndex int32 // index in World.archetypes.list, -1 when free
	row            int32 // position inside the archetype's table
	version        uint32
}

// zstBase is the well-aligned, non-nil address handed out for slots of
// zero-sized components. It must never be dereferenced for more than zero
// bytes.
var zstSentinel uint64
var zstBase = unsafe.Pointer(&zstSentinel)
