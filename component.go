package bento

import (
	"fmt"
	"reflect"
)

// componentInfo is the per-id descriptor recorded at first registration.
type componentInfo struct {
	typ         reflect.Type
	name        string
	size        uintptr
	align       uintptr
	pointerFree bool // true if values of this type contain no pointer words
}

// componentRegistry maps component types to dense IDs and stores the
// descriptor for each ID. IDs are handed out sequentially and never freed;
// the registry lives exactly as long as its world.
type componentRegistry struct {
	typeToID map[reflect.Type]ComponentID
	infos    []componentInfo
}

// register returns the ID for t, minting a fresh one on first sight.
func (r *componentRegistry) register(t reflect.Type) ComponentID {
	if id, ok := r.typeToID[t]; ok {
		return id
	}
	if len(r.infos) >= MaxComponentTypes {
		panic(fmt.Sprintf("bento: cannot register component %s: maximum number of component types (%d) reached", t, MaxComponentTypes))
	}
	id := ComponentID(len(r.infos))
	r.typeToID[t] = id
	r.infos = append(r.infos, componentInfo{
		typ:         t,
		name:        t.String(),
		size:        t.Size(),
		align:       uintptr(t.Align()),
		pointerFree: !typeHasPointers(t),
	})
	return id
}

// lookup never creates.
func (r *componentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.typeToID[t]
	return id, ok
}

func (r *componentRegistry) info(id ComponentID) *componentInfo {
	if int(id) >= len(r.infos) {
		panic(fmt.Sprintf("bento: component ID %d not registered", id))
	}
	return &r.infos[id]
}

// typeHasPointers reports whether values of t contain pointer words. Columns
// of pointer-carrying types must zero vacated slots so the collector can
// reclaim what the row referenced.
func typeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && typeHasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeHasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// RegisterComponent registers a component type with the world and returns
// its ID. Registration is idempotent: subsequent calls for the same type
// return the existing ID and the descriptor is stored once.
func RegisterComponent[T any](w *World) ComponentID {
	return w.components.register(reflect.TypeOf((*T)(nil)).Elem())
}

// GetID returns the ComponentID for a registered component type. It panics
// if the type has not been registered.
func GetID[T any](w *World) ComponentID {
	t := reflect.TypeOf((*T)(nil)).Elem()
	id, ok := w.components.lookup(t)
	if !ok {
		panic(fmt.Sprintf("bento: component type %s not registered", t))
	}
	return id
}

// TryGetID returns the ComponentID for a component type and whether it was
// registered. It never registers.
func TryGetID[T any](w *World) (ComponentID, bool) {
	return w.components.lookup(reflect.TypeOf((*T)(nil)).Elem())
}

// ComponentDescriptor returns the recorded name, size and alignment for a
// registered component ID.
func (w *World) ComponentDescriptor(id ComponentID) (name string, size, align uintptr) {
	info := w.components.info(id)
	return info.name, info.size, info.align
}
