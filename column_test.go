package bento

import (
	"reflect"
	"testing"
)

type vec2 struct{ X, Y float32 }

func testInfo(t *testing.T, typ reflect.Type) *componentInfo {
	t.Helper()
	return &componentInfo{
		typ:         typ,
		name:        typ.String(),
		size:        typ.Size(),
		align:       uintptr(typ.Align()),
		pointerFree: !typeHasPointers(typ),
	}
}

// go test -run ^TestColumnGrowth$ . -count 1
func TestColumnGrowth(t *testing.T) {
	c := newColumn(testInfo(t, reflect.TypeOf((*vec2)(nil)).Elem()))
	if cap(c.buf) != 0 {
		t.Fatal("newColumn must not allocate")
	}

	for i := 0; i < 1000; i++ {
		s := c.addOne()
		if len(s) != 8 {
			t.Fatalf("slot size %d, want 8", len(s))
		}
	}
	if c.n != 1000 || len(c.buf) != 8000 {
		t.Errorf("n=%d len=%d after 1000 appends", c.n, len(c.buf))
	}
	if cap(c.buf) < 8000 {
		t.Errorf("capacity %d below live bytes", cap(c.buf))
	}
	if cap(c.buf)%8 != 0 {
		t.Errorf("capacity %d is not a whole number of items", cap(c.buf))
	}
}

// go test -run ^TestColumnSwapRemove$ . -count 1
func TestColumnSwapRemove(t *testing.T) {
	c := newColumn(testInfo(t, reflect.TypeOf((*vec2)(nil)).Elem()))
	for i := 0; i < 3; i++ {
		c.addOne()
		*(*vec2)(c.itemPtr(i)) = vec2{X: float32(i)}
	}

	// removing the middle row moves the last row into it
	c.swapRemove(1)
	if c.n != 2 {
		t.Fatalf("n=%d after swapRemove, want 2", c.n)
	}
	if got := (*vec2)(c.itemPtr(1)); got.X != 2 {
		t.Errorf("row 1 should hold the former last row, got %+v", got)
	}
	if got := (*vec2)(c.itemPtr(0)); got.X != 0 {
		t.Errorf("row 0 disturbed by swapRemove: %+v", got)
	}

	// removing the last row just shrinks
	c.swapRemove(1)
	if c.n != 1 || len(c.buf) != 8 {
		t.Errorf("n=%d len=%d after removing last row", c.n, len(c.buf))
	}
}

// go test -run ^TestColumnZeroSize$ . -count 1
func TestColumnZeroSize(t *testing.T) {
	c := newColumn(testInfo(t, reflect.TypeOf((*struct{})(nil)).Elem()))
	for i := 0; i < 100; i++ {
		c.addOne()
	}
	if cap(c.buf) != 0 {
		t.Error("zero-size column must never allocate")
	}
	if c.n != 100 {
		t.Errorf("n=%d, want 100", c.n)
	}
	if len(c.slot(50)) != 0 {
		t.Error("zero-size slot should be an empty span")
	}
	if c.itemPtr(50) == nil {
		t.Error("zero-size itemPtr must be non-nil")
	}
	c.swapRemove(10)
	if c.n != 99 {
		t.Errorf("n=%d after swapRemove, want 99", c.n)
	}
}

// go test -run ^TestColumnPointerSlotCleared$ . -count 1
func TestColumnPointerSlotCleared(t *testing.T) {
	type ref struct{ P *int }
	c := newColumn(testInfo(t, reflect.TypeOf((*ref)(nil)).Elem()))
	x := 7
	c.addOne()
	c.addOne()
	*(*ref)(c.itemPtr(0)) = ref{P: &x}
	*(*ref)(c.itemPtr(1)) = ref{P: &x}

	c.swapRemove(0)
	// the vacated slot past the new length must not pin &x
	tail := c.buf[len(c.buf):cap(c.buf)][:c.size]
	for i, b := range tail {
		if b != 0 {
			t.Fatalf("vacated pointer slot byte %d = %#x, want 0", i, b)
		}
	}
}

// go test -run ^TestTableRowInvariants$ . -count 1
func TestTableRowInvariants(t *testing.T) {
	w := NewWorld(8)
	idA := RegisterComponent[vec2](w)
	idB := RegisterComponent[struct{ N int }](w)

	b := NewBuilder2[vec2, struct{ N int }](w)
	b.NewEntities(5)

	a := w.archetypes.list[1] // builder's archetype, after the empty one
	if got := a.table.count(); got != 5 {
		t.Fatalf("table count %d, want 5", got)
	}
	for _, id := range []ComponentID{idA, idB} {
		if a.table.column(id).n != a.table.count() {
			t.Errorf("column %d out of lock-step with table", id)
		}
	}
	for i := 1; i < len(a.table.ids); i++ {
		if a.table.ids[i] <= a.table.ids[i-1] {
			t.Error("table column order must be strictly ascending by id")
		}
	}
	for r, e := range a.table.entities {
		meta := w.entities.metas[e.ID]
		if int(meta.row) != r || int(meta.archetypeIndex) != a.index {
			t.Errorf("directory disagrees with table at row %d: %+v", r, meta)
		}
	}
}
