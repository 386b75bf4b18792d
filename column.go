package bento

import (
	"reflect"
	"unsafe"
)

// poisonByte is written over vacated slots of pointer-free columns when the
// bentodebug build tag is set, to catch use-after-remove.
const poisonByte = 0xFD

// column is one type-erased contiguous array within a table, holding one
// component across all rows. The backing memory is allocated through
// reflect.MakeSlice of the component type, which guarantees element
// alignment and gives the collector an accurate layout; the column itself
// only ever moves bytes.
//
// Invariants: len(buf) == n*size and cap(buf) is the byte capacity.
// Zero-size components never allocate; their capacity is unbounded and only
// n is tracked.
type column struct {
	typ         reflect.Type
	buf         []byte
	size        uintptr
	n           int
	pointerFree bool
}

func newColumn(info *componentInfo) column {
	return column{
		typ:         info.typ,
		size:        info.size,
		pointerFree: info.pointerFree,
	}
}

// ensureCapacity grows the backing buffer to at least capBytes, copying the
// live bytes into the new allocation. Growth is geometric so repeated
// appends amortize to constant time.
func (c *column) ensureCapacity(capBytes int) {
	if c.size == 0 || capBytes <= cap(c.buf) {
		return
	}
	newCap := cap(c.buf)
	for newCap < capBytes {
		newCap = newCap + newCap/2 + 256
	}
	items := (newCap + int(c.size) - 1) / int(c.size)
	arr := reflect.MakeSlice(reflect.SliceOf(c.typ), items, items)
	nb := unsafe.Slice((*byte)(arr.UnsafePointer()), items*int(c.size))
	copy(nb, c.buf)
	c.buf = nb[:len(c.buf)]
}

// addOne grows the column by one element and returns the new slot's bytes.
// The slot is zeroed: fresh allocations come back zeroed from the runtime,
// and recycled slots are cleared here so stale bytes never resurface.
func (c *column) addOne() []byte {
	c.n++
	if c.size == 0 {
		return nil
	}
	need := c.n * int(c.size)
	c.ensureCapacity(need)
	c.buf = c.buf[:need]
	s := c.buf[need-int(c.size) : need]
	clear(s)
	return s
}

// swapRemove drops row by overwriting it with the last element, then
// shrinking by one. The vacated slot is zeroed when the type carries
// pointers (so the collector can reclaim them) and poisoned in debug builds
// otherwise.
func (c *column) swapRemove(row int) {
	last := c.n - 1
	if c.size != 0 {
		if row < last {
			copy(c.slot(row), c.slot(last))
		}
		s := c.slot(last)
		if !c.pointerFree {
			clear(s)
		} else if poisonRemoved {
			for i := range s {
				s[i] = poisonByte
			}
		}
		c.buf = c.buf[:last*int(c.size)]
	}
	c.n = last
}

// slot returns the byte span of one element. Zero-size elements yield an
// empty span.
func (c *column) slot(row int) []byte {
	if c.size == 0 {
		return nil
	}
	off := row * int(c.size)
	return c.buf[off : off+int(c.size) : off+int(c.size)]
}

// itemPtr returns the address of one element. For zero-size elements the
// returned pointer is well-aligned but must not be dereferenced for more
// than zero bytes.
func (c *column) itemPtr(row int) unsafe.Pointer {
	if c.size == 0 {
		return zstBase
	}
	return unsafe.Pointer(&c.buf[row*int(c.size)])
}

// reset drops every element but keeps the allocation. Live bytes are cleared
// first so pointer-carrying rows do not pin their referents.
func (c *column) reset() {
	clear(c.buf)
	c.buf = c.buf[:0]
	c.n = 0
}

// basePtr returns the address of element zero, or the zero-size sentinel for
// empty or zero-size columns.
func (c *column) basePtr() unsafe.Pointer {
	if c.size == 0 || len(c.buf) == 0 {
		return zstBase
	}
	return unsafe.Pointer(&c.buf[0])
}
