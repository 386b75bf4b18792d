package sortedset_test

import (
	"testing"

	"github.com/edwinsyarief/bento/sortedset"
)

func TestNewSorts(t *testing.T) {
	s := sortedset.New[uint8](5, 1, 3)
	want := []uint8{1, 3, 5}
	for i, v := range want {
		if s.At(i) != v {
			t.Errorf("At(%d) = %d, want %d", i, s.At(i), v)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestNewDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate element")
		}
	}()
	sortedset.New[uint8](1, 2, 1)
}

func TestAddKeepsOrderAndInput(t *testing.T) {
	a := sortedset.New[uint8](1, 5)
	b := a.Add(3)

	if !b.Equal(sortedset.New[uint8](1, 3, 5)) {
		t.Errorf("Add(3) = %v", b.Items())
	}
	if !a.Equal(sortedset.New[uint8](1, 5)) {
		t.Error("Add mutated its receiver")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a present element")
		}
	}()
	b.Add(3)
}

func TestRemove(t *testing.T) {
	a := sortedset.New[uint8](1, 3, 5)
	b := a.Remove(3)

	if !b.Equal(sortedset.New[uint8](1, 5)) {
		t.Errorf("Remove(3) = %v", b.Items())
	}
	if a.Len() != 3 {
		t.Error("Remove mutated its receiver")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic removing an absent element")
		}
	}()
	b.Remove(3)
}

func TestContains(t *testing.T) {
	s := sortedset.New[uint8](2, 4, 6, 8)
	for _, v := range []uint8{2, 4, 6, 8} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false", v)
		}
	}
	for _, v := range []uint8{0, 1, 3, 5, 7, 9} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true", v)
		}
	}
}

func TestHashStable(t *testing.T) {
	a := sortedset.New[uint8](7, 2, 9)
	b := sortedset.New[uint8](9, 7, 2)
	if a.Hash() != b.Hash() {
		t.Error("equal sets must hash identically")
	}
	if a.Hash() == sortedset.New[uint8](7, 2).Hash() {
		t.Error("distinct sets should not collide on this input")
	}
	var empty sortedset.Set[uint8]
	if empty.Hash() != sortedset.New[uint8]().Hash() {
		t.Error("zero value and New() must hash identically")
	}
}

func TestRoundTrip(t *testing.T) {
	a := sortedset.New[uint8](1, 2, 3)
	if !a.Add(4).Remove(4).Equal(a) {
		t.Error("add then remove should return to the original set")
	}
}
