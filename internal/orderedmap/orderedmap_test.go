package orderedmap

import (
	"reflect"
	"testing"
)

func TestInsertionOrderPreserved(t *testing.T) {
	m := New[uint64, string]()
	m.Set(3, "c")
	m.Set(1, "a")
	m.Set(2, "b")

	want := []uint64{3, 1, 2}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}

	wantValues := []string{"c", "a", "b"}
	if got := m.Values(); !reflect.DeepEqual(got, wantValues) {
		t.Fatalf("Values() = %v, want %v", got, wantValues)
	}
}

func TestSetExistingKeyDoesNotMoveIt(t *testing.T) {
	m := New[uint64, string]()
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(1, "updated")

	want := []uint64{1, 2}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	if v, ok := m.Get(1); !ok || v != "updated" {
		t.Fatalf("Get(1) = %q, %v, want %q, true", v, ok, "updated")
	}
}

func TestDeleteRemovesFromIterationOrder(t *testing.T) {
	m := New[uint64, string]()
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(3, "c")

	v, ok := m.Delete(2)
	if !ok || v != "b" {
		t.Fatalf("Delete(2) = %q, %v, want %q, true", v, ok, "b")
	}

	want := []uint64{1, 3}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Keys() after delete = %v, want %v", got, want)
	}
	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
}

func TestDeleteMissingKey(t *testing.T) {
	m := New[uint64, string]()
	m.Set(1, "a")

	if _, ok := m.Delete(99); ok {
		t.Fatal("Delete(99) ok = true, want false")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}
