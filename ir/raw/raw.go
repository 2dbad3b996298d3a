// Package raw holds the low-level PDF object model the writer serializes.
package raw

import (
	"fmt"
	"sort"
)

// ObjectRef uniquely identifies an indirect PDF object.
type ObjectRef struct {
	Num int
	Gen int
}

func (r ObjectRef) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Object is the base interface for all raw PDF objects.
type Object interface {
	Type() string
	IsIndirect() bool
}

// Table collects indirect objects keyed by reference and hands out
// sequential object numbers starting at 1.
type Table struct {
	objects map[ObjectRef]Object
	next    int
}

// NewTable returns an empty object table.
func NewTable() *Table {
	return &Table{objects: make(map[ObjectRef]Object), next: 1}
}

// Reserve allocates the next object number without storing an object yet.
func (t *Table) Reserve() ObjectRef {
	ref := ObjectRef{Num: t.next}
	t.next++
	return ref
}

// Add allocates a reference and stores obj under it.
func (t *Table) Add(obj Object) ObjectRef {
	ref := t.Reserve()
	t.objects[ref] = obj
	return ref
}

// Set stores obj under a previously reserved reference.
func (t *Table) Set(ref ObjectRef, obj Object) { t.objects[ref] = obj }

// Get returns the object stored under ref.
func (t *Table) Get(ref ObjectRef) (Object, bool) {
	o, ok := t.objects[ref]
	return o, ok
}

// Len reports the number of stored objects.
func (t *Table) Len() int { return len(t.objects) }

// Size is the trailer /Size value: highest object number plus one.
func (t *Table) Size() int { return t.next }

// Ordered returns the stored references sorted by object number.
func (t *Table) Ordered() []ObjectRef {
	refs := make([]ObjectRef, 0, len(t.objects))
	for ref := range t.objects {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Num < refs[j].Num })
	return refs
}
