package depot

import "reflect"

// columnStorage is the type-erased capability object behind one row of
// an Archetype Table: a dense, type-homogeneous, owning container for
// one component type. Backed by a reflect.Value slice rather than
// unsafe pointer arithmetic, since depot targets safety over raw
// throughput.
type columnStorage interface {
	// Len returns the current column count.
	Len() int
	// ElemType returns the declared component type T.
	ElemType() reflect.Type
	// Append appends v at index Len, growing the column by one.
	Append(v any)
	// AppendZero default-constructs one element at the tail. Every Go
	// type has a usable zero value, so this is never a rejected
	// precondition.
	AppendZero()
	// PopLast destroys the last element and shrinks the column by one.
	PopLast()
	// Swap exchanges the elements at i and j in O(1).
	Swap(i, j int)
	// ValueAt returns an addressable reflect.Value for the element at
	// i, used by AccessibleComponent to hand back a typed pointer.
	ValueAt(i int) reflect.Value
	// Set overwrites the element at i with v. i must be < Len(),
	// except for the append-in-place case table.set handles itself.
	Set(i int, v any)
	// CreateEmptyClone returns a new, empty Column Storage of the same
	// element type as this one.
	CreateEmptyClone() columnStorage
	// MoveElementInto moves (not copies) the element at srcIdx from
	// this storage into other at dstIdx, inserting and shifting later
	// elements in other rightward. The source slot is left holding a
	// zeroed, moved-from value; the caller is responsible for the
	// subsequent swap+pop that actually removes the source column.
	MoveElementInto(srcIdx int, other columnStorage, dstIdx int) error
}

// reflectColumn is the only columnStorage implementation. It wraps a
// reflect.Value of Kind Slice; slice elements obtained via Index are
// always addressable regardless of how the slice itself was obtained,
// which is what lets ValueAt hand back a genuine pointer into the
// backing array.
type reflectColumn struct {
	elemType reflect.Type
	data     reflect.Value
}

func newReflectColumn(t reflect.Type, capacity int) *reflectColumn {
	if capacity < 0 {
		capacity = 0
	}
	return &reflectColumn{
		elemType: t,
		data:     reflect.MakeSlice(reflect.SliceOf(t), 0, capacity),
	}
}

func (c *reflectColumn) Len() int               { return c.data.Len() }
func (c *reflectColumn) ElemType() reflect.Type { return c.elemType }

func (c *reflectColumn) Append(v any) {
	c.checkType(v)
	c.data = reflect.Append(c.data, reflect.ValueOf(v))
}

func (c *reflectColumn) AppendZero() {
	c.data = reflect.Append(c.data, reflect.Zero(c.elemType))
}

func (c *reflectColumn) PopLast() {
	n := c.data.Len()
	if n == 0 {
		panicTraced(IndexOutOfRangeError{Index: -1, Length: 0})
	}
	c.data = c.data.Slice(0, n-1)
}

func (c *reflectColumn) Swap(i, j int) {
	c.checkIndex(i)
	c.checkIndex(j)
	if i == j {
		return
	}
	tmp := reflect.New(c.elemType).Elem()
	tmp.Set(c.data.Index(i))
	c.data.Index(i).Set(c.data.Index(j))
	c.data.Index(j).Set(tmp)
}

func (c *reflectColumn) ValueAt(i int) reflect.Value {
	c.checkIndex(i)
	return c.data.Index(i)
}

func (c *reflectColumn) Set(i int, v any) {
	c.checkType(v)
	c.checkIndex(i)
	c.data.Index(i).Set(reflect.ValueOf(v))
}

func (c *reflectColumn) CreateEmptyClone() columnStorage {
	return newReflectColumn(c.elemType, Config.initialColumnCapacity)
}

func (c *reflectColumn) MoveElementInto(srcIdx int, other columnStorage, dstIdx int) error {
	c.checkIndex(srcIdx)
	oc, ok := other.(*reflectColumn)
	if !ok || oc.elemType != c.elemType {
		var zero any
		if oc != nil {
			zero = reflect.Zero(oc.elemType).Interface()
		}
		return TypeMismatchError{Want: reflect.Zero(c.elemType).Interface(), Got: zero}
	}
	moved := reflect.New(c.elemType).Elem()
	moved.Set(c.data.Index(srcIdx))
	oc.insertAt(dstIdx, moved)
	c.data.Index(srcIdx).Set(reflect.Zero(c.elemType))
	return nil
}

// insertAt grows the column by one and shifts elements from the tail
// down to idx+1 rightward, then writes v at idx.
func (c *reflectColumn) insertAt(idx int, v reflect.Value) {
	c.data = reflect.Append(c.data, reflect.Zero(c.elemType))
	for i := c.data.Len() - 1; i > idx; i-- {
		c.data.Index(i).Set(c.data.Index(i - 1))
	}
	c.data.Index(idx).Set(v)
}

func (c *reflectColumn) checkIndex(i int) {
	if i < 0 || i >= c.data.Len() {
		panicTraced(IndexOutOfRangeError{Index: i, Length: c.data.Len()})
	}
}

func (c *reflectColumn) checkType(v any) {
	if reflect.TypeOf(v) != c.elemType {
		panicTraced(TypeMismatchError{Want: reflect.Zero(c.elemType).Interface(), Got: v})
	}
}
