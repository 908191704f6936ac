package depot

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type columnTestVec struct {
	X, Y int
}

func TestColumnAppendAndSwap(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)

	for i := 0; i < 5; i++ {
		col.Append(columnTestVec{X: i, Y: i * 10})
	}
	assert.Equal(t, 5, col.Len())

	col.Swap(0, 4)
	first := col.ValueAt(0).Interface().(columnTestVec)
	last := col.ValueAt(4).Interface().(columnTestVec)
	assert.Equal(t, 4, first.X)
	assert.Equal(t, 0, last.X)

	col.Swap(2, 2)
	mid := col.ValueAt(2).Interface().(columnTestVec)
	assert.Equal(t, 2, mid.X, "Swap(i,i) should be a no-op")
}

func TestColumnPopLast(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	col.Append(columnTestVec{X: 1})
	col.Append(columnTestVec{X: 2})

	col.PopLast()
	assert.Equal(t, 1, col.Len())
	assert.Equal(t, columnTestVec{X: 1}, col.ValueAt(0).Interface().(columnTestVec))
}

func TestColumnPopLastEmptyPanics(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	assert.Panics(t, col.PopLast)
}

func TestColumnAppendZero(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	col.AppendZero()
	assert.Equal(t, columnTestVec{}, col.ValueAt(0).Interface().(columnTestVec))
}

// TestColumnMoveElementInto exercises the move-not-copy contract: the
// destination gets the value, and the source slot is left zeroed.
func TestColumnMoveElementInto(t *testing.T) {
	src := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	dst := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)

	src.Append(columnTestVec{X: 1, Y: 1})
	src.Append(columnTestVec{X: 2, Y: 2})
	src.Append(columnTestVec{X: 3, Y: 3})
	dst.Append(columnTestVec{X: 100, Y: 100})

	err := src.MoveElementInto(1, dst, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, dst.Len())

	moved := dst.ValueAt(1).Interface().(columnTestVec)
	assert.Equal(t, columnTestVec{X: 2, Y: 2}, moved)

	srcZeroed := src.ValueAt(1).Interface().(columnTestVec)
	assert.Equal(t, columnTestVec{}, srcZeroed, "source slot should be zeroed after a move")
}

func TestColumnMoveElementIntoTypeMismatch(t *testing.T) {
	src := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	dst := newReflectColumn(reflect.TypeOf(int(0)), 0)
	src.Append(columnTestVec{X: 1})

	err := src.MoveElementInto(0, dst, 0)
	assert.Error(t, err)
	assert.IsType(t, TypeMismatchError{}, err)
}

func TestColumnCreateEmptyClone(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	col.Append(columnTestVec{X: 1})

	clone := col.CreateEmptyClone()
	assert.Equal(t, 0, clone.Len())
	assert.Equal(t, col.ElemType(), clone.ElemType())
}

func TestColumnSetTypeMismatchPanics(t *testing.T) {
	col := newReflectColumn(reflect.TypeOf(columnTestVec{}), 0)
	col.Append(columnTestVec{})

	assert.Panics(t, func() { col.Set(0, 42) })
}
