package depot

import (
	"fmt"
	"reflect"
)

// componentValue pairs a component's type id with the value to write
// into its row, used by table.add and table.set.
type componentValue struct {
	typeID ComponentTypeID
	value  any
}

// table is the Archetype Table: a two-dimensional structure whose rows
// are component types and whose columns are entities, one Column
// Storage per row.
type table struct {
	rowTypes    []ComponentTypeID
	typeToRow   map[ComponentTypeID]int
	colToEntity []EntityID
	entityToCol map[EntityID]int
	storages    []columnStorage
}

// newTable builds a fresh, square (zero-column) table with one storage
// per requested component type.
func newTable(types []ComponentTypeID, reflectTypes []reflect.Type, capacity int) *table {
	rowTypes := make([]ComponentTypeID, len(types))
	copy(rowTypes, types)
	typeToRow := make(map[ComponentTypeID]int, len(types))
	storages := make([]columnStorage, len(types))
	for i, id := range types {
		typeToRow[id] = i
		storages[i] = newReflectColumn(reflectTypes[i], capacity)
	}
	return &table{
		rowTypes:    rowTypes,
		typeToRow:   typeToRow,
		storages:    storages,
		entityToCol: make(map[EntityID]int),
	}
}

// newEmptyTable builds the canonical zero-row table used for entities
// that carry no components yet (the "empty archetype").
func newEmptyTable() *table {
	return &table{
		typeToRow:   make(map[ComponentTypeID]int),
		entityToCol: make(map[EntityID]int),
	}
}

// Len is the column count — the number of entities currently held.
func (t *table) Len() int { return len(t.colToEntity) }

// Tag returns the table's row types as a sorted Tag. rowTypes itself
// need not be sorted; this recomputes the canonical key.
func (t *table) Tag() Tag {
	return sortedUnique(t.rowTypes)
}

// Has reports whether id currently occupies a column in this table.
func (t *table) Has(id EntityID) bool {
	_, ok := t.entityToCol[id]
	return ok
}

// HasTypes reports whether every id in types has a row in this table.
func (t *table) HasTypes(types []ComponentTypeID) bool {
	for _, want := range types {
		if _, ok := t.typeToRow[want]; !ok {
			return false
		}
	}
	return true
}

// RowStorage returns the Column Storage backing typeID, if any.
func (t *table) RowStorage(typeID ComponentTypeID) (columnStorage, bool) {
	idx, ok := t.typeToRow[typeID]
	if !ok {
		return nil, false
	}
	return t.storages[idx], true
}

// RowType returns the reflect.Type backing typeID's column, if any.
func (t *table) RowType(typeID ComponentTypeID) (reflect.Type, bool) {
	s, ok := t.RowStorage(typeID)
	if !ok {
		return nil, false
	}
	return s.ElemType(), true
}

// add appends a new column for id. id must not already occupy a
// column in this table. Every row not covered by values is padded with
// a default-constructed element so the table remains square.
func (t *table) add(id EntityID, values ...componentValue) {
	if t.Has(id) {
		panicTraced(fmt.Errorf("depot: entity %d already occupies a column in this table", id))
	}
	byType := make(map[ComponentTypeID]any, len(values))
	for _, v := range values {
		byType[v.typeID] = v.value
	}
	col := t.Len()
	for i, rt := range t.rowTypes {
		if v, ok := byType[rt]; ok {
			t.storages[i].Append(v)
		} else {
			t.storages[i].AppendZero()
		}
	}
	t.colToEntity = append(t.colToEntity, id)
	t.entityToCol[id] = col
}

// set overwrites existing component values for id, or appends them in
// place when the row was just added by a migration and has not yet
// caught up to the entity's column index. If id is absent entirely,
// set degrades to add.
func (t *table) set(id EntityID, values ...componentValue) {
	col, ok := t.entityToCol[id]
	if !ok {
		t.add(id, values...)
		return
	}
	for _, v := range values {
		row, ok := t.typeToRow[v.typeID]
		if !ok {
			panicTraced(ComponentNotFoundError{TypeID: v.typeID})
		}
		storage := t.storages[row]
		switch n := storage.Len(); {
		case col < n:
			storage.Set(col, v.value)
		case col == n:
			storage.Append(v.value)
		default:
			panicTraced(IndexOutOfRangeError{Index: col, Length: n})
		}
	}
}

// del removes id's column via swap-with-last: the column count is
// captured once, before the loop, and every storage is
// swapped-then-popped against that same captured index.
func (t *table) del(id EntityID) EntityID {
	col, ok := t.entityToCol[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}
	return t.removeColumnAt(id, col)
}

func (t *table) removeColumnAt(id EntityID, col int) EntityID {
	last := len(t.colToEntity) - 1
	lastEntity := t.colToEntity[last]
	for _, s := range t.storages {
		s.Swap(col, last)
		s.PopLast()
	}
	t.colToEntity[col] = lastEntity
	t.entityToCol[lastEntity] = col
	t.colToEntity = t.colToEntity[:last]
	delete(t.entityToCol, id)
	return lastEntity
}

// move transfers id from t into dst. Every row t and dst share is
// moved by value; rows unique to dst are left for the caller to `set`
// immediately afterwards (so their column index still equals their
// storage length). move is a no-op if t == dst.
//
// The destination column index is captured once, before any row is
// touched, so every moved row lands in the same column, and dst's
// entity bookkeeping is updated as part of this call rather than
// deferred to the caller's subsequent set.
func (t *table) move(id EntityID, dst *table) {
	if t == dst {
		return
	}
	col, ok := t.entityToCol[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}
	dstCol := dst.Len()
	for i, rt := range t.rowTypes {
		dstRow, shared := dst.typeToRow[rt]
		if !shared {
			continue
		}
		if err := t.storages[i].MoveElementInto(col, dst.storages[dstRow], dstCol); err != nil {
			panicTraced(err)
		}
	}
	dst.colToEntity = append(dst.colToEntity, id)
	dst.entityToCol[id] = dstCol
	t.removeColumnAt(id, col)
}

// mimicRows builds, in an empty table, one empty Column Storage per
// row of src, preserving row order and the type<->row maps.
// Precondition: t has zero rows.
func (t *table) mimicRows(src *table) {
	if len(t.rowTypes) != 0 {
		panicTraced(IndexOutOfRangeError{Index: len(t.rowTypes), Length: 0})
	}
	t.rowTypes = make([]ComponentTypeID, len(src.rowTypes))
	copy(t.rowTypes, src.rowTypes)
	t.typeToRow = make(map[ComponentTypeID]int, len(src.typeToRow))
	for k, v := range src.typeToRow {
		t.typeToRow[k] = v
	}
	t.storages = make([]columnStorage, len(src.storages))
	for i, s := range src.storages {
		t.storages[i] = s.CreateEmptyClone()
	}
}

// addRows extends the row dimension with one Column Storage per
// (typeID, reflectType) pair not already present, padding each new
// storage to the current column count via AppendZero so the table
// stays square. Every Go type has a usable zero value, so this is
// unconditionally satisfiable.
func (t *table) addRows(types []ComponentTypeID, reflectTypes []reflect.Type) {
	width := t.Len()
	for i, id := range types {
		if _, exists := t.typeToRow[id]; exists {
			continue
		}
		row := len(t.rowTypes)
		t.rowTypes = append(t.rowTypes, id)
		t.typeToRow[id] = row
		storage := newReflectColumn(reflectTypes[i], Config.initialColumnCapacity)
		for c := 0; c < width; c++ {
			storage.AppendZero()
		}
		t.storages = append(t.storages, storage)
	}
}

// delRows trims the row dimension using swap-with-last at the row
// level.
func (t *table) delRows(types []ComponentTypeID) {
	for _, id := range types {
		row, ok := t.typeToRow[id]
		if !ok {
			continue
		}
		last := len(t.rowTypes) - 1
		t.storages[row] = t.storages[last]
		t.rowTypes[row] = t.rowTypes[last]
		t.typeToRow[t.rowTypes[row]] = row
		t.storages = t.storages[:last]
		t.rowTypes = t.rowTypes[:last]
		delete(t.typeToRow, id)
	}
}

// at projects the requested types' rows at id's column as addressable
// reflect.Values, in the order requested.
func (t *table) at(id EntityID, types []ComponentTypeID) []reflect.Value {
	col, ok := t.entityToCol[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}
	out := make([]reflect.Value, len(types))
	for i, want := range types {
		storage, ok := t.RowStorage(want)
		if !ok {
			panicTraced(ComponentNotFoundError{TypeID: want})
		}
		out[i] = storage.ValueAt(col)
	}
	return out
}

// forEachColumn visits every column in ascending index order, handing
// back its position and the entity occupying it; typed per-component
// projection is layered on top by AccessibleComponent + Cursor.
func (t *table) forEachColumn(f func(col int, id EntityID)) {
	for i, id := range t.colToEntity {
		f(i, id)
	}
}
