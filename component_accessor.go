package depot

// GetFromCursor retrieves this component's value for the entity at the
// cursor's current position, bypassing the entity-id map lookup Get
// does (the cursor already knows the table and column).
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	storage, ok := cursor.currentTable().RowStorage(c.typeID)
	if !ok {
		panicTraced(ComponentNotFoundError{TypeID: c.typeID})
	}
	return c.valueAt(storage.ValueAt(cursor.currentColumn()))
}

// GetFromCursorSafe is GetFromCursor without the fatal precondition.
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (*T, bool) {
	if !c.CheckCursor(cursor) {
		return nil, false
	}
	return c.GetFromCursor(cursor), true
}

// CheckCursor reports whether the archetype at the cursor's current
// position carries this component at all.
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return cursor.currentTable().HasTypes([]ComponentTypeID{c.typeID})
}

// GetFromEntity retrieves this component's value for entity e.
func (c AccessibleComponent[T]) GetFromEntity(e Entity) *T {
	return c.Get(e.id)
}
