package depot

// ForEach1 visits every entity matching cursor's query, calling f with
// component A projected at that entity's column. Go has no variadic
// type parameters, so ForEach1..ForEach4 are hand-written fixed
// arities rather than generated.
func ForEach1[A any](cursor *Cursor, a AccessibleComponent[A], f func(EntityID, *A)) {
	for cursor.Next() {
		f(cursor.CurrentEntity(), a.GetFromCursor(cursor))
	}
}

// ForEach2 is ForEach1 generalized to two components.
func ForEach2[A, B any](cursor *Cursor, a AccessibleComponent[A], b AccessibleComponent[B], f func(EntityID, *A, *B)) {
	for cursor.Next() {
		f(cursor.CurrentEntity(), a.GetFromCursor(cursor), b.GetFromCursor(cursor))
	}
}

// ForEach3 is ForEach1 generalized to three components.
func ForEach3[A, B, C any](cursor *Cursor, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], f func(EntityID, *A, *B, *C)) {
	for cursor.Next() {
		f(cursor.CurrentEntity(), a.GetFromCursor(cursor), b.GetFromCursor(cursor), c.GetFromCursor(cursor))
	}
}

// ForEach4 is ForEach1 generalized to four components.
func ForEach4[A, B, C, D any](cursor *Cursor, a AccessibleComponent[A], b AccessibleComponent[B], c AccessibleComponent[C], d AccessibleComponent[D], f func(EntityID, *A, *B, *C, *D)) {
	for cursor.Next() {
		f(cursor.CurrentEntity(), a.GetFromCursor(cursor), b.GetFromCursor(cursor), c.GetFromCursor(cursor), d.GetFromCursor(cursor))
	}
}
