package depot

// factory implements the factory pattern for depot components.
type factory struct{}

// Factory is the global factory instance for creating depot objects.
var Factory factory

// NewWorld creates a new, empty World.
func (f factory) NewWorld() *World {
	return NewWorld()
}

// NewQuery creates a new Query instance.
func (f factory) NewQuery() Query {
	return newQuery()
}

// NewCursor creates a new Cursor with the specified query and world.
func (f factory) NewCursor(query QueryNode, world *World) *Cursor {
	return newCursor(query, world)
}

// FactoryNewComponent registers T with w and returns a handle for
// reading and writing it. Component identity is scoped to one World,
// so the World must be supplied.
func FactoryNewComponent[T any](w *World) AccessibleComponent[T] {
	return NewComponent[T](w)
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](capacity int) Cache[T] {
	return newSimpleCache[T](capacity)
}
