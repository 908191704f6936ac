package depot

import (
	"sort"
	"strings"
)

// Entity is a thin, copyable handle onto one entity (one archetype
// table column) of a World: an
// EntityID plus the World it belongs to. depot's archetypes carry no
// notion of entity hierarchy, so there is no parent/child relationship
// here.
type Entity struct {
	world *World
	id    EntityID
}

// entityHandle wraps an existing id in this World as an Entity handle.
// World.Entity / World.EntityWith create a new entity and return its
// handle.
func (w *World) entityHandle(id EntityID) Entity {
	return Entity{world: w, id: id}
}

// Entity allocates a fresh entity with no components and returns its
// handle.
func (w *World) Entity() Entity {
	return w.entityHandle(w.NewEntity())
}

// EntityWith allocates a fresh entity with the given component values
// and returns its handle.
func (w *World) EntityWith(values ...componentValue) Entity {
	return w.entityHandle(w.NewEntityWith(values...))
}

// ID returns the underlying EntityID.
func (e Entity) ID() EntityID { return e.id }

// World returns the World this entity belongs to.
func (e Entity) World() *World { return e.world }

// Add attaches the given component values to the entity, returning the
// same Entity to allow chaining.
func (e Entity) Add(values ...componentValue) Entity {
	e.world.AddComponents(e.id, values...)
	return e
}

// Set overwrites existing component values in place. If any given type
// is not yet present, the call behaves as Add instead.
func (e Entity) Set(values ...componentValue) Entity {
	e.world.SetComponents(e.id, values...)
	return e
}

// Del removes the given component types.
func (e Entity) Del(typeIDs ...ComponentTypeID) Entity {
	e.world.RemoveComponents(e.id, typeIDs...)
	return e
}

// Has reports whether the entity currently carries every given
// component type.
func (e Entity) Has(typeIDs ...ComponentTypeID) bool {
	return e.world.Has(e.id, typeIDs...)
}

// EnqueueAdd is Add's deferred counterpart, safe to call from inside a
// query callback.
func (e Entity) EnqueueAdd(values ...componentValue) {
	e.world.EnqueueAddComponents(e.id, values...)
}

// EnqueueSet is Set's deferred counterpart.
func (e Entity) EnqueueSet(values ...componentValue) {
	e.world.EnqueueSetComponents(e.id, values...)
}

// EnqueueDel is Del's deferred counterpart.
func (e Entity) EnqueueDel(typeIDs ...ComponentTypeID) {
	e.world.EnqueueRemoveComponents(e.id, typeIDs...)
}

// Destroy removes the entity from the World entirely.
func (e Entity) Destroy() {
	e.world.DestroyEntity(e.id)
}

// EnqueueDestroy is Destroy's deferred counterpart.
func (e Entity) EnqueueDestroy() {
	e.world.EnqueueDestroyEntity(e.id)
}

// Valid reports whether the entity still occupies a column in e.world.
func (e Entity) Valid() bool {
	return e.world.Valid(e.id)
}

// Components returns the component type ids currently attached to the
// entity, in the archetype's row order.
func (e Entity) Components() []ComponentTypeID {
	a, ok := e.world.entityToTable[e.id]
	if !ok {
		return nil
	}
	out := make([]ComponentTypeID, len(a.table.rowTypes))
	copy(out, a.table.rowTypes)
	return out
}

// ComponentsAsString returns a sorted, bracketed list of the entity's
// component type names, e.g. "[Position, Velocity]".
func (e Entity) ComponentsAsString() string {
	ids := e.Components()
	if len(ids) == 0 {
		return "[]"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if rt, ok := e.world.registry.typeOf(id); ok {
			name := rt.Name()
			if idx := strings.LastIndex(name, "."); idx >= 0 {
				name = name[idx+1:]
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return "[" + strings.Join(names, ", ") + "]"
}
