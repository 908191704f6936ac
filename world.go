package depot

import "reflect"

// World owns every archetype table, interns archetypes by their sorted
// type-set, assigns component type ids through its registry, and
// tracks which archetype currently holds each entity.
type World struct {
	registry      *registry
	archetypeCache *SimpleCache[*archetype]
	archetypes    []*archetype
	entityToTable map[EntityID]*archetype
	empty         *archetype
	nextEntity    EntityID
	nextArchetype archetypeID
	lockDepth     int
	opQueue       operationQueue
	transitions   map[archetypeID]map[transitionEdge]archetypeID
}

// transitionEdge is one entry of the optional archetype transition
// graph: from a given archetype, adding or removing a single component
// type id leads to a cached neighbor archetype, short-circuiting the
// sorted-tag interning lookup. It is purely a performance cache;
// dropping it never changes observable behavior.
type transitionEdge struct {
	typeID ComponentTypeID
	remove bool
}

// NewWorld constructs an empty World. The empty archetype (zero
// component types) is created lazily on first use.
func NewWorld() *World {
	return &World{
		registry:       newRegistry(),
		archetypeCache: newSimpleCache[*archetype](0),
		entityToTable:  make(map[EntityID]*archetype),
		transitions:    make(map[archetypeID]map[transitionEdge]archetypeID),
	}
}

// Lock marks the World as being iterated by a query. While locked,
// direct structural methods (AddComponents, RemoveComponents,
// NewEntity, DestroyEntity) panic; callers performing structural
// changes from inside a callback passed to a Cursor must use the
// Enqueue* variants instead.
func (w *World) Lock() { w.lockDepth++ }

// Unlock releases one lock level. When the last level is released,
// any operations queued while locked are applied immediately.
func (w *World) Unlock() {
	if w.lockDepth > 0 {
		w.lockDepth--
	}
	if w.lockDepth == 0 {
		w.opQueue.processAll(w)
	}
}

// Locked reports whether a query iteration currently holds the World.
func (w *World) Locked() bool { return w.lockDepth > 0 }

func (w *World) assertUnlocked() {
	if w.Locked() {
		panicTraced(LockedWorldError{})
	}
}

// Archetypes returns every interned archetype, in creation order, as
// the public Archetype view. The query engine (query.go, cursor.go)
// reads the same list through the unexported archetypes field.
func (w *World) Archetypes() []Archetype {
	out := make([]Archetype, len(w.archetypes))
	for i, a := range w.archetypes {
		out[i] = a
	}
	return out
}

func (w *World) archetypeByID(id archetypeID) *archetype {
	return w.archetypes[id-1]
}

func (w *World) emptyArchetype() *archetype {
	if w.empty == nil {
		w.empty = w.registerNewArchetype(Tag{}, newEmptyTable())
	}
	return w.empty
}

func (w *World) lookupArchetype(tag Tag) *archetype {
	idx, ok := w.archetypeCache.GetIndex(tag.key())
	if !ok {
		return nil
	}
	return *w.archetypeCache.GetItem(idx)
}

func (w *World) registerNewArchetype(tag Tag, t *table) *archetype {
	w.nextArchetype++
	a := newArchetypeOf(w.nextArchetype, t)
	w.archetypes = append(w.archetypes, a)
	if _, err := w.archetypeCache.Register(tag.key(), a); err != nil {
		// Unbounded cache (capacity 0): Register only fails at a
		// configured capacity, which archetypeCache never sets.
		panicTraced(err)
	}
	if Config.events.OnArchetypeCreated != nil {
		Config.events.OnArchetypeCreated(tag)
	}
	return a
}

func (w *World) allocEntity() EntityID {
	w.nextEntity++
	return w.nextEntity
}

// NewEntity allocates a fresh entity id and places it in the empty
// archetype.
func (w *World) NewEntity() EntityID {
	w.assertUnlocked()
	id := w.allocEntity()
	empty := w.emptyArchetype()
	empty.table.add(id)
	w.entityToTable[id] = empty
	return id
}

// NewEntityWith allocates a fresh entity id and adds it directly with
// the supplied component values. Implemented as
// entity-in-empty-archetype followed by AddComponents so it goes
// through the exact same structural-change protocol as a later Add
// call.
func (w *World) NewEntityWith(values ...componentValue) EntityID {
	id := w.NewEntity()
	if len(values) > 0 {
		w.AddComponents(id, values...)
	}
	return id
}

// Valid reports whether id currently occupies a column in some
// archetype of this World.
func (w *World) Valid(id EntityID) bool {
	_, ok := w.entityToTable[id]
	return ok
}

// Has reports whether id's current archetype carries every requested
// component type.
func (w *World) Has(id EntityID, typeIDs ...ComponentTypeID) bool {
	a, ok := w.entityToTable[id]
	if !ok {
		return false
	}
	return a.table.HasTypes(typeIDs)
}

// At projects the requested component types at id's current column as
// addressable reflect.Values, in the requested order. Fatal (panics)
// if id is unknown or lacks a requested type.
func (w *World) At(id EntityID, typeIDs ...ComponentTypeID) []reflect.Value {
	a, ok := w.entityToTable[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}
	return a.table.at(id, typeIDs)
}

// AddComponents runs the add-components structural-change protocol:
//
//  1. src = the entity's current archetype.
//  2. dstTag = sortedUnique(src.rowTypes ∪ new type ids).
//  3. dst = intern(dstTag); if newly created, dst.mimicRows(src) then
//     dst.addRows(new types).
//  4. if src != dst, src.move(id, dst); update bookkeeping.
//  5. dst.set(id, values) — overwrites newly-added and already-present
//     components alike.
//
// Adding a type already present on the entity degrades to Set for that
// value.
func (w *World) AddComponents(id EntityID, values ...componentValue) {
	w.assertUnlocked()
	if len(values) == 0 {
		return
	}
	src, ok := w.entityToTable[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}

	if len(values) == 1 {
		if dst, ok := w.cachedTransition(src.id, values[0].typeID, false); ok {
			w.applyAddTransition(id, src, dst, values...)
			return
		}
	}

	newTypeIDs := make([]ComponentTypeID, 0, len(values))
	for _, v := range values {
		if !src.table.HasTypes([]ComponentTypeID{v.typeID}) {
			newTypeIDs = append(newTypeIDs, v.typeID)
		}
	}
	if len(newTypeIDs) == 0 {
		src.table.set(id, values...)
		return
	}

	dstTag := union(src.table.Tag(), newTypeIDs)
	dst := w.lookupArchetype(dstTag)
	if dst == nil {
		reflectTypes := make([]reflect.Type, len(newTypeIDs))
		for i, tid := range newTypeIDs {
			rt, ok := w.registry.typeOf(tid)
			if !ok {
				panicTraced(ComponentNotFoundError{TypeID: tid})
			}
			reflectTypes[i] = rt
		}
		dstTable := newEmptyTable()
		dstTable.mimicRows(src.table)
		dstTable.addRows(newTypeIDs, reflectTypes)
		dst = w.registerNewArchetype(dstTag, dstTable)
	}
	if len(values) == 1 {
		w.cacheTransition(src.id, values[0].typeID, false, dst.id)
	}
	w.applyAddTransition(id, src, dst, values...)
}

func (w *World) applyAddTransition(id EntityID, src, dst *archetype, values ...componentValue) {
	if src == dst {
		dst.table.set(id, values...)
		return
	}
	fromTag := src.table.Tag()
	src.table.move(id, dst.table)
	w.entityToTable[id] = dst
	dst.table.set(id, values...)
	if Config.events.OnEntityMoved != nil {
		Config.events.OnEntityMoved(id, fromTag, dst.table.Tag())
	}
}

// RemoveComponents runs the remove-components structural-change
// protocol, symmetric to AddComponents: dstTag = sorted(src.rowTypes \
// requested types); if newly interned, mimicRows then delRows.
// Removing a type not present on the entity is a no-op for that type.
func (w *World) RemoveComponents(id EntityID, typeIDs ...ComponentTypeID) {
	w.assertUnlocked()
	if len(typeIDs) == 0 {
		return
	}
	src, ok := w.entityToTable[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}

	if len(typeIDs) == 1 {
		if dst, ok := w.cachedTransition(src.id, typeIDs[0], true); ok {
			if src.table.HasTypes(typeIDs) {
				w.applyRemoveTransition(id, src, dst)
			}
			return
		}
	}

	present := make([]ComponentTypeID, 0, len(typeIDs))
	for _, tid := range typeIDs {
		if src.table.HasTypes([]ComponentTypeID{tid}) {
			present = append(present, tid)
		}
	}
	if len(present) == 0 {
		return
	}

	dstTag := difference(src.table.Tag(), present)
	dst := w.lookupArchetype(dstTag)
	if dst == nil {
		dstTable := newEmptyTable()
		dstTable.mimicRows(src.table)
		dstTable.delRows(present)
		dst = w.registerNewArchetype(dstTag, dstTable)
	}
	if len(typeIDs) == 1 {
		w.cacheTransition(src.id, typeIDs[0], true, dst.id)
	}
	w.applyRemoveTransition(id, src, dst)
}

func (w *World) applyRemoveTransition(id EntityID, src, dst *archetype) {
	if src == dst {
		return
	}
	fromTag := src.table.Tag()
	src.table.move(id, dst.table)
	w.entityToTable[id] = dst
	if Config.events.OnEntityMoved != nil {
		Config.events.OnEntityMoved(id, fromTag, dst.table.Tag())
	}
}

// SetComponents writes values onto id's existing components in place.
// If every requested type is already present, this never moves the
// entity between archetypes. Otherwise it degrades to AddComponents,
// since Set must never destroy a component.
func (w *World) SetComponents(id EntityID, values ...componentValue) {
	w.assertUnlocked()
	if len(values) == 0 {
		return
	}
	src, ok := w.entityToTable[id]
	if !ok {
		panicTraced(EntityNotFoundError{ID: id})
	}
	for _, v := range values {
		if !src.table.HasTypes([]ComponentTypeID{v.typeID}) {
			w.AddComponents(id, values...)
			return
		}
	}
	src.table.set(id, values...)
}

// DestroyEntity removes id from its archetype via the table's
// swap-with-last delete, freeing its column without requiring a
// destination table.
func (w *World) DestroyEntity(id EntityID) {
	w.assertUnlocked()
	a, ok := w.entityToTable[id]
	if !ok {
		return
	}
	a.table.del(id)
	delete(w.entityToTable, id)
}

func (w *World) cachedTransition(from archetypeID, typeID ComponentTypeID, remove bool) (*archetype, bool) {
	edges, ok := w.transitions[from]
	if !ok {
		return nil, false
	}
	toID, ok := edges[transitionEdge{typeID: typeID, remove: remove}]
	if !ok {
		return nil, false
	}
	return w.archetypeByID(toID), true
}

func (w *World) cacheTransition(from archetypeID, typeID ComponentTypeID, remove bool, to archetypeID) {
	edges, ok := w.transitions[from]
	if !ok {
		edges = make(map[transitionEdge]archetypeID)
		w.transitions[from] = edges
	}
	edges[transitionEdge{typeID: typeID, remove: remove}] = to
}

// WorldStats summarizes a World's live state for debugging and
// introspection.
type WorldStats struct {
	EntityCount    int
	ComponentTypes int
	Locked         bool
	Archetypes     []ArchetypeStats
}

// ArchetypeStats summarizes one interned archetype.
type ArchetypeStats struct {
	ID               uint32
	Size             int
	ComponentTypeIDs []ComponentTypeID
}

// Stats reports a snapshot of the World's current composition.
func (w *World) Stats() WorldStats {
	stats := WorldStats{
		EntityCount:    len(w.entityToTable),
		ComponentTypes: len(w.registry.idToType),
		Locked:         w.Locked(),
		Archetypes:     make([]ArchetypeStats, len(w.archetypes)),
	}
	for i, a := range w.archetypes {
		stats.Archetypes[i] = ArchetypeStats{
			ID:               a.ID(),
			Size:             a.Len(),
			ComponentTypeIDs: append(Tag(nil), a.Tag()...),
		}
	}
	return stats
}
