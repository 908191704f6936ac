package depot

import (
	"iter"
	"sort"
)

// Ensure Cursor implements iCursor interface
var _ iCursor = &Cursor{}

// iCursor defines the interface for iterating over entities matching a query
type iCursor interface {
	Entities() iter.Seq2[int, EntityID]
	Next() bool
}

// Cursor provides random-access iteration over entities in archetypes
// matching a query: every matching archetype's entities are treated as
// one concatenated view, addressed by a single position that can move
// forward or backward across archetype boundaries. It is the vehicle
// ForEach1..ForEach4 (foreach.go) and AccessibleComponent.GetFromCursor
// are built on.
type Cursor struct {
	query QueryNode
	world *World

	initialized bool
	matched     []*archetype
	offsets     []int // prefix sums of entity counts; len(matched)+1
	total       int
	pos         int // -1 = before first entity, total = past last entity

	currentArchetype *archetype
	archetypeIndex   int
	entityIndex      int // 1-based column within currentArchetype
	remaining        int
}

// newCursor creates a new cursor for the given query and world.
func newCursor(query QueryNode, world *World) *Cursor {
	return &Cursor{
		query: query,
		world: world,
		pos:   -1,
	}
}

// Next advances to the next matching entity and reports whether one
// exists. Equivalent to Advance(1).
func (c *Cursor) Next() bool {
	return c.Advance(1)
}

// Advance moves the cursor k steps (positive or negative) across the
// concatenated view of every matching archetype, crossing archetype
// boundaries as needed, and reports whether the resulting position
// names an entity. Advancing past the last entity releases the
// World's lock, the same as exhausting Next(); advancing before the
// first entity leaves the lock held, since the caller may still step
// forward again.
func (c *Cursor) Advance(k int) bool {
	if !c.initialized {
		c.Initialize()
	}

	pos := c.pos + k
	if pos < -1 {
		pos = -1
	}
	if pos > c.total {
		pos = c.total
	}
	c.pos = pos

	if pos < 0 || pos >= c.total {
		if pos >= c.total {
			c.Reset()
		}
		return false
	}

	c.locate(pos)
	return true
}

// Begin seeks the cursor to the first matching entity and reports
// whether one exists.
func (c *Cursor) Begin() bool {
	if !c.initialized {
		c.Initialize()
	}
	c.pos = -1
	return c.Advance(1)
}

// End reports whether the cursor is currently positioned past the last
// matching entity.
func (c *Cursor) End() bool {
	if !c.initialized {
		c.Initialize()
	}
	return c.pos >= c.total
}

// locate positions currentArchetype/archetypeIndex/entityIndex for a
// valid pos in [0, total), via binary search over the prefix sums.
func (c *Cursor) locate(pos int) {
	i := sort.Search(len(c.matched), func(i int) bool { return c.offsets[i+1] > pos })
	c.archetypeIndex = i
	c.currentArchetype = c.matched[i]
	c.remaining = c.currentArchetype.Len()
	c.entityIndex = pos - c.offsets[i] + 1
}

// Entities returns an iterator sequence over (column, entity id) pairs
// for every entity matching the query.
func (c *Cursor) Entities() iter.Seq2[int, EntityID] {
	return func(yield func(int, EntityID) bool) {
		for c.Advance(1) {
			if !yield(c.currentColumn(), c.CurrentEntity()) {
				c.Reset()
				return
			}
		}
	}
}

// Initialize locks the World and collects every archetype whose tag
// matches the query. The matched set is frozen for the lifetime of the
// iteration — structural changes made from inside a callback must go
// through the Enqueue* operations instead.
func (c *Cursor) Initialize() {
	if c.initialized {
		return
	}

	c.world.Lock()
	c.matched = nil

	for _, arch := range c.world.archetypes {
		if c.query.Evaluate(arch.Tag()) {
			c.matched = append(c.matched, arch)
		}
	}

	c.offsets = make([]int, len(c.matched)+1)
	for i, arch := range c.matched {
		c.offsets[i+1] = c.offsets[i] + arch.Len()
	}
	c.total = c.offsets[len(c.matched)]
	c.pos = -1

	if len(c.matched) > 0 {
		c.archetypeIndex = 0
		c.currentArchetype = c.matched[0]
		c.remaining = c.currentArchetype.Len()
	}

	c.initialized = true
}

// Reset clears cursor state and releases the World lock.
func (c *Cursor) Reset() {
	c.archetypeIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matched = nil
	c.offsets = nil
	c.total = 0
	c.pos = -1
	c.initialized = false
	c.world.Unlock()
}

// currentTable returns the table backing the archetype the cursor is
// currently positioned in; used by AccessibleComponent.GetFromCursor.
func (c *Cursor) currentTable() *table {
	return c.currentArchetype.table
}

// currentColumn returns the column within currentTable the cursor is
// currently positioned at.
func (c *Cursor) currentColumn() int {
	return c.entityIndex - 1
}

// CurrentEntity returns the entity id at the current cursor position.
func (c *Cursor) CurrentEntity() EntityID {
	return c.currentArchetype.table.colToEntity[c.currentColumn()]
}

// EntityAtOffset returns the entity id at the given offset from the
// current position, across the full concatenated view — it crosses
// into neighboring archetypes the same way Advance does, without
// moving the cursor itself.
func (c *Cursor) EntityAtOffset(offset int) (EntityID, bool) {
	pos := c.pos + offset
	if pos < 0 || pos >= c.total {
		return 0, false
	}
	i := sort.Search(len(c.matched), func(i int) bool { return c.offsets[i+1] > pos })
	col := pos - c.offsets[i]
	return c.matched[i].table.colToEntity[col], true
}

// EntityIndex returns the current 1-based entity index within the
// current archetype.
func (c *Cursor) EntityIndex() int {
	return c.entityIndex
}

// RemainingInArchetype returns the number of entities left to visit in
// the current archetype after the current one (the current entity is
// not counted).
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// Len reports the total number of entities across every archetype
// matching the cursor's query. Unlike TotalMatched, it never locks the
// World, never starts an iteration, and never disturbs one already in
// progress — safe to call at any time without affecting Next/Advance
// positioning.
func (c *Cursor) Len() int {
	return countMatching(c.world, c.query)
}

// TotalMatched returns the total number of entities across every
// archetype matching the query. Prefer Len for a query that should not
// start or finish an iteration as a side effect.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.Initialize()
	}

	total := c.total

	c.Reset()
	return total
}
