package depot

// Config holds process-wide tunables for the depot runtime.
var Config config = config{
	initialColumnCapacity: 8,
}

type config struct {
	// initialColumnCapacity is the capacity new Column Storages are
	// pre-allocated with, to reduce reallocation churn on the first
	// few appends into a freshly interned archetype.
	initialColumnCapacity int

	// events, when non-nil, receives structural-change notifications:
	// archetype interning and entity moves.
	events StructuralEvents
}

// StructuralEvents are optional callbacks invoked by a World as it
// performs structural changes. All fields are optional; a nil field is
// simply not called. Intended for diagnostics/metrics collectors
// outside the ECS core.
type StructuralEvents struct {
	// OnArchetypeCreated fires after a new archetype table is interned.
	OnArchetypeCreated func(tag Tag)
	// OnEntityMoved fires after an entity finishes moving from one
	// archetype to another (after the destination column is square
	// again).
	OnEntityMoved func(id EntityID, from, to Tag)
}

// SetStructuralEvents installs the structural-change hook set.
func (c *config) SetStructuralEvents(e StructuralEvents) {
	c.events = e
}

// SetInitialColumnCapacity overrides the default column pre-allocation
// size used for newly interned archetype tables.
func (c *config) SetInitialColumnCapacity(n int) {
	if n < 0 {
		n = 0
	}
	c.initialColumnCapacity = n
}
