/*
Package depot provides an archetype-based Entity-Component-System (ECS)
runtime.

Entities are opaque ids with no attached identity beyond the components
they carry. Components are typed values grouped by a World into
archetypes: every entity whose component set matches a given archetype
is stored column-by-column in the same table, so iterating a query
walks dense, contiguous storage per component rather than chasing
per-entity pointers.

Core Concepts:

  - Entity: an opaque id naming one column of the archetype table
    that currently holds it.
  - Component: a registered data type attached to entities.
  - Archetype: the set of entities sharing an identical component set.
  - Query: a composable AND/OR/NOT expression matching archetypes by
    component set.

Basic Usage:

	world := depot.NewWorld()

	position := depot.FactoryNewComponent[Position](world)
	velocity := depot.FactoryNewComponent[Velocity](world)

	for i := 0; i < 100; i++ {
		world.EntityWith(
			position.Value(Position{}),
			velocity.Value(Velocity{X: 1}),
		)
	}

	query := depot.Factory.NewQuery()
	queryNode := query.And(position, velocity)
	cursor := depot.Factory.NewCursor(queryNode, world)

	depot.ForEach2(cursor, position, velocity, func(id depot.EntityID, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})
*/
package depot
