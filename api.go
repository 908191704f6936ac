package depot

// This file is the external interface surface, gathered in one place
// for reference. Every type it names is declared, with its full
// documentation, in its own file:
//
//   World               world.go
//   Entity               entity.go
//   Component            component.go
//   AccessibleComponent  componentaccessible.go, component_accessor.go
//   Archetype            archetype.go
//   Query, QueryNode     query.go
//   Cursor               cursor.go
//   Cache                cache.go
