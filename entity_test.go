package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

func spawnMany(w *World, n int, values ...componentValue) []Entity {
	out := make([]Entity, n)
	for i := 0; i < n; i++ {
		out[i] = w.EntityWith(values...)
	}
	return out
}

func TestEntityCreation(t *testing.T) {
	w := NewWorld()
	posComp := FactoryNewComponent[Position](w)
	velComp := FactoryNewComponent[Velocity](w)
	healthComp := FactoryNewComponent[Health](w)

	tests := []struct {
		name        string
		values      []componentValue
		entityCount int
		wantTypes   int
	}{
		{"Empty entity", nil, 1, 0},
		{"Single component", []componentValue{posComp.Value(Position{})}, 10, 1},
		{"Multiple components", []componentValue{posComp.Value(Position{}), velComp.Value(Velocity{})}, 5, 2},
		{"Three components", []componentValue{posComp.Value(Position{}), velComp.Value(Velocity{}), healthComp.Value(Health{})}, 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities := spawnMany(w, tt.entityCount, tt.values...)

			assert.Len(t, entities, tt.entityCount)
			for i, e := range entities {
				assert.True(t, e.Valid(), "entity %d should be valid", i)
			}
			assert.Len(t, entities[0].Components(), tt.wantTypes)
		})
	}
}

func TestComponentAddRemove(t *testing.T) {
	w := NewWorld()
	posComp := FactoryNewComponent[Position](w)
	velComp := FactoryNewComponent[Velocity](w)
	healthComp := FactoryNewComponent[Health](w)

	tests := []struct {
		name       string
		initial    []componentValue
		add        []componentValue
		remove     []ComponentTypeID
		finalCount int
	}{
		{
			name:       "Add component",
			initial:    []componentValue{posComp.Value(Position{})},
			add:        []componentValue{velComp.Value(Velocity{})},
			finalCount: 2,
		},
		{
			name:       "Remove component",
			initial:    []componentValue{posComp.Value(Position{}), velComp.Value(Velocity{})},
			remove:     []ComponentTypeID{velComp.TypeID()},
			finalCount: 1,
		},
		{
			name:       "Add and remove",
			initial:    []componentValue{posComp.Value(Position{})},
			add:        []componentValue{velComp.Value(Velocity{}), healthComp.Value(Health{})},
			remove:     []ComponentTypeID{posComp.TypeID()},
			finalCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := w.EntityWith(tt.initial...)
			if len(tt.add) > 0 {
				e = e.Add(tt.add...)
			}
			if len(tt.remove) > 0 {
				e = e.Del(tt.remove...)
			}
			assert.Len(t, e.Components(), tt.finalCount, "components: %s", e.ComponentsAsString())
		})
	}
}

func TestComponentValues(t *testing.T) {
	w := NewWorld()
	positionComp := FactoryNewComponent[Position](w)
	velocityComp := FactoryNewComponent[Velocity](w)
	healthComp := FactoryNewComponent[Health](w)

	initialPos := Position{X: 1.0, Y: 2.0}
	initialVel := Velocity{X: 3.0, Y: 4.0}

	e := w.EntityWith(healthComp.Value(Health{Current: 10, Max: 10}))
	e = e.Add(positionComp.Value(initialPos), velocityComp.Value(initialVel))

	posPtr := positionComp.GetFromEntity(e)
	velPtr := velocityComp.GetFromEntity(e)

	assert.Equal(t, initialPos, *posPtr)
	assert.Equal(t, initialVel, *velPtr)

	posPtr.X, posPtr.Y = 5.0, 6.0
	velPtr.X, velPtr.Y = 7.0, 8.0

	posPtr2 := positionComp.GetFromEntity(e)
	velPtr2 := velocityComp.GetFromEntity(e)

	assert.Equal(t, Position{X: 5.0, Y: 6.0}, *posPtr2)
	assert.Equal(t, Velocity{X: 7.0, Y: 8.0}, *velPtr2)
}

func TestEntityDestroy(t *testing.T) {
	w := NewWorld()
	posComp := FactoryNewComponent[Position](w)
	e := w.EntityWith(posComp.Value(Position{X: 1}))
	assert.True(t, e.Valid())

	e.Destroy()
	assert.False(t, e.Valid())
}

func TestSetDegradesToAddWhenMissing(t *testing.T) {
	w := NewWorld()
	posComp := FactoryNewComponent[Position](w)
	velComp := FactoryNewComponent[Velocity](w)

	e := w.EntityWith(posComp.Value(Position{X: 1, Y: 1}))
	e = e.Set(posComp.Value(Position{X: 2, Y: 2}), velComp.Value(Velocity{X: 3, Y: 3}))

	assert.True(t, e.Has(posComp.TypeID(), velComp.TypeID()), "Set with a missing component type should degrade to Add")
	assert.Equal(t, Position{X: 2, Y: 2}, *posComp.Get(e.ID()))
}
