package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryAssignsStableIDs(t *testing.T) {
	w := NewWorld()
	posID1 := ComponentTypeIDFor[Position](w)
	velID := ComponentTypeIDFor[Velocity](w)
	posID2 := ComponentTypeIDFor[Position](w)

	assert.Equal(t, posID1, posID2, "ComponentTypeIDFor[Position] should return a stable id")
	assert.NotEqual(t, posID1, velID)
}

func TestRegistryIsPerWorld(t *testing.T) {
	w1 := NewWorld()
	w2 := NewWorld()

	// Register Velocity first on w2 so the two worlds assign ids in a
	// different order; Position must still resolve correctly on each.
	ComponentTypeIDFor[Velocity](w2)
	posW1 := ComponentTypeIDFor[Position](w1)
	posW2 := ComponentTypeIDFor[Position](w2)

	rt1, ok1 := w1.registry.typeOf(posW1)
	rt2, ok2 := w2.registry.typeOf(posW2)
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, rt1, rt2, "Position's reflect.Type should resolve consistently across independent registries")
}

func TestBitsetContainment(t *testing.T) {
	a := newBitset(Tag{1, 2, 3})
	b := newBitset(Tag{2, 3})
	c := newBitset(Tag{4})

	assert.True(t, a.containsAll(b), "{1,2,3} should contain all of {2,3}")
	assert.False(t, a.containsAll(c), "{1,2,3} should not contain all of {4}")
	assert.False(t, a.containsAny(c), "{1,2,3} should not intersect {4}")
	assert.True(t, a.containsNone(c), "{1,2,3} and {4} should be disjoint")

	assert.True(t, newBitset(nil).isZero())
	assert.False(t, a.isZero())
}
