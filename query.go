// Package depot provides query mechanisms for component-based entity systems
package depot

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// Query represents a composable query interface for matching
// archetypes by component type-set, via superset matching.
type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode represents a node in the query tree, evaluated against one
// archetype's sorted type-set.
type QueryNode interface {
	Evaluate(tag Tag) bool
	// Len reports the total number of entities, across every archetype
	// currently interned in world, that this node matches. It is a
	// pure count: it never locks world or depends on any cursor.
	Len(world *World) int
}

// countMatching sums the entity count of every archetype in world
// whose tag node matches. Shared by every QueryNode implementation's
// Len method and by Cursor.Len.
func countMatching(world *World, node QueryNode) int {
	total := 0
	for _, arch := range world.archetypes {
		if node.Evaluate(arch.Tag()) {
			total += arch.Len()
		}
	}
	return total
}

// QueryOperation defines the logical operations for query nodes
type QueryOperation int

const (
	OpAnd QueryOperation = iota // Logical AND operation
	OpOr                        // Logical OR operation
	OpNot                       // Logical NOT operation
)

// compositeNode implements a compound query with child nodes. Its own
// mask and its children are evaluated with the same operation, so
// AND/OR/NOT combinators compose at every level of the tree.
type compositeNode struct {
	op       QueryOperation
	children []QueryNode
	mask     bitset
	hasMask  bool
}

// leafNode implements a simple query with no child nodes: pure AND of
// the supplied component types. And/Or/Not build compositeNodes, so
// nothing in this package constructs a leafNode.
type leafNode struct {
	mask bitset
}

// query implements the Query interface.
type query struct {
	root QueryNode
}

// newQuery creates a new empty query.
func newQuery() Query {
	return &query{}
}

func newCompositeNode(op QueryOperation, components []Component) *compositeNode {
	ids := make(Tag, len(components))
	for i, c := range components {
		ids[i] = c.TypeID()
	}
	return &compositeNode{
		op:      op,
		mask:    newBitset(ids),
		hasMask: len(ids) > 0,
	}
}

// Evaluate implements QueryNode for composite nodes.
func (n *compositeNode) Evaluate(tag Tag) bool {
	archMask := newBitset(tag)

	switch n.op {
	case OpAnd:
		if n.hasMask && !archMask.containsAll(n.mask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(tag) {
				return false
			}
		}
		return true
	case OpOr:
		if n.hasMask && archMask.containsAny(n.mask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(tag) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return archMask.containsNone(n.mask)
		}
		if n.hasMask && !archMask.containsNone(n.mask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(tag) {
				return false
			}
		}
		return true
	}
	return false
}

// Evaluate implements QueryNode for leaf nodes.
func (n *leafNode) Evaluate(tag Tag) bool {
	return newBitset(tag).containsAll(n.mask)
}

// Len implements QueryNode for composite nodes.
func (n *compositeNode) Len(world *World) int {
	return countMatching(world, n)
}

// Len implements QueryNode for leaf nodes.
func (n *leafNode) Len(world *World) int {
	return countMatching(world, n)
}

// And creates a new AND operation node with the provided items
func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates a new OR operation node with the provided items
func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a new NOT operation node with the provided items
func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// validateQueryItems checks if all items are of valid types for queries
func (q *query) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case Component, []Component, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only Component, []Component, or QueryNode are allowed", item)
		}
	}
	return nil
}

// processItems converts the input items into components and query nodes
func (q *query) processItems(items ...interface{}) ([]Component, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	components := make([]Component, 0)
	children := make([]QueryNode, 0)
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v)
		case []Component:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		case Query:
			children = append(children, v)
		}
	}
	return components, children
}

// Evaluate implements QueryNode for the query type
func (q *query) Evaluate(tag Tag) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(tag)
}

// Len implements QueryNode for the query type.
func (q *query) Len(world *World) int {
	if q.root == nil {
		return 0
	}
	return q.root.Len(world)
}
