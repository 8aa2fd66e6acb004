package bedrock

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// Component is implemented by anything usable as a query term naming
// a single component type: ComponentAccessor[T] is the only
// implementation in this package.
type Component interface {
	componentID() ComponentId
}

// QueryNode is a compiled query term: a leaf naming components
// directly, or a composite combining other QueryNodes with And/Or/Not.
type QueryNode interface {
	// Evaluate reports whether an archetype with the given key
	// matches this node.
	Evaluate(key ArchetypeKey) bool
	// RequiredKey is the conjunctive restriction this node places on
	// any matching archetype, used by Cursor as a fast superset
	// pre-filter before falling back to Evaluate for nodes whose
	// restriction can't be expressed as a single required key (Or,
	// Not). IdentityArchetypeKey means "no restriction, always
	// re-check with Evaluate."
	RequiredKey() ArchetypeKey
}

type opKind int

const (
	opAnd opKind = iota
	opOr
	opNot
)

// Query builds a QueryNode tree against one World's registry.
type Query struct {
	world *World
}

func newQuery(w *World) *Query {
	return &Query{world: w}
}

// And requires every named component and every nested QueryNode to
// match. Requiring the same component twice (directly, or once
// directly and once inside a nested And, or inside two nested Ands)
// panics (bark-traced) with a duplicate-component error, mirroring the
// bundle duplicate check. Components named under a nested Or or Not
// are not part of that check.
func (q *Query) And(items ...any) QueryNode {
	return newNode(opAnd, q.world, items)
}

// Or matches an archetype carrying at least one of the named
// components, or satisfying at least one nested QueryNode.
func (q *Query) Or(items ...any) QueryNode {
	return newNode(opOr, q.world, items)
}

// Not matches an archetype carrying none of the named components and
// satisfying none of the nested QueryNodes.
func (q *Query) Not(items ...any) QueryNode {
	return newNode(opNot, q.world, items)
}

func newNode(op opKind, world *World, items []any) QueryNode {
	var componentIDs []ComponentId
	var children []QueryNode
	for _, it := range items {
		switch v := it.(type) {
		case Component:
			componentIDs = append(componentIDs, v.componentID())
		case QueryNode:
			children = append(children, v)
		default:
			panic(bark.AddTrace(fmt.Errorf("bedrock: invalid query item of type %T, want Component or QueryNode", it)))
		}
	}
	if len(children) == 0 {
		leaf := &leafNode{op: op, registry: world.registry, components: componentIDs}
		leaf.checkForDuplicatesEagerly()
		return leaf
	}
	if len(componentIDs) > 0 {
		leaf := &leafNode{op: op, registry: world.registry, components: componentIDs}
		leaf.checkForDuplicatesEagerly()
		children = append(children, leaf)
	}
	node := &compositeNode{op: op, registry: world.registry, children: children}
	if op == opAnd {
		node.RequiredKey() // force eager duplicate detection across nested terms, same as leafNode
	}
	return node
}

// leafNode names components directly, with no nested QueryNode.
type leafNode struct {
	op         opKind
	registry   *Registry
	components []ComponentId
}

func (l *leafNode) requiredKey() ArchetypeKey {
	key := IdentityArchetypeKey
	for _, id := range l.components {
		prime := l.registry.PrimeOf(id)
		key = key.Merge(prime)
		if key%prime.Squared() == 0 {
			panic(bark.AddTrace(DuplicateComponentError{TypeName: l.registry.InfoOf(id).Name}))
		}
	}
	return key
}

// checkForDuplicatesEagerly panics the moment a query term is built
// with the same component named twice, rather than waiting for the
// first Cursor iteration to discover it — a query built once and
// reused across many frames should fail fast at build time, the same
// way original_source's merge_prime_arch_key_with runs while the
// query type itself is being assembled, not during iteration.
func (l *leafNode) checkForDuplicatesEagerly() {
	if l.op == opAnd {
		l.requiredKey()
	}
}

func (l *leafNode) Evaluate(key ArchetypeKey) bool {
	switch l.op {
	case opAnd:
		return key.IsSupersetOf(l.requiredKey())
	case opOr:
		for _, id := range l.components {
			if key.Contains(l.registry.PrimeOf(id)) {
				return true
			}
		}
		return false
	case opNot:
		for _, id := range l.components {
			if key.Contains(l.registry.PrimeOf(id)) {
				return false
			}
		}
		return true
	}
	return false
}

func (l *leafNode) RequiredKey() ArchetypeKey {
	if l.op != opAnd {
		return IdentityArchetypeKey
	}
	return l.requiredKey()
}

// compositeNode combines other QueryNodes (and, via newNode, a
// trailing leafNode for any loose components) under one operator.
type compositeNode struct {
	op       opKind
	registry *Registry
	children []QueryNode
}

func (c *compositeNode) Evaluate(key ArchetypeKey) bool {
	switch c.op {
	case opAnd:
		for _, ch := range c.children {
			if !ch.Evaluate(key) {
				return false
			}
		}
		return true
	case opOr:
		for _, ch := range c.children {
			if ch.Evaluate(key) {
				return true
			}
		}
		return false
	case opNot:
		for _, ch := range c.children {
			if ch.Evaluate(key) {
				return false
			}
		}
		return true
	}
	return false
}

// RequiredKey merges every child's required key, panicking
// (bark-traced) the moment two children both require the same
// component — a nested duplicate (e.g. And(pos, And(pos))) wouldn't
// divide any real archetype key by a repeated prime's square the way
// a flat And(pos, pos) does, so it's caught instead by checking that
// no two children's required keys share a common prime factor
// (gcd > 1 means they do).
func (c *compositeNode) RequiredKey() ArchetypeKey {
	if c.op != opAnd {
		return IdentityArchetypeKey
	}
	key := IdentityArchetypeKey
	for _, ch := range c.children {
		childKey := ch.RequiredKey()
		if childKey == IdentityArchetypeKey {
			continue
		}
		if shared := gcd(key, childKey); shared != IdentityArchetypeKey {
			panic(bark.AddTrace(DuplicateComponentError{TypeName: c.registry.DescribeArchetype(shared)}))
		}
		key = key.Merge(childKey)
	}
	return key
}
