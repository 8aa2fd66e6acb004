package bedrock

// Factory mirrors the teacher's package-level constructor surface:
// a zero-value singleton offering the same constructors as calling
// NewWorld/NewAccessor/etc. directly, for callers that prefer the
// warehouse-style `bedrock.Factory.NewWorld()` call shape.
var Factory factory = factory{}

type factory struct{}

// NewWorld creates an empty World.
func (factory) NewWorld() *World {
	return NewWorld()
}

// NewQuery starts a query builder against w.
func (factory) NewQuery(w *World) *Query {
	return w.Query()
}

// NewCursor creates a Cursor walking every entity matching node.
func (factory) NewCursor(w *World, node QueryNode) *Cursor {
	return w.NewCursor(node)
}

// FactoryNewAccessor registers T against w and returns an accessor
// for it, the generic free-function form (methods on factory can't
// take their own type parameters).
func FactoryNewAccessor[T any](w *World) ComponentAccessor[T] {
	return NewAccessor[T](w)
}
