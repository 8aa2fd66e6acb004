package bedrock

import (
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// ComponentAccessor[T] is a typed handle to a registered component
// type, the queryable/readable/writable counterpart to passing T as a
// bare type parameter everywhere. It implements Component, so it can
// be passed directly to Query.And/Or/Not. Grounded in the teacher's
// AccessibleComponent[T] (component_accessor.go/componentaccessible.go).
type ComponentAccessor[T any] struct {
	id       ComponentId
	registry *Registry
}

// NewAccessor registers T (if not already registered) against w's
// registry and returns an accessor for it.
func NewAccessor[T any](w *World) ComponentAccessor[T] {
	id := w.registry.Register(reflect.TypeFor[T]())
	return ComponentAccessor[T]{id: id, registry: w.registry}
}

// NewAccessorWithDrop is NewAccessor for a component type that needs a
// drop hook invoked whenever a row holding it is overwritten or
// removed.
func NewAccessorWithDrop[T any](w *World, drop func(*T)) ComponentAccessor[T] {
	id := w.registry.RegisterWithDrop(reflect.TypeFor[T](), func(ptr unsafe.Pointer) {
		drop((*T)(ptr))
	})
	return ComponentAccessor[T]{id: id, registry: w.registry}
}

func (a ComponentAccessor[T]) componentID() ComponentId { return a.id }

// ID is the underlying ComponentId, for diagnostics.
func (a ComponentAccessor[T]) ID() ComponentId { return a.id }

// GetFromCursor returns a pointer to T on the cursor's current row.
// Panics if the cursor's current archetype doesn't carry T; callers
// that build the cursor's query from the same accessors they read
// with never hit this.
func (a ComponentAccessor[T]) GetFromCursor(c *Cursor) *T {
	ptr, ok := c.currentStorage().Get(c.rowIndex, a.id)
	if !ok {
		panic(bark.AddTrace(ErrMissingComponent))
	}
	return (*T)(ptr)
}

// GetFromCursorSafe is GetFromCursor but returns false instead of
// panicking if the cursor's current archetype doesn't carry T.
func (a ComponentAccessor[T]) GetFromCursorSafe(c *Cursor) (*T, bool) {
	ptr, ok := c.currentStorage().Get(c.rowIndex, a.id)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// CheckCursor reports whether the cursor's current archetype carries T.
func (a ComponentAccessor[T]) CheckCursor(c *Cursor) bool {
	_, ok := c.currentStorage().Get(c.rowIndex, a.id)
	return ok
}

// GetFromEntity is Get[T](w, e) through the accessor, for call sites
// already holding an accessor.
func (a ComponentAccessor[T]) GetFromEntity(w *World, e EntityId) (*T, bool) {
	return Get[T](w, e)
}

// Check reports whether e's archetype carries T.
func (a ComponentAccessor[T]) Check(w *World, e EntityId) bool {
	meta, ok := w.entities.MetaOf(e)
	if !ok {
		return false
	}
	_, ok = w.catalog.Get(meta.storageID).Get(int(meta.row), a.id)
	return ok
}
