package bedrock

import "reflect"

// SetTag marks entity e with tag type T, registering T the first time
// it's used. Package-level for the same reason Get/GetMut are: a
// method can't introduce its own type parameter.
func SetTag[T any](w *World, e EntityId) {
	id := w.tagFactory.Register(reflect.TypeFor[T]())
	w.tagStorage.Set(uint64(e.index), id)
}

// ClearTag unmarks entity e's tag type T, if it was registered at all.
func ClearTag[T any](w *World, e EntityId) {
	id, ok := w.tagFactory.IDOf(reflect.TypeFor[T]())
	if !ok {
		return
	}
	w.tagStorage.Unset(uint64(e.index), id)
}

// HasTag reports whether entity e carries tag type T.
func HasTag[T any](w *World, e EntityId) bool {
	id, ok := w.tagFactory.IDOf(reflect.TypeFor[T]())
	if !ok {
		return false
	}
	return w.tagStorage.Has(uint64(e.index), id)
}
