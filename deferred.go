package bedrock

// deferredOp is a World mutation queued because it arrived while a
// Cursor held the World locked, adapted from the teacher's
// EntityOperation/EntityOperationsQueue idiom (operation_queue.go):
// there, an operation captured an arbitrary entity mutation (add
// component, remove component, transfer archetype); here, with
// dynamic component add/remove on a live entity out of scope (see
// spec.md's Non-goals), the only mutations that can race a Cursor's
// iteration are Spawn and Despawn, so that's all a deferredOp models.
type deferredOp interface {
	apply(w *World)
}

type deferredSpawn struct {
	components []any
	result     *EntityId
}

func (op deferredSpawn) apply(w *World) {
	id := w.spawnNow(op.components)
	if op.result != nil {
		*op.result = id
	}
}

type deferredDespawn struct {
	entity EntityId
}

func (op deferredDespawn) apply(w *World) {
	w.despawnNow(op.entity)
}

// lock increments the World's reentrancy guard. A Cursor calls this
// when it starts iterating so that any Spawn/Despawn arriving mid-loop
// is queued instead of mutating a storage the Cursor is walking.
func (w *World) lock() {
	w.lockCount++
}

// unlock decrements the guard and, once it reaches zero, flushes every
// deferred operation in the order it was queued.
func (w *World) unlock() {
	w.lockCount--
	if w.lockCount > 0 {
		return
	}
	pending := w.deferred
	w.deferred = nil
	for _, op := range pending {
		op.apply(w)
	}
}

// locked reports whether a Cursor currently holds the World locked.
func (w *World) locked() bool {
	return w.lockCount > 0
}

// EnqueueSpawn behaves like Spawn but, if a Cursor is mid-iteration,
// defers the actual spawn until iteration finishes and returns the
// EntityId that will be assigned once it runs.
func (w *World) EnqueueSpawn(components ...any) *EntityId {
	if !w.locked() {
		id := w.spawnNow(components)
		return &id
	}
	result := new(EntityId)
	w.deferred = append(w.deferred, deferredSpawn{components: components, result: result})
	return result
}

// EnqueueDespawn behaves like Despawn but, if a Cursor is
// mid-iteration, defers the actual despawn until iteration finishes.
func (w *World) EnqueueDespawn(e EntityId) {
	if !w.locked() {
		w.despawnNow(e)
		return
	}
	w.deferred = append(w.deferred, deferredDespawn{entity: e})
}
