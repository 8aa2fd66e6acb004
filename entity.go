package bedrock

import "github.com/TheBitDrifter/bark"

// EntityId is a generational handle: index selects a slot in the
// entity allocator, generation distinguishes the entity currently
// living in that slot from any entity that previously occupied it and
// has since been despawned. A stale handle (one whose generation no
// longer matches) is never silently treated as live.
type EntityId struct {
	index      uint32
	generation uint32
}

// Index is the handle's slot index, stable across an entity's life.
func (e EntityId) Index() uint32 { return e.index }

// Generation is the handle's generation, incremented every time its
// slot is freed and later reused.
func (e EntityId) Generation() uint32 { return e.generation }

// entityMeta records where a live entity's row lives.
type entityMeta struct {
	storageID archStorageID
	row       uint32
}

// entityAllocator owns every entity's generation and current row
// location, recycling freed indices the way the teacher's global
// entity entry index does, but scoped to one World rather than
// process-global.
type entityAllocator struct {
	generations []uint32
	metas       []entityMeta
	freeQueue   []uint32
	liveCount   uint32
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{}
}

// Alloc reserves a slot (reusing a freed one if available, in FIFO
// order so a slot's generation has the longest possible time to
// "cool off" before reuse) and records meta for it. Panics with a
// bark-traced ErrEntityAllocatorExhausted if every uint32 index has
// ever been allocated and none are free.
func (a *entityAllocator) Alloc(meta entityMeta) EntityId {
	if len(a.freeQueue) > 0 {
		idx := a.freeQueue[0]
		a.freeQueue = a.freeQueue[1:]
		a.metas[idx] = meta
		a.liveCount++
		return EntityId{index: idx, generation: a.generations[idx]}
	}
	idx := uint32(len(a.generations))
	if idx == ^uint32(0) {
		panic(bark.AddTrace(ErrEntityAllocatorExhausted))
	}
	a.generations = append(a.generations, 0)
	a.metas = append(a.metas, meta)
	a.liveCount++
	return EntityId{index: idx, generation: 0}
}

// IsLive reports whether e's generation matches the slot's current
// generation (i.e. e has not been despawned since it was allocated).
func (a *entityAllocator) IsLive(e EntityId) bool {
	if int(e.index) >= len(a.generations) {
		return false
	}
	return a.generations[e.index] == e.generation
}

// MetaOf returns e's current row location. ok is false if e is stale
// or out of range.
func (a *entityAllocator) MetaOf(e EntityId) (entityMeta, bool) {
	if !a.IsLive(e) {
		return entityMeta{}, false
	}
	return a.metas[e.index], true
}

// SetMeta updates a live entity's recorded row location, used after a
// swap-remove moves some other entity into a new row.
func (a *entityAllocator) SetMeta(e EntityId, meta entityMeta) {
	a.metas[e.index] = meta
}

// Free invalidates e: bumps its slot's generation so e itself (and
// any other handle still holding the old generation) is no longer
// live, and returns the slot to the free queue for reuse. Panics with
// a bark-traced StaleEntityError if e is not currently live.
func (a *entityAllocator) Free(e EntityId) {
	if !a.IsLive(e) {
		live := uint32(0)
		if int(e.index) < len(a.generations) {
			live = a.generations[e.index]
		}
		panic(bark.AddTrace(StaleEntityError{Handle: e, LiveGeneration: live}))
	}
	a.generations[e.index]++
	a.metas[e.index] = entityMeta{}
	a.freeQueue = append(a.freeQueue, e.index)
	a.liveCount--
}

// Count is the number of currently live entities.
func (a *entityAllocator) Count() uint32 { return a.liveCount }
