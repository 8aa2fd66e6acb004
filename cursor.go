package bedrock

import "iter"

// Cursor walks every entity matching a QueryNode, archetype storage
// by archetype storage, row by row within each. Grounded in the
// teacher's cursor.go, with the storage locking it does via
// storage.AddLock/RemoveLock replaced by World.lock/unlock (§deferred.go)
// since this core's concurrency model is single-owner, not
// lock-counted per bit.
type Cursor struct {
	world *World
	node  QueryNode

	matched    []*archStorage
	computed   bool
	storageIdx int
	rowIndex   int
	locked     bool
}

func newCursor(w *World, node QueryNode) *Cursor {
	return &Cursor{world: w, node: node}
}

// ensureMatched computes the set of matching archetype storages, once.
// It does not touch the World's lock: TotalMatched and similar
// read-only queries shouldn't hold the World locked just because they
// looked at which archetypes match.
func (c *Cursor) ensureMatched() {
	if c.computed {
		return
	}
	required := c.node.RequiredKey()
	candidates := c.world.catalog.IterMatching(required)
	c.matched = c.matched[:0]
	for _, s := range candidates {
		if s.Len() == 0 {
			continue
		}
		if c.node.Evaluate(s.PrimeKey()) {
			c.matched = append(c.matched, s)
		}
	}
	c.storageIdx = 0
	c.rowIndex = -1
	c.computed = true
}

// Next advances the cursor to the next matching row, returning false
// once iteration is exhausted. The first call to Next (or range over
// Entities) locks the World against Spawn/Despawn until the cursor is
// exhausted or Reset. Breaking out of a `for cursor.Next()` loop
// before it returns false leaves the World locked; call Reset to
// release the lock in that case.
func (c *Cursor) Next() bool {
	c.ensureMatched()
	if !c.locked {
		c.world.lock()
		c.locked = true
	}
	for {
		if c.storageIdx >= len(c.matched) {
			c.finish()
			return false
		}
		storage := c.matched[c.storageIdx]
		c.rowIndex++
		if c.rowIndex < storage.Len() {
			return true
		}
		c.storageIdx++
		c.rowIndex = -1
	}
}

func (c *Cursor) finish() {
	if c.locked {
		c.world.unlock()
		c.locked = false
	}
}

// Reset rewinds the cursor so it can be iterated again, releasing the
// World lock if iteration hadn't already run to completion.
func (c *Cursor) Reset() {
	c.finish()
	c.computed = false
	c.storageIdx = 0
	c.rowIndex = -1
}

func (c *Cursor) currentStorage() *archStorage {
	return c.matched[c.storageIdx]
}

// CurrentEntity is the EntityId at the cursor's current row.
func (c *Cursor) CurrentEntity() EntityId {
	return c.matched[c.storageIdx].EntityAt(c.rowIndex)
}

// EntityAtOffset returns the EntityId offset rows ahead of the
// current row within the current archetype storage only (it does not
// cross storage boundaries).
func (c *Cursor) EntityAtOffset(offset int) EntityId {
	return c.matched[c.storageIdx].EntityAt(c.rowIndex + offset)
}

// EntityIndex is the current row index within the current archetype
// storage.
func (c *Cursor) EntityIndex() int {
	return c.rowIndex
}

// RemainingInArchetype is how many more rows (including the current
// one) are left in the current archetype storage.
func (c *Cursor) RemainingInArchetype() int {
	return c.matched[c.storageIdx].Len() - c.rowIndex
}

// TotalMatched is the total number of entities this cursor will yield
// across every matching archetype storage, computed once iteration
// has been initialized.
func (c *Cursor) TotalMatched() int {
	c.ensureMatched()
	total := 0
	for _, s := range c.matched {
		total += s.Len()
	}
	return total
}

// Entities returns a Go 1.23 range-over-func iterator yielding the row
// index and archetype storage for every matching row, the
// range-over-func counterpart to the imperative Next() loop (teacher's
// Cursor.Entities()).
func (c *Cursor) Entities() iter.Seq2[int, *archStorage] {
	return func(yield func(int, *archStorage) bool) {
		for c.Next() {
			if !yield(c.rowIndex, c.currentStorage()) {
				c.finish()
				return
			}
		}
	}
}
