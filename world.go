package bedrock

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/bedrock/tags"
)

// World owns the registry, the archetype catalog, the entity
// allocator, and the tag storage for one ECS universe. A World is not
// safe for concurrent use from multiple goroutines; see SPEC_FULL.md's
// concurrency model.
type World struct {
	registry  *Registry
	catalog   *storageCatalog
	entities  *entityAllocator
	tagFactory *tags.Factory
	tagStorage *tags.Storage

	lockCount int
	deferred  []deferredOp
}

// NewWorld creates an empty World.
func NewWorld() *World {
	tf := tags.NewFactory()
	return &World{
		registry:   NewRegistry(),
		catalog:    newStorageCatalog(),
		entities:   newEntityAllocator(),
		tagFactory: tf,
		tagStorage: tags.NewStorage(tf),
	}
}

// Registry exposes the World's component registry, e.g. for
// NewAccessor or Registry.DescribeArchetype.
func (w *World) Registry() *Registry { return w.registry }

// Tags exposes the World's tag-type factory (§C.1 of SPEC_FULL.md),
// orthogonal to the archetype/query core. Per-entity tags are set and
// read through SetTag, ClearTag and HasTag, not through this value.
func (w *World) Tags() *tags.Factory { return w.tagFactory }

// Spawn creates a new entity carrying exactly the given component
// values, appending it to the archetype storage matching their
// combined type set (creating that storage the first time it's
// needed). Panics (bark-traced) if any two values share a component
// type. Panics with ErrLockedStorage if called while a Cursor holds
// the World locked (mid-iteration); use EnqueueSpawn from inside a
// cursor loop instead, the same discipline the teacher's
// storage.NewEntities enforces against Storage.Locked.
func (w *World) Spawn(components ...any) EntityId {
	if w.locked() {
		panic(bark.AddTrace(ErrLockedStorage))
	}
	return w.spawnNow(components)
}

func (w *World) spawnNow(components []any) EntityId {
	b := newBundle(w.registry, components)
	storage, _ := w.catalog.GetOrCreateExact(b.ids, w.registry)
	id := w.entities.Alloc(entityMeta{}) // row fixed up below
	row := storage.StoreEntity(id, b.values, w.registry)
	w.entities.SetMeta(id, entityMeta{storageID: storage.id, row: uint32(row)})
	w.tagStorage.NewEntity(uint64(id.index))
	Config.fireEntitySpawned(id, b.key)
	return id
}

// Despawn removes an entity, panicking (bark-traced) if the handle is
// stale. It swap-removes the entity's row out of its archetype
// storage, fixes up the meta of whichever entity moved into the
// vacated row, and clears the despawned entity's tag set so a future
// entity reusing this index never inherits dead tags (§D.3 of
// SPEC_FULL.md). Panics with ErrLockedStorage if called while a
// Cursor holds the World locked (mid-iteration); a swap-remove would
// reorder rows out from under it. Use EnqueueDespawn from inside a
// cursor loop instead, mirroring the teacher's Storage.DestroyEntities
// guard against Storage.Locked.
func (w *World) Despawn(e EntityId) {
	if w.locked() {
		panic(bark.AddTrace(ErrLockedStorage))
	}
	w.despawnNow(e)
}

func (w *World) despawnNow(e EntityId) {
	meta, ok := w.entities.MetaOf(e)
	if !ok {
		live := uint32(0)
		if int(e.index) < len(w.entities.generations) {
			live = w.entities.generations[e.index]
		}
		panic(bark.AddTrace(StaleEntityError{Handle: e, LiveGeneration: live}))
	}
	storage := w.catalog.Get(meta.storageID)
	moved, movedOK := storage.SwapRemove(int(meta.row))
	if movedOK {
		w.entities.SetMeta(moved, entityMeta{storageID: meta.storageID, row: meta.row})
	}
	w.tagStorage.UntagAll(uint64(e.index))
	w.entities.Free(e)
	Config.fireEntityDespawned(e, storage.PrimeKey())
}

// IsLive reports whether e refers to a currently-live entity.
func (w *World) IsLive(e EntityId) bool {
	return w.entities.IsLive(e)
}

// Count is the number of currently live entities.
func (w *World) Count() uint32 {
	return w.entities.Count()
}

// Query starts building a query over this World's archetypes.
func (w *World) Query() *Query {
	return newQuery(w)
}

// NewCursor creates a Cursor iterating every entity matching node.
func (w *World) NewCursor(node QueryNode) *Cursor {
	return newCursor(w, node)
}

// Get returns a pointer to e's value of component type T, or false if
// e doesn't carry T or is stale. Package-level because Go methods
// can't introduce new type parameters.
func Get[T any](w *World, e EntityId) (*T, bool) {
	meta, ok := w.entities.MetaOf(e)
	if !ok {
		return nil, false
	}
	t := reflect.TypeFor[T]()
	id, ok := w.registry.IDOf(t)
	if !ok {
		return nil, false
	}
	storage := w.catalog.Get(meta.storageID)
	ptr, ok := storage.Get(int(meta.row), id)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// GetMut is Get; Go draws no const/mut distinction on pointers, the
// name exists for symmetry with the spec's Get/GetMut split and to
// read clearly at call sites that intend to write.
func GetMut[T any](w *World, e EntityId) (*T, bool) {
	return Get[T](w, e)
}
