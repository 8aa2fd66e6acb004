package bedrock

// storageCatalog owns every archetype's storage and indexes them by
// exact archetype key, mirroring the teacher's storage.archetypes but
// keyed on ArchetypeKey instead of mask.Mask.
type storageCatalog struct {
	storages []*archStorage
	byKey    map[ArchetypeKey]archStorageID
}

func newStorageCatalog() *storageCatalog {
	return &storageCatalog{
		byKey: make(map[ArchetypeKey]archStorageID),
	}
}

// Get returns the storage with the given id.
func (c *storageCatalog) Get(id archStorageID) *archStorage {
	return c.storages[id]
}

// GetOrCreateExact returns the storage whose component set exactly
// matches ids (order-independent, since the key is a product),
// creating one if none exists yet. created reports whether a new
// storage was allocated.
func (c *storageCatalog) GetOrCreateExact(ids []ComponentId, registry *Registry) (storage *archStorage, created bool) {
	info := newArchetypeInfo(ids, registry)
	if sid, ok := c.byKey[info.primeKey]; ok {
		return c.storages[sid], false
	}
	id := archStorageID(len(c.storages))
	s := newArchStorage(id, info, registry, Config.InitialColumnCapacity)
	c.storages = append(c.storages, s)
	c.byKey[info.primeKey] = id
	Config.fireArchetypeCreated(info.primeKey, ids)
	return s, true
}

// IterMatching returns every storage whose archetype key is a
// superset of required, in catalog (insertion) order.
func (c *storageCatalog) IterMatching(required ArchetypeKey) []*archStorage {
	matches := make([]*archStorage, 0, len(c.storages))
	for _, s := range c.storages {
		if s.ContainsArchetype(required) {
			matches = append(matches, s)
		}
	}
	return matches
}
