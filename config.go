package bedrock

// Config holds process-wide tunables for the core, mirroring the
// teacher's package-level config.go: threading a knob through every
// constructor isn't worth it for values that are effectively fixed at
// process startup.
var Config config = config{
	MaxComponents:          defaultMaxComponents,
	InitialColumnCapacity:  8,
}

type config struct {
	// MaxComponents bounds how many distinct component types a Registry
	// will assign primes to. Bounded by len(primeTable); the default of
	// 30 leaves headroom in the 64-entry table for callers that raise it.
	MaxComponents int

	// InitialColumnCapacity is the row capacity a freshly created
	// archetype storage reserves for each of its BlobVec columns.
	InitialColumnCapacity int

	// StorageEvents, if set, is notified of catalog and lifecycle
	// events. Nil fields are skipped; an embedding engine wires only
	// the callbacks it cares about.
	StorageEvents StorageEvents
}

// StorageEvents lets an embedding engine observe catalog and entity
// lifecycle events without the core depending on a logging or metrics
// library itself, in the shape of the teacher's table.TableEvents.
type StorageEvents struct {
	OnArchetypeCreated func(key ArchetypeKey, componentIDs []ComponentId)
	OnEntitySpawned    func(id EntityId, key ArchetypeKey)
	OnEntityDespawned  func(id EntityId, key ArchetypeKey)
}

// SetStorageEvents configures the event callbacks.
func (c *config) SetStorageEvents(se StorageEvents) {
	c.StorageEvents = se
}

func (c *config) fireArchetypeCreated(key ArchetypeKey, ids []ComponentId) {
	if c.StorageEvents.OnArchetypeCreated != nil {
		c.StorageEvents.OnArchetypeCreated(key, ids)
	}
}

func (c *config) fireEntitySpawned(id EntityId, key ArchetypeKey) {
	if c.StorageEvents.OnEntitySpawned != nil {
		c.StorageEvents.OnEntitySpawned(id, key)
	}
}

func (c *config) fireEntityDespawned(id EntityId, key ArchetypeKey) {
	if c.StorageEvents.OnEntityDespawned != nil {
		c.StorageEvents.OnEntityDespawned(id, key)
	}
}
