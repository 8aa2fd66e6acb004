package bedrock

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// ComponentId is a dense, registration-order identifier for a
// registered component type.
type ComponentId uint32

// DropFn is called once, exactly when a slot holding a value of the
// owning component type is being overwritten or removed, and never
// for any other reason. Most Go component types need no DropFn at
// all (nil is the common case); it exists for components that hold a
// resource an embedding engine wants to know the exact lifetime of.
type DropFn func(ptr unsafe.Pointer)

// ComponentInfo describes a registered component type: its reflect
// shape (for BlobVec's reflect.MakeSlice-backed columns) and its
// optional drop hook.
type ComponentInfo struct {
	Id   ComponentId
	Name string
	Type reflect.Type
	Size uintptr
	Drop DropFn
}

// Registry assigns ComponentIds and primes to component types,
// registering a type the first time it's seen (on Spawn or on first
// use in a query) and returning the same id on every later lookup.
// Registration is idempotent: registering an already-known type is a
// no-op that returns its existing id.
type Registry struct {
	ids    map[reflect.Type]ComponentId
	infos  []ComponentInfo
	primes []ArchetypeKey
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[reflect.Type]ComponentId),
	}
}

// Register assigns t a ComponentId and prime if it hasn't been seen
// before, or returns its existing id. Panics with a bark-traced
// ErrRegistryExhausted if the registry has already assigned
// Config.MaxComponents primes.
func (r *Registry) Register(t reflect.Type) ComponentId {
	if id, ok := r.ids[t]; ok {
		return id
	}
	max := Config.MaxComponents
	if max <= 0 || max > len(primeTable) {
		max = len(primeTable)
	}
	if len(r.infos) >= max {
		panic(bark.AddTrace(ErrRegistryExhausted))
	}
	id := ComponentId(len(r.infos))
	info := ComponentInfo{
		Id:   id,
		Name: t.String(),
		Type: t,
		Size: t.Size(),
	}
	r.ids[t] = id
	r.infos = append(r.infos, info)
	r.primes = append(r.primes, primeAt(int(id)))
	return id
}

// RegisterWithDrop is Register for a component type that needs a drop
// hook invoked when a slot holding it is overwritten or removed.
// Registering the same type twice keeps whichever drop hook was
// supplied first; it does not replace it.
func (r *Registry) RegisterWithDrop(t reflect.Type, drop DropFn) ComponentId {
	id := r.Register(t)
	if r.infos[id].Drop == nil {
		r.infos[id].Drop = drop
	}
	return id
}

// IDOf returns the ComponentId assigned to t, if any.
func (r *Registry) IDOf(t reflect.Type) (ComponentId, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// MustIDOf is IDOf but panics with a bark-traced
// ErrUnregisteredComponent instead of returning false.
func (r *Registry) MustIDOf(t reflect.Type) ComponentId {
	id, ok := r.ids[t]
	if !ok {
		panic(bark.AddTrace(UnregisteredComponentError{TypeName: t.String()}))
	}
	return id
}

// InfoOf returns the ComponentInfo for id. Panics if id is out of
// range; callers never hold an id they didn't get from this registry.
func (r *Registry) InfoOf(id ComponentId) ComponentInfo {
	return r.infos[id]
}

// IsRegistered reports whether t has already been assigned an id.
func (r *Registry) IsRegistered(t reflect.Type) bool {
	_, ok := r.ids[t]
	return ok
}

// PrimeOf returns the archetype key contributed by a single
// registered component.
func (r *Registry) PrimeOf(id ComponentId) ArchetypeKey {
	return r.primes[id]
}

// NewColumnFor allocates a fresh BlobVec sized for id's component
// type, with id's registered drop hook wired in.
func (r *Registry) NewColumnFor(id ComponentId, initialCap int) *BlobVec {
	info := r.infos[id]
	return newBlobVec(info.Type, info.Drop, initialCap)
}

// DescribeArchetype renders an archetype key back into a sorted,
// human-readable list of the component names factored into it, for
// error messages and debugging. Grounded in the teacher's
// entity.ComponentsAsString.
func (r *Registry) DescribeArchetype(key ArchetypeKey) string {
	names := make([]string, 0, len(r.infos))
	for _, info := range r.infos {
		prime := r.primes[info.Id]
		if key.Contains(prime) {
			names = append(names, info.Name)
		}
	}
	sort.Strings(names)
	out := "("
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out + ")"
}
