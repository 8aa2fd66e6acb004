package bedrock

import (
	"reflect"
	"unsafe"

	"github.com/TheBitDrifter/bark"
)

// archStorageID identifies one archetype's storage inside a
// storageCatalog.
type archStorageID uint32

// archetypeInfo is the identity of an archetype: which components it
// carries and the prime-product key that names it.
type archetypeInfo struct {
	componentIDs []ComponentId
	primeKey     ArchetypeKey
}

func newArchetypeInfo(ids []ComponentId, registry *Registry) archetypeInfo {
	key := IdentityArchetypeKey
	for _, id := range ids {
		key = key.Merge(registry.PrimeOf(id))
	}
	return archetypeInfo{componentIDs: ids, primeKey: key}
}

// hasDuplicates reports whether any single component's prime divides
// the archetype key more than once, which can only happen if that
// component id appears more than once in componentIDs.
func (a archetypeInfo) hasDuplicates(registry *Registry) bool {
	for _, id := range a.componentIDs {
		prime := registry.PrimeOf(id)
		if a.primeKey%prime.Squared() == 0 {
			return true
		}
	}
	return false
}

// archStorage is the columnar store for every entity belonging to one
// archetype: one BlobVec per component, plus the parallel slice of
// which EntityId sits in each row.
type archStorage struct {
	id           archStorageID
	info         archetypeInfo
	columnIndex  map[ComponentId]int
	columns      []*BlobVec
	entities     []EntityId
}

func newArchStorage(id archStorageID, info archetypeInfo, registry *Registry, initialCap int) *archStorage {
	s := &archStorage{
		id:          id,
		info:        info,
		columnIndex: make(map[ComponentId]int, len(info.componentIDs)),
	}
	for i, cid := range info.componentIDs {
		s.columnIndex[cid] = i
		s.columns = append(s.columns, registry.NewColumnFor(cid, initialCap))
	}
	return s
}

// Len is the number of entities currently stored in this archetype.
func (s *archStorage) Len() int { return len(s.entities) }

// PrimeKey is this archetype's identity.
func (s *archStorage) PrimeKey() ArchetypeKey { return s.info.primeKey }

// ContainsArchetype reports whether this archetype has at least the
// components named by required.
func (s *archStorage) ContainsArchetype(required ArchetypeKey) bool {
	return s.info.primeKey.IsSupersetOf(required)
}

// StoreEntity appends a new row for entity, writing values into their
// matching columns by reflect.Type -> ComponentId lookup via
// registry, and returns the new row index. values must name exactly
// this archetype's component set with no duplicates; callers (World.Spawn)
// validate that before calling in.
func (s *archStorage) StoreEntity(entity EntityId, values []any, registry *Registry) int {
	row := len(s.entities)
	s.entities = append(s.entities, entity)
	for _, v := range values {
		t := reflect.TypeOf(v)
		id := registry.MustIDOf(t)
		colIdx, ok := s.columnIndex[id]
		if !ok {
			panic(bark.AddTrace(UnregisteredComponentError{TypeName: t.String()}))
		}
		pushed := s.columns[colIdx].Push(v)
		if pushed != row {
			panic(bark.AddTrace(ErrUnregisteredComponent))
		}
	}
	return row
}

// Get returns a pointer to row's value for component id, or false if
// this archetype doesn't carry that component.
func (s *archStorage) Get(row int, id ComponentId) (unsafe.Pointer, bool) {
	colIdx, ok := s.columnIndex[id]
	if !ok {
		return nil, false
	}
	return s.columns[colIdx].GetUnchecked(row), true
}

// GetUnchecked returns a pointer to row's value for component id. The
// caller must have already confirmed this archetype carries id.
func (s *archStorage) GetUnchecked(row int, id ComponentId) unsafe.Pointer {
	return s.columns[s.columnIndex[id]].GetUnchecked(row)
}

// EntityAt returns the EntityId stored at row.
func (s *archStorage) EntityAt(row int) EntityId {
	return s.entities[row]
}

// SwapRemove removes row via swap-remove on every column and on the
// entities slice, reporting the EntityId that moved into row (if
// any), so the caller can fix up that entity's meta. If row held the
// last entity, moved is false and no EntityId needs updating.
func (s *archStorage) SwapRemove(row int) (moved EntityId, movedOK bool) {
	last := len(s.entities) - 1
	for _, col := range s.columns {
		col.SwapRemoveAndDrop(row)
	}
	if row != last {
		s.entities[row] = s.entities[last]
		moved, movedOK = s.entities[row], true
	}
	s.entities = s.entities[:last]
	return moved, movedOK
}
