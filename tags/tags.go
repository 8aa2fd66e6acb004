// Package tags implements the orthogonal tag subsystem SPEC_FULL.md
// §C.1 supplements from original_source's tag.rs/tag_storage.rs: a
// per-entity set of marker bits that is completely independent of the
// archetype an entity lives in (unlike a component, tagging or
// untagging an entity never moves its row between archetype storages).
//
// Wired on github.com/TheBitDrifter/mask, the bitset library the
// bedrock core itself uses for nothing else (its archetype key is a
// prime product, not a bitmask) but that is otherwise an entirely
// idiomatic fit for a fixed-width per-entity tag set.
package tags

import (
	"reflect"

	"github.com/TheBitDrifter/mask"
)

// Id is a dense, registration-order identifier for a tag type.
type Id uint32

// Factory assigns dense ids to tag marker types, mirroring the Rust
// original's TagFactory.
type Factory struct {
	ids  map[reflect.Type]Id
	next Id
}

// NewFactory creates an empty tag factory.
func NewFactory() *Factory {
	return &Factory{ids: make(map[reflect.Type]Id)}
}

// Register assigns t a tag Id if it hasn't been seen before, or
// returns its existing id. Registration is idempotent.
func (f *Factory) Register(t reflect.Type) Id {
	if id, ok := f.ids[t]; ok {
		return id
	}
	id := f.next
	f.ids[t] = id
	f.next++
	return id
}

// RegisterTag is Register for a tag type given as a type parameter
// rather than a reflect.Type.
func RegisterTag[T any](f *Factory) Id {
	return f.Register(reflect.TypeFor[T]())
}

// IDOf returns the Id assigned to t, if any.
func (f *Factory) IDOf(t reflect.Type) (Id, bool) {
	id, ok := f.ids[t]
	return id, ok
}

// Storage tracks, per entity index, which tags are set. It is
// deliberately indexed by a bare uint64 entity index rather than a
// bedrock.EntityId to keep this package independent of the core
// archetype/query package.
type Storage struct {
	sets    []mask.Mask256
	factory *Factory
}

// NewStorage creates tag storage bound to factory.
func NewStorage(factory *Factory) *Storage {
	return &Storage{factory: factory}
}

// NewEntity grows the storage, if needed, so index has an empty tag
// set. Safe to call multiple times for the same index (e.g. a reused,
// previously-freed entity slot); it always leaves that index untagged.
func (s *Storage) NewEntity(index uint64) {
	for uint64(len(s.sets)) <= index {
		s.sets = append(s.sets, mask.Mask256{})
	}
	s.sets[index] = mask.Mask256{}
}

// Set marks tag id on the entity at index.
func (s *Storage) Set(index uint64, id Id) {
	set := s.sets[index]
	set.Mark(uint32(id))
	s.sets[index] = set
}

// Unset clears tag id on the entity at index.
func (s *Storage) Unset(index uint64, id Id) {
	set := s.sets[index]
	set.Unmark(uint32(id))
	s.sets[index] = set
}

// Toggle flips tag id on the entity at index.
func (s *Storage) Toggle(index uint64, id Id) {
	if s.Has(index, id) {
		s.Unset(index, id)
	} else {
		s.Set(index, id)
	}
}

// Has reports whether tag id is set on the entity at index.
func (s *Storage) Has(index uint64, id Id) bool {
	var probe mask.Mask256
	probe.Mark(uint32(id))
	return s.sets[index].ContainsAll(probe)
}

// HasAll reports whether every tag in ids is set on the entity at index.
func (s *Storage) HasAll(index uint64, ids ...Id) bool {
	var probe mask.Mask256
	for _, id := range ids {
		probe.Mark(uint32(id))
	}
	return s.sets[index].ContainsAll(probe)
}

// HasAny reports whether at least one tag in ids is set on the entity
// at index.
func (s *Storage) HasAny(index uint64, ids ...Id) bool {
	var probe mask.Mask256
	for _, id := range ids {
		probe.Mark(uint32(id))
	}
	return s.sets[index].ContainsAny(probe)
}

// UntagAll clears every tag on the entity at index, called by
// World.Despawn so a future entity reusing this index never inherits
// a despawned entity's tags.
func (s *Storage) UntagAll(index uint64) {
	if index < uint64(len(s.sets)) {
		s.sets[index] = mask.Mask256{}
	}
}

// IsEmpty reports whether the entity at index has no tags set.
func (s *Storage) IsEmpty(index uint64) bool {
	return s.sets[index].IsEmpty()
}
