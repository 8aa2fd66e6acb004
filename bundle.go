package bedrock

import (
	"reflect"

	"github.com/TheBitDrifter/bark"
)

// bundle is the resolved shape of a Spawn call: the component values
// in call order, their registered ids, and the archetype key they
// compose to. Building a bundle registers any component types not yet
// seen and panics (bark-traced) if two values share a component type,
// before any storage is touched.
type bundle struct {
	values []any
	ids    []ComponentId
	key    ArchetypeKey
}

func newBundle(registry *Registry, components []any) bundle {
	b := bundle{
		values: components,
		ids:    make([]ComponentId, len(components)),
	}
	for i, v := range components {
		b.ids[i] = registry.Register(reflect.TypeOf(v))
	}
	info := newArchetypeInfo(b.ids, registry)
	b.key = info.primeKey
	if info.hasDuplicates(registry) {
		panic(bark.AddTrace(DuplicateComponentError{TypeName: firstDuplicateComponentName(b.ids, registry)}))
	}
	return b
}

// firstDuplicateComponentName names the first component id appearing
// twice in ids, for the duplicate-bundle panic message. Only called
// once hasDuplicates has already confirmed a duplicate exists.
func firstDuplicateComponentName(ids []ComponentId, registry *Registry) string {
	seen := make(map[ComponentId]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return registry.InfoOf(id).Name
		}
		seen[id] = true
	}
	return ""
}
