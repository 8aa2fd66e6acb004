/*
Package bedrock is an archetypal Entity-Component-System core for Go.

Bedrock identifies an entity's archetype by the product of a prime
assigned to each of its component types, rather than by a fixed-width
bitmask. Two archetypes are the same archetype if and only if their
prime products are equal, and "does archetype A have at least the
components of requirement R" reduces to a single modulo test:
A % R == 0. This trades a hard ceiling on the number of distinct
component types (the prime table, see Config.MaxComponents) for
query and superset tests that stay single integer operations no
matter how many components a query names.

Core Concepts:

  - EntityId: a generational handle (index, generation) identifying a
    row inside some archetype's storage.
  - Component: any Go type registered with a Registry; registration
    assigns it a ComponentId and the next unused prime.
  - Archetype storage: one BlobVec column per component type, holding
    entities with exactly that component set.
  - Query: a tree of And/Or/Not terms. Its And terms compile down to
    a single required archetype key that pre-filters storages with one
    modulo test each; the whole tree is then evaluated against each
    remaining storage's key.

Basic Usage:

	w := bedrock.NewWorld()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	id := w.Spawn(Position{X: 1}, Velocity{X: 2, Y: 3})

	pos, vel := bedrock.NewAccessor[Position](w), bedrock.NewAccessor[Velocity](w)
	cursor := w.NewCursor(w.Query().And(pos, vel))
	for cursor.Next() {
		p := pos.GetFromCursor(cursor)
		v := vel.GetFromCursor(cursor)
		p.X += v.X
		p.Y += v.Y
	}

Bedrock is the storage core underneath a larger simulation; it does not
itself schedule systems or dispatch events, see SPEC_FULL.md §Non-goals.
*/
package bedrock
