package bedrock

// ArchetypeKey identifies an archetype by the product of the primes
// assigned to its component types. Identity (no components) is 1.
// Two archetypes are the same archetype iff their keys are equal, and
// "does this archetype have at least the components named by
// required" reduces to required == IdentityArchetypeKey (identity
// always matches) or key % required == 0.
//
// Overflow: uint64 holds the product of the first 15 entries of
// primeTable (the first 16 already wrap around), and of only 7 of its
// largest entries. The registry's MaxComponents ceiling (default 30,
// capped at len(primeTable)) does not bound how many components one
// archetype combines, so a bundle or query naming many components can
// overflow silently; no check detects it.
type ArchetypeKey uint64

// IdentityArchetypeKey is the key of the archetype with zero
// components.
const IdentityArchetypeKey ArchetypeKey = 1

// defaultMaxComponents is the registry's default ceiling, chosen to
// leave headroom inside primeTable for callers that raise Config.MaxComponents.
const defaultMaxComponents = 30

// primeTable holds the first 64 primes in ascending order. The k-th
// registered component is assigned primeTable[k].
var primeTable = [64]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
	233, 239, 241, 251, 257, 263, 269, 271, 277, 281,
	283, 293, 307, 311,
}

// primeAt returns the prime assigned to the k-th registered component.
// Panics if k is out of range for primeTable; the Registry never lets
// k grow past len(primeTable) because Config.MaxComponents is clamped
// to it.
func primeAt(k int) ArchetypeKey {
	return ArchetypeKey(primeTable[k])
}

// Merge folds another component's or archetype's key into this one.
func (k ArchetypeKey) Merge(other ArchetypeKey) ArchetypeKey {
	return k * other
}

// IsExact reports whether two archetype keys name the same archetype.
func (k ArchetypeKey) IsExact(other ArchetypeKey) bool {
	return k == other
}

// Contains reports whether this archetype's key includes the given
// single component's prime key as a factor.
func (k ArchetypeKey) Contains(component ArchetypeKey) bool {
	if component == IdentityArchetypeKey {
		return true
	}
	return k%component == 0
}

// IsSupersetOf reports whether this archetype key has at least every
// component factored into required. required == IdentityArchetypeKey
// (no components) is always a subset.
func (k ArchetypeKey) IsSupersetOf(required ArchetypeKey) bool {
	if required == IdentityArchetypeKey {
		return true
	}
	return k%required == 0
}

// IntersectsAny reports whether this archetype key contains at least
// one of the single-component keys listed in otherComponents. other
// itself is not consulted.
func (k ArchetypeKey) IntersectsAny(other ArchetypeKey, otherComponents []ArchetypeKey) bool {
	for _, c := range otherComponents {
		if k.Contains(c) {
			return true
		}
	}
	return false
}

// Squared returns k*k, used to detect whether a single component's
// prime was merged into an archetype key twice (a duplicate bundle
// entry or a duplicate query term): if k is divisible by p*p, p was
// factored in at least twice.
func (k ArchetypeKey) Squared() ArchetypeKey {
	return k * k
}

// gcd returns the greatest common divisor of two archetype keys via
// the Euclidean algorithm. Two keys share at least one component
// prime iff their gcd is greater than IdentityArchetypeKey; used by
// compositeNode.RequiredKey to catch a component required by more
// than one nested query term.
func gcd(a, b ArchetypeKey) ArchetypeKey {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
