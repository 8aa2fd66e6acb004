package bedrock

import (
	"errors"
	"fmt"
)

// Sentinel errors a caller can test for with errors.Is. Panics that cross
// an API boundary wrap one of these with bark.AddTrace so a recovering
// caller still gets a stack alongside the sentinel.
var (
	ErrRegistryExhausted     = errors.New("bedrock: component registry exhausted, no primes remain")
	ErrDuplicateComponent    = errors.New("bedrock: duplicate component type in bundle or query")
	ErrUnregisteredComponent = errors.New("bedrock: component type is not registered")
	ErrStaleEntity           = errors.New("bedrock: entity handle is stale or out of range")
	ErrEntityAllocatorExhausted = errors.New("bedrock: entity allocator exhausted, no indices remain")
	ErrLockedStorage         = errors.New("bedrock: storage is locked by an active cursor")
	ErrMissingComponent      = errors.New("bedrock: component not present on entity's archetype")
)

// DuplicateComponentError names the offending component type.
type DuplicateComponentError struct {
	TypeName string
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("bedrock: bundle or query names component %q more than once", e.TypeName)
}

func (e DuplicateComponentError) Unwrap() error {
	return ErrDuplicateComponent
}

// UnregisteredComponentError names a type that was looked up (or
// stored) without having been registered. Registering past the
// registry's capacity panics with ErrRegistryExhausted instead.
type UnregisteredComponentError struct {
	TypeName string
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("bedrock: component %q is not registered", e.TypeName)
}

func (e UnregisteredComponentError) Unwrap() error {
	return ErrUnregisteredComponent
}

// StaleEntityError reports the handle a caller passed and, if known,
// the generation currently live at that index.
type StaleEntityError struct {
	Handle       EntityId
	LiveGeneration uint32
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("bedrock: entity %v is stale (live generation is %d)", e.Handle, e.LiveGeneration)
}

func (e StaleEntityError) Unwrap() error {
	return ErrStaleEntity
}
