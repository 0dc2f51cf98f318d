package model

// Lookup is the result of resolving an entity by id: either Found with the
// entity or NotFound. A missing row is a normal outcome, not an error.
type Lookup[T any] struct {
	entity T
	found  bool
}

// Found wraps a resolved entity.
func Found[T any](entity T) Lookup[T] {
	return Lookup[T]{entity: entity, found: true}
}

// NotFound is the empty result.
func NotFound[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Get returns the entity and whether it was found.
func (l Lookup[T]) Get() (T, bool) {
	return l.entity, l.found
}
