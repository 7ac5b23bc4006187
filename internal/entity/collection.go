package entity

// Identifiable is the capability a type needs to live in a Collection.
//
// The accessor is named EntityID rather than ID so that implementing structs
// can keep a plain ID field.
type Identifiable interface {
	// EntityID returns the stable, unique identity of the entity.
	// It must not change over the entity's lifetime.
	EntityID() int
}

// Collection is an immutable ordered, indexed set of entities.
//
// The zero value is an empty collection, ready to use. Collection is a value
// type: copying one is cheap and safe because no operation ever mutates the
// underlying order slice or id map in place.
//
// INVARIANT: order holds exactly the key set of byID, without duplicates,
// in insertion order.
type Collection[T Identifiable] struct {
	order []int
	byID  map[int]T
}

// NewCollection returns an empty collection.
// Equivalent to the zero value; provided for construction-site readability.
func NewCollection[T Identifiable]() Collection[T] {
	return Collection[T]{}
}

// Add returns a new collection with e appended.
// Returns a DuplicateIDError if e's id is already present; the receiver is
// returned unchanged alongside the error.
func (c Collection[T]) Add(e T) (Collection[T], error) {
	id := e.EntityID()
	if _, exists := c.byID[id]; exists {
		return c, &DuplicateIDError{ID: id}
	}

	order := make([]int, len(c.order)+1)
	copy(order, c.order)
	order[len(c.order)] = id

	byID := cloneByID(c.byID, 1)
	byID[id] = e

	return Collection[T]{order: order, byID: byID}, nil
}

// Update returns a new collection with the entity bound to e's id replaced
// by e. Insertion order is unchanged. Returns a NotFoundError if the id is
// absent; there is no upsert.
func (c Collection[T]) Update(e T) (Collection[T], error) {
	id := e.EntityID()
	if _, exists := c.byID[id]; !exists {
		return c, &NotFoundError{ID: id}
	}

	byID := cloneByID(c.byID, 0)
	byID[id] = e

	// order is never mutated, so the new value can share it.
	return Collection[T]{order: c.order, byID: byID}, nil
}

// Remove returns a new collection without the entity bound to id.
// Returns a NotFoundError if the id is absent.
func (c Collection[T]) Remove(id int) (Collection[T], error) {
	if _, exists := c.byID[id]; !exists {
		return c, &NotFoundError{ID: id}
	}

	order := make([]int, 0, len(c.order)-1)
	for _, existing := range c.order {
		if existing != id {
			order = append(order, existing)
		}
	}

	byID := cloneByID(c.byID, 0)
	delete(byID, id)

	return Collection[T]{order: order, byID: byID}, nil
}

// Get returns the entity bound to id and whether it exists.
func (c Collection[T]) Get(id int) (T, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Has reports whether id is present.
func (c Collection[T]) Has(id int) bool {
	_, ok := c.byID[id]
	return ok
}

// Len returns the number of entities.
func (c Collection[T]) Len() int {
	return len(c.order)
}

// IDs returns the identities in insertion order.
// The returned slice is a copy; callers may mutate it freely.
func (c Collection[T]) IDs() []int {
	ids := make([]int, len(c.order))
	copy(ids, c.order)
	return ids
}

// All returns the entities in insertion order.
func (c Collection[T]) All() []T {
	all := make([]T, 0, len(c.order))
	for _, id := range c.order {
		all = append(all, c.byID[id])
	}
	return all
}

// cloneByID copies a possibly-nil id map with room for extra insertions.
func cloneByID[T Identifiable](src map[int]T, extra int) map[int]T {
	dst := make(map[int]T, len(src)+extra)
	for id, e := range src {
		dst[id] = e
	}
	return dst
}
