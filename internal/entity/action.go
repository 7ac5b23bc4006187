package entity

// Action is the sealed union of generic entity operations.
//
// The three variants below are the only implementations. Reducers switch on
// the concrete type; the default case returns an UnknownActionError rather
// than silently dropping the action.
type Action[T Identifiable] interface {
	isEntityAction()
}

// Add requests that Entity be appended to the collection.
// Fails if the entity's id already exists.
type Add[T Identifiable] struct {
	Entity T
}

// Update requests that the entity bound to Entity's id be replaced.
// Fails if the id does not exist.
type Update[T Identifiable] struct {
	Entity T
}

// Remove requests that the entity bound to ID be removed.
// Fails if the id does not exist.
type Remove[T Identifiable] struct {
	ID int
}

func (Add[T]) isEntityAction()    {}
func (Update[T]) isEntityAction() {}
func (Remove[T]) isEntityAction() {}

// Reduce is the generic entity reducer: it interprets an Action against a
// Collection and returns the resulting collection. Pure: the input collection
// is never mutated, and on error it is returned unchanged.
func Reduce[T Identifiable](c Collection[T], action Action[T]) (Collection[T], error) {
	switch a := action.(type) {
	case Add[T]:
		return c.Add(a.Entity)
	case Update[T]:
		return c.Update(a.Entity)
	case Remove[T]:
		return c.Remove(a.ID)
	default:
		return c, &UnknownActionError{Action: action}
	}
}
