package todo

import "github.com/roach88/reflux/internal/entity"

// Reduce is the todo domain reducer.
//
// Entity-wrapped actions are delegated to the generic entity reducer. Domain
// actions look up their target, fail with a NotFoundError when it is absent,
// and rebuild the collection through Update. Pure: the input state is never
// mutated, and on error it is returned unchanged.
func Reduce(s State, action Action) (State, error) {
	switch a := action.(type) {
	case Entity:
		todos, err := entity.Reduce(s.Todos, a.Op)
		if err != nil {
			return s, err
		}
		return State{Todos: todos}, nil

	case MarkDone:
		t, ok := s.Todos.Get(a.ID)
		if !ok {
			return s, &entity.NotFoundError{ID: a.ID}
		}
		t.Done = a.Done
		todos, err := s.Todos.Update(t)
		if err != nil {
			return s, err
		}
		return State{Todos: todos}, nil

	case ChangeText:
		t, ok := s.Todos.Get(a.ID)
		if !ok {
			return s, &entity.NotFoundError{ID: a.ID}
		}
		t.Task = a.Text
		todos, err := s.Todos.Update(t)
		if err != nil {
			return s, err
		}
		return State{Todos: todos}, nil

	default:
		return s, &entity.UnknownActionError{Action: action}
	}
}
